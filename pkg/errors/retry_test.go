package errors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}

	base := New(ErrCodeDeliveryFailed, "publish failed")
	err := Retryable(base)
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false, want true")
	}
	if !Is(err, ErrCodeDeliveryFailed) {
		t.Error("code should survive Retryable wrapping")
	}
	if err.Error() != base.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), base.Error())
	}
	if IsRetryable(base) {
		t.Error("IsRetryable(unwrapped) = true, want false")
	}
}

func TestRetry(t *testing.T) {
	transient := Retryable(errors.New("transient"))
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		attempts  int
		results   []error
		wantCalls int
		wantErr   error
	}{
		{"success first try", 3, []error{nil}, 1, nil},
		{"success after retry", 3, []error{transient, nil}, 2, nil},
		{"permanent stops", 3, []error{permanent, nil}, 1, permanent},
		{"exhausted", 3, []error{transient, transient, transient}, 3, transient},
		{"zero attempts runs once", 0, []error{transient}, 1, transient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				e := tt.results[min(calls, len(tt.results)-1)]
				calls++
				return e
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != tt.wantErr {
				t.Errorf("Retry() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		return Retryable(errors.New("transient"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
