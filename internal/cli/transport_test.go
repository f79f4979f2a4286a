package cli

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/peer"
)

func newFlagCommand(register func(*cobra.Command)) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	register(cmd)
	return cmd
}

func TestLayoutFlagsApply(t *testing.T) {
	var f layoutFlags
	cmd := newFlagCommand(f.register)
	if err := cmd.Flags().Set("columns", "4"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("padding", "0"); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Layout.Padding = 3
	if err := f.apply(cmd, &cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Layout.Columns != 4 {
		t.Errorf("columns = %d, want 4", cfg.Layout.Columns)
	}
	if cfg.Layout.Padding != 0 {
		t.Errorf("padding = %g, want 0", cfg.Layout.Padding)
	}
	if cfg.Layout.Width != config.DefaultWidth {
		t.Errorf("width = %g, want untouched default %g", cfg.Layout.Width, config.DefaultWidth)
	}
}

func TestLayoutFlagsApplyInvalid(t *testing.T) {
	var f layoutFlags
	cmd := newFlagCommand(f.register)
	if err := cmd.Flags().Set("columns", "-1"); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	if err := f.apply(cmd, &cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("apply error = %v, want INVALID_CONFIG", err)
	}
}

func TestPeerFlagsApply(t *testing.T) {
	tests := []struct {
		name     string
		flags    map[string]string
		wantErr  errors.Code
		wantName string
	}{
		{"name", map[string]string{"name": "alice"}, "", "alice"},
		{"redis", map[string]string{"name": "bob", "transport": "redis", "redis": "cache:6379"}, "", "bob"},
		{"bad transport", map[string]string{"name": "bob", "transport": "carrier-pigeon"}, errors.ErrCodeInvalidConfig, ""},
		{"bad channel", map[string]string{"name": "bob", "channel": "moves*"}, errors.ErrCodeInvalidName, ""},
		{"bad redis addr", map[string]string{"name": "bob", "transport": "redis", "redis": "nohost"}, errors.ErrCodeInvalidConfig, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f peerFlags
			cmd := newFlagCommand(f.register)
			for k, v := range tt.flags {
				if err := cmd.Flags().Set(k, v); err != nil {
					t.Fatal(err)
				}
			}

			cfg := config.Default()
			err := f.apply(cmd, &cfg)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("apply error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if cfg.Peer.Name != tt.wantName {
				t.Errorf("name = %q, want %q", cfg.Peer.Name, tt.wantName)
			}
		})
	}
}

func TestOpenSessionMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Peer.Name = "alice"

	sess, err := openSession(context.Background(), cfg, log.NewWithOptions(io.Discard, log.Options{}))
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer sess.Close()

	if sess.Name() != "alice" {
		t.Errorf("Name() = %q, want alice", sess.Name())
	}
	if sess.Channel().Name() != config.DefaultChannel {
		t.Errorf("channel = %q, want %q", sess.Channel().Name(), config.DefaultChannel)
	}
	if _, ok := sess.Channel().(*peer.MemoryChannel); !ok {
		t.Errorf("channel is %T, want *peer.MemoryChannel", sess.Channel())
	}
}

func TestOpenChannelUnknownTransport(t *testing.T) {
	cfg := config.Default()
	cfg.Peer.Transport = "smoke"

	if _, err := openChannel(context.Background(), cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("openChannel error = %v, want INVALID_CONFIG", err)
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "http://localhost:8080"},
		{"0.0.0.0:9000", "http://0.0.0.0:9000"},
		{"example.com:80", "http://example.com:80"},
	}
	for _, tt := range tests {
		if got := serverURL(tt.addr); got != tt.want {
			t.Errorf("serverURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
