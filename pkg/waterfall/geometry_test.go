package waterfall

import (
	"encoding/json"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"overlap", Rect{X: 20, Y: 20, Width: 20, Height: 20}, true},
		{"contained", Rect{X: 15, Y: 15, Width: 2, Height: 2}, true},
		{"containing", Rect{X: 0, Y: 0, Width: 100, Height: 100}, true},
		{"touching right edge", Rect{X: 30, Y: 10, Width: 5, Height: 5}, false},
		{"touching bottom edge", Rect{X: 10, Y: 30, Width: 5, Height: 5}, false},
		{"disjoint", Rect{X: 100, Y: 100, Width: 5, Height: 5}, false},
		{"zero height inside", Rect{X: 15, Y: 15, Width: 5, Height: 0}, false},
		{"negative width", Rect{X: 15, Y: 15, Width: -5, Height: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.o); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.o, got, tt.want)
			}
			if got := tt.o.Intersects(base); got != tt.want {
				t.Errorf("reverse Intersects(%v) = %v, want %v", tt.o, got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 10, Width: 150, Height: 102}.Inset(1, 1)
	want := Rect{X: 1, Y: 11, Width: 148, Height: 100}
	if r != want {
		t.Errorf("Inset() = %v, want %v", r, want)
	}
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{KindCell, KindHeader, KindFooter} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if got != k {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, k)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("banner")); err == nil {
		t.Error("UnmarshalText(banner) should fail")
	}
	if _, err := Kind(9).MarshalText(); err == nil {
		t.Error("MarshalText(9) should fail")
	}
}

func TestRecordJSON(t *testing.T) {
	r := Record{Kind: KindHeader, Location: Location{Section: 2}, Frame: Rect{Width: 10, Height: 4}}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if m["kind"] != "header" {
		t.Errorf("kind = %v, want header", m["kind"])
	}
	if _, ok := m["custom_height"]; ok {
		t.Error("custom_height should be omitted for supplementary records")
	}
}
