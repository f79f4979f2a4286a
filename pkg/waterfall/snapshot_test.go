package waterfall

import (
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"
)

func scenario() *Snapshot {
	return Compute(Uniform(5, 100), Params{Columns: 2, Padding: 1, ContainerWidth: 300})
}

func items(recs []Record) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.Location.Item
	}
	return out
}

func TestSnapshotQuery(t *testing.T) {
	s := scenario()

	tests := []struct {
		name string
		rect Rect
		want []int
	}{
		{"whole content", Rect{Width: 300, Height: 1000}, []int{0, 1, 2, 3, 4}},
		{"first row left", Rect{Width: 100, Height: 50}, []int{0}},
		{"first row", Rect{Width: 300, Height: 50}, []int{0, 1}},
		{"gutter between rows", Rect{Y: 101, Width: 300, Height: 2}, nil},
		{"second and third rows", Rect{Y: 150, Width: 300, Height: 100}, []int{2, 3, 4}},
		{"right column only", Rect{X: 200, Width: 50, Height: 1000}, []int{1, 3}},
		{"below content", Rect{Y: 400, Width: 300, Height: 100}, nil},
		{"zero height at y=1000", Rect{Y: 1000, Width: 300, Height: 0}, nil},
		{"zero height inside", Rect{Y: 50, Width: 300, Height: 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Query(tt.rect)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(items(got), tt.want) {
				t.Errorf("Query(%v) = %v, want %v", tt.rect, items(got), tt.want)
			}
		})
	}
}

func TestSnapshotQueryIdempotent(t *testing.T) {
	s := scenario()
	r := Rect{Y: 90, Width: 300, Height: 30}

	first := s.Query(r)
	second := s.Query(r)
	if !slices.Equal(first, second) {
		t.Errorf("Query() not idempotent: %v vs %v", first, second)
	}

	if len(first) > 0 {
		first[0].Frame.X = -1
		if s.Query(r)[0].Frame.X == -1 {
			t.Error("Query() result aliases snapshot storage")
		}
	}
}

func TestSnapshotIndexMatchesScan(t *testing.T) {
	m := randomMetrics(7, 10, 80)
	s := Compute(m, Params{Columns: 3, Padding: 2, ContainerWidth: 450})
	if s.Len() <= indexThreshold {
		t.Fatalf("fixture too small: %d records", s.Len())
	}
	if s.byY == nil {
		t.Fatal("index not built for large snapshot")
	}

	step := s.ContentHeight / 50
	for y := -100.0; y < s.ContentHeight+100; y += step {
		for _, h := range []float64{1, 37, 250, 900} {
			for _, x := range []float64{0, 140, 300} {
				r := Rect{X: x, Y: y, Width: 160, Height: h}
				if got, want := s.indexed(r), s.scan(r); !slices.Equal(got, want) {
					t.Fatalf("indexed(%v) = %d records, scan = %d", r, len(got), len(want))
				}
			}
		}
	}
}

func TestSnapshotIndexMatchesScanAtEdges(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 17))
	hs := make([]float64, 100)
	for i := range hs {
		hs[i] = 10 + rng.Float64()*90
	}
	s := Compute(StaticMetrics{Sections: []Section{Heights(hs...)}},
		Params{Columns: 3, Padding: 1, ContainerWidth: 301.7})
	if s.byY == nil {
		t.Fatal("index not built for large snapshot")
	}

	for _, rec := range s.Records {
		bottom := rec.Frame.MaxY()
		for _, eps := range []float64{-1e-13, -1e-14, 0, 1e-14, 1e-13} {
			for _, h := range []float64{1e-9, 0.36, 50} {
				tests := []Rect{
					{X: 0, Y: bottom + eps, Width: 400, Height: h},
					{X: 0, Y: rec.Frame.Y + eps - h, Width: 400, Height: h},
				}
				for _, r := range tests {
					if got, want := s.indexed(r), s.scan(r); !slices.Equal(got, want) {
						t.Fatalf("indexed(%v) = %d records, scan = %d", r, len(got), len(want))
					}
				}
			}
		}
	}
}

func TestSnapshotNilSafe(t *testing.T) {
	var s *Snapshot
	if s.Len() != 0 {
		t.Error("nil Len() should be 0")
	}
	if s.ContentSize() != (Size{}) {
		t.Error("nil ContentSize() should be zero")
	}
	if s.Query(Rect{Width: 1, Height: 1}) != nil {
		t.Error("nil Query() should be nil")
	}
	if _, ok := s.Find(KindCell, Location{}); ok {
		t.Error("nil Find() should report false")
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	s := Compute(randomMetrics(3, 4, 40), Params{Columns: 2, Padding: 1, ContainerWidth: 320})
	s.Generation = 4

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteSnapshotFile(s, path); err != nil {
		t.Fatalf("WriteSnapshotFile() error: %v", err)
	}
	got, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile() error: %v", err)
	}
	if !got.Equal(s) {
		t.Error("round-tripped snapshot differs")
	}
	if got.Generation != 4 {
		t.Errorf("Generation = %d, want 4", got.Generation)
	}
	if (s.byY == nil) != (got.byY == nil) {
		t.Error("index not rebuilt after decode")
	}
}

func TestUnmarshalSnapshotRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"zero columns", `{"params":{"columns":0,"padding":1,"container_width":300}}`},
		{"bad kind", `{"params":{"columns":1},"records":[{"kind":"banner"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalSnapshot([]byte(tt.data)); err == nil {
				t.Error("UnmarshalSnapshot() should fail")
			}
		})
	}
}

func TestSnapshotEqualIgnoresGeneration(t *testing.T) {
	a, b := scenario(), scenario()
	a.Generation, b.Generation = 1, 2
	if !a.Equal(b) {
		t.Error("Equal() should ignore generation")
	}
	b.Records[0].Frame.Y++
	if a.Equal(b) {
		t.Error("Equal() should compare frames")
	}
}
