package waterfall

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"
)

// indexThreshold is the record count above which queries use the vertical
// index instead of a linear scan.
const indexThreshold = 64

// Snapshot is one immutable cache generation: every placed record plus the
// content size they span.
type Snapshot struct {
	Generation    uint64   `json:"generation"`
	Params        Params   `json:"params"`
	ContentWidth  float64  `json:"content_width"`
	ContentHeight float64  `json:"content_height"`
	Records       []Record `json:"records"`

	// byY holds record indices ordered by frame Y. maxBottom[i] is the
	// largest MaxY among byY[:i+1], so it never decreases.
	byY       []int
	maxBottom []float64
}

func newSnapshot(p Params, records []Record, width, height float64) *Snapshot {
	s := &Snapshot{
		Params:        p,
		ContentWidth:  width,
		ContentHeight: height,
		Records:       records,
	}
	s.buildIndex()
	return s
}

func (s *Snapshot) buildIndex() {
	s.byY, s.maxBottom = nil, nil
	if len(s.Records) <= indexThreshold {
		return
	}
	s.byY = make([]int, len(s.Records))
	for i := range s.Records {
		s.byY[i] = i
	}
	sort.SliceStable(s.byY, func(a, b int) bool {
		return s.Records[s.byY[a]].Frame.Y < s.Records[s.byY[b]].Frame.Y
	})

	s.maxBottom = make([]float64, len(s.byY))
	for i, idx := range s.byY {
		bottom := s.Records[idx].Frame.MaxY()
		if i > 0 {
			bottom = max(bottom, s.maxBottom[i-1])
		}
		s.maxBottom[i] = bottom
	}
}

// ContentSize returns the total scrollable size.
func (s *Snapshot) ContentSize() Size {
	if s == nil {
		return Size{}
	}
	return Size{Width: s.ContentWidth, Height: s.ContentHeight}
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Query returns the records whose frames intersect r, in insertion order.
// The returned slice is freshly allocated and may be modified by the caller.
func (s *Snapshot) Query(r Rect) []Record {
	if s == nil || r.Empty() {
		return nil
	}
	if s.byY == nil {
		return s.scan(r)
	}
	return s.indexed(r)
}

func (s *Snapshot) scan(r Rect) []Record {
	var out []Record
	for _, rec := range s.Records {
		if rec.Frame.Intersects(r) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Snapshot) indexed(r Rect) []Record {
	// Every record before lo ends at or above r.Y; every record from hi on
	// starts at or below r.MaxY(). Both bounds use the same comparisons as
	// Intersects.
	lo := sort.Search(len(s.maxBottom), func(i int) bool {
		return s.maxBottom[i] > r.Y
	})
	hi := sort.Search(len(s.byY), func(i int) bool {
		return s.Records[s.byY[i]].Frame.Y >= r.MaxY()
	})

	var hits []int
	for _, idx := range s.byY[lo:max(lo, hi)] {
		if s.Records[idx].Frame.Intersects(r) {
			hits = append(hits, idx)
		}
	}
	slices.Sort(hits)

	out := make([]Record, 0, len(hits))
	for _, idx := range hits {
		out = append(out, s.Records[idx])
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Find returns the record of the given kind at loc.
func (s *Snapshot) Find(kind Kind, loc Location) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	for _, r := range s.Records {
		if r.Kind == kind && r.Location == loc {
			return r, true
		}
	}
	return Record{}, false
}

// Equal reports whether two snapshots hold the same geometry. Generations are
// not compared.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Params == o.Params &&
		s.ContentWidth == o.ContentWidth &&
		s.ContentHeight == o.ContentHeight &&
		slices.Equal(s.Records, o.Records)
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalSnapshot serializes a snapshot to pretty-printed JSON.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("marshal snapshot: nil snapshot")
	}
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSnapshot decodes a snapshot and rebuilds its query index.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if s.Params.Columns < 1 {
		return nil, fmt.Errorf("unmarshal snapshot: columns must be at least 1, got %d", s.Params.Columns)
	}
	s.buildIndex()
	return &s, nil
}

// WriteSnapshotFile writes a snapshot to a JSON file.
func WriteSnapshotFile(s *Snapshot, path string) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSnapshotFile reads a snapshot from a JSON file.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSnapshot(data)
}
