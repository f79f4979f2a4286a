package pipeline

import (
	"encoding/json"

	"github.com/scorpionlabs/tictac/pkg/cache"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// CaptureMetrics reads every value a pass with p would ask m for and returns
// them as static data. Computing the captured metrics yields the same
// snapshot as computing m.
func CaptureMetrics(m waterfall.MetricsProvider, p waterfall.Params) waterfall.StaticMetrics {
	if sm, ok := m.(waterfall.StaticMetrics); ok {
		return sm
	}

	width := p.CellWidth()
	out := waterfall.StaticMetrics{Sections: make([]waterfall.Section, m.SectionCount())}
	for s := range out.Sections {
		sec := &out.Sections[s]
		if size, ok := m.HeaderSize(s); ok {
			sec.Header = &size
		}
		if size, ok := m.FooterSize(s); ok {
			sec.Footer = &size
		}
		n := m.ItemCount(s)
		sec.Heights = make([]*float64, n)
		for i := 0; i < n; i++ {
			if h, ok := m.ItemHeight(waterfall.Location{Section: s, Item: i}, width); ok {
				sec.Heights[i] = &h
			}
		}
	}
	return out
}

// MetricsHash returns the content hash of captured metrics.
func MetricsHash(m waterfall.StaticMetrics) (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSerialization, err, "hash metrics")
	}
	return cache.Hash(data), nil
}

// SnapshotHash returns the content hash of a snapshot's geometry. The
// generation is left out, so recomputing identical geometry keeps the hash.
func SnapshotHash(s *waterfall.Snapshot) (string, error) {
	data, err := json.Marshal(struct {
		Params        waterfall.Params   `json:"params"`
		ContentWidth  float64            `json:"content_width"`
		ContentHeight float64            `json:"content_height"`
		Records       []waterfall.Record `json:"records"`
	}{s.Params, s.ContentWidth, s.ContentHeight, s.Records})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSerialization, err, "hash snapshot")
	}
	return cache.Hash(data), nil
}

// GenerateLayout computes a snapshot without caching.
func GenerateLayout(m waterfall.MetricsProvider, opts Options) (*waterfall.Snapshot, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	p := opts.Params()
	return waterfall.Compute(CaptureMetrics(m, p), p), nil
}
