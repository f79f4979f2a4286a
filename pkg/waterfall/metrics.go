package waterfall

import "slices"

// MetricsProvider supplies the sizes the engine needs for one pass.
//
// Optional values are reported with a boolean: a provider with no header for a
// section returns false from HeaderSize, and a provider that cannot measure an
// item returns false from ItemHeight, in which case the engine uses the width
// hint as the height (a square cell).
type MetricsProvider interface {
	SectionCount() int
	ItemCount(section int) int
	HeaderSize(section int) (Size, bool)
	FooterSize(section int) (Size, bool)
	ItemHeight(loc Location, width float64) (float64, bool)
}

// Section describes one section for [StaticMetrics].
type Section struct {
	Header *Size `json:"header,omitempty"`
	Footer *Size `json:"footer,omitempty"`

	// Heights holds the natural height of each item. A nil entry means the
	// height is unknown and the cell falls back to a square.
	Heights []*float64 `json:"heights"`
}

// StaticMetrics is a [MetricsProvider] backed by fixed section data.
type StaticMetrics struct {
	Sections []Section `json:"sections"`
}

// Uniform returns metrics for a single section of n items that all share the
// same natural height.
func Uniform(n int, height float64) StaticMetrics {
	heights := make([]*float64, n)
	for i := range heights {
		h := height
		heights[i] = &h
	}
	return StaticMetrics{Sections: []Section{{Heights: heights}}}
}

// Heights returns a section whose items have the given natural heights.
func Heights(hs ...float64) Section {
	vals := slices.Clone(hs)
	out := make([]*float64, len(vals))
	for i := range vals {
		out[i] = &vals[i]
	}
	return Section{Heights: out}
}

func (m StaticMetrics) SectionCount() int { return len(m.Sections) }

func (m StaticMetrics) ItemCount(section int) int {
	if section < 0 || section >= len(m.Sections) {
		return 0
	}
	return len(m.Sections[section].Heights)
}

func (m StaticMetrics) HeaderSize(section int) (Size, bool) {
	if section < 0 || section >= len(m.Sections) || m.Sections[section].Header == nil {
		return Size{}, false
	}
	return *m.Sections[section].Header, true
}

func (m StaticMetrics) FooterSize(section int) (Size, bool) {
	if section < 0 || section >= len(m.Sections) || m.Sections[section].Footer == nil {
		return Size{}, false
	}
	return *m.Sections[section].Footer, true
}

func (m StaticMetrics) ItemHeight(loc Location, _ float64) (float64, bool) {
	if loc.Section < 0 || loc.Section >= len(m.Sections) {
		return 0, false
	}
	hs := m.Sections[loc.Section].Heights
	if loc.Item < 0 || loc.Item >= len(hs) || hs[loc.Item] == nil {
		return 0, false
	}
	return *hs[loc.Item], true
}

var _ MetricsProvider = StaticMetrics{}
