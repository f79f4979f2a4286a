package waterfall

import (
	"fmt"
)

// Size is a width/height pair in layout units.
type Size struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Inset shrinks r by dx on the left and right and by dy on the top and bottom.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{
		X:      r.X + dx,
		Y:      r.Y + dy,
		Width:  r.Width - 2*dx,
		Height: r.Height - 2*dy,
	}
}

// Intersects reports whether r and o overlap with a positive area.
// Rectangles that only touch along an edge do not intersect, and an empty
// rectangle intersects nothing.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.MaxX() && o.X < r.MaxX() &&
		r.Y < o.MaxY() && o.Y < r.MaxY()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Location addresses an element by section and item. Headers and footers
// always use item 0.
type Location struct {
	Section int `json:"section"`
	Item    int `json:"item"`
}

func (l Location) String() string {
	return fmt.Sprintf("%d.%d", l.Section, l.Item)
}

// Kind distinguishes cells from section supplementary elements.
type Kind int

const (
	KindCell Kind = iota
	KindHeader
	KindFooter
)

var kindNames = map[Kind]string{
	KindCell:   "cell",
	KindHeader: "header",
	KindFooter: "footer",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes k as its name.
func (k Kind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown record kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown record kind %q", text)
}

// Record is the placed geometry of one header, footer, or cell.
//
// Record is a comparable value; two records are equal when kind, location,
// frame and custom height all match.
type Record struct {
	Kind     Kind     `json:"kind"`
	Location Location `json:"location"`
	Frame    Rect     `json:"frame"`

	// CustomHeight is the natural, un-inset height reported for a cell.
	// It is zero for headers and footers.
	CustomHeight float64 `json:"custom_height,omitempty"`
}
