package render

import (
	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json, txt)", format)
	}
	return nil
}

// Option configures a renderer.
type Option func(*options)

type options struct {
	cells    []board.Player
	viewport *waterfall.Rect
	scale    float64
	labels   bool
	columns  int
	focus    *waterfall.Location
}

// WithCells sets the occupant of each cell in section 0, indexed by item.
func WithCells(cells []board.Player) Option {
	return func(o *options) { o.cells = cells }
}

// WithViewport limits drawing to records that intersect r.
func WithViewport(r waterfall.Rect) Option {
	return func(o *options) { o.viewport = &r }
}

// WithScale sets the PNG pixel density (default 2).
func WithScale(s float64) Option {
	return func(o *options) { o.scale = s }
}

// WithLabels draws each record's location.
func WithLabels() Option {
	return func(o *options) { o.labels = true }
}

// WithTextColumns sets the terminal grid width in characters (default 60).
func WithTextColumns(n int) Option {
	return func(o *options) { o.columns = n }
}

// WithFocus highlights the cell at loc in terminal output.
func WithFocus(loc waterfall.Location) Option {
	return func(o *options) { o.focus = &loc }
}

func newOptions(opts ...Option) options {
	o := options{scale: 2, columns: 60}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 {
		o.scale = 2
	}
	if o.columns < 8 {
		o.columns = 8
	}
	return o
}

// player returns the occupant drawn in r.
func (o options) player(r waterfall.Record) board.Player {
	if r.Kind != waterfall.KindCell || r.Location.Section != 0 {
		return board.None
	}
	if r.Location.Item < 0 || r.Location.Item >= len(o.cells) {
		return board.None
	}
	return o.cells[r.Location.Item]
}

func (o options) focused(r waterfall.Record) bool {
	return o.focus != nil && r.Kind == waterfall.KindCell && r.Location == *o.focus
}

// frame returns the records to draw and the area they are drawn in.
func (o options) frame(s *waterfall.Snapshot) ([]waterfall.Record, waterfall.Rect) {
	if o.viewport != nil {
		return s.Query(*o.viewport), *o.viewport
	}
	size := s.ContentSize()
	return s.Records, waterfall.Rect{Width: size.Width, Height: size.Height}
}

// Render produces the given format.
func Render(s *waterfall.Snapshot, format string, opts ...Option) ([]byte, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render %s: nil snapshot", format)
	}
	switch format {
	case FormatSVG:
		return RenderSVG(s, opts...), nil
	case FormatPNG:
		return RenderPNG(s, opts...)
	case FormatJSON:
		return RenderJSON(s, opts...)
	case FormatText:
		return []byte(RenderText(s, opts...)), nil
	default:
		return nil, ValidateFormat(format)
	}
}
