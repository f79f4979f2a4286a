// Package pipeline provides the layout → render pipeline for tictac.
//
// The CLI and the HTTP API both run the same two stages:
//
//  1. Layout: capture the metrics of a board (or explicit sections) and
//     compute a waterfall snapshot
//  2. Render: draw the snapshot in one or more output formats
//
// Both stages are cached through a [cache.Cache]. The layout key hashes the
// captured metrics with the layout parameters; artifact keys hash the
// snapshot with the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, board, pipeline.Options{
//	    Columns: 3,
//	    Width:   300,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/cache"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/render"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default container width in points.
	DefaultWidth = 300.0

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Columns int     `json:"columns,omitempty"`
	Padding float64 `json:"padding"`
	Width   float64 `json:"width,omitempty"`
	Refresh bool    `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Runtime options (not serialized)
	Cells  []board.Player `json:"-"`
	Logger *log.Logger    `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the computed layout.
	Snapshot *waterfall.Snapshot

	// MetricsHash is the content hash of the captured metrics.
	MetricsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the snapshot came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "columns must not be negative, got %d", o.Columns)
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must not be negative, got %g", o.Padding)
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must not be negative, got %g", o.Width)
	}
	if o.Columns == 0 {
		o.Columns = waterfall.DefaultColumns
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// Params returns the layout parameters.
func (o *Options) Params() waterfall.Params {
	return waterfall.Params{
		Columns:        o.Columns,
		Padding:        o.Padding,
		ContainerWidth: o.Width,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Columns: o.Columns,
		Padding: o.Padding,
		Width:   o.Width,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Labels: o.Labels,
		Cells:  cellsKey(o.Cells),
	}
	if format == render.FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// RenderOptions returns the renderer options for this run.
func (o *Options) RenderOptions() []render.Option {
	opts := []render.Option{render.WithScale(o.Scale)}
	if len(o.Cells) > 0 {
		opts = append(opts, render.WithCells(o.Cells))
	}
	if o.Labels {
		opts = append(opts, render.WithLabels())
	}
	return opts
}

func cellsKey(cells []board.Player) string {
	if len(cells) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range cells {
		g := p.Glyph()
		if g == " " {
			g = "."
		}
		b.WriteString(g)
	}
	return b.String()
}
