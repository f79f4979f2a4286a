package waterfall

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scorpionlabs/tictac/pkg/observability"
)

// Layout owns the current snapshot for a container and recomputes it lazily.
//
// A Layout is either valid (a published snapshot exists) or invalid. Queries on
// an invalid layout run [Compute] once and publish the result; queries on a
// valid layout reuse it. Recompute and invalidation are serialized by a mutex,
// and the published snapshot is swapped atomically so readers never see a
// partially built generation.
type Layout struct {
	mu      sync.Mutex
	metrics MetricsProvider
	columns int
	padding float64
	bounds  Size
	logger  *log.Logger

	generation uint64
	current    atomic.Pointer[Snapshot]
}

// Option configures a [Layout].
type Option func(*Layout)

// WithColumns sets the column count (default 2).
func WithColumns(n int) Option { return func(l *Layout) { l.columns = n } }

// WithPadding sets the cell padding (default 1).
func WithPadding(p float64) Option { return func(l *Layout) { l.padding = p } }

// WithBounds sets the initial container bounds.
func WithBounds(s Size) Option { return func(l *Layout) { l.bounds = s } }

// WithLogger sets the logger used for debug output.
func WithLogger(lg *log.Logger) Option { return func(l *Layout) { l.logger = lg } }

// New creates an invalid layout over m.
func New(m MetricsProvider, opts ...Option) *Layout {
	l := &Layout{
		metrics: m,
		columns: DefaultColumns,
		padding: DefaultPadding,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return l
}

// Valid reports whether a snapshot is currently published.
func (l *Layout) Valid() bool {
	return l.current.Load() != nil
}

// Generation returns the number of snapshots published so far.
func (l *Layout) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Bounds returns the recorded container bounds.
func (l *Layout) Bounds() Size {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bounds
}

// Params returns the parameters the next pass would use.
func (l *Layout) Params() Params {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params()
}

func (l *Layout) params() Params {
	return Params{
		Columns:        l.columns,
		Padding:        l.padding,
		ContainerWidth: l.bounds.Width,
	}
}

// Invalidate discards the current snapshot. The next query recomputes.
func (l *Layout) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invalidate("explicit")
}

func (l *Layout) invalidate(reason string) {
	l.current.Store(nil)
	l.logger.Debug("layout invalidated", "reason", reason)
	observability.Layout().OnInvalidate(reason)
}

// SetBounds records new container bounds. If either dimension differs from
// the recorded bounds the layout is invalidated and SetBounds returns true.
// Only the width feeds the column math, but a height change also invalidates.
func (l *Layout) SetBounds(s Size) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s == l.bounds {
		return false
	}
	l.bounds = s
	l.invalidate("bounds")
	return true
}

// SetColumns changes the column count. It takes effect on the next pass.
func (l *Layout) SetColumns(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n == l.columns {
		return
	}
	l.columns = n
	l.invalidate("columns")
}

// SetPadding changes the cell padding. It takes effect on the next pass.
func (l *Layout) SetPadding(p float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p == l.padding {
		return
	}
	l.padding = p
	l.invalidate("padding")
}

// SetMetrics replaces the metrics provider and invalidates the layout.
func (l *Layout) SetMetrics(m MetricsProvider) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.metrics = m
	l.invalidate("metrics")
}

// Snapshot returns the current snapshot, computing one if the layout is
// invalid.
func (l *Layout) Snapshot() *Snapshot {
	if s := l.current.Load(); s != nil {
		return s
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another caller may have published while we waited.
	if s := l.current.Load(); s != nil {
		return s
	}

	start := time.Now()
	s := Compute(l.metrics, l.params())
	l.generation++
	s.Generation = l.generation
	l.current.Store(s)

	elapsed := time.Since(start)
	l.logger.Debug("layout computed",
		"generation", s.Generation,
		"records", len(s.Records),
		"content_height", s.ContentHeight,
		"duration", elapsed)
	observability.Layout().OnCompute(s.Generation, len(s.Records), elapsed)

	return s
}

// Prepare computes the layout if it is invalid. It is Snapshot without the
// result, for callers that want the work done ahead of a query.
func (l *Layout) Prepare() {
	l.Snapshot()
}

// ContentSize returns the scrollable content size.
func (l *Layout) ContentSize() Size {
	return l.Snapshot().ContentSize()
}

// RecordsVisibleIn returns the records that intersect rect.
func (l *Layout) RecordsVisibleIn(rect Rect) []Record {
	return l.Snapshot().Query(rect)
}
