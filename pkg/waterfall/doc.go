// Package waterfall computes multi-column waterfall (masonry) layouts.
//
// # Overview
//
// Items with data-dependent heights are packed into a fixed number of
// equal-width columns. Each item goes to the column that is currently the
// shortest, which keeps the tallest column close to the shortest one without
// any lookahead. Sections may carry a header and a footer that span the full
// content width and are centered horizontally.
//
// The package is split into small pieces:
//
//   - [MetricsProvider]: supplies section counts, header/footer sizes and
//     per-item heights. [StaticMetrics] is a data-driven implementation.
//   - [Columns]: running fill level of each column.
//   - [Compute]: one full layout pass producing an immutable [Snapshot].
//   - [Snapshot.Query]: records intersecting a viewport rectangle.
//   - [Layout]: owns the current snapshot and decides when to recompute.
//
// # Building a Layout
//
//	l := waterfall.New(metrics,
//	    waterfall.WithColumns(2),
//	    waterfall.WithPadding(1),
//	    waterfall.WithBounds(waterfall.Size{Width: 300, Height: 600}),
//	)
//	size := l.ContentSize()
//	visible := l.RecordsVisibleIn(waterfall.Rect{Y: 0, Width: 300, Height: 600})
//
// # Geometry
//
// Coordinates have their origin at the top-left and Y grows downward. Every
// cell occupies an outer frame of columnWidth × (2·padding + naturalHeight);
// the stored frame is that outer frame inset by padding on every side, which
// leaves gutters between neighbouring cells.
//
// # Invalidation
//
// A [Layout] starts invalid. The first query runs [Compute] and publishes the
// result; later queries reuse it until [Layout.Invalidate] is called, the
// configuration changes, or the container bounds change in either dimension.
//
// # Concurrency
//
// Snapshots are never mutated after publication. [Layout] swaps them through
// an atomic pointer, so readers holding a snapshot are unaffected by a
// concurrent recompute.
package waterfall
