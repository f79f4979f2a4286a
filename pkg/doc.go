// Package pkg provides the core libraries for tictac board layout and play.
//
// # Overview
//
// tictac lays out the cells of a game board as a multi-column waterfall:
// every cell drops into the currently shortest column, sections restart the
// columns below their header, and the resulting frames can be queried by
// viewport, rendered, served over HTTP, and played on with peers.
//
// # Architecture
//
// The typical data flow:
//
//	Config file / flags
//	         ↓
//	    [board] package (cells and their layout metrics)
//	         ↓
//	    [waterfall] package (column packing + spatial queries)
//	         ↓
//	    [render] package (SVG/PNG/JSON/text)
//
// Moves travel between players through [peer], and the [api] package serves
// a live layout over HTTP.
//
// # Quick Start
//
// Lay out a board and render it:
//
//	import (
//	    "github.com/scorpionlabs/tictac/pkg/board"
//	    "github.com/scorpionlabs/tictac/pkg/render"
//	    "github.com/scorpionlabs/tictac/pkg/waterfall"
//	)
//
//	b := board.New(9)
//	l := waterfall.New(b,
//	    waterfall.WithColumns(3),
//	    waterfall.WithBounds(waterfall.Size{Width: 300, Height: 600}),
//	)
//
//	// Records visible in the top 150 points
//	visible := l.RecordsVisibleIn(waterfall.Rect{Width: 300, Height: 150})
//
//	// Draw the whole board
//	svg, err := render.Render(l.Snapshot(), render.FormatSVG,
//	    render.WithCells(b.Cells()))
//
// # Main Packages
//
// ## Layout
//
// [waterfall] - Geometry, the layout engine, immutable snapshots with
// strict-intersection queries, and the invalidation controller that caches
// the current snapshot until bounds or parameters change.
//
// [board] - The game board. Each cell holds a player; the board is its own
// metrics provider with square cells and an optional header and footer.
//
// ## Output
//
// [render] - Output formats for a snapshot: SVG, PNG (via gg), a JSON
// description of every record, and a box-drawing terminal grid.
//
// [pipeline] - Cache-first layout and render stages shared by the CLI and
// the API.
//
// ## Infrastructure
//
// [cache] - Key-value cache for layouts and artifacts. File, Redis, MongoDB,
// and null backends, plus scoped keys.
//
// [config] - TOML configuration with defaults and validation.
//
// [peer] - Move exchange over an in-process hub or Redis pub/sub.
//
// [api] - HTTP API built on chi.
//
// [errors] - Coded errors, retry helpers, and input validation.
//
// [observability] - Hooks for layout, cache, and peer events.
//
// [buildinfo] - Version information set at build time.
package pkg
