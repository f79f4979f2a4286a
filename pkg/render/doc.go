// Package render draws a computed waterfall snapshot.
//
// # Overview
//
// Every renderer takes a [waterfall.Snapshot] and produces bytes in one
// output format:
//
//   - [RenderSVG]: vector image, one <rect> per record
//   - [RenderPNG]: raster image drawn with fogleman/gg
//   - [RenderJSON]: records and content size for other tools
//   - [RenderText]: a character grid for terminals, styled with lipgloss
//
// [Render] dispatches on a format name.
//
// # Cells
//
// Snapshots carry geometry only. Pass [WithCells] to draw each cell's
// occupant (a cross for player one, a circle for player two):
//
//	svg := render.RenderSVG(snap, render.WithCells(b.Cells()))
//
// # Viewports
//
// [WithViewport] restricts drawing to the records that intersect a
// rectangle and shifts the output so the viewport's origin is at (0,0). The
// terminal UI uses it to draw only what is on screen.
package render
