package config

import (
	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// NewBoard builds an empty board from the [board] table. Header and footer
// span the layout width.
func (c Config) NewBoard() *board.Board {
	var opts []board.Option
	if c.Board.Header > 0 {
		opts = append(opts, board.WithHeader(waterfall.Size{Width: c.Layout.Width, Height: c.Board.Header}))
	}
	if c.Board.Footer > 0 {
		opts = append(opts, board.WithFooter(waterfall.Size{Width: c.Layout.Width, Height: c.Board.Footer}))
	}
	return board.New(c.Board.Cells, opts...)
}

// Metrics returns the layout input described by the file: the explicit
// sections if any are given, otherwise an empty board.
func (c Config) Metrics() waterfall.MetricsProvider {
	if len(c.Sections) == 0 {
		return c.NewBoard()
	}
	return c.StaticMetrics()
}

// StaticMetrics converts the explicit sections.
func (c Config) StaticMetrics() waterfall.StaticMetrics {
	var m waterfall.StaticMetrics
	for _, s := range c.Sections {
		sec := waterfall.Section{
			Header:  pairSize(s.Header),
			Footer:  pairSize(s.Footer),
			Heights: make([]*float64, len(s.Heights)),
		}
		for i, h := range s.Heights {
			if h > 0 {
				sec.Heights[i] = &h
			}
		}
		m.Sections = append(m.Sections, sec)
	}
	return m
}

// LayoutOptions returns the options for [waterfall.New].
func (c Config) LayoutOptions() []waterfall.Option {
	return []waterfall.Option{
		waterfall.WithColumns(c.Layout.Columns),
		waterfall.WithPadding(c.Layout.Padding),
		waterfall.WithBounds(c.Bounds()),
	}
}

// Bounds returns the container size.
func (c Config) Bounds() waterfall.Size {
	return waterfall.Size{Width: c.Layout.Width, Height: c.Layout.Height}
}

func pairSize(pair []float64) *waterfall.Size {
	if len(pair) != 2 {
		return nil
	}
	return &waterfall.Size{Width: pair[0], Height: pair[1]}
}
