// Package board models the grid of cells a game is played on.
//
// A [Board] holds one [Player] per cell and doubles as the
// [waterfall.MetricsProvider] for its own layout: one section whose items are
// the cells, with an optional header and footer. Cells have no natural
// height, so the layout engine makes them square.
//
// The board carries no game rules. It rejects taps on occupied cells and
// alternates the local marker between [One] and [Two], nothing more.
package board

import (
	"sync"

	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// DefaultCells is the size of a classic 3×3 board.
const DefaultCells = 9

// Board is a fixed-size grid of cells. It is safe for concurrent use.
type Board struct {
	mu     sync.RWMutex
	cells  []Player
	next   Player
	header *waterfall.Size
	footer *waterfall.Size
}

// Option configures a [Board].
type Option func(*Board)

// WithHeader adds a section header of the given size above the cells.
func WithHeader(s waterfall.Size) Option {
	return func(b *Board) { b.header = &s }
}

// WithFooter adds a section footer of the given size below the cells.
func WithFooter(s waterfall.Size) Option {
	return func(b *Board) { b.footer = &s }
}

// New creates an empty board with n cells. n < 1 uses [DefaultCells].
func New(n int, opts ...Option) *Board {
	if n < 1 {
		n = DefaultCells
	}
	b := &Board{
		cells: make([]Player, n),
		next:  One,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// At returns the occupant of cell i.
func (b *Board) At(i int) (Player, error) {
	if err := b.checkIndex(i); err != nil {
		return None, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cells[i], nil
}

// Cells returns a copy of every cell's occupant.
func (b *Board) Cells() []Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Player, len(b.cells))
	copy(out, b.cells)
	return out
}

// Next returns the marker the next local tap will place.
func (b *Board) Next() Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.next
}

// Tap places the local marker on cell i and flips the marker for the next
// tap. Tapping an occupied cell leaves the board unchanged and returns an
// INVALID_INPUT error.
func (b *Board) Tap(i int) (Player, error) {
	if err := b.checkIndex(i); err != nil {
		return None, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cells[i] != None {
		return None, errors.New(errors.ErrCodeInvalidInput, "cell %d is occupied by %s", i, b.cells[i])
	}
	p := b.next
	b.cells[i] = p
	b.next = p.Other()
	return p, nil
}

// Mark places p on cell i without touching the local marker. It is used for
// moves received from a peer.
func (b *Board) Mark(i int, p Player) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	if p != One && p != Two {
		return errors.New(errors.ErrCodeInvalidInput, "cannot mark cell %d with %s", i, p)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cells[i] != None {
		return errors.New(errors.ErrCodeInvalidInput, "cell %d is occupied by %s", i, b.cells[i])
	}
	b.cells[i] = p
	return nil
}

// Untap reverses a Tap of cell i that placed p. The cell is emptied and p
// becomes the next local marker again. Nothing changes if cell i no longer
// holds p. It reports whether the cell was cleared.
func (b *Board) Untap(i int, p Player) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.unmark(i, p) {
		return false
	}
	b.next = p
	return true
}

// Unmark reverses a Mark of cell i with p. Nothing changes if cell i no
// longer holds p.
func (b *Board) Unmark(i int, p Player) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unmark(i, p)
}

func (b *Board) unmark(i int, p Player) bool {
	if i < 0 || i >= len(b.cells) || p == None || b.cells[i] != p {
		return false
	}
	b.cells[i] = None
	return true
}

// Reset clears every cell and restores the first marker.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.cells)
	b.next = One
}

// Full reports whether every cell is occupied.
func (b *Board) Full() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, p := range b.cells {
		if p == None {
			return false
		}
	}
	return true
}

func (b *Board) checkIndex(i int) error {
	if i < 0 || i >= len(b.cells) {
		return errors.New(errors.ErrCodeInvalidInput, "cell index %d out of range [0, %d)", i, len(b.cells))
	}
	return nil
}

// =============================================================================
// Layout Metrics
// =============================================================================

func (b *Board) SectionCount() int { return 1 }

func (b *Board) ItemCount(section int) int {
	if section != 0 {
		return 0
	}
	return len(b.cells)
}

func (b *Board) HeaderSize(section int) (waterfall.Size, bool) {
	if section != 0 || b.header == nil {
		return waterfall.Size{}, false
	}
	return *b.header, true
}

func (b *Board) FooterSize(section int) (waterfall.Size, bool) {
	if section != 0 || b.footer == nil {
		return waterfall.Size{}, false
	}
	return *b.footer, true
}

// ItemHeight reports no natural height so every cell is square.
func (b *Board) ItemHeight(waterfall.Location, float64) (float64, bool) {
	return 0, false
}

var _ waterfall.MetricsProvider = (*Board)(nil)
