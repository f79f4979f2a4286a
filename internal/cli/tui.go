package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/peer"
	"github.com/scorpionlabs/tictac/pkg/render"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// Board view styles
var (
	boardDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	boardStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	boardOneStyle    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	boardTwoStyle    = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
)

// Lines of the view that are not board: title, help, and status with
// their spacing.
const boardChrome = 5

// Size assumed before the first WindowSizeMsg.
const (
	defaultTermWidth  = 60
	defaultTermHeight = 24
)

// =============================================================================
// BoardModel - Interactive board
// =============================================================================

// moveMsg carries a move received from a peer.
type moveMsg peer.Move

// sentMsg reports the outcome of publishing a local move.
type sentMsg struct {
	index  int
	player board.Player
	err    error
}

// BoardModel is the bubbletea model for playing on a board.
//
// The board is drawn by the text renderer from the layout's current
// snapshot. Only the records inside the scrolled viewport are drawn.
type BoardModel struct {
	ctx      context.Context
	board    *board.Board
	layout   *waterfall.Layout
	session  *peer.Session    // nil plays offline
	incoming <-chan peer.Move // nil when offline

	Cursor int
	Scroll float64
	Width  int
	Height int
	Status string
}

// NewBoardModel creates a board model. Received moves are read from
// incoming until it closes.
func NewBoardModel(ctx context.Context, b *board.Board, l *waterfall.Layout, sess *peer.Session, incoming <-chan peer.Move) BoardModel {
	return BoardModel{
		ctx:      ctx,
		board:    b,
		layout:   l,
		session:  sess,
		incoming: incoming,
		Width:    defaultTermWidth,
		Height:   defaultTermHeight,
	}
}

func (m BoardModel) Init() tea.Cmd {
	return m.waitForMove()
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 8)
		m.Height = msg.Height
		bounds := m.layout.Bounds()
		m.layout.SetBounds(waterfall.Size{Width: bounds.Width, Height: m.viewHeight()})
		m.clampScroll()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveCursor(m.Cursor - 1)
		case "right", "l":
			m.moveCursor(m.Cursor + 1)
		case "up", "k":
			m.moveCursor(m.neighbor(-1))
		case "down", "j":
			m.moveCursor(m.neighbor(1))
		case "pgup":
			m.Scroll -= m.viewHeight()
			m.clampScroll()
		case "pgdown":
			m.Scroll += m.viewHeight()
			m.clampScroll()
		case "+", "=":
			m.layout.SetColumns(m.layout.Params().Columns + 1)
			m.follow()
		case "-":
			if n := m.layout.Params().Columns; n > 1 {
				m.layout.SetColumns(n - 1)
				m.follow()
			}
		case "r":
			m.board.Reset()
			m.Status = "board cleared"
		case "enter", " ", "space":
			return m, m.place()
		}

	case moveMsg:
		p, err := m.board.Tap(msg.Index)
		if err != nil {
			m.Status = fmt.Sprintf("ignored move from %s: %v", msg.Originator, err)
		} else {
			m.Status = fmt.Sprintf("%s placed %s on %d", msg.Originator, p.Glyph(), msg.Index)
		}
		return m, m.waitForMove()

	case sentMsg:
		if msg.err != nil {
			m.board.Untap(msg.index, msg.player)
			m.Status = fmt.Sprintf("move %d not delivered, taken back: %v", msg.index, msg.err)
		}
	}
	return m, nil
}

func (m BoardModel) View() string {
	var b strings.Builder

	title := StyleTitle.Render(appName)
	if m.session != nil {
		title += " " + boardDimStyle.Render(m.session.Name()+" @ "+m.session.Channel().Name())
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render("arrows: move  enter: place  +/-: columns  pgup/pgdn: scroll  r: reset  q: quit"))
	b.WriteString("\n\n")

	snap := m.layout.Snapshot()
	b.WriteString(render.RenderText(snap,
		render.WithCells(m.board.Cells()),
		render.WithViewport(m.viewport(snap)),
		render.WithTextColumns(m.Width),
		render.WithFocus(waterfall.Location{Item: m.Cursor}),
	))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())

	return b.String()
}

func (m BoardModel) statusLine() string {
	cells := m.board.Cells()
	placed := 0
	for _, p := range cells {
		if p != board.None {
			placed++
		}
	}

	next := m.board.Next()
	style := boardOneStyle
	if next == board.Two {
		style = boardTwoStyle
	}

	parts := []string{
		"next " + style.Render(next.Glyph()),
		fmt.Sprintf("%d/%d placed", placed, len(cells)),
		fmt.Sprintf("cell %d", m.Cursor),
	}
	if m.board.Full() {
		parts = append(parts, StyleSuccess.Render("board full"))
	}
	if m.Status != "" {
		parts = append(parts, m.Status)
	}
	return boardStatusStyle.Render(strings.Join(parts, " · "))
}

// =============================================================================
// Commands
// =============================================================================

func (m BoardModel) waitForMove() tea.Cmd {
	if m.incoming == nil {
		return nil
	}
	ch := m.incoming
	return func() tea.Msg {
		mv, ok := <-ch
		if !ok {
			return nil
		}
		return moveMsg(mv)
	}
}

// place taps the cell under the cursor and publishes the move.
func (m *BoardModel) place() tea.Cmd {
	p, err := m.board.Tap(m.Cursor)
	if err != nil {
		m.Status = err.Error()
		return nil
	}
	m.Status = fmt.Sprintf("placed %s on %d", p.Glyph(), m.Cursor)
	if m.session == nil {
		return nil
	}

	ctx, sess, index := m.ctx, m.session, m.Cursor
	return func() tea.Msg {
		return sentMsg{index: index, player: p, err: sess.SendWithRetry(ctx, peer.Move{Index: index})}
	}
}

// =============================================================================
// Geometry
// =============================================================================

// pointsPerColumn converts terminal columns to layout points.
func (m BoardModel) pointsPerColumn() float64 {
	w := m.layout.Bounds().Width
	if w <= 0 {
		w = m.layout.ContentSize().Width
	}
	return w / float64(max(m.Width, 1))
}

// viewHeight is the height in points of the rows available for the board.
func (m BoardModel) viewHeight() float64 {
	rows := max(m.Height-boardChrome, 3)
	return float64(rows) * m.pointsPerColumn() * 2
}

func (m BoardModel) viewport(snap *waterfall.Snapshot) waterfall.Rect {
	return waterfall.Rect{
		X:      0,
		Y:      m.Scroll,
		Width:  snap.ContentWidth,
		Height: m.viewHeight(),
	}
}

func (m *BoardModel) clampScroll() {
	limit := max(m.layout.ContentSize().Height-m.viewHeight(), 0)
	m.Scroll = math.Min(math.Max(m.Scroll, 0), limit)
}

func (m *BoardModel) moveCursor(i int) {
	if i < 0 || i >= m.board.Len() {
		return
	}
	m.Cursor = i
	m.follow()
}

// follow scrolls just enough to keep the cursor's cell in view.
func (m *BoardModel) follow() {
	snap := m.layout.Snapshot()
	r, ok := snap.Find(waterfall.KindCell, waterfall.Location{Item: m.Cursor})
	if !ok {
		return
	}
	pad := snap.Params.Padding
	view := m.viewHeight()
	switch {
	case r.Frame.Y-pad < m.Scroll:
		m.Scroll = r.Frame.Y - pad
	case r.Frame.MaxY()+pad > m.Scroll+view:
		m.Scroll = r.Frame.MaxY() + pad - view
	}
	m.clampScroll()
}

// neighbor returns the nearest cell above (dir < 0) or below (dir > 0) the
// cursor in the same column, or the cursor itself when there is none.
func (m BoardModel) neighbor(dir int) int {
	snap := m.layout.Snapshot()
	cur, ok := snap.Find(waterfall.KindCell, waterfall.Location{Item: m.Cursor})
	if !ok {
		return m.Cursor
	}

	best, bestDist := m.Cursor, math.Inf(1)
	for _, r := range snap.Records {
		if r.Kind != waterfall.KindCell || r.Location.Section != 0 {
			continue
		}
		if math.Abs(r.Frame.X-cur.Frame.X) > 0.5 {
			continue
		}
		d := (r.Frame.Y - cur.Frame.Y) * float64(dir)
		if d > 0 && d < bestDist {
			best, bestDist = r.Location.Item, d
		}
	}
	return best
}
