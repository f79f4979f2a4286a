package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// Terminal characters are roughly twice as tall as they are wide.
const charAspect = 2

type class uint8

const (
	classBlank class = iota
	classBorder
	classSupplementary
	classOne
	classTwo
	classFocus
)

// TextStyles colors the terminal grid.
type TextStyles struct {
	Border        lipgloss.Style
	Supplementary lipgloss.Style
	One           lipgloss.Style
	Two           lipgloss.Style
	Focus         lipgloss.Style
}

// DefaultTextStyles returns the styles used by [RenderText].
func DefaultTextStyles() TextStyles {
	return TextStyles{
		Border:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Supplementary: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		One:           lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Two:           lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Focus:         lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}

func (s *TextStyles) style(c class) (lipgloss.Style, bool) {
	if s == nil {
		return lipgloss.Style{}, false
	}
	switch c {
	case classBorder:
		return s.Border, true
	case classSupplementary:
		return s.Supplementary, true
	case classOne:
		return s.One, true
	case classTwo:
		return s.Two, true
	case classFocus:
		return s.Focus, true
	}
	return lipgloss.Style{}, false
}

// grid is a character raster of the drawing area.
type grid struct {
	runes   [][]rune
	classes [][]class
	unit    float64 // points per column
	origin  waterfall.Rect
}

func newGrid(area waterfall.Rect, columns int) *grid {
	unit := area.Width / float64(columns)
	if unit <= 0 {
		unit = 1
	}
	rows := int(math.Ceil(area.Height / (unit * charAspect)))
	g := &grid{unit: unit, origin: area}
	g.runes = make([][]rune, rows)
	g.classes = make([][]class, rows)
	for i := range g.runes {
		g.runes[i] = []rune(strings.Repeat(" ", columns))
		g.classes[i] = make([]class, columns)
	}
	return g
}

func (g *grid) set(row, col int, r rune, c class) {
	if row < 0 || row >= len(g.runes) || col < 0 || col >= len(g.runes[row]) {
		return
	}
	g.runes[row][col] = r
	g.classes[row][col] = c
}

// cells converts a frame to inclusive grid coordinates.
func (g *grid) cells(f waterfall.Rect) (r0, c0, r1, c1 int) {
	c0 = int(math.Floor((f.X - g.origin.X) / g.unit))
	c1 = int(math.Ceil((f.MaxX()-g.origin.X)/g.unit)) - 1
	r0 = int(math.Floor((f.Y - g.origin.Y) / (g.unit * charAspect)))
	r1 = int(math.Ceil((f.MaxY()-g.origin.Y)/(g.unit*charAspect))) - 1
	return r0, c0, max(r0, r1), max(c0, c1)
}

// Border glyphs: horizontal, vertical, then the four corners clockwise
// from the top left.
var (
	lightBorder = [6]rune{'─', '│', '┌', '┐', '┘', '└'}
	heavyBorder = [6]rune{'━', '┃', '┏', '┓', '┛', '┗'}
)

func (g *grid) box(f waterfall.Rect, border [6]rune, c class) {
	r0, c0, r1, c1 := g.cells(f)
	for col := c0 + 1; col < c1; col++ {
		g.set(r0, col, border[0], c)
		g.set(r1, col, border[0], c)
	}
	for row := r0 + 1; row < r1; row++ {
		g.set(row, c0, border[1], c)
		g.set(row, c1, border[1], c)
	}
	g.set(r0, c0, border[2], c)
	g.set(r0, c1, border[3], c)
	g.set(r1, c1, border[4], c)
	g.set(r1, c0, border[5], c)
}

func (g *grid) center(f waterfall.Rect, r rune, c class) {
	r0, c0, r1, c1 := g.cells(f)
	g.set((r0+r1)/2, (c0+c1)/2, r, c)
}

func (g *grid) String(styles *TextStyles) string {
	var b strings.Builder
	for i, row := range g.runes {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := strings.TrimRight(g.styleRow(row, g.classes[i], styles), " ")
		b.WriteString(line)
	}
	return b.String()
}

// styleRow renders runs of equally classed runes with one style each.
func (g *grid) styleRow(row []rune, classes []class, styles *TextStyles) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && classes[i] == classes[start] {
			continue
		}
		run := string(row[start:i])
		if st, ok := styles.style(classes[start]); ok {
			run = st.Render(run)
		}
		b.WriteString(run)
		start = i
	}
	return b.String()
}

// RenderText draws the snapshot as box characters on a grid
// [WithTextColumns] wide.
func RenderText(s *waterfall.Snapshot, opts ...Option) string {
	styles := DefaultTextStyles()
	return RenderTextStyled(s, &styles, opts...)
}

// RenderTextStyled is [RenderText] with explicit styles. A nil styles
// draws uncolored output.
func RenderTextStyled(s *waterfall.Snapshot, styles *TextStyles, opts ...Option) string {
	o := newOptions(opts...)
	records, area := o.frame(s)
	if area.Empty() {
		return ""
	}

	g := newGrid(area, o.columns)
	for _, r := range records {
		if r.Frame.Empty() {
			continue
		}
		if r.Kind != waterfall.KindCell {
			g.box(r.Frame, lightBorder, classSupplementary)
			continue
		}
		if o.focused(r) {
			g.box(r.Frame, heavyBorder, classFocus)
		} else {
			g.box(r.Frame, lightBorder, classBorder)
		}
		switch o.player(r) {
		case board.One:
			g.center(r.Frame, 'X', classOne)
		case board.Two:
			g.center(r.Frame, 'O', classTwo)
		}
	}
	return g.String(styles)
}
