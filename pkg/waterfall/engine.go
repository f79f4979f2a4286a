package waterfall

// Default configuration values.
const (
	DefaultColumns = 2
	DefaultPadding = 1.0
)

// Params are the inputs of one layout pass besides the metrics.
type Params struct {
	Columns        int     `json:"columns"`
	Padding        float64 `json:"padding"`
	ContainerWidth float64 `json:"container_width"`
}

// ColumnWidth returns the width of one column including its gutters.
func (p Params) ColumnWidth() float64 {
	return p.ContainerWidth / float64(max(p.Columns, 1))
}

// CellWidth returns the width available to a cell's content. It is not
// clamped and may be zero or negative when padding exceeds the column width.
func (p Params) CellWidth() float64 {
	return p.ColumnWidth() - 2*p.Padding
}

// Compute runs a full layout pass and returns a new snapshot.
//
// Sections are laid out top to bottom. A section's header is placed at the
// current content height, then every column restarts from the header's bottom
// edge so the section's items stack from there. Each item goes to the
// shortest column. The footer follows the bottom of the tallest column.
//
// Compute never fails. Negative sizes from the provider produce degenerate
// geometry rather than an error, and fewer than one column counts as one.
func Compute(m MetricsProvider, p Params) *Snapshot {
	p.Columns = max(p.Columns, 1)

	columnWidth := p.ColumnWidth()
	cellWidth := p.CellWidth()
	contentWidth := p.ContainerWidth

	xOffsets := make([]float64, p.Columns)
	for c := range xOffsets {
		xOffsets[c] = float64(c) * columnWidth
	}

	var (
		records       []Record
		contentHeight float64
		cols          = NewColumns(p.Columns)
	)

	for section := 0; section < m.SectionCount(); section++ {
		if size, ok := m.HeaderSize(section); ok {
			frame := Rect{
				X:      (contentWidth - size.Width) / 2,
				Y:      contentHeight,
				Width:  size.Width,
				Height: size.Height,
			}
			records = append(records, Record{
				Kind:     KindHeader,
				Location: Location{Section: section},
				Frame:    frame,
			})
			contentHeight = frame.MaxY()
		}

		cols.Reset(p.Columns, contentHeight)

		for item := 0; item < m.ItemCount(section); item++ {
			loc := Location{Section: section, Item: item}
			col := cols.Shortest()

			natural, ok := m.ItemHeight(loc, cellWidth)
			if !ok {
				natural = cellWidth
			}
			cellHeight := p.Padding + natural + p.Padding

			outer := Rect{
				X:      xOffsets[col],
				Y:      cols.Place(col, cellHeight),
				Width:  columnWidth,
				Height: cellHeight,
			}
			records = append(records, Record{
				Kind:         KindCell,
				Location:     loc,
				Frame:        outer.Inset(p.Padding, p.Padding),
				CustomHeight: natural,
			})
			contentHeight = max(contentHeight, outer.MaxY())
		}

		if size, ok := m.FooterSize(section); ok {
			frame := Rect{
				X:      (contentWidth - size.Width) / 2,
				Y:      contentHeight,
				Width:  size.Width,
				Height: size.Height,
			}
			records = append(records, Record{
				Kind:     KindFooter,
				Location: Location{Section: section},
				Frame:    frame,
			})
			contentHeight = frame.MaxY()
		}
	}

	return newSnapshot(p, records, contentWidth, contentHeight)
}
