package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

const svgStyle = `
    .cell { fill: #fafafa; stroke: #333; stroke-width: 1; }
    .header, .footer { fill: #e8eef7; stroke: #8aa; stroke-width: 1; }
    .mark { fill: none; stroke-width: 3; stroke-linecap: round; }
    .one { stroke: #c0392b; }
    .two { stroke: #2471a3; }
    .label { font: 10px sans-serif; fill: #666; }`

// RenderSVG draws the snapshot as an SVG document sized to the content (or
// viewport).
func RenderSVG(s *waterfall.Snapshot, opts ...Option) []byte {
	o := newOptions(opts...)
	records, area := o.frame(s)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		area.X, area.Y, area.Width, area.Height, area.Width, area.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)

	for _, r := range records {
		renderSVGRecord(&buf, r, o.player(r), o.labels)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGRecord(buf *bytes.Buffer, r waterfall.Record, p board.Player, labels bool) {
	f := r.Frame
	fmt.Fprintf(buf, `  <rect id="%s-%s" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		r.Kind, r.Location, r.Kind, f.X, f.Y, f.Width, f.Height)

	switch p {
	case board.One:
		x0, y0, x1, y1 := markBox(f)
		fmt.Fprintf(buf, `  <path class="mark one" d="M%.2f %.2f L%.2f %.2f M%.2f %.2f L%.2f %.2f"/>`+"\n",
			x0, y0, x1, y1, x1, y0, x0, y1)
	case board.Two:
		x0, y0, x1, y1 := markBox(f)
		fmt.Fprintf(buf, `  <circle class="mark two" cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n",
			(x0+x1)/2, (y0+y1)/2, (x1-x0)/2)
	}

	if labels {
		fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f">%s</text>`+"\n",
			f.X+3, f.Y+12, html.EscapeString(r.Kind.String()+" "+r.Location.String()))
	}
}

// markBox returns the square, inset by a fifth, that a mark is drawn in.
func markBox(f waterfall.Rect) (x0, y0, x1, y1 float64) {
	side := min(f.Width, f.Height) * 0.6
	cx, cy := f.X+f.Width/2, f.Y+f.Height/2
	return cx - side/2, cy - side/2, cx + side/2, cy + side/2
}
