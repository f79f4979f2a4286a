package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// maxPNGSide bounds either image dimension in pixels.
const maxPNGSide = 16384

// RenderPNG rasterizes the snapshot at the configured scale.
func RenderPNG(s *waterfall.Snapshot, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	records, area := o.frame(s)

	w := int(math.Ceil(area.Width * o.scale))
	h := int(math.Ceil(area.Height * o.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render png: empty area %v", area)
	}
	if w > maxPNGSide || h > maxPNGSide {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render png: %dx%d exceeds %d pixels", w, h, maxPNGSide)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(o.scale, o.scale)
	dc.Translate(-area.X, -area.Y)

	for _, r := range records {
		drawPNGRecord(dc, r, o.player(r), o.labels)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawPNGRecord(dc *gg.Context, r waterfall.Record, p board.Player, labels bool) {
	f := r.Frame
	if f.Empty() {
		return
	}

	if r.Kind == waterfall.KindCell {
		dc.SetRGB(0.98, 0.98, 0.98)
	} else {
		dc.SetRGB(0.91, 0.93, 0.97)
	}
	dc.DrawRectangle(f.X, f.Y, f.Width, f.Height)
	dc.FillPreserve()
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1)
	dc.Stroke()

	x0, y0, x1, y1 := markBox(f)
	dc.SetLineWidth(3)
	switch p {
	case board.One:
		dc.SetRGB(0.75, 0.22, 0.17)
		dc.DrawLine(x0, y0, x1, y1)
		dc.DrawLine(x1, y0, x0, y1)
		dc.Stroke()
	case board.Two:
		dc.SetRGB(0.14, 0.44, 0.64)
		dc.DrawCircle((x0+x1)/2, (y0+y1)/2, (x1-x0)/2)
		dc.Stroke()
	}

	// gg's built-in face is a 7x13 bitmap font.
	if labels {
		dc.SetRGB(0.4, 0.4, 0.4)
		dc.DrawString(r.Kind.String()+" "+r.Location.String(), f.X+3, f.Y+12)
	}
}
