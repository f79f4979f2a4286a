package render

import (
	"encoding/json"

	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

type jsonOutput struct {
	Generation uint64       `json:"generation,omitempty"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Columns    int          `json:"columns"`
	Padding    float64      `json:"padding"`
	Viewport   *jsonRect    `json:"viewport,omitempty"`
	Records    []jsonRecord `json:"records"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonRecord struct {
	Kind         string  `json:"kind"`
	Section      int     `json:"section"`
	Item         int     `json:"item"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	CustomHeight float64 `json:"custom_height,omitempty"`
	Player       string  `json:"player,omitempty"`
}

// RenderJSON emits the records (or the viewport's records) with the
// content size and layout parameters.
func RenderJSON(s *waterfall.Snapshot, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	records, area := o.frame(s)

	out := jsonOutput{
		Generation: s.Generation,
		Width:      s.ContentWidth,
		Height:     s.ContentHeight,
		Columns:    s.Params.Columns,
		Padding:    s.Params.Padding,
		Records:    make([]jsonRecord, 0, len(records)),
	}
	if o.viewport != nil {
		out.Viewport = &jsonRect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height}
	}

	for _, r := range records {
		rec := jsonRecord{
			Kind:         r.Kind.String(),
			Section:      r.Location.Section,
			Item:         r.Location.Item,
			X:            r.Frame.X,
			Y:            r.Frame.Y,
			Width:        r.Frame.Width,
			Height:       r.Frame.Height,
			CustomHeight: r.CustomHeight,
		}
		if len(o.cells) > 0 && r.Kind == waterfall.KindCell {
			rec.Player = o.player(r).String()
		}
		out.Records = append(out.Records, rec)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "render json")
	}
	return data, nil
}
