// Package preview renders a beatmap to a PNG for quick visual inspection:
// time runs left to right, lanes stack top to bottom, and every note is a dot.
// Dense stream passages show up as solid runs, chords as vertical pairs.
package preview

import (
	"errors"

	"github.com/fogleman/gg"

	"github.com/bloomify/beatforge/pkg/beatmap"
)

// Options configures the rendered image.
type Options struct {
	Width  int // pixels, default 1200
	Height int // pixels, default 240
	Lanes  int // lane rows; default is the highest lane in the map + 1
}

func (o *Options) applyDefaults(m *beatmap.Beatmap) {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.Height <= 0 {
		o.Height = 240
	}
	if o.Lanes <= 0 {
		o.Lanes = 1
		for _, n := range m.Notes {
			if n.Lane+1 > o.Lanes {
				o.Lanes = n.Lane + 1
			}
		}
	}
}

// Render draws the beatmap onto a new drawing context.
func Render(m *beatmap.Beatmap, opts Options) (*gg.Context, error) {
	opts.applyDefaults(m)
	for _, n := range m.Notes {
		if n.Lane >= opts.Lanes {
			return nil, errors.New("preview: note lane outside configured lane count")
		}
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetHexColor("#14161a")
	dc.Clear()

	laneHeight := float64(opts.Height) / float64(opts.Lanes)

	// Lane divider lines.
	dc.SetHexColor("#2c313a")
	dc.SetLineWidth(1)
	for i := 1; i < opts.Lanes; i++ {
		y := float64(i) * laneHeight
		dc.DrawLine(0, y, float64(opts.Width), y)
		dc.Stroke()
	}

	if len(m.Notes) == 0 {
		return dc, nil
	}

	span := m.Notes[len(m.Notes)-1].TimeMS
	if m.SongLengthMS != nil && *m.SongLengthMS > span {
		span = *m.SongLengthMS
	}
	if span == 0 {
		span = 1
	}

	radius := laneHeight * 0.22
	dc.SetHexColor("#00ff9f")
	for _, n := range m.Notes {
		x := float64(n.TimeMS) / float64(span) * float64(opts.Width)
		y := (float64(n.Lane) + 0.5) * laneHeight
		dc.DrawCircle(x, y, radius)
		dc.Fill()
	}
	return dc, nil
}

// WritePNG renders the beatmap and saves it to path.
func WritePNG(path string, m *beatmap.Beatmap, opts Options) error {
	dc, err := Render(m, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}
