package effects

import (
	"github.com/opd-ai/motrack/colorspace"
	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/region"
)

// Crosshair geometry: each arm is crossArm pixels long and starts
// crossGap pixels from the center.
const (
	crossArm = 10
	crossGap = 4
)

// Box draws the four edges of r in c.
func Box(f *frame.Frame, r region.Rect, c colorspace.YUV) {
	r = r.Canon()
	for x := r.X1; x <= r.X2; x++ {
		f.Plot(x, r.Y1, c)
		f.Plot(x, r.Y2, c)
	}
	for y := r.Y1; y <= r.Y2; y++ {
		f.Plot(r.X1, y, c)
		f.Plot(r.X2, y, c)
	}
}

// Crosshairs draws four short arms around p, leaving the center open.
func Crosshairs(f *frame.Frame, p region.Point, c colorspace.YUV) {
	for i := crossGap; i < crossGap+crossArm; i++ {
		f.Plot(p.X-i, p.Y, c)
		f.Plot(p.X+i, p.Y, c)
		f.Plot(p.X, p.Y-i, c)
		f.Plot(p.X, p.Y+i, c)
	}
}

// Colorize replaces the chroma of every pixel in r that matches any of
// m's reference colors with the chroma of c. Luma is kept.
func Colorize(f *frame.Frame, r region.Rect, m *colorspace.Matcher, c colorspace.YUV) {
	r = r.Canon()
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if !f.Contains(x, y) || !m.MatchAny(f.Sample(x, y)) {
				continue
			}
			f.SetPixel(1, x, y, c[1])
			f.SetPixel(2, x, y, c[2])
		}
	}
}
