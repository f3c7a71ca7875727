package effects

import (
	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/region"
)

// Cloak hides r by mirroring the columns just outside its left and right
// edges inward. When the rectangle is within half its width of a side of
// the frame, rows are instead copied from one rectangle height above, or
// below, the row being filled.
func Cloak(f *frame.Frame, r region.Rect) {
	r = r.Canon()
	w, h := f.Width(), f.Height()
	half := r.Width()/2 + 1
	span := r.Height() + 1
	wrap := r.X1 < half || r.X2 > w-1-half

	for y := r.Y2; y >= r.Y1; y-- {
		sy := y
		if wrap {
			switch {
			case y >= span:
				sy = y - span
			case y+span < h:
				sy = y + span
			}
		}
		for x := half - 1; x >= 0; x-- {
			for k := 0; k < f.Planes(); k++ {
				var right, left byte
				if wrap {
					right = f.Pixel(k, r.X2-x, sy)
					left = f.Pixel(k, r.X1+x, sy)
				} else {
					right = f.Pixel(k, r.X2+1+x, y)
					left = f.Pixel(k, r.X1-1-x, y)
				}
				f.SetPixel(k, r.X2-x, y, right)
				f.SetPixel(k, r.X1+x, y, left)
			}
		}
	}
}

// Erase fills r with the rows one rectangle height above it, or below it
// when there is no room above. Rows with neither fall back to half the
// rectangle height and are otherwise left unchanged.
func Erase(f *frame.Frame, r region.Rect) {
	r = r.Canon()
	h := f.Height()
	span := r.Height() + 1
	half := span / 2

	for y := r.Y1; y <= r.Y2; y++ {
		sy := -1
		switch {
		case y-span >= 0:
			sy = y - span
		case y+span < h:
			sy = y + span
		case half > 0 && y-half >= 0:
			sy = y - half
		case half > 0 && y+half < h:
			sy = y + half
		}
		if sy < 0 {
			continue
		}
		for x := r.X1; x <= r.X2; x++ {
			f.Plot(x, y, f.Sample(x, sy))
		}
	}
}
