package effects

import (
	"github.com/opd-ai/motrack/colorspace"
	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/region"
)

const (
	// edgeHigh marks a pixel on its own.
	edgeHigh = 40
	// edgeLow marks a pixel next to an already marked one.
	edgeLow = 20
	// outlineLimit caps the number of silhouette points per call.
	outlineLimit = 5000
)

// Blur replaces each pixel of r with the mean of eight samples taken at
// +-size/2 diagonally and +-size/4 along the axes. Pixels closer than
// size/2 to the frame edge are left alone. Rows are processed bottom-up
// in place, so later rows see already blurred neighbors.
func Blur(f *frame.Frame, r region.Rect, size int) {
	if size < 1 {
		return
	}
	r = r.Canon()
	s := size / 2
	u := s / 2
	w, h := f.Width(), f.Height()

	for y := r.Y2; y >= r.Y1; y-- {
		if y < s || y >= h-s {
			continue
		}
		for x := r.X2; x >= r.X1; x-- {
			if x < s || x >= w-s {
				continue
			}
			for k := 0; k < f.Planes(); k++ {
				t := int(f.Pixel(k, x-s, y-s))
				t += int(f.Pixel(k, x+s, y-s))
				t += int(f.Pixel(k, x-s, y+s))
				t += int(f.Pixel(k, x+s, y+s))
				t += int(f.Pixel(k, x-u, y))
				t += int(f.Pixel(k, x+u, y))
				t += int(f.Pixel(k, x, y-u))
				t += int(f.Pixel(k, x, y+u))
				f.SetPixel(k, x, y, byte(t>>3))
			}
		}
	}
}

// Decimate pixelates r: every size x size block anchored at the
// bottom-right corner of r is filled with the color of its top-left pixel.
// Partial blocks along the top and left edges are left alone.
func Decimate(f *frame.Frame, r region.Rect, size int) {
	if size < 1 {
		return
	}
	r = r.Canon()

	for y := r.Y2 - size + 1; y >= r.Y1; y -= size {
		for x := r.X2 - size + 1; x >= r.X1; x -= size {
			c := f.Sample(x, y)
			for yy := 0; yy < size; yy++ {
				for xx := 0; xx < size; xx++ {
					f.Plot(x+xx, y+yy, c)
				}
			}
		}
	}
}

// Edge marks luma edges in r, widened by four pixels, with c. A pixel is
// marked when a three-tap vertical or horizontal difference exceeds
// edgeHigh, or exceeds edgeLow while a neighbor in the row below or the
// previous pixel was marked.
func Edge(f *frame.Frame, r region.Rect, c colorspace.YUV) {
	r = r.Canon()
	w, h := f.Width(), f.Height()
	xs, ys := min(r.X2+4, w-2), min(r.Y2+4, h-2)
	xe, ye := max(r.X1-4, 1), max(r.Y1-4, 1)

	trail := false
	for y := ys; y > ye; y-- {
		for x := xs; x > xe; x-- {
			vt, vv, ht, hv := 0, 0, 0, 0
			for i := 0; i < 3; i++ {
				vt += int(f.Pixel(0, x-1, y-i))
				vv += int(f.Pixel(0, x-2, y-i))
				ht += int(f.Pixel(0, x-i, y-1))
				hv += int(f.Pixel(0, x-i, y-2))
			}
			mark := exceeds(vt-vv, trail) || exceeds(ht-hv, trail)

			if mark {
				f.Plot(x, y, c)
			}
			trail = mark ||
				f.Pixel(0, x, y+1) == c[0] ||
				f.Pixel(0, x-1, y+1) == c[0] ||
				f.Pixel(0, x+1, y+1) == c[0]
		}
	}
}

func exceeds(diff int, trail bool) bool {
	if diff < 0 {
		diff = -diff
	}
	return diff > edgeHigh || (trail && diff > edgeLow)
}

// Outline draws the silhouette of the matching color inside r, widened by
// two pixels. Rows are sampled every second pixel; a point is recorded
// where the match state differs from the previous sample in the row or
// from the pixel above. Each point is drawn two pixels wide.
func Outline(f *frame.Frame, r region.Rect, m *colorspace.Matcher, c colorspace.YUV) {
	r = r.Canon()
	w, h := f.Width(), f.Height()
	xs, ys := min(r.X2+2, w-1), min(r.Y2+2, h-1)
	xe, ye := max(r.X1-2, 0), max(r.Y1-2, 0)

	matches := func(x, y int) bool {
		return m.MatchAny(f.Sample(x, y))
	}

	points := make([]region.Point, 0, 256)
scan:
	for y := ys; y > ye; y-- {
		prev := false
		for x := xs; x > xe; x -= 2 {
			match := matches(x, y)
			if match != prev || match != matches(x, y-1) {
				points = append(points, region.Point{X: x, Y: y})
				if len(points) == outlineLimit {
					break scan
				}
			}
			prev = match
		}
	}

	for _, p := range points {
		f.Plot(p.X, p.Y, c)
		f.Plot(p.X-1, p.Y, c)
	}
}
