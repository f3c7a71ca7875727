package region

import (
	"github.com/opd-ai/motrack/colorspace"
	"github.com/opd-ai/motrack/frame"
)

// DefaultRayStep is the coarse step used by rays before they refine to
// single pixels.
const DefaultRayStep = 8

// Prober measures color patches in one frame. It holds no state besides
// its inputs and is cheap to create per frame.
type Prober struct {
	frame   *frame.Frame
	matcher *colorspace.Matcher
	step    int
}

// NewProber returns a prober over f. A step of zero or less selects
// DefaultRayStep.
func NewProber(f *frame.Frame, m *colorspace.Matcher, step int) *Prober {
	if step <= 0 {
		step = DefaultRayStep
	}
	return &Prober{frame: f, matcher: m, step: step}
}

// Step returns the coarse ray step.
func (p *Prober) Step() int {
	return p.step
}

// Matches reports whether (x, y) is inside the frame and matches any
// reference color.
func (p *Prober) Matches(x, y int) bool {
	if !p.frame.Contains(x, y) {
		return false
	}
	return p.matcher.MatchAny(p.frame.Sample(x, y))
}

// CastRay walks from (x, y) by (dx, dy) while the next pixel is in the
// frame and matches. At the first failure it backs off one step and, if
// the step was coarser than one pixel, continues from there with the unit
// step of the same sign. The returned end point is clamped into the frame.
// The start pixel itself is not tested.
func (p *Prober) CastRay(x, y, dx, dy int) Point {
	if dx == 0 && dy == 0 {
		x, y = p.frame.Clamp(x, y)
		return Point{X: x, Y: y}
	}

	for {
		nx, ny := x+dx, y+dy
		if p.Matches(nx, ny) {
			x, y = nx, ny
			continue
		}
		if abs(dx) <= 1 && abs(dy) <= 1 {
			break
		}
		dx, dy = sign(dx), sign(dy)
	}

	x, y = p.frame.Clamp(x, y)
	return Point{X: x, Y: y}
}

// Grow pushes the edges of r outward until a full pass in the four
// directions +x, +y, -x, -y moves no edge. Edges moved earlier in a pass
// are used by the rays cast later in the same pass.
func (p *Prober) Grow(r Rect) Rect {
	r = r.Canon()
	r.X1, r.Y1 = p.frame.Clamp(r.X1, r.Y1)
	r.X2, r.Y2 = p.frame.Clamp(r.X2, r.Y2)

	for {
		expanded := false

		// right
		for v := r.Y1; v <= r.Y2; v++ {
			if end := p.CastRay(r.X2, v, p.step, 0); end.X > r.X2 {
				r.X2 = end.X
				expanded = true
			}
		}
		// down
		for h := r.X1; h <= r.X2; h++ {
			if end := p.CastRay(h, r.Y2, 0, p.step); end.Y > r.Y2 {
				r.Y2 = end.Y
				expanded = true
			}
		}
		// left
		for v := r.Y1; v <= r.Y2; v++ {
			if end := p.CastRay(r.X1, v, -p.step, 0); end.X < r.X1 {
				r.X1 = end.X
				expanded = true
			}
		}
		// up
		for h := r.X1; h <= r.X2; h++ {
			if end := p.CastRay(h, r.Y1, 0, -p.step); end.Y < r.Y1 {
				r.Y1 = end.Y
				expanded = true
			}
		}

		if !expanded {
			return r
		}
	}
}

// Bounds grows a rectangle from the single pixel at seed. It reports false
// when the seed lies outside the frame.
func (p *Prober) Bounds(seed Point) (Rect, bool) {
	if !p.frame.Contains(seed.X, seed.Y) {
		return Rect{}, false
	}
	return p.Grow(PointRect(seed)), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
