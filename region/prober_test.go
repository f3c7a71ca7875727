package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/motrack/colorspace"
	"github.com/opd-ai/motrack/frame"
)

var (
	background = colorspace.FromRGB(colorspace.Black)
	red        = colorspace.FromRGB(colorspace.Red)
	blue       = colorspace.FromRGB(colorspace.Blue)
)

// createTestFrame returns a black frame with the given rectangles painted.
func createTestFrame(t *testing.T, width, height int, c colorspace.YUV, rects ...Rect) *frame.Frame {
	t.Helper()
	f, err := frame.FromBuffer(frame.FormatY444, width, height,
		frame.NewBuffer(frame.FormatY444, width, height))
	require.NoError(t, err)
	f.Fill(background)
	for _, r := range rects {
		for y := r.Y1; y <= r.Y2; y++ {
			for x := r.X1; x <= r.X2; x++ {
				f.Plot(x, y, c)
			}
		}
	}
	return f
}

func createTestProber(t *testing.T, f *frame.Frame, secondary ...colorspace.YUV) *Prober {
	t.Helper()
	m, err := colorspace.NewMatcher(88, red, secondary...)
	require.NoError(t, err)
	return NewProber(f, m, DefaultRayStep)
}

func TestNewProber_DefaultStep(t *testing.T) {
	f := createTestFrame(t, 16, 16, red)
	m, err := colorspace.NewMatcher(88, red)
	require.NoError(t, err)

	assert.Equal(t, DefaultRayStep, NewProber(f, m, 0).Step())
	assert.Equal(t, DefaultRayStep, NewProber(f, m, -3).Step())
	assert.Equal(t, 3, NewProber(f, m, 3).Step())
}

func TestMatches(t *testing.T) {
	square := Rect{50, 50, 89, 89}
	p := createTestProber(t, createTestFrame(t, 200, 200, red, square))

	assert.True(t, p.Matches(50, 50))
	assert.True(t, p.Matches(89, 89))
	assert.False(t, p.Matches(49, 50))
	assert.False(t, p.Matches(-1, 60))
	assert.False(t, p.Matches(60, 200))
}

func TestCastRay(t *testing.T) {
	square := Rect{50, 50, 89, 89}
	p := createTestProber(t, createTestFrame(t, 200, 200, red, square))

	tests := []struct {
		name     string
		x, y     int
		dx, dy   int
		expected Point
	}{
		{"right coarse", 60, 60, 8, 0, Point{89, 60}},
		{"down coarse", 60, 60, 0, 8, Point{60, 89}},
		{"left coarse", 60, 60, -8, 0, Point{50, 60}},
		{"up coarse", 60, 60, 0, -8, Point{60, 50}},
		{"right unit", 60, 60, 1, 0, Point{89, 60}},
		{"diagonal", 50, 50, 8, 8, Point{89, 89}},
		{"already on edge", 89, 60, 8, 0, Point{89, 60}},
		{"from outside the blob", 10, 10, 8, 0, Point{10, 10}},
		{"zero direction", 60, 60, 0, 0, Point{60, 60}},
		{"zero direction clamps", -5, 250, 0, 0, Point{0, 199}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.CastRay(tt.x, tt.y, tt.dx, tt.dy))
		})
	}
}

func TestCastRay_StopsAtFrameEdge(t *testing.T) {
	p := createTestProber(t, createTestFrame(t, 100, 60, red, Rect{0, 0, 99, 59}))

	assert.Equal(t, Point{99, 10}, p.CastRay(0, 10, 8, 0))
	assert.Equal(t, Point{0, 10}, p.CastRay(99, 10, -8, 0))
	assert.Equal(t, Point{10, 59}, p.CastRay(10, 0, 0, 8))
	assert.Equal(t, Point{10, 0}, p.CastRay(10, 59, 0, -8))
}

func TestBounds_TightSquare(t *testing.T) {
	square := Rect{50, 50, 89, 89}
	p := createTestProber(t, createTestFrame(t, 200, 200, red, square))

	for _, seed := range []Point{{60, 60}, {50, 50}, {89, 89}, {70, 51}} {
		r, ok := p.Bounds(seed)
		require.True(t, ok)
		assert.Equal(t, square, r, "seed %v", seed)
	}
}

func TestBounds_FrameEdge(t *testing.T) {
	square := Rect{170, 0, 199, 29}
	p := createTestProber(t, createTestFrame(t, 200, 200, red, square))

	r, ok := p.Bounds(Point{180, 10})
	require.True(t, ok)
	assert.Equal(t, square, r)
}

func TestBounds_StepSizesAgree(t *testing.T) {
	square := Rect{33, 41, 77, 58}
	f := createTestFrame(t, 120, 100, red, square)
	m, err := colorspace.NewMatcher(88, red)
	require.NoError(t, err)

	for _, step := range []int{1, 2, 5, 8, 16} {
		r, ok := NewProber(f, m, step).Bounds(Point{40, 50})
		require.True(t, ok)
		assert.Equal(t, square, r, "step %d", step)
	}
}

func TestBounds_SeedOutsideFrame(t *testing.T) {
	p := createTestProber(t, createTestFrame(t, 50, 50, red))

	_, ok := p.Bounds(Point{-1, 10})
	assert.False(t, ok)
	_, ok = p.Bounds(Point{10, 50})
	assert.False(t, ok)
}

func TestBounds_NonMatchingSeed(t *testing.T) {
	p := createTestProber(t, createTestFrame(t, 200, 200, red, Rect{50, 50, 89, 89}))

	r, ok := p.Bounds(Point{10, 10})
	require.True(t, ok)
	assert.Equal(t, PointRect(Point{10, 10}), r)
}

func TestBounds_SecondaryColor(t *testing.T) {
	square := Rect{20, 20, 59, 59}
	f := createTestFrame(t, 100, 100, blue, square)

	r, ok := createTestProber(t, f).Bounds(Point{30, 30})
	require.True(t, ok)
	assert.Equal(t, PointRect(Point{30, 30}), r, "blue is not a reference color")

	r, ok = createTestProber(t, f, blue).Bounds(Point{30, 30})
	require.True(t, ok)
	assert.Equal(t, square, r)
}

func TestGrow_Idempotent(t *testing.T) {
	tests := []struct {
		name  string
		rects []Rect
		seed  Point
	}{
		{"square", []Rect{{50, 50, 89, 89}}, Point{60, 60}},
		{"wide bar", []Rect{{10, 90, 190, 95}}, Point{100, 92}},
		{"L shape", []Rect{{20, 20, 29, 120}, {20, 111, 120, 120}}, Point{25, 25}},
		{"cross", []Rect{{90, 20, 110, 180}, {20, 90, 180, 110}}, Point{100, 100}},
		{"touching blobs", []Rect{{20, 20, 59, 59}, {60, 40, 99, 99}}, Point{30, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := createTestProber(t, createTestFrame(t, 200, 200, red, tt.rects...))

			r, ok := p.Bounds(tt.seed)
			require.True(t, ok)
			assert.Equal(t, r, p.Grow(r))
			assert.LessOrEqual(t, r.X1, r.X2)
			assert.LessOrEqual(t, r.Y1, r.Y2)
		})
	}
}

func TestGrow_ClampsInput(t *testing.T) {
	p := createTestProber(t, createTestFrame(t, 50, 50, red))

	r := p.Grow(Rect{X1: 60, Y1: -4, X2: 40, Y2: 10})
	assert.Equal(t, Rect{X1: 40, Y1: 0, X2: 49, Y2: 10}, r)
}
