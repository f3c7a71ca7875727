package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/motrack/colorspace"
	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/region"
)

var (
	background = colorspace.FromRGB(colorspace.Black)
	red        = colorspace.FromRGB(colorspace.Red)
	green      = colorspace.FromRGB(colorspace.Green)
	white      = colorspace.YUV{255, 128, 128}
)

// createTestFrame returns a black 200x200 frame with the given rectangles
// painted red.
func createTestFrame(t *testing.T, rects ...region.Rect) *frame.Frame {
	t.Helper()
	f, err := frame.FromBuffer(frame.FormatY444, 200, 200, frame.NewBuffer(frame.FormatY444, 200, 200))
	require.NoError(t, err)
	f.Fill(background)
	for _, r := range rects {
		paint(f, r, red)
	}
	return f
}

func paint(f *frame.Frame, r region.Rect, c colorspace.YUV) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			f.Plot(x, y, c)
		}
	}
}

// stripes paints vertical stripes of alternating luma.
func stripes(f *frame.Frame) {
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			f.Plot(x, y, colorspace.YUV{byte(16 + (x/4%2)*100), 128, 128})
		}
	}
}

func createTestMatcher(t *testing.T) *colorspace.Matcher {
	t.Helper()
	m, err := colorspace.NewMatcher(88, red)
	require.NoError(t, err)
	return m
}

func countColor(f *frame.Frame, r region.Rect, c colorspace.YUV) int {
	n := 0
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if f.Sample(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestBox(t *testing.T) {
	f := createTestFrame(t)
	r := region.Rect{X1: 20, Y1: 30, X2: 60, Y2: 50}

	Box(f, r, green)

	assert.Equal(t, green, f.Sample(20, 30))
	assert.Equal(t, green, f.Sample(60, 50))
	assert.Equal(t, green, f.Sample(40, 30))
	assert.Equal(t, green, f.Sample(40, 50))
	assert.Equal(t, green, f.Sample(20, 40))
	assert.Equal(t, green, f.Sample(60, 40))
	assert.Equal(t, background, f.Sample(40, 40))
	assert.Equal(t, background, f.Sample(61, 40))

	// perimeter of a 41x21 rectangle
	assert.Equal(t, 2*41+2*19, countColor(f, region.Rect{X1: 0, Y1: 0, X2: 199, Y2: 199}, green))
}

func TestBox_PartlyOutsideFrame(t *testing.T) {
	f := createTestFrame(t)

	assert.NotPanics(t, func() {
		Box(f, region.Rect{X1: 180, Y1: -10, X2: 220, Y2: 10}, green)
	})
	assert.Equal(t, green, f.Sample(180, 0))
	assert.Equal(t, green, f.Sample(199, 10))
}

func TestCrosshairs(t *testing.T) {
	f := createTestFrame(t)
	p := region.Point{X: 100, Y: 80}

	Crosshairs(f, p, green)

	assert.Equal(t, background, f.Sample(100, 80))
	assert.Equal(t, background, f.Sample(97, 80))
	assert.Equal(t, green, f.Sample(96, 80))
	assert.Equal(t, green, f.Sample(87, 80))
	assert.Equal(t, background, f.Sample(86, 80))
	assert.Equal(t, green, f.Sample(104, 80))
	assert.Equal(t, green, f.Sample(113, 80))
	assert.Equal(t, green, f.Sample(100, 76))
	assert.Equal(t, green, f.Sample(100, 93))
	assert.Equal(t, 40, countColor(f, region.Rect{X1: 0, Y1: 0, X2: 199, Y2: 199}, green))
}

func TestCrosshairs_NearCorner(t *testing.T) {
	f := createTestFrame(t)

	assert.NotPanics(t, func() {
		Crosshairs(f, region.Point{X: 2, Y: 197}, green)
	})
	assert.Equal(t, green, f.Sample(8, 197))
	assert.Equal(t, green, f.Sample(2, 190))
}

func TestColorize(t *testing.T) {
	sq := region.Rect{X1: 50, Y1: 50, X2: 89, Y2: 89}
	f := createTestFrame(t, sq)

	Colorize(f, region.Rect{X1: 40, Y1: 40, X2: 99, Y2: 99}, createTestMatcher(t), green)

	got := f.Sample(60, 60)
	assert.Equal(t, red[0], got[0], "luma is kept")
	assert.Equal(t, green[1], got[1])
	assert.Equal(t, green[2], got[2])
	assert.Equal(t, background, f.Sample(45, 45))
}

func TestBlur(t *testing.T) {
	f := createTestFrame(t)
	for y := 0; y < 200; y++ {
		for x := 100; x < 200; x++ {
			f.SetPixel(0, x, y, 240)
		}
	}

	Blur(f, region.Rect{X1: 80, Y1: 80, X2: 119, Y2: 119}, 8)

	edge := f.Pixel(0, 100, 100)
	assert.Greater(t, edge, byte(0))
	assert.Less(t, edge, byte(240))
	assert.Equal(t, byte(0), f.Pixel(0, 79, 100), "outside the rectangle")
	assert.Equal(t, byte(240), f.Pixel(0, 120, 100), "outside the rectangle")
	assert.Equal(t, byte(128), f.Pixel(1, 100, 100), "uniform chroma stays uniform")
}

func TestBlur_UniformArea(t *testing.T) {
	f := createTestFrame(t)
	f.Fill(colorspace.YUV{100, 90, 80})
	r := region.Rect{X1: 20, Y1: 20, X2: 179, Y2: 179}

	Blur(f, r, 16)

	assert.Equal(t, (r.Width()+1)*(r.Height()+1), countColor(f, r, colorspace.YUV{100, 90, 80}))
}

func TestBlur_SkipsFrameBorder(t *testing.T) {
	f := createTestFrame(t)
	f.SetPixel(0, 1, 1, 200)

	Blur(f, region.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, 8)

	assert.Equal(t, byte(200), f.Pixel(0, 1, 1))
}

func TestBlur_InvalidSize(t *testing.T) {
	f := createTestFrame(t)
	f.SetPixel(0, 10, 10, 200)

	Blur(f, region.Rect{X1: 0, Y1: 0, X2: 20, Y2: 20}, 0)
	assert.Equal(t, byte(200), f.Pixel(0, 10, 10))
}

func TestDecimate(t *testing.T) {
	f := createTestFrame(t)
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			f.SetPixel(0, x, y, byte(x+y))
		}
	}

	Decimate(f, region.Rect{X1: 0, Y1: 0, X2: 17, Y2: 17}, 4)

	// blocks are anchored at the bottom-right corner
	for by := 2; by <= 14; by += 4 {
		for bx := 2; bx <= 14; bx += 4 {
			want := byte(bx + by)
			for y := by; y < by+4; y++ {
				for x := bx; x < bx+4; x++ {
					require.Equal(t, want, f.Pixel(0, x, y), "pixel (%d,%d)", x, y)
				}
			}
		}
	}
	assert.Equal(t, byte(1), f.Pixel(0, 1, 0), "partial block untouched")
	assert.Equal(t, byte(18+5), f.Pixel(0, 18, 5), "outside the rectangle")
}

func TestEdge(t *testing.T) {
	sq := region.Rect{X1: 50, Y1: 50, X2: 89, Y2: 89}
	f := createTestFrame(t, sq)

	Edge(f, sq, white)

	assert.Equal(t, white, f.Sample(51, 70), "left edge of the square")
	assert.Equal(t, red, f.Sample(70, 70), "uniform interior")
	assert.Equal(t, background, f.Sample(20, 20), "outside the search window")
}

func TestEdge_NearFrameEdge(t *testing.T) {
	f := createTestFrame(t, region.Rect{X1: 0, Y1: 0, X2: 30, Y2: 30})

	assert.NotPanics(t, func() {
		Edge(f, region.Rect{X1: 0, Y1: 0, X2: 199, Y2: 199}, white)
	})
}

func TestOutline(t *testing.T) {
	sq := region.Rect{X1: 50, Y1: 50, X2: 89, Y2: 89}
	f := createTestFrame(t, sq)

	Outline(f, sq, createTestMatcher(t), green)

	assert.Equal(t, green, f.Sample(89, 70), "right edge")
	assert.Equal(t, green, f.Sample(88, 70))
	assert.Equal(t, green, f.Sample(49, 70), "left edge")
	assert.Equal(t, red, f.Sample(70, 70), "interior")
	assert.Equal(t, background, f.Sample(20, 70))
	assert.Greater(t, countColor(f, region.Rect{X1: 50, Y1: 50, X2: 89, Y2: 50}, green), 10, "top edge")
}

func TestOutline_PointLimit(t *testing.T) {
	f := createTestFrame(t)
	// horizontal stripes change the match state on every row
	for y := 0; y < 200; y += 2 {
		paint(f, region.Rect{X1: 0, Y1: y, X2: 199, Y2: y}, red)
	}

	assert.NotPanics(t, func() {
		Outline(f, region.Rect{X1: 0, Y1: 0, X2: 199, Y2: 199}, createTestMatcher(t), green)
	})
	// 100 samples per row, so the cap is reached after 50 rows
	assert.Equal(t, red, f.Sample(100, 2))
}

func TestCloak(t *testing.T) {
	sq := region.Rect{X1: 80, Y1: 80, X2: 119, Y2: 119}
	f := createTestFrame(t)
	stripes(f)
	paint(f, sq, red)

	Cloak(f, sq)

	assert.Equal(t, 0, countColor(f, sq, red))
	// column 80 mirrors column 79
	assert.Equal(t, f.Sample(79, 100), f.Sample(80, 100))
	assert.Equal(t, f.Sample(120, 100), f.Sample(119, 100))
}

func TestCloak_NearFrameEdge(t *testing.T) {
	sq := region.Rect{X1: 0, Y1: 100, X2: 39, Y2: 139}
	f := createTestFrame(t)
	stripes(f)
	paint(f, sq, red)

	Cloak(f, sq)

	assert.Equal(t, 0, countColor(f, sq, red))
	assert.Equal(t, f.Sample(10, 60), f.Sample(10, 100))
}

func TestErase(t *testing.T) {
	tests := []struct {
		name   string
		rect   region.Rect
		source int // row copied into rect.Y1
	}{
		{"from above", region.Rect{X1: 50, Y1: 60, X2: 89, Y2: 99}, 20},
		{"from below", region.Rect{X1: 50, Y1: 0, X2: 89, Y2: 39}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestFrame(t)
			for y := 0; y < 200; y++ {
				paint(f, region.Rect{X1: 0, Y1: y, X2: 199, Y2: y}, colorspace.YUV{byte(y), 128, 128})
			}
			paint(f, tt.rect, red)

			Erase(f, tt.rect)

			assert.Equal(t, 0, countColor(f, tt.rect, red))
			assert.Equal(t, byte(tt.source), f.Pixel(0, 60, tt.rect.Y1))
		})
	}
}

func TestErase_FullHeight(t *testing.T) {
	f := createTestFrame(t)

	assert.NotPanics(t, func() {
		Erase(f, region.Rect{X1: 50, Y1: 0, X2: 89, Y2: 199})
	})
}
