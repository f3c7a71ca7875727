package frame

import (
	"fmt"

	"github.com/opd-ai/motrack/colorspace"
)

// MaxPlanes is the largest number of planes a frame may carry.
const MaxPlanes = 3

// Plane describes how one color channel is stored.
type Plane struct {
	Data        []byte // Samples, starting at the first sample of the plane
	Stride      int    // Bytes per stored row
	PixelStride int    // Bytes between horizontally adjacent samples; 0 means 1
	HScale      int    // Logical pixels per sample horizontally; 0 means 1
	VScale      int    // Logical pixels per sample vertically; 0 means 1
}

func (p Plane) normalized() Plane {
	if p.PixelStride == 0 {
		p.PixelStride = 1
	}
	if p.HScale == 0 {
		p.HScale = 1
	}
	if p.VScale == 0 {
		p.VScale = 1
	}
	return p
}

func (p Plane) offset(x, y int) int {
	return (y/p.VScale)*p.Stride + (x/p.HScale)*p.PixelStride
}

// Frame is a checked view over the planes of one video frame.
type Frame struct {
	width  int
	height int
	planes []Plane
}

// New validates the geometry and returns a frame over the given planes.
// The planes' data is borrowed, not copied.
func New(width, height int, planes ...Plane) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(planes) < 1 || len(planes) > MaxPlanes {
		return nil, fmt.Errorf("%w: %d", ErrPlaneCount, len(planes))
	}

	f := &Frame{
		width:  width,
		height: height,
		planes: make([]Plane, len(planes)),
	}

	for i, p := range planes {
		if p.Stride < 0 || p.PixelStride < 0 || p.HScale < 0 || p.VScale < 0 {
			return nil, fmt.Errorf("%w: plane %d", ErrInvalidPlane, i)
		}
		p = p.normalized()

		last := p.offset(width-1, height-1)
		if last >= len(p.Data) {
			return nil, fmt.Errorf("%w: plane %d needs %d bytes, has %d",
				ErrPlaneTooSmall, i, last+1, len(p.Data))
		}
		f.planes[i] = p
	}

	return f, nil
}

// Width returns the logical width in pixels.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the logical height in pixels.
func (f *Frame) Height() int {
	return f.height
}

// Planes returns the number of planes carried by the frame.
func (f *Frame) Planes() int {
	return len(f.planes)
}

// Plane returns the normalized geometry of plane i.
func (f *Frame) Plane(i int) (Plane, error) {
	if i < 0 || i >= len(f.planes) {
		return Plane{}, fmt.Errorf("%w: %d", ErrNoPlane, i)
	}
	return f.planes[i], nil
}

// Contains reports whether (x, y) lies inside the frame.
func (f *Frame) Contains(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Clamp saturates (x, y) to the nearest in-frame coordinate.
func (f *Frame) Clamp(x, y int) (int, int) {
	return clamp(x, 0, f.width-1), clamp(y, 0, f.height-1)
}

// Offset maps a logical coordinate to a byte index within plane.Data.
func (f *Frame) Offset(plane, x, y int) (int, error) {
	if plane < 0 || plane >= len(f.planes) {
		return 0, fmt.Errorf("%w: %d", ErrNoPlane, plane)
	}
	if !f.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfRange, x, y, f.width, f.height)
	}
	return f.planes[plane].offset(x, y), nil
}

// Pixel reads one channel. Coordinates are clamped to the frame edge and
// absent planes read as neutral chroma.
func (f *Frame) Pixel(plane, x, y int) byte {
	if plane < 0 || plane >= len(f.planes) {
		return colorspace.Neutral
	}
	x, y = f.Clamp(x, y)
	p := &f.planes[plane]
	return p.Data[p.offset(x, y)]
}

// SetPixel writes one channel. Writes outside the frame or to an absent
// plane are dropped and report false.
func (f *Frame) SetPixel(plane, x, y int, v byte) bool {
	if plane < 0 || plane >= len(f.planes) || !f.Contains(x, y) {
		return false
	}
	p := &f.planes[plane]
	p.Data[p.offset(x, y)] = v
	return true
}

// Sample reads all three channels at (x, y), clamped to the frame edge.
func (f *Frame) Sample(x, y int) colorspace.YUV {
	return colorspace.YUV{
		f.Pixel(0, x, y),
		f.Pixel(1, x, y),
		f.Pixel(2, x, y),
	}
}

// Plot writes all three channels at (x, y). It reports false when the
// coordinate is outside the frame.
func (f *Frame) Plot(x, y int, c colorspace.YUV) bool {
	if !f.Contains(x, y) {
		return false
	}
	for k := 0; k < len(f.planes); k++ {
		f.SetPixel(k, x, y, c[k])
	}
	return true
}

// Fill paints every pixel of the frame with c.
func (f *Frame) Fill(c colorspace.YUV) {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			f.Plot(x, y, c)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
