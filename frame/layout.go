package frame

import (
	"fmt"
	"strings"
)

// Format identifies a YUV pixel layout.
type Format int

// Supported pixel formats. Planar formats store each channel in its own
// plane, semi-planar formats interleave the chroma channels, packed
// formats interleave every channel in one plane.
const (
	FormatUnknown Format = iota
	FormatI420
	FormatYV12
	FormatY41B
	FormatY42B
	FormatY444
	FormatYUV9
	FormatYVU9
	FormatNV12
	FormatNV21
	FormatYUY2
	FormatUYVY
	FormatYVYU
	FormatAYUV
	FormatGRAY8
)

var formatNames = map[Format]string{
	FormatI420:  "I420",
	FormatYV12:  "YV12",
	FormatY41B:  "Y41B",
	FormatY42B:  "Y42B",
	FormatY444:  "Y444",
	FormatYUV9:  "YUV9",
	FormatYVU9:  "YVU9",
	FormatNV12:  "NV12",
	FormatNV21:  "NV21",
	FormatYUY2:  "YUY2",
	FormatUYVY:  "UYVY",
	FormatYVYU:  "YVYU",
	FormatAYUV:  "AYUV",
	FormatGRAY8: "GRAY8",
}

// String returns the conventional four-character name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat looks a format up by name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// component locates one channel inside a packed buffer.
type component struct {
	offset      int
	stride      int
	pixelStride int
	hscale      int
	vscale      int
}

// layout returns the channel locations for a tightly packed buffer and the
// total number of bytes the buffer needs.
func layout(format Format, width, height int) ([]component, int, error) {
	if width <= 0 || height <= 0 {
		return nil, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	ySize := width * height
	w2, h2 := ceilDiv(width, 2), ceilDiv(height, 2)
	w4, h4 := ceilDiv(width, 4), ceilDiv(height, 4)

	luma := component{offset: 0, stride: width, pixelStride: 1, hscale: 1, vscale: 1}

	planar := func(cw, ch, hs, vs int, swap bool) ([]component, int, error) {
		cSize := cw * ch
		first := component{offset: ySize, stride: cw, pixelStride: 1, hscale: hs, vscale: vs}
		second := component{offset: ySize + cSize, stride: cw, pixelStride: 1, hscale: hs, vscale: vs}
		if swap {
			first, second = second, first
		}
		return []component{luma, first, second}, ySize + 2*cSize, nil
	}

	switch format {
	case FormatI420:
		return planar(w2, h2, 2, 2, false)
	case FormatYV12:
		return planar(w2, h2, 2, 2, true)
	case FormatY41B:
		return planar(w4, height, 4, 1, false)
	case FormatY42B:
		return planar(w2, height, 2, 1, false)
	case FormatY444:
		return planar(width, height, 1, 1, false)
	case FormatYUV9:
		return planar(w4, h4, 4, 4, false)
	case FormatYVU9:
		return planar(w4, h4, 4, 4, true)
	case FormatNV12, FormatNV21:
		stride := 2 * w2
		u := component{offset: ySize, stride: stride, pixelStride: 2, hscale: 2, vscale: 2}
		v := component{offset: ySize + 1, stride: stride, pixelStride: 2, hscale: 2, vscale: 2}
		if format == FormatNV21 {
			u.offset, v.offset = v.offset, u.offset
		}
		return []component{luma, u, v}, ySize + stride*h2, nil
	case FormatYUY2, FormatUYVY, FormatYVYU:
		stride := 4 * w2
		// byte positions of Y, U and V inside each 4-byte macropixel
		pos := map[Format][3]int{
			FormatYUY2: {0, 1, 3},
			FormatUYVY: {1, 0, 2},
			FormatYVYU: {0, 3, 1},
		}[format]
		return []component{
			{offset: pos[0], stride: stride, pixelStride: 2, hscale: 1, vscale: 1},
			{offset: pos[1], stride: stride, pixelStride: 4, hscale: 2, vscale: 1},
			{offset: pos[2], stride: stride, pixelStride: 4, hscale: 2, vscale: 1},
		}, stride * height, nil
	case FormatAYUV:
		stride := 4 * width
		return []component{
			{offset: 1, stride: stride, pixelStride: 4, hscale: 1, vscale: 1},
			{offset: 2, stride: stride, pixelStride: 4, hscale: 1, vscale: 1},
			{offset: 3, stride: stride, pixelStride: 4, hscale: 1, vscale: 1},
		}, stride * height, nil
	case FormatGRAY8:
		return []component{luma}, ySize, nil
	default:
		return nil, 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// BufferSize returns the number of bytes of one tightly packed frame.
func BufferSize(format Format, width, height int) (int, error) {
	_, size, err := layout(format, width, height)
	return size, err
}

// NewBuffer allocates a zeroed buffer for one frame. It returns nil when
// the format or dimensions are invalid.
func NewBuffer(format Format, width, height int) []byte {
	size, err := BufferSize(format, width, height)
	if err != nil {
		return nil
	}
	return make([]byte, size)
}

// FromBuffer builds a frame over a tightly packed buffer of the given
// format. The buffer is borrowed; writes through the frame modify it.
func FromBuffer(format Format, width, height int, buf []byte) (*Frame, error) {
	comps, size, err := layout(format, width, height)
	if err != nil {
		return nil, err
	}
	if len(buf) < size {
		return nil, fmt.Errorf("%w: %v %dx%d needs %d bytes, has %d",
			ErrPlaneTooSmall, format, width, height, size, len(buf))
	}

	planes := make([]Plane, len(comps))
	for i, c := range comps {
		planes[i] = Plane{
			Data:        buf[c.offset:size],
			Stride:      c.stride,
			PixelStride: c.pixelStride,
			HScale:      c.hscale,
			VScale:      c.vscale,
		}
	}

	return New(width, height, planes...)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Pack copies f into a new tightly packed buffer of the given format.
// Chroma samples shared by several pixels take the value of the top-left
// pixel of their block.
func Pack(f *Frame, format Format) ([]byte, error) {
	buf := NewBuffer(format, f.width, f.height)
	if buf == nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	dst, err := FromBuffer(format, f.width, f.height, buf)
	if err != nil {
		return nil, err
	}

	for k, p := range dst.planes {
		for y := 0; y < f.height; y += p.VScale {
			for x := 0; x < f.width; x += p.HScale {
				dst.SetPixel(k, x, y, f.Pixel(k, x, y))
			}
		}
	}
	return buf, nil
}
