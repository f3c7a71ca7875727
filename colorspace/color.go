package colorspace

import "fmt"

const (
	// MaxThreshold is the largest accepted match threshold.
	MaxThreshold = 600

	// MaxSecondary is the number of optional secondary reference colors.
	MaxSecondary = 2

	// MaxRGB is the largest packed 24-bit RGB value.
	MaxRGB = 0xFFFFFF

	// Neutral is the chroma value of a colorless sample.
	Neutral = 128
)

// Well-known packed RGB values.
const (
	Red   uint32 = 0xFF0000
	Green uint32 = 0x00FF00
	Blue  uint32 = 0x0000FF
	White uint32 = 0xFFFFFF
	Black uint32 = 0x000000
)

// YUV is a color in the tracker's perceptual space. Index 0 is luma,
// indices 1 and 2 are the blue and red difference channels.
type YUV [3]uint8

// FromRGB converts a packed 0xRRGGBB value. Each component is truncated
// toward zero and clamped to [0, 255]; bits above 24 are ignored.
func FromRGB(rgb uint32) YUV {
	r := float64(uint8(rgb >> 16))
	g := float64(uint8(rgb >> 8))
	b := float64(uint8(rgb))

	y := int(0.299*r + 0.587*g + 0.114*b)
	u := int(-0.169*r - 0.331*g + 0.499*b + 128)
	v := int(0.499*r - 0.418*g - 0.081*b + 128)

	return YUV{clamp8(y), clamp8(u), clamp8(v)}
}

// ValidateRGB reports whether rgb fits in 24 bits.
func ValidateRGB(rgb uint32) error {
	if rgb > MaxRGB {
		return fmt.Errorf("%w: %#x", ErrRGBRange, rgb)
	}
	return nil
}

// RGB converts back to a packed 0xRRGGBB value. The round trip through
// FromRGB is lossy.
func (c YUV) RGB() uint32 {
	y := float64(c[0])
	u := float64(c[1]) - 128
	v := float64(c[2]) - 128

	r := clamp8(int(y + 1.402*v + 0.5))
	g := clamp8(int(y - 0.344*u - 0.714*v + 0.5))
	b := clamp8(int(y + 1.772*u + 0.5))

	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// String formats the color as its three components.
func (c YUV) String() string {
	return fmt.Sprintf("YUV(%d,%d,%d)", c[0], c[1], c[2])
}

// Distance returns the channel-weighted absolute difference of a and b.
// It is zero for identical colors and symmetric.
func Distance(a, b YUV) int {
	d := 0
	for k := 0; k < 3; k++ {
		d += (k + 1) * absDiff(a[k], b[k])
	}
	return d
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
