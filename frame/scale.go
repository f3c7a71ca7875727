package frame

import (
	"fmt"
)

// Scale resizes src into a newly allocated I420 frame using bilinear
// interpolation. Target dimensions must be even and at least 16x16.
func Scale(src *Frame, targetWidth, targetHeight int) (*Frame, error) {
	if src == nil {
		return nil, fmt.Errorf("source frame cannot be nil")
	}

	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, targetWidth, targetHeight)
	}

	if targetWidth%2 != 0 || targetHeight%2 != 0 {
		return nil, fmt.Errorf("%w: target dimensions must be even for I420: %dx%d",
			ErrInvalidDimensions, targetWidth, targetHeight)
	}

	if targetWidth < 16 || targetHeight < 16 {
		return nil, fmt.Errorf("%w: target dimensions too small: %dx%d (minimum 16x16)",
			ErrInvalidDimensions, targetWidth, targetHeight)
	}

	dst, err := FromBuffer(FormatI420, targetWidth, targetHeight,
		NewBuffer(FormatI420, targetWidth, targetHeight))
	if err != nil {
		return nil, err
	}

	xRatio := float64(src.width) / float64(targetWidth)
	yRatio := float64(src.height) / float64(targetHeight)

	for k := 0; k < len(dst.planes); k++ {
		p := dst.planes[k]
		// walk one logical pixel per stored sample
		for y := 0; y < targetHeight; y += p.VScale {
			for x := 0; x < targetWidth; x += p.HScale {
				dst.SetPixel(k, x, y, src.bilinear(k, float64(x)*xRatio, float64(y)*yRatio))
			}
		}
	}

	return dst, nil
}

// bilinear interpolates plane k at a fractional logical coordinate.
func (f *Frame) bilinear(k int, srcX, srcY float64) byte {
	x1 := int(srcX)
	y1 := int(srcY)
	x2 := x1 + 1
	y2 := y1 + 1

	// Clamp to bounds
	if x2 >= f.width {
		x2 = f.width - 1
	}
	if y2 >= f.height {
		y2 = f.height - 1
	}

	fx := srcX - float64(x1)
	fy := srcY - float64(y1)

	p11 := float64(f.Pixel(k, x1, y1))
	p12 := float64(f.Pixel(k, x2, y1))
	p21 := float64(f.Pixel(k, x1, y2))
	p22 := float64(f.Pixel(k, x2, y2))

	top := p11*(1-fx) + p12*fx
	bottom := p21*(1-fx) + p22*fx
	pixel := top*(1-fy) + bottom*fy

	return byte(pixel + 0.5) // Round to nearest
}

// IsScalingRequired reports whether src differs from the target size.
func IsScalingRequired(src *Frame, targetWidth, targetHeight int) bool {
	return src.width != targetWidth || src.height != targetHeight
}
