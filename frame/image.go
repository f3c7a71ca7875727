package frame

import (
	"fmt"
	"image"
)

// FromYCbCr wraps a standard library YCbCr image without copying. The
// image must start at the origin.
func FromYCbCr(img *image.YCbCr) (*Frame, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	r := img.Rect
	if r.Min != (image.Point{}) {
		return nil, fmt.Errorf("%w: image origin %v, want (0,0)", ErrInvalidDimensions, r.Min)
	}

	hs, vs := 1, 1
	switch img.SubsampleRatio {
	case image.YCbCrSubsampleRatio444:
	case image.YCbCrSubsampleRatio422:
		hs = 2
	case image.YCbCrSubsampleRatio420:
		hs, vs = 2, 2
	case image.YCbCrSubsampleRatio440:
		vs = 2
	case image.YCbCrSubsampleRatio411:
		hs = 4
	case image.YCbCrSubsampleRatio410:
		hs, vs = 4, 2
	default:
		return nil, fmt.Errorf("%w: subsample ratio %v", ErrUnsupportedFormat, img.SubsampleRatio)
	}

	return New(r.Dx(), r.Dy(),
		Plane{Data: img.Y, Stride: img.YStride},
		Plane{Data: img.Cb, Stride: img.CStride, HScale: hs, VScale: vs},
		Plane{Data: img.Cr, Stride: img.CStride, HScale: hs, VScale: vs},
	)
}

// YCbCr copies the frame into a new full-resolution YCbCr image.
func (f *Frame) YCbCr() *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, f.width, f.height), image.YCbCrSubsampleRatio444)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.Sample(x, y)
			yi := img.YOffset(x, y)
			ci := img.COffset(x, y)
			img.Y[yi] = c[0]
			img.Cb[ci] = c[1]
			img.Cr[ci] = c[2]
		}
	}
	return img
}
