// Package frame provides the pixel accessor used by the tracker and the
// region effects.
//
// A Frame is a borrowed, per-frame view over one to three sample planes.
// Every plane has its own row stride, sample stride and horizontal and
// vertical subsampling scale, which is enough to describe planar,
// semi-planar and packed YUV layouts with the same addressing rule:
//
//	offset = (y / VScale) * Stride + (x / HScale) * PixelStride
//
// # Construction
//
// Frames are built either from explicit planes:
//
//	f, err := frame.New(640, 480,
//	    frame.Plane{Data: y, Stride: 640},
//	    frame.Plane{Data: u, Stride: 320, HScale: 2, VScale: 2},
//	    frame.Plane{Data: v, Stride: 320, HScale: 2, VScale: 2},
//	)
//
// or from a tightly packed buffer of a known pixel format:
//
//	buf := frame.NewBuffer(frame.FormatI420, 640, 480)
//	f, err := frame.FromBuffer(frame.FormatI420, 640, 480, buf)
//
// New verifies that every in-frame coordinate maps inside its plane, so
// the accessor never needs per-call bounds arithmetic on the backing
// slices.
//
// # Out-of-range access
//
// Coordinates outside the frame never touch memory outside the planes:
//
//   - Offset returns ErrOutOfRange.
//   - Pixel and Sample clamp the coordinate to the nearest frame edge.
//   - SetPixel and Plot drop the write and report false.
//
// # Thread Safety
//
// A Frame does not copy or lock the host's bytes. The caller must not
// mutate or share the underlying buffer while a frame is being processed.
package frame
