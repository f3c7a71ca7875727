package frame

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrPlaneCount indicates fewer than one or more than three planes.
	ErrPlaneCount = errors.New("invalid plane count")

	// ErrPlaneTooSmall indicates a plane whose data cannot hold every
	// sample addressed by the frame geometry.
	ErrPlaneTooSmall = errors.New("plane too small")

	// ErrInvalidPlane indicates a negative stride or scale.
	ErrInvalidPlane = errors.New("invalid plane geometry")

	// ErrOutOfRange indicates a coordinate outside the frame.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrNoPlane indicates a plane index the frame does not carry.
	ErrNoPlane = errors.New("no such plane")

	// ErrUnsupportedFormat indicates an unknown pixel format.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
)
