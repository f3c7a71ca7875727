package colorspace

import "errors"

var (
	// ErrThreshold indicates a match threshold outside [0, MaxThreshold].
	ErrThreshold = errors.New("threshold out of range")

	// ErrTooManyColors indicates more secondary colors than MaxSecondary.
	ErrTooManyColors = errors.New("too many secondary colors")

	// ErrRGBRange indicates a packed RGB value wider than 24 bits.
	ErrRGBRange = errors.New("rgb value out of range")
)
