package effects

import "errors"

var (
	// ErrNilFrame indicates an effect applied to a nil frame.
	ErrNilFrame = errors.New("input frame cannot be nil")

	// ErrUnknownMethod indicates an unrecognized mark method.
	ErrUnknownMethod = errors.New("unknown mark method")

	// ErrInvalidSize indicates a non-positive blur or decimation size.
	ErrInvalidSize = errors.New("invalid effect size")

	// ErrNoMatcher indicates a color-matching effect without a matcher.
	ErrNoMatcher = errors.New("effect requires a color matcher")
)
