package filter

import "errors"

// ErrNilFrame indicates a nil frame passed to ProcessFrame.
var ErrNilFrame = errors.New("video frame cannot be nil")
