package track

import "errors"

// ErrInvalidConfig indicates a tracker configuration outside its valid range.
var ErrInvalidConfig = errors.New("invalid tracker configuration")
