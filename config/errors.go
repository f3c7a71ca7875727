package config

import "errors"

// ErrOutOfRange indicates a property value outside its valid range.
var ErrOutOfRange = errors.New("property out of range")
