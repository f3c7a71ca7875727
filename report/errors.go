package report

import "errors"

// ErrClosed indicates a report sent to a closed reporter.
var ErrClosed = errors.New("reporter closed")
