package stream

import (
	"context"

	"github.com/opd-ai/motrack/frame"
)

// Source produces frames until it returns io.EOF.
type Source interface {
	ReadFrame(ctx context.Context) (*frame.Frame, error)
	Close() error
}

// Sink consumes frames.
type Sink interface {
	WriteFrame(f *frame.Frame) error
	Close() error
}
