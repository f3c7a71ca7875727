package stream

import "errors"

var (
	// ErrShortFrame indicates input that ended in the middle of a frame.
	ErrShortFrame = errors.New("short frame")

	// ErrBadPayload indicates an encoded frame or RTP payload that cannot
	// be parsed.
	ErrBadPayload = errors.New("malformed frame payload")

	// ErrIncompleteFrame indicates a frame dropped because some of its
	// packets never arrived.
	ErrIncompleteFrame = errors.New("incomplete frame")

	// ErrFrameTooLarge indicates a frame that exceeds the packetizer limit.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrClosed indicates use of a closed source or sink.
	ErrClosed = errors.New("stream closed")
)
