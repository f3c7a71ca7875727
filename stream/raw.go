package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/motrack/frame"
)

// RawReader reads tightly packed frames of one format and size.
type RawReader struct {
	r      io.Reader
	format frame.Format
	width  int
	height int
	size   int
	frames uint64
}

// NewRawReader returns a reader of width x height frames in format.
func NewRawReader(r io.Reader, format frame.Format, width, height int) (*RawReader, error) {
	size, err := frame.BufferSize(format, width, height)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewRawReader",
		"format":     format.String(),
		"width":      width,
		"height":     height,
		"frame_size": size,
	}).Info("Creating raw frame reader")

	return &RawReader{r: r, format: format, width: width, height: height, size: size}, nil
}

// ReadFrame reads the next frame into a fresh buffer. It returns io.EOF
// at a clean end of input and ErrShortFrame when input ends mid-frame.
// Cancellation is checked between frames; a blocked read is not
// interrupted.
func (rr *RawReader) ReadFrame(ctx context.Context) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, rr.size)
	n, err := io.ReadFull(rr.r, buf)
	switch {
	case errors.Is(err, io.EOF):
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		logrus.WithFields(logrus.Fields{
			"function": "RawReader.ReadFrame",
			"frame":    rr.frames,
			"read":     n,
			"expected": rr.size,
		}).Warn("Input ended mid-frame")
		return nil, fmt.Errorf("%w: read %d of %d bytes", ErrShortFrame, n, rr.size)
	case err != nil:
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}

	rr.frames++
	return frame.FromBuffer(rr.format, rr.width, rr.height, buf)
}

// Close closes the underlying reader when it is an io.Closer.
func (rr *RawReader) Close() error {
	if c, ok := rr.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RawWriter writes frames as tightly packed buffers of one format.
type RawWriter struct {
	mu     sync.Mutex
	w      io.Writer
	format frame.Format
	closed bool
}

// NewRawWriter returns a writer that packs every frame as format.
func NewRawWriter(w io.Writer, format frame.Format) *RawWriter {
	return &RawWriter{w: w, format: format}
}

// WriteFrame packs f and writes it in a single call.
func (rw *RawWriter) WriteFrame(f *frame.Frame) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.closed {
		return ErrClosed
	}
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrBadPayload)
	}

	buf, err := frame.Pack(f, rw.format)
	if err != nil {
		return err
	}
	if _, err := rw.w.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// Close closes the underlying writer when it is an io.Closer.
func (rw *RawWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.closed {
		return nil
	}
	rw.closed = true
	if c, ok := rw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
