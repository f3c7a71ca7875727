package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Reporter consumes tracking messages.
type Reporter interface {
	// Report delivers one message
	Report(msg Message) error
	// Close flushes and releases the reporter
	Close() error
}

// JSONReporter writes one JSON object per line.
type JSONReporter struct {
	mu     sync.Mutex
	w      io.Writer
	enc    *json.Encoder
	closed bool
}

// NewJSONReporter creates a reporter writing to w. Closing the reporter
// closes w when it is an io.Closer.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		w:   w,
		enc: json.NewEncoder(w),
	}
}

// Report writes msg as one line.
func (r *JSONReporter) Report(msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if err := r.enc.Encode(msg); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Close closes the underlying writer if it supports closing.
func (r *JSONReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if c, ok := r.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// LogReporter writes messages as structured log entries.
type LogReporter struct {
	logger *logrus.Logger
	level  logrus.Level
}

// NewLogReporter creates a reporter logging through logger at level. A
// nil logger selects the standard logrus logger.
func NewLogReporter(logger *logrus.Logger, level logrus.Level) *LogReporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogReporter{logger: logger, level: level}
}

// Report logs msg.
func (r *LogReporter) Report(msg Message) error {
	r.logger.WithFields(logrus.Fields{
		"name":    msg.Name,
		"session": msg.Session,
		"frame":   msg.Frame,
		"count":   msg.Count,
		"object":  msg.Object,
		"x1":      msg.X1,
		"y1":      msg.Y1,
		"x2":      msg.X2,
		"y2":      msg.Y2,
		"xc":      msg.XC,
		"yc":      msg.YC,
	}).Log(r.level, "Object tracked")
	return nil
}

// Close does nothing.
func (r *LogReporter) Close() error {
	return nil
}

// Multi delivers every message to all of its reporters.
type Multi []Reporter

// Report delivers msg to every reporter and joins their errors.
func (m Multi) Report(msg Message) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every reporter and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every message.
type Discard struct{}

// Report does nothing.
func (Discard) Report(Message) error { return nil }

// Close does nothing.
func (Discard) Close() error { return nil }
