package filter

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/motrack/config"
	"github.com/opd-ai/motrack/effects"
	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/report"
	"github.com/opd-ai/motrack/track"
)

// Stats accumulates counters over the life of a filter.
type Stats struct {
	Frames    uint64
	Acquired  uint64
	Lost      uint64
	Reports   uint64
	Failed    uint64
	Processed time.Duration
}

// Filter tracks, marks and reports objects frame by frame.
type Filter struct {
	props        config.Properties
	tracker      *track.Tracker
	effect       effects.Effect
	reporter     report.Reporter
	session      string
	timeProvider TimeProvider

	mu    sync.Mutex
	stats Stats
}

// Option customizes a Filter.
type Option func(*Filter)

// WithReporter sets the reporter that receives per-object messages.
func WithReporter(r report.Reporter) Option {
	return func(f *Filter) {
		f.reporter = r
	}
}

// WithTimeProvider sets the clock used for report timestamps and timing.
func WithTimeProvider(tp TimeProvider) Option {
	return func(f *Filter) {
		f.timeProvider = tp
	}
}

// WithSession sets the session identifier carried by every report.
func WithSession(id string) Option {
	return func(f *Filter) {
		f.session = id
	}
}

// New validates props and returns a filter ready for its first frame.
// Without WithReporter, reports are logged through logrus.
func New(props config.Properties, opts ...Option) (*Filter, error) {
	logrus.WithFields(logrus.Fields{
		"function": "New",
		"mark":     props.Mark.String(),
		"objects":  props.Objects,
		"message":  props.Message,
	}).Info("Creating new filter")

	f := &Filter{
		timeProvider: DefaultTimeProvider{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.reporter == nil {
		f.reporter = report.NewLogReporter(nil, logrus.InfoLevel)
	}
	if f.session == "" {
		f.session = report.NewSessionID()
	}

	tracker, effect, err := build(props)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "New",
			"error":    err.Error(),
		}).Error("Invalid filter properties")
		return nil, err
	}
	f.props = props
	f.tracker = tracker
	f.effect = effect

	logrus.WithFields(logrus.Fields{
		"function": "New",
		"session":  f.session,
		"effect":   effect.GetName(),
	}).Info("Filter created successfully")

	return f, nil
}

func build(props config.Properties) (*track.Tracker, effects.Effect, error) {
	if err := props.Validate(); err != nil {
		return nil, nil, err
	}
	cfg, err := props.TrackerConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("tracker configuration: %w", err)
	}
	effect, err := effects.ForMethod(props.Mark, props.MarkParams(cfg.Matcher))
	if err != nil {
		return nil, nil, fmt.Errorf("mark effect: %w", err)
	}
	tracker, err := track.NewTracker(cfg)
	if err != nil {
		return nil, nil, err
	}
	return tracker, effect, nil
}

// Session returns the session identifier.
func (f *Filter) Session() string {
	return f.session
}

// Properties returns the active properties.
func (f *Filter) Properties() config.Properties {
	return f.props
}

// Tracker returns the underlying tracker.
func (f *Filter) Tracker() *track.Tracker {
	return f.tracker
}

// SetProperties applies new properties between frames. Tracked objects
// survive unless the object limit shrinks below their slot.
func (f *Filter) SetProperties(props config.Properties) error {
	if err := props.Validate(); err != nil {
		return err
	}
	cfg, err := props.TrackerConfig()
	if err != nil {
		return err
	}
	effect, err := effects.ForMethod(props.Mark, props.MarkParams(cfg.Matcher))
	if err != nil {
		return err
	}
	if err := f.tracker.Reconfigure(cfg); err != nil {
		return err
	}
	f.props = props
	f.effect = effect

	logrus.WithFields(logrus.Fields{
		"function": "Filter.SetProperties",
		"mark":     props.Mark.String(),
		"effect":   effect.GetName(),
	}).Info("Filter properties updated")

	return nil
}

// ProcessFrame tracks objects in fr, marks them in place and reports them.
// Failing to find or keep objects is not an error; errors are limited to a
// nil frame and failing mark effects. Reporter failures are logged and
// counted.
func (f *Filter) ProcessFrame(fr *frame.Frame) (track.Snapshot, error) {
	if fr == nil {
		return track.Snapshot{}, ErrNilFrame
	}
	start := f.timeProvider.Now()

	snap := f.tracker.Update(fr)

	if err := f.markObjects(fr, snap); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Filter.ProcessFrame",
			"frame":    snap.Frame,
			"error":    err.Error(),
		}).Error("Marking failed")
		return snap, err
	}

	reports, failed := f.reportObjects(snap, start)
	elapsed := f.timeProvider.Since(start)

	f.mu.Lock()
	f.stats.Frames++
	f.stats.Acquired += uint64(len(snap.Acquired))
	f.stats.Lost += uint64(len(snap.Lost))
	f.stats.Reports += reports
	f.stats.Failed += failed
	f.stats.Processed += elapsed
	f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Filter.ProcessFrame",
		"frame":    snap.Frame,
		"count":    snap.Count,
		"elapsed":  elapsed,
	}).Debug("Frame processed")

	return snap, nil
}

func (f *Filter) markObjects(fr *frame.Frame, snap track.Snapshot) error {
	for _, obj := range snap.Objects {
		target := effects.Target{Rect: obj.Rect, Center: obj.Center}
		if err := f.effect.Apply(fr, target); err != nil {
			return fmt.Errorf("object %d: %w", obj.ID, err)
		}
	}
	return nil
}

func (f *Filter) reportObjects(snap track.Snapshot, ts time.Time) (sent, failed uint64) {
	if !f.props.Message {
		return 0, 0
	}
	for _, msg := range report.Messages(f.session, ts, snap) {
		if err := f.reporter.Report(msg); err != nil {
			failed++
			logrus.WithFields(logrus.Fields{
				"function": "Filter.ProcessFrame",
				"object":   msg.Object,
				"error":    err.Error(),
			}).Warn("Report delivery failed")
			continue
		}
		sent++
	}
	return sent, failed
}

// Stats returns a copy of the accumulated counters.
func (f *Filter) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// Reset forgets every tracked object.
func (f *Filter) Reset() {
	f.tracker.Reset()
}

// Close releases the reporter.
func (f *Filter) Close() error {
	logrus.WithFields(logrus.Fields{
		"function": "Filter.Close",
		"session":  f.session,
	}).Info("Closing filter")

	return f.reporter.Close()
}
