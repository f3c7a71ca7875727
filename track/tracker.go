package track

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/region"
)

// Object is one tracked region.
type Object struct {
	ID     int
	Rect   region.Rect
	Center region.Point
}

// Snapshot is the state of the table after one Update.
type Snapshot struct {
	// Frame counts the updates since construction or the last Reset,
	// starting at 1.
	Frame uint64
	// Count is the number of active objects.
	Count int
	// Objects lists the active objects ordered by ID.
	Objects []Object
	// Acquired lists the IDs filled by this frame's scan.
	Acquired []int
	// Lost lists the IDs freed by this frame's re-validation.
	Lost []int
}

type slot struct {
	active bool
	obj    Object
}

// Tracker follows color regions across frames.
type Tracker struct {
	cfg    Config
	slots  []slot
	count  int
	frames uint64
}

// NewTracker validates cfg and returns an empty tracker.
func NewTracker(cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewTracker",
			"error":    err.Error(),
		}).Error("Invalid tracker configuration")
		return nil, err
	}

	t := &Tracker{
		cfg:   cfg,
		slots: make([]slot, cfg.MaxObjects),
	}

	logrus.WithFields(logrus.Fields{
		"function":    "NewTracker",
		"min_size":    cfg.MinSize,
		"max_size":    cfg.MaxSize,
		"step":        cfg.Step,
		"max_objects": cfg.MaxObjects,
		"threshold":   cfg.Matcher.Threshold(),
	}).Info("Tracker created")

	return t, nil
}

// Config returns the active configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

// Count returns the number of active objects.
func (t *Tracker) Count() int {
	return t.count
}

// Objects returns the active objects ordered by ID.
func (t *Tracker) Objects() []Object {
	objs := make([]Object, 0, t.count)
	for _, s := range t.slots {
		if s.active {
			objs = append(objs, s.obj)
		}
	}
	return objs
}

// Object returns the object in slot id.
func (t *Tracker) Object(id int) (Object, bool) {
	if id < 0 || id >= len(t.slots) || !t.slots[id].active {
		return Object{}, false
	}
	return t.slots[id].obj, true
}

// Reset frees every slot and restarts the frame counter.
func (t *Tracker) Reset() {
	for i := range t.slots {
		t.slots[i] = slot{}
	}
	t.count = 0
	t.frames = 0

	logrus.WithFields(logrus.Fields{
		"function": "Tracker.Reset",
	}).Info("Tracker reset")
}

// Reconfigure replaces the configuration between frames. Objects in slots
// beyond a reduced capacity are dropped; the rest are kept.
func (t *Tracker) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Tracker.Reconfigure",
			"error":    err.Error(),
		}).Error("Invalid tracker configuration")
		return err
	}

	dropped := 0
	if cfg.MaxObjects < len(t.slots) {
		for _, s := range t.slots[cfg.MaxObjects:] {
			if s.active {
				dropped++
			}
		}
		t.slots = t.slots[:cfg.MaxObjects:cfg.MaxObjects]
	} else if cfg.MaxObjects > len(t.slots) {
		t.slots = append(t.slots, make([]slot, cfg.MaxObjects-len(t.slots))...)
	}
	t.count -= dropped
	t.cfg = cfg

	logrus.WithFields(logrus.Fields{
		"function":    "Tracker.Reconfigure",
		"min_size":    cfg.MinSize,
		"max_size":    cfg.MaxSize,
		"step":        cfg.Step,
		"max_objects": cfg.MaxObjects,
		"dropped":     dropped,
	}).Info("Tracker reconfigured")

	return nil
}

// Update re-validates the tracked objects against f, scans f for new ones
// and returns the resulting table. It never fails; a frame without
// matching regions yields an empty snapshot. A nil frame leaves the table
// and the frame counter untouched and returns the current table.
func (t *Tracker) Update(f *frame.Frame) Snapshot {
	if f == nil {
		logrus.WithFields(logrus.Fields{
			"function": "Tracker.Update",
			"frame":    t.frames,
		}).Warn("Ignoring nil frame")
		return Snapshot{Frame: t.frames, Count: t.count, Objects: t.Objects()}
	}

	t.frames++
	snap := Snapshot{Frame: t.frames}

	p := region.NewProber(f, t.cfg.Matcher, t.cfg.RayStep)
	snap.Lost = t.revalidate(p)
	snap.Acquired = t.scan(p, f)

	snap.Count = t.count
	snap.Objects = t.Objects()

	logrus.WithFields(logrus.Fields{
		"function": "Tracker.Update",
		"frame":    snap.Frame,
		"count":    snap.Count,
		"acquired": len(snap.Acquired),
		"lost":     len(snap.Lost),
	}).Debug("Frame tracked")

	return snap
}

func (t *Tracker) revalidate(p *region.Prober) []int {
	var lost []int
	for id := range t.slots {
		s := &t.slots[id]
		if !s.active {
			continue
		}

		// a center outside a smaller frame has nothing to grow from
		r, ok := p.Bounds(s.obj.Center)
		if !ok || t.reject(r, id) {
			*s = slot{}
			t.count--
			lost = append(lost, id)

			logrus.WithFields(logrus.Fields{
				"function": "Tracker.Update",
				"object":   id,
				"rect":     r.String(),
			}).Info("Object lost")
			continue
		}

		s.obj.Rect = r
		s.obj.Center = r.Center()
	}
	return lost
}

func (t *Tracker) scan(p *region.Prober, f *frame.Frame) []int {
	var acquired []int
	step := t.cfg.Step
	for y := 0; y < f.Height() && t.count < len(t.slots); y += step {
		for x := 0; x < f.Width() && t.count < len(t.slots); x += step {
			if !t.cfg.Matcher.MatchPrimary(f.Sample(x, y)) {
				continue
			}

			r, _ := p.Bounds(region.Point{X: x, Y: y})
			if t.reject(r, -1) {
				continue
			}

			id := t.freeSlot()
			t.slots[id] = slot{
				active: true,
				obj:    Object{ID: id, Rect: r, Center: r.Center()},
			}
			t.count++
			acquired = append(acquired, id)

			logrus.WithFields(logrus.Fields{
				"function": "Tracker.Update",
				"object":   id,
				"rect":     r.String(),
			}).Info("Object acquired")
		}
	}
	return acquired
}

// reject applies the size bounds and the overlap rule. self is the slot
// being re-validated, or -1 for a fresh candidate.
func (t *Tracker) reject(r region.Rect, self int) bool {
	w, h := r.Width(), r.Height()
	if w < t.cfg.MinSize || h < t.cfg.MinSize {
		return true
	}
	if t.cfg.MaxSize > 0 && (w > t.cfg.MaxSize || h > t.cfg.MaxSize) {
		return true
	}

	slack := t.cfg.Step
	for id := range t.slots {
		if id == self || !t.slots[id].active {
			continue
		}
		other := t.slots[id].obj.Rect
		if r.Within(other, slack) || other.Within(r, slack) {
			return true
		}
	}
	return false
}

func (t *Tracker) freeSlot() int {
	for id := range t.slots {
		if !t.slots[id].active {
			return id
		}
	}
	// unreachable while count < len(slots)
	return -1
}
