package track

import (
	"fmt"

	"github.com/opd-ai/motrack/colorspace"
	"github.com/opd-ai/motrack/region"
)

// MaxObjectsLimit is the hard ceiling on the slot table capacity.
const MaxObjectsLimit = 1024

// Config holds the tracking parameters.
type Config struct {
	// Matcher supplies the reference colors and threshold.
	Matcher *colorspace.Matcher
	// MinSize is the smallest accepted width and height, at least 1 so
	// that a single seed pixel is never an object.
	MinSize int
	// MaxSize is the largest accepted width and height; 0 disables it.
	MaxSize int
	// Step is the scan grid spacing and the overlap slack.
	Step int
	// MaxObjects is the slot table capacity.
	MaxObjects int
	// RayStep is the coarse ray step; 0 selects region.DefaultRayStep.
	RayStep int
}

// DefaultConfig returns the default parameters around m.
func DefaultConfig(m *colorspace.Matcher) Config {
	return Config{
		Matcher:    m,
		MinSize:    20,
		Step:       20,
		MaxObjects: 1,
		RayStep:    region.DefaultRayStep,
	}
}

// Validate checks every field against its range.
func (c Config) Validate() error {
	switch {
	case c.Matcher == nil:
		return fmt.Errorf("%w: matcher is required", ErrInvalidConfig)
	case c.MinSize < 1:
		return fmt.Errorf("%w: min size %d", ErrInvalidConfig, c.MinSize)
	case c.MaxSize < 0:
		return fmt.Errorf("%w: max size %d", ErrInvalidConfig, c.MaxSize)
	case c.MaxSize > 0 && c.MaxSize < c.MinSize:
		return fmt.Errorf("%w: max size %d below min size %d", ErrInvalidConfig, c.MaxSize, c.MinSize)
	case c.Step < 1:
		return fmt.Errorf("%w: step %d", ErrInvalidConfig, c.Step)
	case c.MaxObjects < 1 || c.MaxObjects > MaxObjectsLimit:
		return fmt.Errorf("%w: max objects %d outside [1,%d]", ErrInvalidConfig, c.MaxObjects, MaxObjectsLimit)
	case c.RayStep < 0:
		return fmt.Errorf("%w: ray step %d", ErrInvalidConfig, c.RayStep)
	}
	return nil
}
