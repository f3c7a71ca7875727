package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/motrack/colorspace"
	"github.com/opd-ai/motrack/effects"
	"github.com/opd-ai/motrack/region"
	"github.com/opd-ai/motrack/track"
)

// Property ranges.
const (
	MinSpeed   = 1
	MaxSpeed   = 100
	MinMinSize = 1
	MaxMinSize = 100
	MaxMaxSize = 500
	MinObjects = 1
)

// Properties are the tunable settings of one tracking session.
type Properties struct {
	// Message enables per-frame reports.
	Message bool `yaml:"message"`
	// Mark selects how tracked objects are drawn on the frame.
	Mark effects.MarkMethod `yaml:"mark"`
	// Speed is the scan step, the overlap slack and the size of the
	// sizeblur and decimate effects.
	Speed int `yaml:"speed"`
	// MinSize is the smallest accepted object width and height.
	MinSize int `yaml:"min_size"`
	// MaxSize is the largest accepted object width and height; 0 means
	// unlimited.
	MaxSize int `yaml:"max_size"`
	// Color0 is the primary tracked color as 0xRRGGBB.
	Color0 uint32 `yaml:"color0"`
	// Color1 and Color2 are optional secondary colors.
	Color1 *uint32 `yaml:"color1,omitempty"`
	Color2 *uint32 `yaml:"color2,omitempty"`
	// MColor is the marker color as 0xRRGGBB.
	MColor uint32 `yaml:"mcolor"`
	// Threshold is the color distance below which a pixel matches.
	Threshold int `yaml:"threshold"`
	// Objects is the maximum number of tracked objects.
	Objects int `yaml:"objects"`
}

// DefaultProperties returns the default settings.
func DefaultProperties() Properties {
	return Properties{
		Message:   true,
		Mark:      effects.MarkBoth,
		Speed:     20,
		MinSize:   20,
		MaxSize:   0,
		Color0:    colorspace.Red,
		MColor:    colorspace.Green,
		Threshold: 88,
		Objects:   1,
	}
}

// Validate checks every property against its range.
func (p Properties) Validate() error {
	if err := checkRange("threshold", p.Threshold, 0, colorspace.MaxThreshold); err != nil {
		return err
	}
	if err := checkRange("objects", p.Objects, MinObjects, track.MaxObjectsLimit); err != nil {
		return err
	}
	if err := checkRange("speed", p.Speed, MinSpeed, MaxSpeed); err != nil {
		return err
	}
	if err := checkRange("min_size", p.MinSize, MinMinSize, MaxMinSize); err != nil {
		return err
	}
	if err := checkRange("max_size", p.MaxSize, 0, MaxMaxSize); err != nil {
		return err
	}
	if p.MaxSize > 0 && p.MaxSize < p.MinSize {
		return fmt.Errorf("%w: max_size %d below min_size %d", ErrOutOfRange, p.MaxSize, p.MinSize)
	}

	colors := []struct {
		name  string
		value *uint32
	}{
		{"color0", &p.Color0},
		{"color1", p.Color1},
		{"color2", p.Color2},
		{"mcolor", &p.MColor},
	}
	for _, c := range colors {
		if c.value == nil {
			continue
		}
		if err := colorspace.ValidateRGB(*c.value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrOutOfRange, c.name, err)
		}
	}

	if _, err := p.Mark.MarshalText(); err != nil {
		return fmt.Errorf("%w: mark: %v", ErrOutOfRange, err)
	}

	return nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %d outside [%d,%d]", ErrOutOfRange, name, v, lo, hi)
	}
	return nil
}

// Secondary returns the configured secondary colors in order.
func (p Properties) Secondary() []uint32 {
	var colors []uint32
	for _, c := range []*uint32{p.Color1, p.Color2} {
		if c != nil {
			colors = append(colors, *c)
		}
	}
	return colors
}

// Matcher builds the color matcher for the configured colors.
func (p Properties) Matcher() (*colorspace.Matcher, error) {
	var secondary []colorspace.YUV
	for _, c := range p.Secondary() {
		secondary = append(secondary, colorspace.FromRGB(c))
	}
	return colorspace.NewMatcher(p.Threshold, colorspace.FromRGB(p.Color0), secondary...)
}

// TrackerConfig builds the tracker configuration.
func (p Properties) TrackerConfig() (track.Config, error) {
	m, err := p.Matcher()
	if err != nil {
		return track.Config{}, err
	}
	return track.Config{
		Matcher:    m,
		MinSize:    p.MinSize,
		MaxSize:    p.MaxSize,
		Step:       p.Speed,
		MaxObjects: p.Objects,
		RayStep:    region.DefaultRayStep,
	}, nil
}

// MarkParams returns the marking parameters for m.
func (p Properties) MarkParams(m *colorspace.Matcher) effects.Params {
	return effects.Params{
		Color:   colorspace.FromRGB(p.MColor),
		Matcher: m,
		Size:    p.Speed,
	}
}

// Parse decodes YAML properties from r over the defaults and validates
// them. An empty document yields the defaults.
func Parse(r io.Reader) (Properties, error) {
	p := DefaultProperties()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Properties{}, fmt.Errorf("failed to parse properties: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Properties{}, fmt.Errorf("invalid properties: %w", err)
	}

	return p, nil
}

// Load reads and validates a YAML properties file.
func Load(path string) (Properties, error) {
	file, err := os.Open(path)
	if err != nil {
		return Properties{}, fmt.Errorf("failed to read properties file: %w", err)
	}
	defer file.Close()

	p, err := Parse(file)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Load",
			"path":     path,
			"error":    err.Error(),
		}).Error("Failed to load properties")
		return Properties{}, err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Load",
		"path":      path,
		"mark":      p.Mark.String(),
		"threshold": p.Threshold,
		"objects":   p.Objects,
	}).Info("Properties loaded")

	return p, nil
}

// Marshal encodes the properties as YAML.
func (p Properties) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
