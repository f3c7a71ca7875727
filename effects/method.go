package effects

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/motrack/colorspace"
)

// MarkMethod selects how tracked objects are marked.
type MarkMethod int

// Mark methods. MarkBlur uses a fixed 8 pixel kernel while MarkSizeBlur
// and MarkDecimate use Params.Size.
const (
	MarkNothing MarkMethod = iota
	MarkCrosshairs
	MarkBox
	MarkBoth
	MarkCloak
	MarkBlur
	MarkSizeBlur
	MarkDecimate
	MarkEdge
	MarkOutline
	MarkColorize
	MarkErase
)

// fixedBlurSize is the kernel size of MarkBlur.
const fixedBlurSize = 8

var markNames = []string{
	MarkNothing:    "nothing",
	MarkCrosshairs: "crosshairs",
	MarkBox:        "box",
	MarkBoth:       "both",
	MarkCloak:      "cloak",
	MarkBlur:       "blur",
	MarkSizeBlur:   "sizeblur",
	MarkDecimate:   "decimate",
	MarkEdge:       "edge",
	MarkOutline:    "outline",
	MarkColorize:   "colorize",
	MarkErase:      "erase",
}

// String returns the configuration name of the method.
func (m MarkMethod) String() string {
	if m >= 0 && int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("MarkMethod(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m MarkMethod) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(markNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MarkMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseMarkMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMarkMethod looks a method up by name, case-insensitively.
func ParseMarkMethod(name string) (MarkMethod, error) {
	for i, n := range markNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return MarkMethod(i), nil
		}
	}
	return MarkNothing, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// MarkMethods returns every method in declaration order.
func MarkMethods() []MarkMethod {
	methods := make([]MarkMethod, len(markNames))
	for i := range methods {
		methods[i] = MarkMethod(i)
	}
	return methods
}

// Params configures the effect built by ForMethod.
type Params struct {
	// Color is the marker color.
	Color colorspace.YUV
	// Matcher supplies the tracked colors for outline and colorize.
	Matcher *colorspace.Matcher
	// Size is the kernel or block size for sizeblur and decimate.
	Size int
}

// ForMethod builds the effect for a mark method. MarkNothing yields an
// empty chain.
func ForMethod(method MarkMethod, p Params) (Effect, error) {
	var effect Effect
	switch method {
	case MarkNothing:
		effect = NewEffectChain()
	case MarkCrosshairs:
		effect = NewCrosshairsEffect(p.Color)
	case MarkBox:
		effect = NewBoxEffect(p.Color)
	case MarkBoth:
		effect = NewEffectChain(NewBoxEffect(p.Color), NewCrosshairsEffect(p.Color))
	case MarkCloak:
		effect = NewCloakEffect()
	case MarkBlur:
		effect = NewBlurEffect(fixedBlurSize)
	case MarkSizeBlur, MarkDecimate:
		if p.Size < 1 {
			return nil, fmt.Errorf("%w: %s size %d", ErrInvalidSize, method, p.Size)
		}
		if method == MarkSizeBlur {
			effect = NewBlurEffect(p.Size)
		} else {
			effect = NewDecimateEffect(p.Size)
		}
	case MarkEdge:
		effect = NewEdgeEffect(p.Color)
	case MarkOutline, MarkColorize:
		if p.Matcher == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoMatcher, method)
		}
		if method == MarkOutline {
			effect = NewOutlineEffect(p.Matcher, p.Color)
		} else {
			effect = NewColorizeEffect(p.Matcher, p.Color)
		}
	case MarkErase:
		effect = NewEraseEffect()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
	}

	logrus.WithFields(logrus.Fields{
		"function": "ForMethod",
		"method":   method.String(),
		"effect":   effect.GetName(),
	}).Debug("Mark effect selected")

	return effect, nil
}
