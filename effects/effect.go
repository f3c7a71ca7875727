package effects

import (
	"fmt"

	"github.com/opd-ai/motrack/colorspace"
	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/region"
)

// Target is the region an effect is applied to.
type Target struct {
	Rect   region.Rect
	Center region.Point
}

// TargetOf returns the target for r centered on its midpoint.
func TargetOf(r region.Rect) Target {
	return Target{Rect: r, Center: r.Center()}
}

// Effect represents a marking operation applied to one region of a frame.
type Effect interface {
	// Apply modifies the frame in place around the target
	Apply(f *frame.Frame, t Target) error
	// GetName returns the effect name for identification
	GetName() string
}

// EffectChain manages multiple effects applied in sequence.
type EffectChain struct {
	effects []Effect
}

// NewEffectChain creates a new effect chain holding the given effects.
func NewEffectChain(effects ...Effect) *EffectChain {
	return &EffectChain{
		effects: append(make([]Effect, 0, len(effects)), effects...),
	}
}

// AddEffect adds an effect to the end of the chain.
func (ec *EffectChain) AddEffect(effect Effect) {
	ec.effects = append(ec.effects, effect)
}

// Apply runs every effect of the chain on the target, stopping at the
// first failure. An empty chain leaves the frame untouched.
func (ec *EffectChain) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}

	for i, effect := range ec.effects {
		if err := effect.Apply(f, t); err != nil {
			return fmt.Errorf("effect %d (%s) failed: %w", i, effect.GetName(), err)
		}
	}

	return nil
}

// GetName returns the names of the chained effects joined with "+".
func (ec *EffectChain) GetName() string {
	if len(ec.effects) == 0 {
		return "Nothing"
	}
	name := ""
	for i, effect := range ec.effects {
		if i > 0 {
			name += "+"
		}
		name += effect.GetName()
	}
	return name
}

// GetEffectCount returns the number of effects in the chain.
func (ec *EffectChain) GetEffectCount() int {
	return len(ec.effects)
}

// Clear removes all effects from the chain.
func (ec *EffectChain) Clear() {
	ec.effects = ec.effects[:0]
}

// BoxEffect draws the target rectangle.
type BoxEffect struct {
	color colorspace.YUV
}

// NewBoxEffect creates a box effect drawing in c.
func NewBoxEffect(c colorspace.YUV) *BoxEffect {
	return &BoxEffect{color: c}
}

// Apply draws the rectangle.
func (be *BoxEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	Box(f, t.Rect, be.color)
	return nil
}

// GetName returns the effect name.
func (be *BoxEffect) GetName() string {
	return "Box"
}

// CrosshairsEffect draws crosshairs at the target center.
type CrosshairsEffect struct {
	color colorspace.YUV
}

// NewCrosshairsEffect creates a crosshairs effect drawing in c.
func NewCrosshairsEffect(c colorspace.YUV) *CrosshairsEffect {
	return &CrosshairsEffect{color: c}
}

// Apply draws the crosshairs.
func (ce *CrosshairsEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	Crosshairs(f, t.Center, ce.color)
	return nil
}

// GetName returns the effect name.
func (ce *CrosshairsEffect) GetName() string {
	return "Crosshairs"
}

// BlurEffect blurs the target rectangle.
type BlurEffect struct {
	size int
}

// NewBlurEffect creates a blur effect sampling size/2 pixels away.
// Sizes below 1 are raised to 1.
func NewBlurEffect(size int) *BlurEffect {
	if size < 1 {
		size = 1
	}
	return &BlurEffect{size: size}
}

// Apply blurs the rectangle.
func (be *BlurEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	Blur(f, t.Rect, be.size)
	return nil
}

// GetName returns the effect name.
func (be *BlurEffect) GetName() string {
	return fmt.Sprintf("Blur(%d)", be.size)
}

// DecimateEffect pixelates the target rectangle.
type DecimateEffect struct {
	size int
}

// NewDecimateEffect creates a decimation effect with size x size blocks.
// Sizes below 1 are raised to 1.
func NewDecimateEffect(size int) *DecimateEffect {
	if size < 1 {
		size = 1
	}
	return &DecimateEffect{size: size}
}

// Apply pixelates the rectangle.
func (de *DecimateEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	Decimate(f, t.Rect, de.size)
	return nil
}

// GetName returns the effect name.
func (de *DecimateEffect) GetName() string {
	return fmt.Sprintf("Decimate(%d)", de.size)
}

// EdgeEffect marks luma edges around the target.
type EdgeEffect struct {
	color colorspace.YUV
}

// NewEdgeEffect creates an edge effect marking in c.
func NewEdgeEffect(c colorspace.YUV) *EdgeEffect {
	return &EdgeEffect{color: c}
}

// Apply marks the edges.
func (ee *EdgeEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	Edge(f, t.Rect, ee.color)
	return nil
}

// GetName returns the effect name.
func (ee *EdgeEffect) GetName() string {
	return "Edge"
}

// OutlineEffect draws the silhouette of the tracked colors.
type OutlineEffect struct {
	matcher *colorspace.Matcher
	color   colorspace.YUV
}

// NewOutlineEffect creates an outline effect for m's colors drawn in c.
func NewOutlineEffect(m *colorspace.Matcher, c colorspace.YUV) *OutlineEffect {
	return &OutlineEffect{matcher: m, color: c}
}

// Apply draws the outline.
func (oe *OutlineEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	if oe.matcher == nil {
		return ErrNoMatcher
	}
	Outline(f, t.Rect, oe.matcher, oe.color)
	return nil
}

// GetName returns the effect name.
func (oe *OutlineEffect) GetName() string {
	return "Outline"
}

// ColorizeEffect recolors the tracked colors inside the target.
type ColorizeEffect struct {
	matcher *colorspace.Matcher
	color   colorspace.YUV
}

// NewColorizeEffect creates a colorize effect for m's colors using the
// chroma of c.
func NewColorizeEffect(m *colorspace.Matcher, c colorspace.YUV) *ColorizeEffect {
	return &ColorizeEffect{matcher: m, color: c}
}

// Apply recolors the rectangle.
func (ce *ColorizeEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	if ce.matcher == nil {
		return ErrNoMatcher
	}
	Colorize(f, t.Rect, ce.matcher, ce.color)
	return nil
}

// GetName returns the effect name.
func (ce *ColorizeEffect) GetName() string {
	return "Colorize"
}

// CloakEffect hides the target by mirroring its surroundings.
type CloakEffect struct{}

// NewCloakEffect creates a cloak effect.
func NewCloakEffect() *CloakEffect {
	return &CloakEffect{}
}

// Apply cloaks the rectangle.
func (ce *CloakEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	Cloak(f, t.Rect)
	return nil
}

// GetName returns the effect name.
func (ce *CloakEffect) GetName() string {
	return "Cloak"
}

// EraseEffect fills the target with nearby rows.
type EraseEffect struct{}

// NewEraseEffect creates an erase effect.
func NewEraseEffect() *EraseEffect {
	return &EraseEffect{}
}

// Apply erases the rectangle.
func (ee *EraseEffect) Apply(f *frame.Frame, t Target) error {
	if f == nil {
		return ErrNilFrame
	}
	Erase(f, t.Rect)
	return nil
}

// GetName returns the effect name.
func (ee *EraseEffect) GetName() string {
	return "Erase"
}
