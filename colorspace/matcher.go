package colorspace

import "fmt"

// Matcher decides whether a sample belongs to one of the reference colors.
// It is immutable after construction and safe to share.
type Matcher struct {
	threshold int
	primary   YUV
	secondary []YUV
}

// NewMatcher creates a matcher for the primary color and up to
// MaxSecondary secondary colors.
func NewMatcher(threshold int, primary YUV, secondary ...YUV) (*Matcher, error) {
	if threshold < 0 || threshold > MaxThreshold {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrThreshold, threshold, MaxThreshold)
	}
	if len(secondary) > MaxSecondary {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrTooManyColors, len(secondary), MaxSecondary)
	}

	return &Matcher{
		threshold: threshold,
		primary:   primary,
		secondary: append([]YUV(nil), secondary...),
	}, nil
}

// Threshold returns the configured distance threshold.
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Primary returns the primary reference color.
func (m *Matcher) Primary() YUV {
	return m.primary
}

// Secondary returns a copy of the secondary reference colors.
func (m *Matcher) Secondary() []YUV {
	return append([]YUV(nil), m.secondary...)
}

// Matches reports whether c is strictly closer than the threshold to ref.
func (m *Matcher) Matches(c, ref YUV) bool {
	return Distance(c, ref) < m.threshold
}

// MatchPrimary tests c against the primary color only.
func (m *Matcher) MatchPrimary(c YUV) bool {
	return m.Matches(c, m.primary)
}

// MatchAny tests the primary color first and the secondary colors, in
// order, only when the primary test fails.
func (m *Matcher) MatchAny(c YUV) bool {
	if m.Matches(c, m.primary) {
		return true
	}
	for _, ref := range m.secondary {
		if m.Matches(c, ref) {
			return true
		}
	}
	return false
}
