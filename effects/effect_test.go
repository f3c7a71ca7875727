package effects

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/region"
)

type failingEffect struct{}

func (failingEffect) Apply(*frame.Frame, Target) error { return errors.New("boom") }
func (failingEffect) GetName() string                  { return "Failing" }

type recordingEffect struct {
	name  string
	calls *[]string
}

func (r recordingEffect) Apply(*frame.Frame, Target) error {
	*r.calls = append(*r.calls, r.name)
	return nil
}

func (r recordingEffect) GetName() string { return r.name }

func TestTargetOf(t *testing.T) {
	r := region.Rect{X1: 10, Y1: 20, X2: 30, Y2: 41}
	assert.Equal(t, Target{Rect: r, Center: region.Point{X: 20, Y: 30}}, TargetOf(r))
}

func TestEffectChain(t *testing.T) {
	var calls []string
	chain := NewEffectChain(recordingEffect{"a", &calls})
	chain.AddEffect(recordingEffect{"b", &calls})

	require.Equal(t, 2, chain.GetEffectCount())
	assert.Equal(t, "a+b", chain.GetName())

	require.NoError(t, chain.Apply(createTestFrame(t), Target{}))
	assert.Equal(t, []string{"a", "b"}, calls)

	chain.Clear()
	assert.Equal(t, 0, chain.GetEffectCount())
	assert.Equal(t, "Nothing", chain.GetName())
}

func TestEffectChain_StopsOnError(t *testing.T) {
	var calls []string
	chain := NewEffectChain(failingEffect{}, recordingEffect{"after", &calls})

	err := chain.Apply(createTestFrame(t), Target{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "effect 0 (Failing) failed")
	assert.Empty(t, calls)
}

func TestEffectChain_NilFrame(t *testing.T) {
	assert.ErrorIs(t, NewEffectChain().Apply(nil, Target{}), ErrNilFrame)
}

func TestEffects_NilFrame(t *testing.T) {
	m := createTestMatcher(t)
	all := []Effect{
		NewBoxEffect(green),
		NewCrosshairsEffect(green),
		NewBlurEffect(8),
		NewDecimateEffect(4),
		NewEdgeEffect(green),
		NewOutlineEffect(m, green),
		NewColorizeEffect(m, green),
		NewCloakEffect(),
		NewEraseEffect(),
	}

	for _, effect := range all {
		t.Run(effect.GetName(), func(t *testing.T) {
			assert.ErrorIs(t, effect.Apply(nil, Target{}), ErrNilFrame)
		})
	}
}

func TestEffects_MatcherRequired(t *testing.T) {
	f := createTestFrame(t)

	assert.ErrorIs(t, NewOutlineEffect(nil, green).Apply(f, Target{}), ErrNoMatcher)
	assert.ErrorIs(t, NewColorizeEffect(nil, green).Apply(f, Target{}), ErrNoMatcher)
}

func TestSizeClamping(t *testing.T) {
	assert.Equal(t, "Blur(1)", NewBlurEffect(0).GetName())
	assert.Equal(t, "Decimate(1)", NewDecimateEffect(-5).GetName())
}

func TestBothEffect(t *testing.T) {
	sq := region.Rect{X1: 50, Y1: 50, X2: 89, Y2: 89}
	f := createTestFrame(t)

	effect, err := ForMethod(MarkBoth, Params{Color: green})
	require.NoError(t, err)
	require.NoError(t, effect.Apply(f, TargetOf(sq)))

	assert.Equal(t, green, f.Sample(50, 50), "box corner")
	assert.Equal(t, green, f.Sample(65, 69), "crosshair arm")
	assert.Equal(t, background, f.Sample(69, 69), "crosshair gap")
}

func TestForMethod(t *testing.T) {
	m := createTestMatcher(t)
	p := Params{Color: green, Matcher: m, Size: 20}

	tests := []struct {
		method MarkMethod
		name   string
	}{
		{MarkNothing, "Nothing"},
		{MarkCrosshairs, "Crosshairs"},
		{MarkBox, "Box"},
		{MarkBoth, "Box+Crosshairs"},
		{MarkCloak, "Cloak"},
		{MarkBlur, "Blur(8)"},
		{MarkSizeBlur, "Blur(20)"},
		{MarkDecimate, "Decimate(20)"},
		{MarkEdge, "Edge"},
		{MarkOutline, "Outline"},
		{MarkColorize, "Colorize"},
		{MarkErase, "Erase"},
	}

	require.Len(t, tests, len(MarkMethods()))

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			effect, err := ForMethod(tt.method, p)
			require.NoError(t, err)
			assert.Equal(t, tt.name, effect.GetName())

			f := createTestFrame(t, region.Rect{X1: 50, Y1: 50, X2: 89, Y2: 89})
			assert.NoError(t, effect.Apply(f, TargetOf(region.Rect{X1: 50, Y1: 50, X2: 89, Y2: 89})))
		})
	}
}

func TestForMethod_Errors(t *testing.T) {
	_, err := ForMethod(MarkSizeBlur, Params{})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ForMethod(MarkDecimate, Params{Size: 0})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ForMethod(MarkOutline, Params{Size: 4})
	assert.ErrorIs(t, err, ErrNoMatcher)

	_, err = ForMethod(MarkColorize, Params{})
	assert.ErrorIs(t, err, ErrNoMatcher)

	_, err = ForMethod(MarkMethod(42), Params{})
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestParseMarkMethod(t *testing.T) {
	for _, method := range MarkMethods() {
		got, err := ParseMarkMethod(method.String())
		require.NoError(t, err)
		assert.Equal(t, method, got)
	}

	got, err := ParseMarkMethod(" SizeBlur ")
	require.NoError(t, err)
	assert.Equal(t, MarkSizeBlur, got)

	_, err = ParseMarkMethod("sparkles")
	assert.ErrorIs(t, err, ErrUnknownMethod)

	assert.Equal(t, "MarkMethod(42)", MarkMethod(42).String())
}

func TestMarkMethodText(t *testing.T) {
	text, err := MarkErase.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "erase", string(text))

	var m MarkMethod
	require.NoError(t, m.UnmarshalText([]byte("decimate")))
	assert.Equal(t, MarkDecimate, m)

	assert.ErrorIs(t, m.UnmarshalText([]byte("bogus")), ErrUnknownMethod)

	_, err = MarkMethod(-1).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
