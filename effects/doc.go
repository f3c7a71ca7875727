// Package effects marks tracked regions in a frame.
//
// The functions in this package are stateless pixel operations on a
// rectangle of a frame: drawing (Box, Crosshairs, Colorize), filtering
// (Blur, Decimate, Edge, Outline) and background fill (Cloak, Erase).
// They mutate the frame in place. Coordinates outside the frame read the
// nearest edge pixel and writes outside the frame are dropped.
//
// # Effects and chains
//
// Each operation is also available as an Effect so that hosts can
// configure a marking method once and apply it to every tracked object:
//
//	effect, err := effects.ForMethod(effects.MarkBoth, effects.Params{
//	    Color: colorspace.FromRGB(colorspace.Green),
//	})
//	for _, obj := range snapshot.Objects {
//	    effect.Apply(f, effects.Target{Rect: obj.Rect, Center: obj.Center})
//	}
//
// An EffectChain applies several effects in sequence.
package effects
