// Package colorspace provides the color model used by the tracker.
//
// Colors are held as three 8-bit components in a YUV-like perceptual
// space. Reference colors are configured as packed 24-bit RGB integers
// and converted once with FromRGB:
//
//	red := colorspace.FromRGB(0xFF0000)
//
// Two colors are compared with a weighted absolute difference in which
// each channel is weighted by its index plus one:
//
//	d := colorspace.Distance(a, b) // |dY| + 2|dU| + 3|dV|
//
// The chroma channels therefore dominate the luma channel, so matching
// favors hue over shading and uneven lighting.
//
// # Matching
//
// A Matcher holds one primary reference color, up to two secondary
// colors and a single threshold:
//
//	m, err := colorspace.NewMatcher(88, red, colorspace.FromRGB(0x000000))
//	if err != nil {
//	    return err
//	}
//	if m.MatchAny(pixel) {
//	    // pixel belongs to a tracked color
//	}
//
// MatchAny always tests the primary color first and only falls back to
// the secondary colors when the primary test fails.
package colorspace
