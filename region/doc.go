// Package region approximates the bounding rectangle of a patch of
// matching color by casting rays from a seed pixel.
//
// It is not a flood fill. Bounds starts from a single-pixel rectangle and
// repeatedly pushes each of its four edges outward by casting a ray from
// every pixel currently on that edge, until a full pass moves nothing:
//
//	p := region.NewProber(f, matcher, region.DefaultRayStep)
//	r, ok := p.Bounds(region.Point{X: 120, Y: 80})
//	if ok {
//	    c := r.Center()
//	}
//
// Rays move in coarse steps first and fall back to unit steps at the first
// mismatch, so a ray costs about extent/step + step color tests. Concave
// or touching blobs of the same color can be under- or over-estimated.
package region
