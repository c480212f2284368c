package nest

import (
	"github.com/DanielLiamAnderson/Packaide/internal/clip"
	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

// NFPSimple computes the no-fit polygon of the orbiting ring b around
// the fixed ring a: the set of translations at which b touches a
// without overlapping its interior is the boundary of the result, and
// overlapping translations are its interior. Realized as the Minkowski
// sum of a with b reflected through the origin, after shifting b's
// first vertex to the origin as the reference point.
func NFPSimple(a, b geom.Ring) geom.Polygon {
	a = a.Oriented(1)
	b = b.Oriented(1)
	if len(b) == 0 {
		return geom.Polygon{}
	}
	shifted := b.Translate(geom.Point{}.Sub(b[0]))
	minus := shifted.Transform(geom.Reflection())
	return clip.Sum(geom.Polygon{Boundary: a}, geom.Polygon{Boundary: minus})
}

// NFP is NFPSimple for polygons with holes. Holes of the result are the
// translations at which b nests entirely inside a hole of a.
func NFP(a, b geom.Polygon) geom.Polygon {
	if a.IsEmpty() || b.IsEmpty() {
		return geom.Polygon{}
	}
	first := b.Boundary[0]
	shifted := b.Translate(geom.Point{}.Sub(first))
	minus := shifted.Transform(geom.Reflection())
	return clip.Sum(a, minus)
}

// InnerFit computes the inner-fit polygon for the special case of a
// rectangular container: the set of translations t with b + t contained
// in a's bounding rectangle. b is referenced by its first boundary
// vertex. Returns the empty polygon when b cannot fit at all; the
// result may be degenerate (zero width or height) when b fits exactly.
func InnerFit(a, b geom.Polygon) geom.Polygon {
	if a.IsEmpty() || b.IsEmpty() {
		return geom.Polygon{}
	}
	boxA := a.BBox()
	first := b.Boundary[0]
	boxB := b.Boundary.Translate(geom.Point{}.Sub(first)).BBox()

	if boxA.Width() < boxB.Width() || boxA.Height() < boxB.Height() {
		return geom.Polygon{}
	}
	return geom.Polygon{Boundary: geom.RectRing(
		geom.Point{X: boxA.Min.X - boxB.Min.X, Y: boxA.Min.Y - boxB.Min.Y},
		geom.Point{X: boxA.Max.X - boxB.Max.X, Y: boxA.Max.Y - boxB.Max.Y},
	)}
}

// CachedNFP is the hot-path NFP between two canonical shapes, assuming
// a has been placed with the given translation and rotation and b is
// rotated by rotB. The memoized form carries no translation at all:
// rotate a, rotate and reflect b, sum. The caller's translation is
// applied on every lookup, since translating the fixed shape translates
// its NFP by the same vector.
func CachedNFP(s *State, a Handle, translate geom.Vector, rotA float64, b Handle, rotB float64) geom.Polygon {
	key := nfpKey{a: a, b: b, rotA: rotA, rotB: rotB}
	nfp, ok := s.nfps[key]
	if !ok {
		rotatedA := s.Polygon(a).Transform(geom.Rotation(rotA))
		minusB := s.Polygon(b).Transform(geom.Rotation(rotB)).Transform(geom.Reflection())
		nfp = clip.Sum(rotatedA, minusB)
		s.nfps[key] = nfp
	}
	return nfp.Translate(translate)
}
