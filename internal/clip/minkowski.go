package clip

import (
	clipper "github.com/ctessum/go.clipper"

	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

// Sum computes the Minkowski sum of two polygons with holes.
//
// For filled simple polygons P and Q the sum decomposes exactly into
//
//	P ⊕ Q = ⋃_j (P + q_j) ∪ ⋃_i (Q + p_i) ∪ (∂P ⊕ ∂Q)
//
// where the boundary convolution ∂P ⊕ ∂Q is the union of the edge-pair
// parallelograms produced by Clipper's Minkowski quad sweep. Every
// vertex of the construction is a sum of two input vertices, so the
// union is exact on the coordinate grid.
//
// A hole g of either operand removes exactly the translations at which
// the other operand, reflected through the origin, nests strictly
// inside g. That erosion region is (g ⊕ O) ∖ (∂g ⊕ O) with O the other
// operand's outer boundary, and is subtracted from the filled sum.
// Holes of the sum therefore appear precisely where the reflected copy
// of one shape fits wholly inside a hole of the other; an NFP passes
// the already reflected −B, so its holes are where B itself nests.
//
// Inputs are normalized to counter-clockwise boundaries. The sum of two
// connected sets is connected, so a single polygon is returned.
func Sum(a, b geom.Polygon) geom.Polygon {
	if a.IsEmpty() || b.IsEmpty() {
		return geom.Polygon{}
	}
	a = a.Normalized()
	b = b.Normalized()
	full := unionPaths(regionSumPaths(a.Boundary, b.Boundary))

	var carve clipper.Paths
	for _, g := range a.Holes {
		carve = append(carve, erosionPaths(g.Oriented(1), b.Boundary)...)
	}
	for _, h := range b.Holes {
		carve = append(carve, erosionPaths(h.Oriented(1), a.Boundary)...)
	}

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(full, clipper.PtSubject, true)
	op := clipper.CtUnion
	if len(carve) > 0 {
		c.AddPaths(carve, clipper.PtClip, true)
		op = clipper.CtDifference
	}
	tree, ok := c.Execute2(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return geom.Polygon{}
	}
	return largestPolygon(treePolygons(tree))
}

// regionSumPaths builds the constituent paths of the filled sum of two
// counter-clockwise rings: the boundary-convolution quads plus a full
// translated copy of each ring at every vertex of the other.
func regionSumPaths(p, q geom.Ring) clipper.Paths {
	c := clipper.NewClipper(clipper.IoNone)
	paths := c.Minkowski(ringPath(p), ringPath(q), true, true)
	for _, v := range q {
		paths = append(paths, translatedPath(p, geom.Vector{X: v.X, Y: v.Y}))
	}
	for _, v := range p {
		paths = append(paths, translatedPath(q, geom.Vector{X: v.X, Y: v.Y}))
	}
	return paths
}

// curveSumPaths builds the sum of the closed curve ∂g with the filled
// ring o: a translated copy of o at every vertex of g plus the
// boundary-convolution quads.
func curveSumPaths(g, o geom.Ring) clipper.Paths {
	c := clipper.NewClipper(clipper.IoNone)
	paths := c.Minkowski(ringPath(o), ringPath(g), true, true)
	for _, v := range g {
		paths = append(paths, translatedPath(o, geom.Vector{X: v.X, Y: v.Y}))
	}
	return paths
}

// erosionPaths returns the translations at which a copy of the ring o,
// taken as a filled region, lies strictly inside the filled ring g:
// (g ⊕ o) ∖ (∂g ⊕ o). Empty when o is too large to fit inside g.
func erosionPaths(g, o geom.Ring) clipper.Paths {
	grown := unionPaths(regionSumPaths(g, o))
	sweep := unionPaths(curveSumPaths(g, o))
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(grown, clipper.PtSubject, true)
	c.AddPaths(sweep, clipper.PtClip, true)
	solution, ok := c.Execute1(clipper.CtDifference, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil
	}
	return solution
}

// unionPaths merges overlapping constituent paths into a clean region.
func unionPaths(paths clipper.Paths) clipper.Paths {
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(paths, clipper.PtSubject, true)
	solution, ok := c.Execute1(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil
	}
	return solution
}
