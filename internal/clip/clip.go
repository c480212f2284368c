// Package clip wraps the Clipper polygon clipping engine with the
// polygon-set operations the nesting engine needs: union, difference and
// enumeration of polygons with holes, plus Minkowski sums and outward
// offsetting. All operations run on the kernel's integer coordinates, so
// results are exact on the fixed-point grid and deterministic.
package clip

import (
	clipper "github.com/ctessum/go.clipper"

	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

// UnionAll returns the canonical polygon set equal to the union of the
// given polygons. Empty polygons are the empty set and act as the
// identity. The result has outer boundaries counter-clockwise and holes
// clockwise, with pairwise disjoint interiors.
func UnionAll(polys []geom.Polygon) []geom.Polygon {
	paths := make(clipper.Paths, 0, len(polys))
	for _, p := range polys {
		paths = append(paths, polygonPaths(p)...)
	}
	if len(paths) == 0 {
		return nil
	}
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(paths, clipper.PtSubject, true)
	tree, ok := c.Execute2(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil
	}
	return treePolygons(tree)
}

// Difference returns a minus b as a polygon set. Difference from the
// empty set is empty; subtracting the empty set is the identity (modulo
// regularization).
func Difference(a, b []geom.Polygon) []geom.Polygon {
	subject := make(clipper.Paths, 0, len(a))
	for _, p := range a {
		subject = append(subject, polygonPaths(p)...)
	}
	if len(subject) == 0 {
		return nil
	}
	clipPaths := make(clipper.Paths, 0, len(b))
	for _, p := range b {
		clipPaths = append(clipPaths, polygonPaths(p)...)
	}
	op := clipper.CtDifference
	if len(clipPaths) == 0 {
		op = clipper.CtUnion
	}
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(subject, clipper.PtSubject, true)
	if len(clipPaths) > 0 {
		c.AddPaths(clipPaths, clipper.PtClip, true)
	}
	tree, ok := c.Execute2(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil
	}
	return treePolygons(tree)
}

// ringPath converts a ring to a clipper path.
func ringPath(r geom.Ring) clipper.Path {
	path := make(clipper.Path, len(r))
	for i, p := range r {
		path[i] = &clipper.IntPoint{X: clipper.CInt(p.X), Y: clipper.CInt(p.Y)}
	}
	return path
}

// pathRing converts a clipper path back to a ring.
func pathRing(path clipper.Path) geom.Ring {
	r := make(geom.Ring, len(path))
	for i, p := range path {
		r[i] = geom.Point{X: geom.Coord(p.X), Y: geom.Coord(p.Y)}
	}
	return r
}

// translatedPath returns the ring shifted by v as a clipper path.
func translatedPath(r geom.Ring, v geom.Vector) clipper.Path {
	path := make(clipper.Path, len(r))
	for i, p := range r {
		path[i] = &clipper.IntPoint{
			X: clipper.CInt(p.X + v.X),
			Y: clipper.CInt(p.Y + v.Y),
		}
	}
	return path
}

// polygonPaths converts a polygon with holes to clipper paths with the
// winding convention the nonzero fill rule expects: outer boundary
// counter-clockwise, holes clockwise.
func polygonPaths(p geom.Polygon) clipper.Paths {
	if p.IsEmpty() {
		return nil
	}
	p = p.Normalized()
	paths := make(clipper.Paths, 0, 1+len(p.Holes))
	paths = append(paths, ringPath(p.Boundary))
	for _, h := range p.Holes {
		paths = append(paths, ringPath(h))
	}
	return paths
}

// treePolygons walks a clipper result tree and enumerates its component
// polygons with holes, outer boundary first and then each hole. Polygons
// nested inside holes come out as further components.
func treePolygons(tree *clipper.PolyTree) []geom.Polygon {
	var out []geom.Polygon
	var walk func(outers []*clipper.PolyNode)
	walk = func(outers []*clipper.PolyNode) {
		for _, node := range outers {
			poly := geom.Polygon{Boundary: pathRing(node.Contour()).Oriented(1)}
			for _, hole := range node.Childs() {
				poly.Holes = append(poly.Holes, pathRing(hole.Contour()).Oriented(-1))
				if len(hole.Childs()) > 0 {
					walk(hole.Childs())
				}
			}
			out = append(out, poly)
		}
	}
	walk(tree.Childs())
	return out
}

// largestPolygon picks the component with the largest outer boundary
// area. Used where a connected result is expected and clipping artifacts
// could only ever contribute degenerate extra components.
func largestPolygon(polys []geom.Polygon) geom.Polygon {
	best := geom.Polygon{}
	var bestArea int64 = -1
	for _, p := range polys {
		a := p.Boundary.Area2()
		if a < 0 {
			a = -a
		}
		if a > bestArea {
			bestArea = a
			best = p
		}
	}
	return best
}
