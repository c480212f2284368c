package nest

import (
	"github.com/DanielLiamAnderson/Packaide/internal/clip"
	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

// CandidatePoints reduces the continuous placement search to a finite
// vertex set. Given the inner-fit boundary of the container and the
// no-fit polygons of every shape already placed, the legal translations
// form the boundary region minus the union of the NFPs; an optimal
// placement under any translation-monotone score lies at a vertex of
// that region.
//
// Exact-fit placements need care beyond the regularized difference:
// zero-area slivers, where the part only just fits, are erased by
// regularization. Two extra candidate classes recover them: vertices of
// the NFP union that lie inside the closed boundary (legal touching
// spots by construction), and, when the boundary itself is degenerate
// (a segment or single point), its crossings with the NFP union.
type CandidatePoints struct {
	boundary    geom.Ring
	hasBoundary bool
	nfps        []geom.Polygon
}

// SetBoundary sets the inner-fit polygon of the container. An empty
// ring means the shape does not fit in the container at all.
func (c *CandidatePoints) SetBoundary(r geom.Ring) {
	c.boundary = r
	c.hasBoundary = true
}

// AddNFP adds the no-fit polygon of one already-placed shape.
func (c *CandidatePoints) AddNFP(p geom.Polygon) {
	c.nfps = append(c.nfps, p)
}

// Points returns the candidate placement points. The order is a
// deterministic function of the inputs.
func (c *CandidatePoints) Points() []geom.Point {
	// An empty boundary represents the empty set, not the whole plane:
	// the shape cannot be placed here.
	if c.hasBoundary && len(c.boundary) == 0 {
		return nil
	}

	union := clip.UnionAll(c.nfps)

	// Without a container boundary the candidates are the vertices of
	// the union itself: every one is a touching placement.
	if !c.hasBoundary {
		var pts []geom.Point
		for _, p := range union {
			pts = appendVertices(pts, p)
		}
		return pts
	}

	box := c.boundary.BBox()
	degenerate := box.Width() == 0 || box.Height() == 0

	var pts []geom.Point
	if degenerate {
		pts = degenerateCandidates(box, union)
	} else {
		diff := clip.Difference([]geom.Polygon{{Boundary: c.boundary}}, union)
		for _, p := range diff {
			pts = appendVertices(pts, p)
		}
		for _, p := range union {
			for _, v := range vertexSeq(p) {
				if box.Contains(v) {
					pts = append(pts, v)
				}
			}
		}
	}
	return dedupePoints(pts)
}

// degenerateCandidates handles a boundary that collapsed to an
// axis-aligned segment or point: the part fits the container exactly in
// at least one axis. Candidates are the endpoints, the NFP-union
// vertices on the segment, and the crossings of the segment with NFP
// edges, all filtered to points not strictly inside the union.
func degenerateCandidates(box geom.Rect, union []geom.Polygon) []geom.Point {
	raw := []geom.Point{box.Min, box.Max, {X: box.Max.X, Y: box.Min.Y}, {X: box.Min.X, Y: box.Max.Y}}
	for _, p := range union {
		for _, v := range vertexSeq(p) {
			if box.Contains(v) {
				raw = append(raw, v)
			}
		}
		for _, ring := range append([]geom.Ring{p.Boundary}, p.Holes...) {
			raw = append(raw, segmentCrossings(box, ring)...)
		}
	}

	var pts []geom.Point
	for _, p := range dedupePoints(raw) {
		if !strictlyInside(p, union) {
			pts = append(pts, p)
		}
	}
	return pts
}

// segmentCrossings returns the points where edges of the ring cross the
// degenerate boundary box (an axis-aligned segment, possibly a point).
func segmentCrossings(box geom.Rect, ring geom.Ring) []geom.Point {
	var pts []geom.Point
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if box.Height() == 0 {
			y := box.Min.Y
			if (a.Y > y) != (b.Y > y) && a.Y != b.Y {
				x := a.X + roundDiv(int64(b.X-a.X)*int64(y-a.Y), int64(b.Y-a.Y))
				if x >= box.Min.X && x <= box.Max.X {
					pts = append(pts, geom.Point{X: x, Y: y})
				}
			}
		}
		if box.Width() == 0 {
			x := box.Min.X
			if (a.X > x) != (b.X > x) && a.X != b.X {
				y := a.Y + roundDiv(int64(b.Y-a.Y)*int64(x-a.X), int64(b.X-a.X))
				if y >= box.Min.Y && y <= box.Max.Y {
					pts = append(pts, geom.Point{X: x, Y: y})
				}
			}
		}
	}
	return pts
}

// roundDiv divides with rounding to nearest, halves away from zero.
func roundDiv(num, den int64) geom.Coord {
	if den < 0 {
		num, den = -num, -den
	}
	if num >= 0 {
		return geom.Coord((num + den/2) / den)
	}
	return geom.Coord(-((-num + den/2) / den))
}

// strictlyInside reports whether p lies in the interior of the polygon
// set. Points on any boundary are touching placements and not inside.
func strictlyInside(p geom.Point, set []geom.Polygon) bool {
	for _, poly := range set {
		side := pointInRing(p, poly.Boundary)
		if side == 0 {
			return false
		}
		if side < 0 {
			continue
		}
		inHole := false
		for _, h := range poly.Holes {
			s := pointInRing(p, h)
			if s == 0 {
				return false
			}
			if s > 0 {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}

// pointInRing classifies p against the ring: +1 strictly inside, 0 on
// the boundary, -1 outside. Exact integer arithmetic, orientation
// independent.
func pointInRing(p geom.Point, ring geom.Ring) int {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if onSegment(p, a, b) {
			return 0
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			det := int64(b.X-a.X)*int64(p.Y-a.Y) - int64(b.Y-a.Y)*int64(p.X-a.X)
			if b.Y > a.Y {
				if det > 0 {
					inside = !inside
				}
			} else {
				if det < 0 {
					inside = !inside
				}
			}
		}
	}
	if inside {
		return 1
	}
	return -1
}

// onSegment reports whether p lies on the closed segment ab.
func onSegment(p, a, b geom.Point) bool {
	det := int64(b.X-a.X)*int64(p.Y-a.Y) - int64(b.Y-a.Y)*int64(p.X-a.X)
	if det != 0 {
		return false
	}
	return p.X >= minC(a.X, b.X) && p.X <= maxC(a.X, b.X) &&
		p.Y >= minC(a.Y, b.Y) && p.Y <= maxC(a.Y, b.Y)
}

func minC(a, b geom.Coord) geom.Coord {
	if a < b {
		return a
	}
	return b
}

func maxC(a, b geom.Coord) geom.Coord {
	if a > b {
		return a
	}
	return b
}

// vertexSeq lists a polygon's vertices, outer boundary first and then
// each hole.
func vertexSeq(p geom.Polygon) []geom.Point {
	pts := make([]geom.Point, 0, len(p.Boundary))
	pts = append(pts, p.Boundary...)
	for _, h := range p.Holes {
		pts = append(pts, h...)
	}
	return pts
}

func appendVertices(pts []geom.Point, p geom.Polygon) []geom.Point {
	return append(pts, vertexSeq(p)...)
}

// dedupePoints removes duplicates while preserving first-seen order, so
// candidate iteration stays deterministic.
func dedupePoints(pts []geom.Point) []geom.Point {
	seen := make(map[geom.Point]struct{}, len(pts))
	out := pts[:0]
	for _, p := range pts {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
