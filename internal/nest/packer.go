package nest

import (
	"math"
	"sort"

	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

// Sheet is a rectangular target anchored at the origin, with optional
// forbidden regions that placed parts must not overlap.
type Sheet struct {
	Width, Height float64
	Holes         []geom.Polygon
}

// boundary returns the sheet rectangle as a polygon.
func (s Sheet) boundary() geom.Polygon {
	return geom.Polygon{Boundary: geom.RectRing(
		geom.Point{},
		geom.Point{X: geom.FromFloat(s.Width), Y: geom.FromFloat(s.Height)},
	)}
}

// Placement records where one input polygon ended up: the translation
// of its reference vertex and its rotation in degrees.
type Placement struct {
	PolygonID int
	Translate geom.Point
	Rotate    float64
}

// transformedShape is one shape occupying a sheet: a canonical polygon
// plus the translation and rotation that position this instance.
type transformedShape struct {
	base     Handle
	shift    geom.Vector
	rotation float64
}

// PackDecreasing packs the polygons onto the sheets in decreasing order
// of bounding-box area (ties by input id), placing each on the first
// sheet that admits it. For every polygon it sweeps the requested
// number of evenly spaced rotations, enumerates the candidate points of
// the inner-fit region minus all no-fit polygons, and commits the
// placement with the lowest heuristic score; a small lexicographic
// bias toward low x+y breaks symmetric ties deterministically.
//
// The outer result has one entry per sheet touched during the search.
// When partial is false and some polygon fits nowhere, the result is
// nil; when partial is true, unplaceable polygons are skipped.
func PackDecreasing(sheets []Sheet, polygons []geom.Polygon, state *State, partial bool, rotations int) [][]Placement {
	if rotations < 1 {
		rotations = 1
	}

	// Canonical polygons are anchored with their first boundary vertex
	// at the origin so that translated copies of the same shape share
	// one interned instance.
	canonical := make([]Handle, len(polygons))
	for i, p := range polygons {
		first := p.Boundary[0]
		canonical[i] = state.Canonical(p.Translate(geom.Point{}.Sub(first)))
	}

	order := make([]int, len(polygons))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return polygons[order[i]].BBox().Area() > polygons[order[j]].BBox().Area()
	})

	var sheetPlacements [][]Placement
	var sheetParts [][]transformedShape
	var sheetScores []*heuristic
	used := 0

	for _, id := range order {
		placed := false
		cur := canonical[id]
		curPoly := state.Polygon(cur)

		for si := 0; si < len(sheets) && !placed; si++ {
			// First time this sheet is tried: record its holes as
			// occupying shapes and start its score.
			if si == used {
				used++
				sheetPlacements = append(sheetPlacements, nil)
				sheetParts = append(sheetParts, nil)
				for _, hole := range sheets[si].Holes {
					if hole.IsEmpty() {
						continue
					}
					first := hole.Boundary[0]
					h := state.Canonical(hole.Translate(geom.Point{}.Sub(first)))
					sheetParts[si] = append(sheetParts[si], transformedShape{
						base:  h,
						shift: geom.Vector{X: first.X, Y: first.Y},
					})
				}
				sheetScores = append(sheetScores, newHeuristic(sheets[si]))
			}

			var bestPoint geom.Point
			bestRot := 0
			bestScore := math.Inf(1)

			for i := 0; i < rotations; i++ {
				angle := float64(i) * 2 * math.Pi / float64(rotations)
				rotated := curPoly.Transform(geom.Rotation(angle))

				ifp := InnerFit(sheets[si].boundary(), rotated)

				candidates := &CandidatePoints{}
				candidates.SetBoundary(ifp.Boundary)
				for _, shape := range sheetParts[si] {
					candidates.AddNFP(CachedNFP(state, shape.base, shape.shift, shape.rotation, cur, angle))
				}

				points := candidates.Points()
				if len(points) == 0 {
					continue
				}
				placed = true

				rotatedBox := rotated.BBox()
				for _, p := range points {
					box := rotatedBox.Translate(geom.Vector{X: p.X, Y: p.Y})
					score := sheetScores[si].evalWith(floatBounds(box)) +
						0.01*(p.X.Float()+p.Y.Float())
					if score < bestScore {
						bestScore = score
						bestPoint = p
						bestRot = i
					}
				}
			}

			if placed {
				angle := float64(bestRot) * 2 * math.Pi / float64(rotations)
				shift := geom.Vector{X: bestPoint.X, Y: bestPoint.Y}
				final := curPoly.Transform(geom.Rotation(angle)).Translate(shift)
				sheetScores[si].add(floatBounds(final.BBox()))
				sheetParts[si] = append(sheetParts[si], transformedShape{
					base:     cur,
					shift:    shift,
					rotation: angle,
				})
				sheetPlacements[si] = append(sheetPlacements[si], Placement{
					PolygonID: id,
					Translate: bestPoint,
					Rotate:    float64(bestRot) * 360 / float64(rotations),
				})
			}
		}

		if !placed && !partial {
			return nil
		}
	}

	return sheetPlacements
}

// floatBounds converts an exact bounding box to the heuristic's float
// representation.
func floatBounds(r geom.Rect) bounds {
	return bounds{
		xmin: r.Min.X.Float(),
		xmax: r.Max.X.Float(),
		ymin: r.Min.Y.Float(),
		ymax: r.Max.Y.Float(),
	}
}
