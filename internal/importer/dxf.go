package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	packaide "github.com/DanielLiamAnderson/Packaide"
	"github.com/DanielLiamAnderson/Packaide/internal/model"
)

// segment is a line segment between two points, used for chaining
// disconnected LINE and ARC entities into closed outlines.
type segment struct {
	start packaide.Point
	end   packaide.Point
}

// ImportDXF imports parts from a DXF file. Each closed shape
// (LWPOLYLINE, CIRCLE, or chain of connected LINEs/ARCs) becomes an
// outline; an outline lying entirely inside another becomes a hole of
// that part, so drawings with cutouts nest smaller parts inside them.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]packaide.Point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleOutline(e, 64))

		case *entity.Arc:
			pts := arcPoints(e, 32)
			for i := 0; i < len(pts)-1; i++ {
				segments = append(segments, segment{start: pts[i], end: pts[i+1]})
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: packaide.Point{X: e.Start[0], Y: e.Start[1]},
				end:   packaide.Point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	for _, chained := range chainSegments(segments, 0.01) {
		if len(chained) >= 3 {
			outlines = append(outlines, chained)
		}
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	partNum := 0
	for _, shape := range groupOutlines(outlines) {
		min, max := outlineBounds(shape.Boundary.Points)
		width := max.X - min.X
		height := max.Y - min.Y
		if width < 0.01 || height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", width, height))
			continue
		}
		partNum++
		result.Parts = append(result.Parts, model.NewPart(fmt.Sprintf("DXF Part %d", partNum), shape))
	}

	return result
}

// groupOutlines assigns each outline contained in exactly one other
// outline as a hole of that outline; the rest become part boundaries.
func groupOutlines(outlines [][]packaide.Point) []packaide.PolygonWithHoles {
	parent := make([]int, len(outlines))
	for i := range outlines {
		parent[i] = -1
		for j := range outlines {
			if i == j || len(outlines[i]) == 0 {
				continue
			}
			if outlineContains(outlines[j], outlines[i][0]) {
				if parent[i] == -1 {
					parent[i] = j
				} else {
					// Nested more than one level deep: treat as a
					// standalone part again.
					parent[i] = -2
				}
			}
		}
	}

	var shapes []packaide.PolygonWithHoles
	index := make(map[int]int)
	for i, outline := range outlines {
		if parent[i] >= 0 {
			continue
		}
		index[i] = len(shapes)
		shapes = append(shapes, packaide.PolygonWithHoles{Boundary: packaide.Polygon{Points: outline}})
	}
	for i, outline := range outlines {
		if parent[i] < 0 {
			continue
		}
		if si, ok := index[parent[i]]; ok {
			shapes[si].Holes = append(shapes[si].Holes, packaide.Polygon{Points: outline})
		} else {
			shapes = append(shapes, packaide.PolygonWithHoles{Boundary: packaide.Polygon{Points: outline}})
		}
	}
	return shapes
}

// outlineContains tests whether p is inside the outline by ray casting.
func outlineContains(outline []packaide.Point, p packaide.Point) bool {
	inside := false
	n := len(outline)
	for i := 0; i < n; i++ {
		a := outline[i]
		b := outline[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)
			if x > p.X {
				inside = !inside
			}
		}
	}
	return inside
}

// outlineBounds returns the min and max corners of a point sequence.
func outlineBounds(pts []packaide.Point) (min, max packaide.Point) {
	if len(pts) == 0 {
		return
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return
}

// lwPolylineOutline converts a DXF LWPOLYLINE entity to an outline.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineOutline(lw *entity.LwPolyline) []packaide.Point {
	var outline []packaide.Point

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := packaide.Point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := packaide.Point{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// Skip the last point; the next vertex adds it naturally
			outline = append(outline, arcPts[:len(arcPts)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints
// and a DXF bulge factor (the tangent of a quarter of the included
// angle).
func bulgeArcPoints(p1, p2 packaide.Point, bulge float64, numSegments int) []packaide.Point {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []packaide.Point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	pts := make([]packaide.Point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, packaide.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// circleOutline approximates a circle as a regular polygon.
func circleOutline(c *entity.Circle, numSegments int) []packaide.Point {
	outline := make([]packaide.Point, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		outline[i] = packaide.Point{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return outline
}

// arcPoints converts a DXF ARC entity to a series of line points.
func arcPoints(a *entity.Arc, numSegments int) []packaide.Point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]packaide.Point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = packaide.Point{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum endpoint distance to consider connected.
func chainSegments(segs []segment, tolerance float64) [][]packaide.Point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]packaide.Point

	near := func(a, b packaide.Point) bool {
		return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
	}

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		used[startIdx] = true
		chain := []packaide.Point{segs[startIdx].start, segs[startIdx].end}

		for {
			tail := chain[len(chain)-1]
			extended := false
			for i, s := range segs {
				if used[i] {
					continue
				}
				switch {
				case near(s.start, tail):
					chain = append(chain, s.end)
				case near(s.end, tail):
					chain = append(chain, s.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
			if !extended {
				break
			}
			if near(chain[len(chain)-1], chain[0]) {
				break
			}
		}

		// Only keep chains that closed back on themselves
		if len(chain) >= 4 && near(chain[len(chain)-1], chain[0]) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}
