package clip

import (
	clipper "github.com/ctessum/go.clipper"

	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

// Dilate grows the polygon outward by delta user units using mitered
// joins, the same buffering the reference pipeline applies to keep
// spacing between adjacent parts. Holes shrink accordingly and may
// disappear. A non-positive delta returns the polygon unchanged.
func Dilate(p geom.Polygon, delta float64) geom.Polygon {
	if p.IsEmpty() || delta <= 0 {
		return p
	}
	co := clipper.NewClipperOffset()
	co.MiterLimit = 5
	co.AddPaths(polygonPaths(p), clipper.JtMiter, clipper.EtClosedPolygon)
	tree := co.Execute2(delta * geom.Scale)
	if tree == nil {
		return p
	}
	return largestPolygon(treePolygons(tree))
}
