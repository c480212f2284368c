// Package model holds the shared data types of the nesting frontend:
// parts to be placed and the resolved per-sheet layouts produced from a
// packing result.
package model

import (
	"github.com/google/uuid"

	packaide "github.com/DanielLiamAnderson/Packaide"
)

// Part is one shape to nest.
type Part struct {
	ID    string                    `json:"id"`
	Label string                    `json:"label"`
	Shape packaide.PolygonWithHoles `json:"shape"`
}

// NewPart builds a part with a fresh short id.
func NewPart(label string, shape packaide.PolygonWithHoles) Part {
	return Part{
		ID:    uuid.New().String()[:8],
		Label: label,
		Shape: shape,
	}
}

// PlacedPart is a part together with its committed placement and the
// outline already transformed into sheet coordinates.
type PlacedPart struct {
	Part      Part                      `json:"part"`
	Transform packaide.Transform        `json:"transform"`
	Shape     packaide.PolygonWithHoles `json:"shape"`
}

// SheetLayout is the resolved result for one sheet.
type SheetLayout struct {
	Index int            `json:"index"`
	Sheet packaide.Sheet `json:"sheet"`
	Parts []PlacedPart   `json:"parts"`
}

// TotalArea returns the sheet area.
func (l SheetLayout) TotalArea() float64 {
	return l.Sheet.Width * l.Sheet.Height
}

// UsedArea returns the material area covered by placed parts.
func (l SheetLayout) UsedArea() float64 {
	used := 0.0
	for _, p := range l.Parts {
		used += PolygonArea(p.Shape)
	}
	return used
}

// Efficiency returns the used fraction of the sheet as a percentage.
func (l SheetLayout) Efficiency() float64 {
	total := l.TotalArea()
	if total == 0 {
		return 0
	}
	return 100 * l.UsedArea() / total
}

// PolygonArea returns the area of a polygon with holes: the boundary
// area minus the hole areas.
func PolygonArea(p packaide.PolygonWithHoles) float64 {
	area := ringArea(p.Boundary.Points)
	for _, h := range p.Holes {
		area -= ringArea(h.Points)
	}
	if area < 0 {
		return 0
	}
	return area
}

// ringArea is the absolute shoelace area of a vertex loop.
func ringArea(pts []packaide.Point) float64 {
	sum := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// BuildLayouts resolves a packing result into per-sheet layouts with
// transformed part outlines. Sheets the packer never touched are
// omitted, matching the result shape.
func BuildLayouts(sheets []packaide.Sheet, parts []Part, result [][]packaide.Placement) []SheetLayout {
	layouts := make([]SheetLayout, 0, len(result))
	for si, placements := range result {
		if si >= len(sheets) {
			break
		}
		layout := SheetLayout{Index: si, Sheet: sheets[si]}
		for _, pl := range placements {
			if pl.PolygonID < 0 || pl.PolygonID >= len(parts) {
				continue
			}
			part := parts[pl.PolygonID]
			layout.Parts = append(layout.Parts, PlacedPart{
				Part:      part,
				Transform: pl.Transform,
				Shape:     pl.Transform.Apply(part.Shape),
			})
		}
		layouts = append(layouts, layout)
	}
	return layouts
}
