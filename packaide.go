// Package packaide packs arbitrary simple polygons, possibly with
// holes, onto rectangular sheets without overlap. It is a greedy
// first-fit-decreasing nesting engine built on no-fit polygons computed
// as Minkowski sums, with a persistent cache that amortizes the
// geometry across repeated packing calls.
package packaide

import (
	"errors"
	"fmt"
	"math"

	"github.com/DanielLiamAnderson/Packaide/internal/clip"
	"github.com/DanielLiamAnderson/Packaide/internal/geom"
	"github.com/DanielLiamAnderson/Packaide/internal/nest"
)

// ErrInvalidPolygon reports input geometry the engine cannot accept:
// boundaries or holes with fewer than three vertices, or non-finite
// coordinates.
var ErrInvalidPolygon = errors.New("packaide: invalid polygon")

// Point is a 2D coordinate in user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is a simple polygon given as its vertices in order, without a
// repeated closing vertex. Either orientation is accepted; the engine
// normalizes.
type Polygon struct {
	Points []Point `json:"points"`
}

// PolygonWithHoles is an outer boundary plus zero or more holes strictly
// inside it.
type PolygonWithHoles struct {
	Boundary Polygon   `json:"boundary"`
	Holes    []Polygon `json:"holes,omitempty"`
}

// Sheet is a rectangular target of the given size, anchored at the
// origin, with optional forbidden regions.
type Sheet struct {
	Width  float64            `json:"width"`
	Height float64            `json:"height"`
	Holes  []PolygonWithHoles `json:"holes,omitempty"`
}

// AddHoles attaches forbidden regions to the sheet. Placed parts will
// not overlap their interiors.
func (s *Sheet) AddHoles(holes ...PolygonWithHoles) {
	s.Holes = append(s.Holes, holes...)
}

// Transform positions one polygon: translate its first boundary vertex
// to Translate after rotating the polygon about that vertex by Rotate
// degrees counter-clockwise.
type Transform struct {
	Translate Point   `json:"translate"`
	Rotate    float64 `json:"rotate"`
}

// Apply returns the polygon positioned by the transform: rotated about
// its first boundary vertex and moved so that vertex lands on
// Translate.
func (t Transform) Apply(p PolygonWithHoles) PolygonWithHoles {
	if len(p.Boundary.Points) == 0 {
		return p
	}
	angle := t.Rotate * math.Pi / 180
	sin, cos := math.Sin(angle), math.Cos(angle)
	first := p.Boundary.Points[0]
	mapPoly := func(poly Polygon) Polygon {
		out := Polygon{Points: make([]Point, len(poly.Points))}
		for i, pt := range poly.Points {
			dx := pt.X - first.X
			dy := pt.Y - first.Y
			out.Points[i] = Point{
				X: t.Translate.X + cos*dx - sin*dy,
				Y: t.Translate.Y + sin*dx + cos*dy,
			}
		}
		return out
	}
	out := PolygonWithHoles{Boundary: mapPoly(p.Boundary)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, mapPoly(h))
	}
	return out
}

// Placement pairs an input polygon (by its index in the Pack call) with
// the transform that places it.
type Placement struct {
	PolygonID int       `json:"polygon_id"`
	Transform Transform `json:"transform"`
}

// State carries the canonical polygon cache and the no-fit-polygon memo
// across packing calls. Reusing one State makes repacking the same
// shapes substantially cheaper. A State grows monotonically and is not
// safe for concurrent use; calls sharing a State must be serialized.
type State struct {
	nest *nest.State
}

// NewState returns a fresh empty state.
func NewState() *State {
	return &State{nest: nest.NewState()}
}

// Options controls a packing call.
type Options struct {
	// Partial returns a best-effort result when not every polygon fits,
	// silently omitting the rest. When false, an infeasible call
	// returns an empty result instead.
	Partial bool

	// Rotations is the number of evenly spaced rotations to try per
	// polygon. Zero means the default of 4 (quarter turns); 1 keeps
	// every polygon in its input orientation.
	Rotations int

	// Offset dilates every polygon by this many user units before
	// packing, keeping at least twice this spacing between adjacent
	// parts. The returned transforms still apply to the undilated
	// inputs.
	Offset float64
}

// Pack places the polygons onto the sheets and returns one list of
// placements per sheet touched during the search, in sheet input order.
// Placements within a sheet appear in the order they were committed.
//
// When no feasible placement exists for some polygon and Partial is
// unset, the outer list is empty. Identical inputs against identically
// initialized states produce identical outputs.
func Pack(sheets []Sheet, polygons []PolygonWithHoles, state *State, opts Options) ([][]Placement, error) {
	if state == nil {
		return nil, errors.New("packaide: nil state")
	}
	rotations := opts.Rotations
	if rotations <= 0 {
		rotations = 4
	}

	parts := make([]geom.Polygon, len(polygons))
	anchors := make([]geom.Vector, len(polygons))
	for i, p := range polygons {
		gp, err := toGeom(p)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		first := gp.Boundary[0]
		if opts.Offset > 0 {
			gp = clip.Dilate(gp, opts.Offset)
			if gp.IsEmpty() {
				return nil, fmt.Errorf("polygon %d: %w", i, ErrInvalidPolygon)
			}
		}
		// The placement transform must stay anchored to the input
		// polygon's first vertex even when dilation changed the
		// reference vertex of the packed shape.
		anchors[i] = first.Sub(gp.Boundary[0])
		parts[i] = gp
	}

	nestSheets := make([]nest.Sheet, len(sheets))
	for i, s := range sheets {
		if !isFinite(s.Width) || !isFinite(s.Height) || s.Width < 0 || s.Height < 0 {
			return nil, fmt.Errorf("sheet %d: invalid dimensions %gx%g", i, s.Width, s.Height)
		}
		ns := nest.Sheet{Width: s.Width, Height: s.Height}
		for j, h := range s.Holes {
			gh, err := toGeom(h)
			if err != nil {
				return nil, fmt.Errorf("sheet %d hole %d: %w", i, j, err)
			}
			ns.Holes = append(ns.Holes, gh)
		}
		nestSheets[i] = ns
	}

	packed := nest.PackDecreasing(nestSheets, parts, state.nest, opts.Partial, rotations)

	result := make([][]Placement, len(packed))
	for si, sheet := range packed {
		result[si] = make([]Placement, len(sheet))
		for pi, pl := range sheet {
			angle := pl.Rotate * math.Pi / 180
			shift := geom.Rotation(angle).Apply(geom.Point{X: anchors[pl.PolygonID].X, Y: anchors[pl.PolygonID].Y})
			translate := pl.Translate.Add(geom.Vector{X: shift.X, Y: shift.Y})
			result[si][pi] = Placement{
				PolygonID: pl.PolygonID,
				Transform: Transform{
					Translate: Point{X: translate.X.Float(), Y: translate.Y.Float()},
					Rotate:    pl.Rotate,
				},
			}
		}
	}
	return result, nil
}

// PlacedCount returns the total number of placements in a result.
func PlacedCount(result [][]Placement) int {
	n := 0
	for _, sheet := range result {
		n += len(sheet)
	}
	return n
}

// UnplacedIDs returns the polygon ids of a Pack call with total input
// polygons that appear nowhere in the result, in increasing order.
func UnplacedIDs(result [][]Placement, total int) []int {
	placed := make([]bool, total)
	for _, sheet := range result {
		for _, pl := range sheet {
			if pl.PolygonID >= 0 && pl.PolygonID < total {
				placed[pl.PolygonID] = true
			}
		}
	}
	var missing []int
	for id, ok := range placed {
		if !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// toGeom validates and converts a polygon to the exact kernel, with the
// outer boundary counter-clockwise and holes clockwise.
func toGeom(p PolygonWithHoles) (geom.Polygon, error) {
	boundary, err := toRing(p.Boundary)
	if err != nil {
		return geom.Polygon{}, err
	}
	out := geom.Polygon{Boundary: boundary}
	for _, h := range p.Holes {
		hole, err := toRing(h)
		if err != nil {
			return geom.Polygon{}, err
		}
		out.Holes = append(out.Holes, hole)
	}
	return out.Normalized(), nil
}

func toRing(p Polygon) (geom.Ring, error) {
	if len(p.Points) < 3 {
		return nil, ErrInvalidPolygon
	}
	ring := make(geom.Ring, len(p.Points))
	for i, pt := range p.Points {
		if !isFinite(pt.X) || !isFinite(pt.Y) {
			return nil, ErrInvalidPolygon
		}
		ring[i] = geom.Pt(pt.X, pt.Y)
	}
	return ring, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
