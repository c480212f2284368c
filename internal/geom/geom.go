// Package geom is the exact 2D geometry kernel for the nesting engine.
//
// Coordinates are fixed-point: an int64 count of grid units (1e-4 of a
// user unit). Inputs are snapped to this grid once at the API boundary;
// after that, translations, reflections, bounding boxes and the clipping
// engine's boolean operations are exact integer arithmetic. The only
// float64 rounding inside the kernel happens when a rotation is applied,
// one rounding per vertex, which keeps transformed polygons deterministic
// across runs.
package geom

import "math"

// Scale is the number of coordinate units per user unit. The grid is
// coarse enough that exact predicates on polygons spanning up to about
// 1e5 user units stay within int64.
const Scale = 1e4

// Coord is an exact fixed-point coordinate.
type Coord int64

// FromFloat snaps a user-unit value to the fixed-point grid.
func FromFloat(v float64) Coord {
	return Coord(math.Round(v * Scale))
}

// Float converts back to user units. Only used at output boundaries.
func (c Coord) Float() float64 {
	return float64(c) / Scale
}

// Point is a location in the plane.
type Point struct {
	X, Y Coord
}

// Vector is a displacement in the plane.
type Vector struct {
	X, Y Coord
}

// Pt builds a point from user-unit values.
func Pt(x, y float64) Point {
	return Point{FromFloat(x), FromFloat(y)}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{p.X - q.X, p.Y - q.Y}
}

// Add translates the point by v.
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y}
}

// Neg returns the opposite vector.
func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

// Rect is an axis-aligned bounding box. A rect with Min > Max on either
// axis is empty; EmptyRect is the identity for Union.
type Rect struct {
	Min, Max Point
}

// EmptyRect returns the empty bounding box sentinel.
func EmptyRect() Rect {
	const big = math.MaxInt64
	return Rect{Min: Point{big, big}, Max: Point{-big, -big}}
}

// IsEmpty reports whether the rect contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the extent along x.
func (r Rect) Width() Coord { return r.Max.X - r.Min.X }

// Height returns the extent along y.
func (r Rect) Height() Coord { return r.Max.Y - r.Min.Y }

// Union returns the smallest rect covering both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{minCoord(r.Min.X, s.Min.X), minCoord(r.Min.Y, s.Min.Y)},
		Max: Point{maxCoord(r.Max.X, s.Max.X), maxCoord(r.Max.Y, s.Max.Y)},
	}
}

// Translate shifts the rect by v.
func (r Rect) Translate(v Vector) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// Contains reports whether p lies in the closed rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Area returns the rect area in user units squared.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width().Float() * r.Height().Float()
}

func minCoord(a, b Coord) Coord {
	if a < b {
		return a
	}
	return b
}

func maxCoord(a, b Coord) Coord {
	if a > b {
		return a
	}
	return b
}
