package geom

import "math"

// Affine is a rigid-plus-reflection transform. It applies, in order, an
// optional point reflection through the origin, an optional rotation
// about the origin, and a translation. This covers every transform the
// engine needs: shifting a polygon's reference vertex, rotating a part,
// building the reflected -B operand for Minkowski-sum NFPs, and placing
// a part at a candidate point.
type Affine struct {
	negate   bool
	rotate   bool
	sin, cos float64
	shift    Vector
}

// Translation returns the transform that shifts by v.
func Translation(v Vector) Affine {
	return Affine{shift: v}
}

// Rotation returns the counter-clockwise rotation by angle radians.
func Rotation(angle float64) Affine {
	if angle == 0 {
		return Affine{}
	}
	return Affine{rotate: true, sin: math.Sin(angle), cos: math.Cos(angle)}
}

// Reflection returns the point reflection through the origin, i.e.
// uniform scaling by -1.
func Reflection() Affine {
	return Affine{negate: true}
}

// Apply transforms the point. Reflection and translation are exact;
// rotation rounds each output coordinate to the fixed-point grid once.
func (a Affine) Apply(p Point) Point {
	if a.negate {
		p = Point{-p.X, -p.Y}
	}
	if a.rotate {
		x := float64(p.X)
		y := float64(p.Y)
		p = Point{
			X: Coord(math.Round(a.cos*x - a.sin*y)),
			Y: Coord(math.Round(a.sin*x + a.cos*y)),
		}
	}
	return p.Add(a.shift)
}
