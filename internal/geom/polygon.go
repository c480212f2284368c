package geom

// Ring is a simple polygon: a cyclic sequence of vertices with no
// repeated closing vertex. Positive orientation is counter-clockwise.
type Ring []Point

// Polygon is a polygon with holes: an outer boundary plus zero or more
// hole rings strictly inside it. The zero value (no boundary) represents
// the empty set, never the full plane.
type Polygon struct {
	Boundary Ring
	Holes    []Ring
}

// Area2 returns twice the signed area of the ring. Positive means
// counter-clockwise. Vertices are taken relative to the first vertex so
// the terms stay within int64 for any ring of realistic extent.
func (r Ring) Area2() int64 {
	if len(r) < 3 {
		return 0
	}
	o := r[0]
	var sum int64
	n := len(r)
	for i := 0; i < n; i++ {
		px := int64(r[i].X - o.X)
		py := int64(r[i].Y - o.Y)
		qx := int64(r[(i+1)%n].X - o.X)
		qy := int64(r[(i+1)%n].Y - o.Y)
		sum += px*qy - qx*py
	}
	return sum
}

// Orientation returns +1 for counter-clockwise, -1 for clockwise and 0
// for degenerate rings.
func (r Ring) Orientation() int {
	a := r.Area2()
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// Reversed returns the ring with opposite orientation. The first
// vertex stays first, so reversal never changes a polygon's reference
// vertex.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	if len(r) == 0 {
		return out
	}
	out[0] = r[0]
	for i := 1; i < len(r); i++ {
		out[i] = r[len(r)-i]
	}
	return out
}

// Oriented returns the ring with the requested orientation sign,
// reversing if needed.
func (r Ring) Oriented(sign int) Ring {
	if len(r) == 0 || r.Orientation() == sign {
		return r
	}
	return r.Reversed()
}

// BBox returns the ring's bounding box.
func (r Ring) BBox() Rect {
	box := EmptyRect()
	for _, p := range r {
		box = box.Union(Rect{Min: p, Max: p})
	}
	return box
}

// Transform applies a to every vertex.
func (r Ring) Transform(a Affine) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = a.Apply(p)
	}
	return out
}

// Translate shifts every vertex by v. Exact.
func (r Ring) Translate(v Vector) Ring {
	return r.Transform(Translation(v))
}

// IsEmpty reports whether the polygon is the empty set.
func (p Polygon) IsEmpty() bool {
	return len(p.Boundary) == 0
}

// BBox returns the outer boundary's bounding box.
func (p Polygon) BBox() Rect {
	return p.Boundary.BBox()
}

// Transform applies a to the boundary and every hole.
func (p Polygon) Transform(a Affine) Polygon {
	if p.IsEmpty() {
		return Polygon{}
	}
	out := Polygon{Boundary: p.Boundary.Transform(a)}
	if len(p.Holes) > 0 {
		out.Holes = make([]Ring, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = h.Transform(a)
		}
	}
	return out
}

// Translate shifts the polygon by v. Exact.
func (p Polygon) Translate(v Vector) Polygon {
	return p.Transform(Translation(v))
}

// Normalized returns the polygon with the outer boundary counter-
// clockwise and every hole clockwise.
func (p Polygon) Normalized() Polygon {
	if p.IsEmpty() {
		return Polygon{}
	}
	out := Polygon{Boundary: p.Boundary.Oriented(1)}
	if len(p.Holes) > 0 {
		out.Holes = make([]Ring, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = h.Oriented(-1)
		}
	}
	return out
}

// RectRing builds the counter-clockwise rectangle ring with the given
// corners. Degenerate rectangles (zero width or height) are allowed;
// callers that cannot handle them must check the bounds themselves.
func RectRing(min, max Point) Ring {
	return Ring{
		{min.X, min.Y},
		{max.X, min.Y},
		{max.X, max.Y},
		{min.X, max.Y},
	}
}
