// Package nest implements the polygon nesting engine: canonical shape
// interning, no-fit-polygon computation with memoization, candidate
// placement generation and the first-fit decreasing placement loop.
package nest

import (
	"encoding/binary"

	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

// Handle identifies a canonical polygon inside a State. Handles are
// stable for the lifetime of the State and never invalidated; the NFP
// cache is keyed on them rather than on structural polygon equality.
type Handle int

// State is the persistent cache shared across packing calls. It interns
// canonical polygons and memoizes no-fit polygons. Both caches grow
// monotonically and are released only when the State is dropped. A
// State is not safe for concurrent use.
type State struct {
	polygons []geom.Polygon
	index    map[string]Handle
	nfps     map[nfpKey]geom.Polygon
}

// nfpKey identifies one memoized NFP: the two canonical shapes and
// their exact rotation angles. Translations are not part of the key;
// cached NFPs are stored untranslated and shifted on lookup.
type nfpKey struct {
	a, b       Handle
	rotA, rotB float64
}

// NewState returns a fresh empty state.
func NewState() *State {
	return &State{index: make(map[string]Handle), nfps: make(map[nfpKey]geom.Polygon)}
}

// Canonical returns the handle of the interned instance of p, interning
// it first if this content has not been seen. Structurally equal
// polygons resolve to the same handle.
func (s *State) Canonical(p geom.Polygon) Handle {
	key := contentKey(p)
	if h, ok := s.index[key]; ok {
		return h
	}
	h := Handle(len(s.polygons))
	s.polygons = append(s.polygons, p)
	s.index[key] = h
	return h
}

// Polygon returns the canonical polygon for a handle.
func (s *State) Polygon(h Handle) geom.Polygon {
	return s.polygons[h]
}

// Size returns the number of interned polygons and memoized NFPs.
func (s *State) Size() (polygons, nfps int) {
	return len(s.polygons), len(s.nfps)
}

// contentKey serializes the exact vertex content of a polygon. Equal
// content always produces equal keys and vice versa, so the interning
// map needs no collision handling.
func contentKey(p geom.Polygon) string {
	buf := make([]byte, 0, 16*(len(p.Boundary)+1))
	appendRing := func(r geom.Ring) {
		buf = binary.AppendVarint(buf, int64(len(r)))
		for _, pt := range r {
			buf = binary.AppendVarint(buf, int64(pt.X))
			buf = binary.AppendVarint(buf, int64(pt.Y))
		}
	}
	appendRing(p.Boundary)
	buf = binary.AppendVarint(buf, int64(len(p.Holes)))
	for _, h := range p.Holes {
		appendRing(h)
	}
	return string(buf)
}
