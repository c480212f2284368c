package nest

import "math"

// heuristic scores sheet layouts as the sum of two bounding-box areas:
// the box around everything relevant on the sheet (newly placed parts
// plus pre-existing holes) and the box around only the newly placed
// parts. The first term rewards tucking parts against or inside holes;
// the second rewards packing the new parts tightly among themselves.
// Both boxes support O(1) trial evaluation and O(1) commit, and the
// score never decreases under commit.
//
// The arithmetic is deliberately float64: the score only ranks
// candidates, and identical inputs evaluate identical operations in the
// same order, so determinism is preserved. It must never be used for
// feasibility decisions.
type heuristic struct {
	xmin, xmax, ymin, ymax             float64
	newXmin, newXmax, newYmin, newYmax float64
}

// bounds is the float bounding box a candidate part contributes.
type bounds struct {
	xmin, xmax, ymin, ymax float64
}

// newHeuristic initializes the score from a sheet: the combined box
// starts as the bounding box of the sheet's hole set, the new-parts box
// as the empty sentinel.
func newHeuristic(s Sheet) *heuristic {
	h := &heuristic{
		xmin: math.Inf(1), ymin: math.Inf(1), xmax: math.Inf(-1), ymax: math.Inf(-1),
		newXmin: math.Inf(1), newYmin: math.Inf(1), newXmax: math.Inf(-1), newYmax: math.Inf(-1),
	}
	for _, hole := range s.Holes {
		box := hole.BBox()
		if box.IsEmpty() {
			continue
		}
		h.xmin = math.Min(h.xmin, box.Min.X.Float())
		h.xmax = math.Max(h.xmax, box.Max.X.Float())
		h.ymin = math.Min(h.ymin, box.Min.Y.Float())
		h.ymax = math.Max(h.ymax, box.Max.Y.Float())
	}
	return h
}

// eval returns the current score.
func (h *heuristic) eval() float64 {
	return (h.xmax-h.xmin)*(h.ymax-h.ymin) +
		(h.newXmax-h.newXmin)*(h.newYmax-h.newYmin)
}

// evalWith returns the score as if a part with the given bounding box
// were added. Does not mutate the state.
func (h *heuristic) evalWith(b bounds) float64 {
	newXmin := math.Min(h.newXmin, b.xmin)
	newXmax := math.Max(h.newXmax, b.xmax)
	newYmin := math.Min(h.newYmin, b.ymin)
	newYmax := math.Max(h.newYmax, b.ymax)
	xmin := math.Min(h.xmin, b.xmin)
	xmax := math.Max(h.xmax, b.xmax)
	ymin := math.Min(h.ymin, b.ymin)
	ymax := math.Max(h.ymax, b.ymax)
	return (xmax-xmin)*(ymax-ymin) + (newXmax-newXmin)*(newYmax-newYmin)
}

// add commits a part with the given bounding box to the sheet.
func (h *heuristic) add(b bounds) {
	h.newXmin = math.Min(h.newXmin, b.xmin)
	h.newXmax = math.Max(h.newXmax, b.xmax)
	h.newYmin = math.Min(h.newYmin, b.ymin)
	h.newYmax = math.Max(h.newYmax, b.ymax)
	h.xmin = math.Min(h.xmin, b.xmin)
	h.xmax = math.Max(h.xmax, b.xmax)
	h.ymin = math.Min(h.ymin, b.ymin)
	h.ymax = math.Max(h.ymax, b.ymax)
}
