package nest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

func partBounds(x, y, w, h float64) bounds {
	return bounds{xmin: x, xmax: x + w, ymin: y, ymax: y + h}
}

func TestHeuristicInitFromHoles(t *testing.T) {
	sheet := Sheet{Width: 100, Height: 100, Holes: []geom.Polygon{rectAt(10, 10, 20, 20)}}
	h := newHeuristic(sheet)

	assert.Equal(t, 10.0, h.xmin)
	assert.Equal(t, 30.0, h.xmax)
	assert.Equal(t, 10.0, h.ymin)
	assert.Equal(t, 30.0, h.ymax)
}

func TestHeuristicEvalWithDoesNotMutate(t *testing.T) {
	sheet := Sheet{Width: 100, Height: 100, Holes: []geom.Polygon{rectAt(0, 0, 10, 10)}}
	h := newHeuristic(sheet)

	before := *h
	h.evalWith(partBounds(50, 50, 10, 10))
	assert.Equal(t, before, *h)
}

func TestHeuristicEvalWithMatchesCommit(t *testing.T) {
	sheet := Sheet{Width: 100, Height: 100, Holes: []geom.Polygon{rectAt(0, 0, 10, 10)}}
	h := newHeuristic(sheet)

	b := partBounds(20, 0, 10, 10)
	predicted := h.evalWith(b)
	h.add(b)
	assert.Equal(t, predicted, h.eval())
}

func TestHeuristicMonotonicUnderCommit(t *testing.T) {
	sheet := Sheet{Width: 100, Height: 100}
	h := newHeuristic(sheet)
	h.add(partBounds(0, 0, 10, 10))

	prev := h.eval()
	for _, b := range []bounds{
		partBounds(10, 0, 10, 10),
		partBounds(0, 10, 5, 5),
		partBounds(40, 40, 1, 1),
		partBounds(2, 2, 2, 2), // inside the current box: no growth
	} {
		h.add(b)
		cur := h.eval()
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestHeuristicPrefersTuckingAgainstHoles(t *testing.T) {
	// A part placed next to the existing hole grows the combined box
	// less than one placed far away.
	sheet := Sheet{Width: 100, Height: 100, Holes: []geom.Polygon{rectAt(0, 0, 10, 10)}}
	h := newHeuristic(sheet)

	near := h.evalWith(partBounds(10, 0, 10, 10))
	far := h.evalWith(partBounds(80, 80, 10, 10))
	assert.Less(t, near, far)
}
