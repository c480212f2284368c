package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

func TestSumOfSquares(t *testing.T) {
	// [0,10]^2 ⊕ [-2,0]^2 = [-2,10]^2
	a := rect(0, 0, 10, 10)
	b := rect(-2, -2, 2, 2)

	sum := Sum(a, b)
	require.False(t, sum.IsEmpty())
	assert.Empty(t, sum.Holes)

	box := sum.BBox()
	assert.Equal(t, geom.Pt(-2, -2), box.Min)
	assert.Equal(t, geom.Pt(10, 10), box.Max)
	assert.InDelta(t, 144, area([]geom.Polygon{sum}), 1e-9)
}

func TestSumIsCommutative(t *testing.T) {
	a := geom.Polygon{Boundary: geom.Ring{geom.Pt(0, 0), geom.Pt(8, 0), geom.Pt(4, 6)}}
	b := rect(0, 0, 3, 2)

	ab := Sum(a, b)
	ba := Sum(b, a)
	assert.InDelta(t, area([]geom.Polygon{ab}), area([]geom.Polygon{ba}), 1e-6)
	assert.Equal(t, ab.BBox(), ba.BBox())
}

func TestSumWithEmptyOperand(t *testing.T) {
	assert.True(t, Sum(geom.Polygon{}, rect(0, 0, 1, 1)).IsEmpty())
	assert.True(t, Sum(rect(0, 0, 1, 1), geom.Polygon{}).IsEmpty())
}

func TestSumConcavePocket(t *testing.T) {
	// A U-shaped part: the 4-wide pocket admits a 2-wide square, so the
	// sum fills the pocket only partially.
	u := geom.Polygon{Boundary: geom.Ring{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(7, 10),
		geom.Pt(7, 3), geom.Pt(3, 3), geom.Pt(3, 10), geom.Pt(0, 10),
	}}
	b := rect(0, 0, 2, 2)

	sum := Sum(u, b)
	box := sum.BBox()
	assert.Equal(t, geom.Pt(0, 0), box.Min)
	assert.Equal(t, geom.Pt(12, 12), box.Max)

	// Area: sweep of the U by a 2x2 square. The pocket interior that
	// stays uncovered is the eroded pocket [5,7]x[5,12] minus the part
	// above y=12... easier: total bbox area minus the uncovered notch.
	// The uncovered region is x in [5,7], y in [5,12]: width 2 = 4-2,
	// height 7 = pocket depth 7 - 0.
	assert.InDelta(t, 144-14, area([]geom.Polygon{sum}), 1e-6)
}

func TestSumHoleShrinks(t *testing.T) {
	// An annulus grown by a small square keeps a smaller hole: the hole
	// of the sum is exactly the set of points p for which p minus the
	// square stays strictly inside the original hole.
	donut := rect(0, 0, 20, 20)
	donut.Holes = []geom.Ring{geom.RectRing(geom.Pt(5, 5), geom.Pt(15, 15))}
	b := rect(0, 0, 2, 2)

	sum := Sum(donut, b)
	require.Len(t, sum.Holes, 1)

	holeBox := sum.Holes[0].BBox()
	assert.Equal(t, geom.Pt(7, 7), holeBox.Min)
	assert.Equal(t, geom.Pt(15, 15), holeBox.Max)

	outerBox := sum.BBox()
	assert.Equal(t, geom.Pt(0, 0), outerBox.Min)
	assert.Equal(t, geom.Pt(22, 22), outerBox.Max)
}

func TestSumHoleDisappearsWhenTooSmall(t *testing.T) {
	donut := rect(0, 0, 20, 20)
	donut.Holes = []geom.Ring{geom.RectRing(geom.Pt(9, 9), geom.Pt(11, 11))}
	b := rect(0, 0, 5, 5)

	sum := Sum(donut, b)
	require.False(t, sum.IsEmpty())
	assert.Empty(t, sum.Holes)
}
