package nest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielLiamAnderson/Packaide/internal/geom"
)

func TestCandidatesEmptyBoundaryMeansNoFit(t *testing.T) {
	c := &CandidatePoints{}
	c.SetBoundary(nil)
	c.AddNFP(square(10))
	assert.Empty(t, c.Points())
}

func TestCandidatesBoundaryOnly(t *testing.T) {
	c := &CandidatePoints{}
	c.SetBoundary(geom.RectRing(geom.Pt(0, 0), geom.Pt(90, 90)))

	pts := c.Points()
	require.Len(t, pts, 4)
	assert.Contains(t, pts, geom.Pt(0, 0))
	assert.Contains(t, pts, geom.Pt(90, 90))
}

func TestCandidatesNoBoundaryEnumeratesUnion(t *testing.T) {
	c := &CandidatePoints{}
	c.AddNFP(square(10))
	c.AddNFP(rectAt(20, 0, 10, 10))

	pts := c.Points()
	assert.Len(t, pts, 8)
	assert.Contains(t, pts, geom.Pt(20, 10))
}

func TestCandidatesDifferenceVertices(t *testing.T) {
	// NFP overlapping the boundary contributes intersection vertices
	c := &CandidatePoints{}
	c.SetBoundary(geom.RectRing(geom.Pt(0, 0), geom.Pt(50, 50)))
	c.AddNFP(rectAt(-10, -10, 30, 30))

	pts := c.Points()
	// The L-shaped difference region has vertices at the crossings
	assert.Contains(t, pts, geom.Pt(20, 0))
	assert.Contains(t, pts, geom.Pt(0, 20))
	assert.Contains(t, pts, geom.Pt(50, 50))
	// The boundary corner swallowed by the NFP interior is not legal
	assert.NotContains(t, pts, geom.Pt(0, 0))
}

func TestCandidatesExactCoverTouchingCorners(t *testing.T) {
	// The NFP covers the boundary exactly: the regularized difference
	// is empty, but the NFP's own corners are legal touching spots.
	c := &CandidatePoints{}
	c.SetBoundary(geom.RectRing(geom.Pt(0, 0), geom.Pt(70, 70)))
	c.AddNFP(rectAt(0, 0, 70, 70))

	pts := c.Points()
	require.NotEmpty(t, pts)
	assert.Contains(t, pts, geom.Pt(0, 0))
	assert.Contains(t, pts, geom.Pt(70, 0))
	assert.Contains(t, pts, geom.Pt(0, 70))
	assert.Contains(t, pts, geom.Pt(70, 70))
}

func TestCandidatesDegenerateSegmentBoundary(t *testing.T) {
	// Exact-height fit: the boundary is the segment [0,10] x {0}. With
	// an NFP blocking x < 10, only the right endpoint remains.
	c := &CandidatePoints{}
	c.SetBoundary(geom.RectRing(geom.Pt(0, 0), geom.Pt(10, 0)))
	c.AddNFP(rectAt(-10, -10, 20, 20))

	pts := c.Points()
	require.Len(t, pts, 1)
	assert.Equal(t, geom.Pt(10, 0), pts[0])
}

func TestCandidatesDegenerateSegmentNoNFPs(t *testing.T) {
	c := &CandidatePoints{}
	c.SetBoundary(geom.RectRing(geom.Pt(0, 0), geom.Pt(10, 0)))

	pts := c.Points()
	assert.Contains(t, pts, geom.Pt(0, 0))
	assert.Contains(t, pts, geom.Pt(10, 0))
}

func TestCandidatesDegeneratePointBoundary(t *testing.T) {
	c := &CandidatePoints{}
	c.SetBoundary(geom.RectRing(geom.Pt(10, 0), geom.Pt(10, 0)))

	pts := c.Points()
	require.Len(t, pts, 1)
	assert.Equal(t, geom.Pt(10, 0), pts[0])
}

func TestCandidatesDeterministicOrder(t *testing.T) {
	build := func() []geom.Point {
		c := &CandidatePoints{}
		c.SetBoundary(geom.RectRing(geom.Pt(0, 0), geom.Pt(50, 50)))
		c.AddNFP(rectAt(-5, -5, 20, 20))
		c.AddNFP(rectAt(30, 30, 30, 30))
		return c.Points()
	}
	assert.Equal(t, build(), build())
}

func TestPointInRing(t *testing.T) {
	ring := square(10).Boundary
	assert.Equal(t, 1, pointInRing(geom.Pt(5, 5), ring))
	assert.Equal(t, 0, pointInRing(geom.Pt(0, 5), ring))
	assert.Equal(t, 0, pointInRing(geom.Pt(10, 10), ring))
	assert.Equal(t, -1, pointInRing(geom.Pt(15, 5), ring))
	assert.Equal(t, -1, pointInRing(geom.Pt(-1, 0), ring))
}

func TestStrictlyInsideRespectsHoles(t *testing.T) {
	donut := square(10)
	donut.Holes = []geom.Ring{geom.RectRing(geom.Pt(3, 3), geom.Pt(7, 7))}
	set := []geom.Polygon{donut}

	assert.True(t, strictlyInside(geom.Pt(1, 1), set))
	assert.False(t, strictlyInside(geom.Pt(5, 5), set), "inside the hole is not inside the set")
	assert.False(t, strictlyInside(geom.Pt(3, 3), set), "hole boundary is a touching spot")
	assert.False(t, strictlyInside(geom.Pt(0, 0), set))
}
