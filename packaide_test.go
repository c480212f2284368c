package packaide

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squarePoly(size float64) PolygonWithHoles {
	return PolygonWithHoles{Boundary: Polygon{Points: []Point{
		{0, 0}, {size, 0}, {size, size}, {0, size},
	}}}
}

func rectPolyWH(w, h float64) PolygonWithHoles {
	return PolygonWithHoles{Boundary: Polygon{Points: []Point{
		{0, 0}, {w, 0}, {w, h}, {0, h},
	}}}
}

func TestPackSingleSquareOnSheet(t *testing.T) {
	result, err := Pack(
		[]Sheet{{Width: 100, Height: 100}},
		[]PolygonWithHoles{squarePoly(10)},
		NewState(),
		Options{Rotations: 1},
	)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0], 1)

	pl := result[0][0]
	assert.Equal(t, 0, pl.PolygonID)
	assert.Equal(t, 0.0, pl.Transform.Rotate)
	assert.Equal(t, Point{0, 0}, pl.Transform.Translate)
	assert.Equal(t, 1, PlacedCount(result))
	assert.Empty(t, UnplacedIDs(result, 1))
}

func TestPackInfeasibleReturnsEmpty(t *testing.T) {
	result, err := Pack(
		[]Sheet{{Width: 5, Height: 5}},
		[]PolygonWithHoles{squarePoly(10)},
		NewState(),
		Options{Rotations: 1},
	)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestPackPartialKeepsSmallParts(t *testing.T) {
	result, err := Pack(
		[]Sheet{{Width: 5, Height: 5}},
		[]PolygonWithHoles{squarePoly(10), squarePoly(3)},
		NewState(),
		Options{Rotations: 1, Partial: true},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, PlacedCount(result))
	assert.Equal(t, []int{0}, UnplacedIDs(result, 2))
}

func TestPackExactTiling(t *testing.T) {
	result, err := Pack(
		[]Sheet{{Width: 20, Height: 10}},
		[]PolygonWithHoles{squarePoly(10), squarePoly(10)},
		NewState(),
		Options{Rotations: 1},
	)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0], 2)
	assert.Equal(t, Point{0, 0}, result[0][0].Transform.Translate)
	assert.Equal(t, Point{10, 0}, result[0][1].Transform.Translate)
}

func TestPackRotationReportedInDegrees(t *testing.T) {
	result, err := Pack(
		[]Sheet{{Width: 10, Height: 100}},
		[]PolygonWithHoles{rectPolyWH(100, 10)},
		NewState(),
		Options{Rotations: 4},
	)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0], 1)
	assert.Equal(t, 90.0, result[0][0].Transform.Rotate)
}

func TestPackSheetHoleAvoided(t *testing.T) {
	sheet := Sheet{Width: 100, Height: 100}
	sheet.AddHoles(PolygonWithHoles{Boundary: Polygon{Points: []Point{
		{30, 30}, {70, 30}, {70, 70}, {30, 70},
	}}})

	result, err := Pack(
		[]Sheet{sheet},
		[]PolygonWithHoles{squarePoly(30)},
		NewState(),
		Options{Rotations: 1},
	)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0], 1)
	assert.Equal(t, Point{0, 0}, result[0][0].Transform.Translate)
}

func TestPackClockwiseInputNormalized(t *testing.T) {
	cw := PolygonWithHoles{Boundary: Polygon{Points: []Point{
		{0, 0}, {0, 10}, {10, 10}, {10, 0},
	}}}
	result, err := Pack(
		[]Sheet{{Width: 100, Height: 100}},
		[]PolygonWithHoles{cw},
		NewState(),
		Options{Rotations: 1},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, PlacedCount(result))
}

func TestPackOffsetKeepsSpacing(t *testing.T) {
	result, err := Pack(
		[]Sheet{{Width: 40, Height: 20}},
		[]PolygonWithHoles{squarePoly(10), squarePoly(10)},
		NewState(),
		Options{Rotations: 1, Offset: 1},
	)
	require.NoError(t, err)
	require.Equal(t, 2, PlacedCount(result))

	a := result[0][0].Transform.Translate
	b := result[0][1].Transform.Translate
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)
	assert.GreaterOrEqual(t, math.Max(dx, dy), 12.0-1e-6,
		"dilated parts must stay two offsets apart")
}

func TestPackDeterministicAcrossStates(t *testing.T) {
	sheets := []Sheet{{Width: 60, Height: 60}}
	polygons := []PolygonWithHoles{
		squarePoly(10),
		{Boundary: Polygon{Points: []Point{{0, 0}, {12, 0}, {6, 9}}}},
		rectPolyWH(8, 4),
	}

	r1, err := Pack(sheets, polygons, NewState(), Options{})
	require.NoError(t, err)
	r2, err := Pack(sheets, polygons, NewState(), Options{})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(r1, r2))
}

func TestPackValidation(t *testing.T) {
	state := NewState()

	_, err := Pack(nil, []PolygonWithHoles{{}}, state, Options{})
	assert.ErrorIs(t, err, ErrInvalidPolygon)

	_, err = Pack(nil, []PolygonWithHoles{{Boundary: Polygon{Points: []Point{{0, 0}, {1, 1}}}}}, state, Options{})
	assert.ErrorIs(t, err, ErrInvalidPolygon)

	bad := squarePoly(10)
	bad.Holes = []Polygon{{Points: []Point{{1, 1}, {2, 2}}}}
	_, err = Pack(nil, []PolygonWithHoles{bad}, state, Options{})
	assert.ErrorIs(t, err, ErrInvalidPolygon)

	nan := squarePoly(10)
	nan.Boundary.Points[0].X = math.NaN()
	_, err = Pack(nil, []PolygonWithHoles{nan}, state, Options{})
	assert.ErrorIs(t, err, ErrInvalidPolygon)

	_, err = Pack([]Sheet{{Width: -1, Height: 10}}, []PolygonWithHoles{squarePoly(1)}, state, Options{})
	assert.Error(t, err)

	_, err = Pack(nil, nil, nil, Options{})
	assert.Error(t, err)
}

func TestTransformApply(t *testing.T) {
	sq := squarePoly(10)

	moved := Transform{Translate: Point{5, 7}}.Apply(sq)
	assert.Equal(t, Point{5, 7}, moved.Boundary.Points[0])
	assert.Equal(t, Point{15, 7}, moved.Boundary.Points[1])

	// A quarter turn about the first vertex
	turned := Transform{Translate: Point{0, 0}, Rotate: 90}.Apply(sq)
	assert.InDelta(t, -10.0, turned.Boundary.Points[2].X, 1e-9)
	assert.InDelta(t, 10.0, turned.Boundary.Points[2].Y, 1e-9)
}

func TestTransformApplyRoundTripsWithPack(t *testing.T) {
	// Applying the returned transform to the input polygon must land it
	// inside the sheet.
	sheets := []Sheet{{Width: 10, Height: 100}}
	part := rectPolyWH(100, 10)

	result, err := Pack(sheets, []PolygonWithHoles{part}, NewState(), Options{Rotations: 4})
	require.NoError(t, err)
	require.Equal(t, 1, PlacedCount(result))

	placed := result[0][0].Transform.Apply(part)
	for _, p := range placed.Boundary.Points {
		assert.GreaterOrEqual(t, p.X, -1e-6)
		assert.LessOrEqual(t, p.X, 10+1e-6)
		assert.GreaterOrEqual(t, p.Y, -1e-6)
		assert.LessOrEqual(t, p.Y, 100+1e-6)
	}
}
