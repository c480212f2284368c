package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	packaide "github.com/DanielLiamAnderson/Packaide"
	"github.com/DanielLiamAnderson/Packaide/internal/model"
)

func testLayouts(t *testing.T) []model.SheetLayout {
	t.Helper()

	sheet := packaide.Sheet{Width: 100, Height: 100}
	sheet.AddHoles(packaide.PolygonWithHoles{Boundary: packaide.Polygon{Points: []packaide.Point{
		{X: 60, Y: 60}, {X: 80, Y: 60}, {X: 80, Y: 80}, {X: 60, Y: 80},
	}}})

	square := func(size float64) packaide.PolygonWithHoles {
		return packaide.PolygonWithHoles{Boundary: packaide.Polygon{Points: []packaide.Point{
			{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size},
		}}}
	}
	parts := []model.Part{
		model.NewPart("big", square(30)),
		model.NewPart("small", square(10)),
	}

	result, err := packaide.Pack(
		[]packaide.Sheet{sheet},
		[]packaide.PolygonWithHoles{parts[0].Shape, parts[1].Shape},
		packaide.NewState(),
		packaide.Options{Rotations: 1},
	)
	require.NoError(t, err)
	require.Equal(t, 2, packaide.PlacedCount(result))

	return model.BuildLayouts([]packaide.Sheet{sheet}, parts, result)
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportPDF(t *testing.T) {
	layouts := testLayouts(t)
	path := filepath.Join(t.TempDir(), "layout.pdf")
	require.NoError(t, ExportPDF(path, layouts))
	requireNonEmptyFile(t, path)
}

func TestExportPDFNoSheets(t *testing.T) {
	assert.Error(t, ExportPDF(filepath.Join(t.TempDir(), "x.pdf"), nil))
}

func TestExportDXF(t *testing.T) {
	layouts := testLayouts(t)
	path := filepath.Join(t.TempDir(), "layout.dxf")
	require.NoError(t, ExportDXF(path, layouts))
	requireNonEmptyFile(t, path)
}

func TestExportLabels(t *testing.T) {
	layouts := testLayouts(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")
	require.NoError(t, ExportLabels(path, layouts))
	requireNonEmptyFile(t, path)
}

func TestExportLabelsNoPlacements(t *testing.T) {
	layouts := []model.SheetLayout{{Sheet: packaide.Sheet{Width: 10, Height: 10}}}
	assert.Error(t, ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), layouts))
}

func TestExportExcel(t *testing.T) {
	layouts := testLayouts(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ExportExcel(path, layouts))
	requireNonEmptyFile(t, path)
}
