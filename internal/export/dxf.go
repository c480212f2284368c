package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	packaide "github.com/DanielLiamAnderson/Packaide"
	"github.com/DanielLiamAnderson/Packaide/internal/model"
)

// ExportDXF writes the nested layouts as a DXF drawing. Each sheet gets
// its own layer with the sheet boundary, its forbidden regions and
// every placed outline as closed LWPOLYLINEs, ready for a CAM pipeline.
// Sheets are laid out side by side with a gap so the drawing stays
// readable.
func ExportDXF(path string, layouts []model.SheetLayout) error {
	if len(layouts) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	dwg := dxf.NewDrawing()

	offsetX := 0.0
	const gap = 50.0

	for _, layout := range layouts {
		layer := fmt.Sprintf("SHEET_%d", layout.Index+1)
		if _, err := dwg.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("adding layer %s: %w", layer, err)
		}

		boundary := []packaide.Point{
			{X: 0, Y: 0},
			{X: layout.Sheet.Width, Y: 0},
			{X: layout.Sheet.Width, Y: layout.Sheet.Height},
			{X: 0, Y: layout.Sheet.Height},
		}
		if err := writeOutline(dwg, boundary, offsetX); err != nil {
			return err
		}
		for _, hole := range layout.Sheet.Holes {
			if err := writePolygon(dwg, hole, offsetX); err != nil {
				return err
			}
		}
		for _, placed := range layout.Parts {
			if err := writePolygon(dwg, placed.Shape, offsetX); err != nil {
				return err
			}
		}

		offsetX += layout.Sheet.Width + gap
	}

	return dwg.SaveAs(path)
}

// writePolygon writes a polygon's boundary and holes as closed
// polylines.
func writePolygon(d *drawing.Drawing, p packaide.PolygonWithHoles, offsetX float64) error {
	if err := writeOutline(d, p.Boundary.Points, offsetX); err != nil {
		return err
	}
	for _, h := range p.Holes {
		if err := writeOutline(d, h.Points, offsetX); err != nil {
			return err
		}
	}
	return nil
}

func writeOutline(d *drawing.Drawing, pts []packaide.Point, offsetX float64) error {
	if len(pts) < 3 {
		return nil
	}
	vertices := make([][]float64, len(pts))
	for i, p := range pts {
		vertices[i] = []float64{p.X + offsetX, p.Y}
	}
	if _, err := d.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("writing polyline: %w", err)
	}
	return nil
}
