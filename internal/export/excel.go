package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/DanielLiamAnderson/Packaide/internal/model"
)

// ExportExcel writes a workbook with one row per placement and a
// per-sheet utilization summary.
func ExportExcel(path string, layouts []model.SheetLayout) error {
	if len(layouts) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const placements = "Placements"
	f.SetSheetName("Sheet1", placements)

	headers := []string{"Sheet", "Part ID", "Label", "X", "Y", "Rotation", "Area"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(placements, cell, h)
	}

	row := 2
	for _, layout := range layouts {
		for _, placed := range layout.Parts {
			values := []interface{}{
				layout.Index + 1,
				placed.Part.ID,
				placed.Part.Label,
				placed.Transform.Translate.X,
				placed.Transform.Translate.Y,
				placed.Transform.Rotate,
				model.PolygonArea(placed.Part.Shape),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(placements, cell, v)
			}
			row++
		}
	}

	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summaryHeaders := []string{"Sheet", "Width", "Height", "Parts", "Used Area", "Utilization %"}
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summary, cell, h)
	}
	for i, layout := range layouts {
		values := []interface{}{
			layout.Index + 1,
			layout.Sheet.Width,
			layout.Sheet.Height,
			len(layout.Parts),
			layout.UsedArea(),
			layout.Efficiency(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(summary, cell, v)
		}
	}

	return f.SaveAs(path)
}
