// Package export renders nesting results to cutting-ready artifacts:
// PDF layout sheets, DXF drawings, QR-coded part labels and Excel
// reports.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	packaide "github.com/DanielLiamAnderson/Packaide"
	"github.com/DanielLiamAnderson/Packaide/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

// partColors cycles per placement so adjacent parts are distinguishable.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document of the nested layouts. Each sheet
// is rendered on its own page with the placed part outlines drawn to
// scale, followed by a summary page with overall statistics.
func ExportPDF(path string, layouts []model.SheetLayout) error {
	if len(layouts) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, layout := range layouts {
		pdf.AddPage()
		renderSheetPage(pdf, layout)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, layouts)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet layout on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, layout model.SheetLayout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d (%.0f x %.0f)", layout.Index+1, layout.Sheet.Width, layout.Sheet.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Used area: %.0f | Sheet area: %.0f | Utilization: %.1f%%",
		len(layout.Parts), layout.UsedArea(), layout.TotalArea(), layout.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	if layout.Sheet.Width <= 0 || layout.Sheet.Height <= 0 {
		return
	}
	scale := math.Min(drawWidth/layout.Sheet.Width, drawHeight/layout.Sheet.Height)

	// Map sheet coordinates to page coordinates, flipping y so the
	// sheet origin sits at the lower left of the drawing.
	toPage := func(x, y float64) (float64, float64) {
		return marginLeft + x*scale, drawAreaTop + (layout.Sheet.Height-y)*scale
	}

	// Sheet boundary
	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, drawAreaTop, layout.Sheet.Width*scale, layout.Sheet.Height*scale, "D")

	// Forbidden regions
	pdf.SetFillColor(220, 220, 220)
	pdf.SetDrawColor(120, 120, 120)
	for _, hole := range layout.Sheet.Holes {
		drawPolygon(pdf, hole.Boundary.Points, toPage, "FD")
	}

	// Placed parts
	pdf.SetLineWidth(0.25)
	for i, placed := range layout.Parts {
		color := partColors[i%len(partColors)]
		pdf.SetFillColor(color.R, color.G, color.B)
		pdf.SetDrawColor(30, 30, 30)
		drawPolygon(pdf, placed.Shape.Boundary.Points, toPage, "FD")
		pdf.SetFillColor(255, 255, 255)
		for _, hole := range placed.Shape.Holes {
			drawPolygon(pdf, hole.Points, toPage, "FD")
		}

		// Label at the outline centroid when there is room
		cx, cy := outlineCentroid(placed.Shape.Boundary.Points)
		px, py := toPage(cx, cy)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(20, 20, 20)
		pdf.SetXY(px-15, py-2)
		pdf.CellFormat(30, 4, placed.Part.Label, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawPolygon renders one closed outline with the given fpdf style.
func drawPolygon(pdf *fpdf.Fpdf, pts []packaide.Point, toPage func(float64, float64) (float64, float64), style string) {
	if len(pts) < 3 {
		return
	}
	poly := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		x, y := toPage(p.X, p.Y)
		poly[i] = fpdf.PointType{X: x, Y: y}
	}
	pdf.Polygon(poly, style)
}

// outlineCentroid returns the vertex average, good enough for label
// anchoring.
func outlineCentroid(pts []packaide.Point) (float64, float64) {
	if len(pts) == 0 {
		return 0, 0
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return sx / n, sy / n
}

// renderSummaryPage draws overall statistics on the current page.
func renderSummaryPage(pdf *fpdf.Fpdf, layouts []model.SheetLayout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Nesting Summary", "", 0, "L", false, 0, "")

	totalParts := 0
	totalUsed := 0.0
	totalArea := 0.0
	for _, l := range layouts {
		totalParts += len(l.Parts)
		totalUsed += l.UsedArea()
		totalArea += l.TotalArea()
	}
	overall := 0.0
	if totalArea > 0 {
		overall = 100 * totalUsed / totalArea
	}

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Sheets used: %d", len(layouts)),
		fmt.Sprintf("Parts placed: %d", totalParts),
		fmt.Sprintf("Total used area: %.0f", totalUsed),
		fmt.Sprintf("Total sheet area: %.0f", totalArea),
		fmt.Sprintf("Overall utilization: %.1f%%", overall),
	}
	y := marginTop + headerHeight + 8
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, line, "", 0, "L", false, 0, "")
		y += 7
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y+4)
	pdf.CellFormat(60, 6, "Sheet", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, "Parts", "B", 0, "R", false, 0, "")
	pdf.CellFormat(50, 6, "Utilization", "B", 0, "R", false, 0, "")
	y += 11

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range layouts {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(60, 5, fmt.Sprintf("Sheet %d", l.Index+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, fmt.Sprintf("%d", len(l.Parts)), "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 5, fmt.Sprintf("%.1f%%", l.Efficiency()), "", 0, "R", false, 0, "")
		y += 5.5
	}
}
