package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/DanielLiamAnderson/Packaide/internal/model"
)

// LabelInfo holds the data encoded into each part label's QR code.
type LabelInfo struct {
	PartID     string  `json:"id"`
	PartLabel  string  `json:"label"`
	SheetIndex int     `json:"sheet"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Rotate     float64 `json:"rotate"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns,
// 10 rows per page on US Letter).
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for all placed parts.
// Each label carries the part name, its sheet, and a QR code encoding
// the placement as JSON so a shop-floor scanner can recover where the
// cut piece belongs.
func ExportLabels(path string, layouts []model.SheetLayout) error {
	if len(layouts) == 0 {
		return fmt.Errorf("no sheets to generate labels for")
	}

	var labels []LabelInfo
	for _, layout := range layouts {
		for _, placed := range layout.Parts {
			labels = append(labels, LabelInfo{
				PartID:     placed.Part.ID,
				PartLabel:  placed.Part.Label,
				SheetIndex: layout.Index + 1,
				X:          placed.Transform.Translate.X,
				Y:          placed.Transform.Translate.Y,
				Rotate:     placed.Transform.Rotate,
			})
		}
	}
	if len(labels) == 0 {
		return fmt.Errorf("no parts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		slot := i % labelsPerPage
		if slot == 0 {
			pdf.AddPage()
		}

		col := slot % labelCols
		row := slot / labelCols
		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		payload, err := json.Marshal(label)
		if err != nil {
			return fmt.Errorf("encoding label %d: %w", i, err)
		}
		png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("generating QR for %s: %w", label.PartLabel, err)
		}

		imgName := fmt.Sprintf("qr-%d", i)
		pdf.RegisterImageOptionsReader(imgName,
			fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions(imgName,
			x+labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize,
			false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		textX := x + labelPadding + qrSize + labelPadding
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(textX, y+labelPadding+2)
		pdf.CellFormat(labelWidth-qrSize-3*labelPadding, 4, label.PartLabel, "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(textX, y+labelPadding+7)
		pdf.CellFormat(labelWidth-qrSize-3*labelPadding, 3.5,
			fmt.Sprintf("Sheet %d", label.SheetIndex), "", 0, "L", false, 0, "")
		pdf.SetXY(textX, y+labelPadding+11)
		pdf.CellFormat(labelWidth-qrSize-3*labelPadding, 3.5,
			fmt.Sprintf("at (%.1f, %.1f) rot %.0f", label.X, label.Y, label.Rotate),
			"", 0, "L", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
