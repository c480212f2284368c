// Packaide — 2D irregular nesting from the command line
//
// Imports part shapes from DXF drawings or CSV/Excel cut lists, nests
// them onto rectangular sheets, and writes the resulting layout as
// JSON, PDF, DXF, QR part labels, or an Excel report.
//
// Build:
//
//	go build -o packaide ./cmd/packaide
//
// Example:
//
//	packaide -sheet 1220x610 -count 3 -rotations 4 -offset 2 \
//	  -pdf layout.pdf -dxf layout.dxf parts.dxf extras.csv
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	packaide "github.com/DanielLiamAnderson/Packaide"
	"github.com/DanielLiamAnderson/Packaide/internal/export"
	"github.com/DanielLiamAnderson/Packaide/internal/importer"
	"github.com/DanielLiamAnderson/Packaide/internal/model"
)

func main() {
	var (
		sheetSpec  = flag.String("sheet", "1220x610", "sheet size as WIDTHxHEIGHT")
		sheetCount = flag.Int("count", 10, "number of sheets available")
		rotations  = flag.Int("rotations", 4, "rotations to try per part")
		offset     = flag.Float64("offset", 0, "spacing to keep around each part")
		partial    = flag.Bool("partial", false, "place as many parts as possible instead of failing")
		jsonOut    = flag.Bool("json", false, "print placements as JSON")
		pdfOut     = flag.String("pdf", "", "write a PDF layout to this path")
		dxfOut     = flag.String("dxf", "", "write a DXF layout to this path")
		labelsOut  = flag.String("labels", "", "write QR part labels (PDF) to this path")
		xlsxOut    = flag.String("xlsx", "", "write an Excel report to this path")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: packaide [flags] file.dxf [file.csv ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	width, height, err := parseSheetSpec(*sheetSpec)
	if err != nil {
		fatalf("invalid -sheet %q: %v", *sheetSpec, err)
	}
	if *sheetCount < 1 {
		fatalf("-count must be at least 1")
	}

	files := append([]string(nil), flag.Args()...)
	sort.Slice(files, func(i, j int) bool { return natural.Less(files[i], files[j]) })

	var parts []model.Part
	for _, file := range files {
		result := importFile(file)
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", file, w)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %s: %s\n", file, e)
		}
		if len(result.Errors) > 0 {
			os.Exit(1)
		}
		parts = append(parts, result.Parts...)
	}
	if len(parts) == 0 {
		fatalf("no parts to nest")
	}

	sheets := make([]packaide.Sheet, *sheetCount)
	for i := range sheets {
		sheets[i] = packaide.Sheet{Width: width, Height: height}
	}
	polygons := make([]packaide.PolygonWithHoles, len(parts))
	for i, p := range parts {
		polygons[i] = p.Shape
	}

	state := packaide.NewState()
	result, err := packaide.Pack(sheets, polygons, state, packaide.Options{
		Partial:   *partial,
		Rotations: *rotations,
		Offset:    *offset,
	})
	if err != nil {
		fatalf("packing failed: %v", err)
	}

	placed := packaide.PlacedCount(result)
	if placed == 0 && !*partial {
		fatalf("no feasible packing: %d parts do not fit on %d sheet(s) of %gx%g",
			len(parts), *sheetCount, width, height)
	}

	layouts := model.BuildLayouts(sheets, parts, result)

	jobID := uuid.New().String()[:8]
	fmt.Printf("job %s: placed %d/%d parts on %d sheet(s)\n", jobID, placed, len(parts), len(layouts))
	for _, layout := range layouts {
		fmt.Printf("  sheet %d: %d parts, %.1f%% utilization\n",
			layout.Index+1, len(layout.Parts), layout.Efficiency())
	}
	for _, id := range packaide.UnplacedIDs(result, len(parts)) {
		fmt.Fprintf(os.Stderr, "warning: part %q did not fit\n", parts[id].Label)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fatalf("encoding result: %v", err)
		}
	}
	if *pdfOut != "" {
		if err := export.ExportPDF(*pdfOut, layouts); err != nil {
			fatalf("PDF export: %v", err)
		}
	}
	if *dxfOut != "" {
		if err := export.ExportDXF(*dxfOut, layouts); err != nil {
			fatalf("DXF export: %v", err)
		}
	}
	if *labelsOut != "" {
		if err := export.ExportLabels(*labelsOut, layouts); err != nil {
			fatalf("label export: %v", err)
		}
	}
	if *xlsxOut != "" {
		if err := export.ExportExcel(*xlsxOut, layouts); err != nil {
			fatalf("Excel export: %v", err)
		}
	}
}

// importFile dispatches on the file extension.
func importFile(path string) importer.ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		return importer.ImportDXF(path)
	case ".csv", ".txt":
		return importer.ImportCSV(path)
	case ".xlsx", ".xlsm", ".xls":
		return importer.ImportExcel(path)
	default:
		return importer.ImportResult{Errors: []string{"unsupported file type"}}
	}
}

// parseSheetSpec parses "WIDTHxHEIGHT".
func parseSheetSpec(spec string) (width, height float64, err error) {
	parts := strings.SplitN(strings.ToLower(spec), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WIDTHxHEIGHT")
	}
	width, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad width: %w", err)
	}
	height, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("dimensions must be positive")
	}
	return width, height, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "packaide: "+format+"\n", args...)
	os.Exit(1)
}
