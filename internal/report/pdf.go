package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/san-kum/mechsolver/internal/calc"
)

// Sheet is one calculation laid out as a printable report.
type Sheet struct {
	Title     string
	Formula   string
	Timestamp time.Time
	Inputs    map[string]any
	Result    *calc.Result
	Precision int
	Notes     string
}

func WritePDF(w io.Writer, s Sheet) error {
	if s.Title == "" {
		s.Title = "Calculation Report"
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, s.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Formula: %s", s.Formula))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", s.Timestamp.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	// Core fonts are cp1252; units like m² and σ need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(k, v string) {
		pdf.CellFormat(70, 6, tr(k), "1", 0, "L", false, 0, "")
		pdf.CellFormat(110, 6, tr(v), "1", 1, "L", false, 0, "")
	}

	if len(s.Inputs) > 0 {
		section("Inputs")
		for _, k := range sortedKeys(s.Inputs) {
			row(k, formatInput(s.Inputs[k], s.Precision))
		}
		pdf.Ln(4)
	}

	if s.Result != nil {
		section("Results")
		for _, name := range s.Result.Names() {
			v, _ := s.Result.Get(name)
			row(name, FormatValue(v, s.Precision))
		}
		pdf.Ln(4)
	}

	if s.Notes != "" {
		section("Notes")
		pdf.MultiCell(0, 6, tr(s.Notes), "", "L", false)
	}

	return pdf.Output(w)
}
