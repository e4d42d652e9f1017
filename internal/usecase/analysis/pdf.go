package analysis

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	domain "rhapsody/internal/domain/analysis"
)

// ReportPDF renders the analysis log as a printable score sheet, one
// line per move.
func ReportPDF(gameID string, reports []domain.MoveReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Courier", "", 10)
	pdf.AddPage()
	pdf.Cell(40, 10, "Game "+gameID)
	pdf.Ln(10)

	for _, report := range reports {
		coords := "pass"
		if report.Coords != nil {
			coords = fmt.Sprintf("(%d,%d)", report.Coords.Row, report.Coords.Col)
		}
		line := fmt.Sprintf("%3d  %s  %-8s  %-18s %s", report.MoveNumber, report.Player, coords, report.Type, report.MusicalIntensity)
		if report.CapturedCount > 0 {
			line += fmt.Sprintf("  captures=%d", report.CapturedCount)
		}
		if report.Error != "" {
			line += "  [" + report.Error + "]"
		}
		pdf.MultiCell(0, 4.5, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
