// Package report renders batch summaries as printable artifacts: a paginated
// PDF report and an optional XLSX workbook with the same columns.
package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// Table layout for landscape A4 (297mm wide, 10mm margins).
var pdfColumns = []struct {
	title string
	width float64
}{
	{"Line", 12},
	{"Partner description", 52},
	{"VAT ID", 30},
	{"Status", 18},
	{"Registered name", 48},
	{"Registered address", 52},
	{"Error message", 43},
	{"Request date", 22},
}

const pdfRowHeight = 7.0

// PDFRenderer renders a BatchSummary as a paginated landscape PDF.
type PDFRenderer struct {
	title string
}

// NewPDFRenderer creates a renderer with the given report title.
func NewPDFRenderer(title string) *PDFRenderer {
	return &PDFRenderer{title: title}
}

// Render produces the PDF document. A rendering failure wraps
// domain.ErrRender and is fatal to the run.
func (r *PDFRenderer) Render(summary *domain.BatchSummary) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(r.title, true)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	r.coverPage(pdf, summary)

	// The column header repeats at the top of every results page.
	pdf.SetHeaderFunc(func() { tableHeader(pdf) })
	pdf.AddPage()
	for i := range summary.Results {
		tableRow(pdf, &summary.Results[i], i%2 == 1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the summary and writes the document to path.
func (r *PDFRenderer) WriteFile(summary *domain.BatchSummary, path string) error {
	data, err := r.Render(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrRender, path, err)
	}
	return nil
}

func (r *PDFRenderer) coverPage(pdf *fpdf.Fpdf, summary *domain.BatchSummary) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(30, 45, 90)
	pdf.CellFormat(0, 40, r.title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(0, 8, "Generated "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	meta := [][2]string{
		{"Batch", summary.BatchID.String()},
		{"Source file", summary.SourceFile},
		{"Records checked", fmt.Sprintf("%d", summary.Total)},
		{"Valid", fmt.Sprintf("%d", summary.ValidCount)},
		{"Invalid", fmt.Sprintf("%d", summary.InvalidCount)},
		{"Service errors", fmt.Sprintf("%d", summary.ErrorCount)},
		{"Skipped input lines", fmt.Sprintf("%d", summary.SkippedLines)},
	}

	// Boxed metadata block, centered.
	const boxWidth = 150.0
	left := (297.0 - boxWidth) / 2
	pdf.SetDrawColor(30, 45, 90)
	pdf.SetTextColor(40, 40, 40)
	for _, kv := range meta {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 8, kv[0], "LT", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(boxWidth-55, 8, kv[1], "TR", 1, "L", false, 0, "")
	}
	pdf.SetX(left)
	pdf.CellFormat(boxWidth, 0, "", "T", 1, "L", false, 0, "")
}

func tableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 45, 90)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, pdfRowHeight, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func tableRow(pdf *fpdf.Fpdf, res *domain.CheckResult, shaded bool) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(40, 40, 40)
	if shaded {
		pdf.SetFillColor(232, 236, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}

	cells := rowCells(res)
	for i, col := range pdfColumns {
		align := "L"
		if i == 0 || i == 3 {
			align = "C"
		}
		pdf.CellFormat(col.width, pdfRowHeight, truncate(pdf, cells[i], col.width-2), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
}

// rowCells maps a result onto the table columns, in pdfColumns order.
func rowCells(res *domain.CheckResult) []string {
	return []string{
		fmt.Sprintf("%d", res.Record.Line),
		res.Record.Description,
		res.Record.PartnerID(),
		res.Status(),
		res.Name,
		res.Address,
		res.ErrMsg,
		res.RequestDate,
	}
}

// truncate shortens s with an ellipsis so it fits in a cell width mm wide.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
