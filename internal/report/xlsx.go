package report

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/In-dig0/vat-controller/internal/domain"
)

const xlsxSheet = "Results"

var xlsxColumns = []string{
	"Line",
	"Partner description",
	"Country",
	"VAT number",
	"Status",
	"Registered name",
	"Registered address",
	"Error message",
	"Request date",
	"Checked at",
}

// summaryRows is the number of header-block rows above the column titles.
const summaryRows = 4

// XLSXRenderer renders a BatchSummary as a spreadsheet workbook.
type XLSXRenderer struct {
	title string
}

// NewXLSXRenderer creates a renderer with the given workbook title.
func NewXLSXRenderer(title string) *XLSXRenderer {
	return &XLSXRenderer{title: title}
}

// Render produces the workbook bytes. Failures wrap domain.ErrRender.
func (r *XLSXRenderer) Render(summary *domain.BatchSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}

	w := &cellWriter{f: f}

	// Summary block.
	w.set(1, 1, r.title)
	w.set(1, 2, "Batch "+summary.BatchID.String())
	w.set(1, 3, "Source "+summary.SourceFile)
	w.set(1, summaryRows, fmt.Sprintf("Total %d / Valid %d / Invalid %d / Errors %d / Skipped %d",
		summary.Total, summary.ValidCount, summary.InvalidCount, summary.ErrorCount, summary.SkippedLines))

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err == nil {
		_ = f.SetCellStyle(xlsxSheet, "A1", "A1", titleStyle)
	}

	// Column header row.
	headerRow := summaryRows + 2
	for col, title := range xlsxColumns {
		w.set(col+1, headerRow, title)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1E2D5A"}, Pattern: 1},
	})
	if err == nil {
		first, _ := excelize.CoordinatesToCellName(1, headerRow)
		last, _ := excelize.CoordinatesToCellName(len(xlsxColumns), headerRow)
		_ = f.SetCellStyle(xlsxSheet, first, last, headerStyle)
	}

	for i := range summary.Results {
		res := &summary.Results[i]
		row := headerRow + 1 + i
		w.set(1, row, res.Record.Line)
		w.set(2, row, res.Record.Description)
		w.set(3, row, res.Record.CountryCode)
		w.set(4, row, res.Record.VATNumber)
		w.set(5, row, res.Status())
		w.set(6, row, res.Name)
		w.set(7, row, res.Address)
		w.set(8, row, res.ErrMsg)
		w.set(9, row, res.RequestDate)
		w.set(10, row, res.CheckedAt.Format(time.RFC3339))
	}

	if w.err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the summary and writes the workbook to path.
func (r *XLSXRenderer) WriteFile(summary *domain.BatchSummary, path string) error {
	data, err := r.Render(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrRender, path, err)
	}
	return nil
}

// cellWriter writes cells and keeps the first error so a bad write surfaces
// instead of producing a silently sparse workbook.
type cellWriter struct {
	f   *excelize.File
	err error
}

func (w *cellWriter) set(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(xlsxSheet, cell, value)
}
