// Package csvexport writes the machine-readable results CSV that accompanies
// the PDF report when enabled in config.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Line",
	"Partner Description",
	"Country Code",
	"VAT Number",
	"Partner ID",
	"Status",
	"Registered Name",
	"Registered Address",
	"Error Message",
	"Request Date",
	"Checked At",
}

// Writer wraps csv.Writer for exporting check results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResults converts a batch of check results to CSV rows and writes them.
func (w *Writer) WriteResults(results []domain.CheckResult) error {
	for i := range results {
		row := resultToRow(&results[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes the whole summary: header plus every result, in order.
func (w *Writer) WriteSummary(summary *domain.BatchSummary) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	return w.WriteResults(summary.Results)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func resultToRow(res *domain.CheckResult) []string {
	row := make([]string, len(columns))
	row[0] = strconv.Itoa(res.Record.Line)
	row[1] = res.Record.Description
	row[2] = res.Record.CountryCode
	row[3] = res.Record.VATNumber
	row[4] = res.Record.PartnerID()
	row[5] = res.Status()
	row[6] = res.Name
	row[7] = res.Address
	row[8] = res.ErrMsg
	row[9] = res.RequestDate
	row[10] = res.CheckedAt.Format(time.RFC3339)
	return row
}
