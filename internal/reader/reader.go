// Package reader parses the delimited partner input file into PartnerRecord
// values. Malformed rows are logged, counted, and skipped; they never abort
// the batch.
package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// fieldsPerRecord is the expected column count: description, country, VAT number.
const fieldsPerRecord = 3

// Reader lazily produces PartnerRecord values from one delimited file.
// Restartable only by reopening.
type Reader struct {
	path    string
	f       *os.File
	csv     *csv.Reader
	line    int
	skipped int
}

// New opens path for reading. sep is the field separator; when skipHeader is
// set the first line is consumed and discarded.
func New(path string, sep rune, skipHeader bool) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}

	c := csv.NewReader(f)
	c.Comma = sep
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = true

	r := &Reader{path: path, f: f, csv: c}

	if skipHeader {
		if _, err := c.Read(); err != nil && err != io.EOF {
			_ = f.Close()
			return nil, fmt.Errorf("reading header line: %w", err)
		}
		r.line = 1
	}
	return r, nil
}

// Next returns the next well-formed record, skipping malformed rows.
// Returns io.EOF when the input is exhausted.
func (r *Reader) Next() (domain.PartnerRecord, error) {
	for {
		fields, err := r.csv.Read()
		if err == io.EOF {
			return domain.PartnerRecord{}, io.EOF
		}
		r.line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.skip(fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err))
				continue
			}
			return domain.PartnerRecord{}, fmt.Errorf("reading %s: %w", r.path, err)
		}

		if len(fields) != fieldsPerRecord {
			r.skip(fmt.Errorf("%w: expected %d fields, got %d", domain.ErrMalformedRecord, fieldsPerRecord, len(fields)))
			continue
		}

		rec := domain.PartnerRecord{
			Description: strings.TrimSpace(fields[0]),
			CountryCode: strings.TrimSpace(fields[1]),
			VATNumber:   strings.TrimSpace(fields[2]),
			SourceFile:  r.path,
			Line:        r.line,
		}
		if err := rec.Validate(); err != nil {
			r.skip(err)
			continue
		}
		return rec, nil
	}
}

func (r *Reader) skip(err error) {
	r.skipped++
	log.Printf("WARN: %s line %d skipped: %v", r.path, r.line, err)
}

// Skipped returns the number of malformed rows dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}
