// Package batch drives the sequential validation pipeline: one remote
// checkVat call per input record, results accumulated in input order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/In-dig0/vat-controller/internal/domain"
	"github.com/In-dig0/vat-controller/internal/port"
)

// RecordSource is the processor's view of the record reader.
type RecordSource interface {
	// Next returns the next record, or io.EOF when the input is exhausted.
	Next() (domain.PartnerRecord, error)
	// Skipped returns the number of malformed rows dropped so far.
	Skipped() int
}

// Processor runs one batch: validate every record, never abort on a single
// record's service or store failure.
type Processor struct {
	checker port.VATChecker
	store   port.CheckResultStore
	console io.Writer
}

// NewProcessor creates a Processor. store may be nil when persistence is
// disabled; console may be nil to suppress the per-record echo.
func NewProcessor(checker port.VATChecker, store port.CheckResultStore, console io.Writer) *Processor {
	return &Processor{checker: checker, store: store, console: console}
}

// Process consumes src to exhaustion and returns the finalized summary.
// Results are appended in input order. Service errors are captured into the
// per-record result; store failures are logged and counted. Only a source
// read failure aborts the run.
func (p *Processor) Process(ctx context.Context, src RecordSource, sourceFile string) (*domain.BatchSummary, error) {
	summary := domain.NewBatchSummary(sourceFile)

	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading records: %w", err)
		}

		res := p.checkRecord(ctx, rec)
		summary.Add(res)
		p.echo(&res)

		// Stream each result out as it is produced so a crash mid-batch
		// still leaves prior rows persisted.
		if p.store != nil {
			if err := p.store.Store(ctx, summary.BatchID, &res); err != nil {
				summary.StoreFailures++
				log.Printf("WARN: storing result for %s: %v", rec.PartnerID(), err)
			}
		}
	}

	summary.SkippedLines = src.Skipped()
	summary.FinishedAt = time.Now().UTC()
	return summary, nil
}

func (p *Processor) checkRecord(ctx context.Context, rec domain.PartnerRecord) domain.CheckResult {
	res := domain.CheckResult{
		Record:    rec,
		CheckedAt: time.Now().UTC(),
	}

	out, err := p.checker.CheckVAT(ctx, rec.CountryCode, rec.VATNumber)
	switch {
	case err == nil:
		res.Valid = out.Valid
		res.Name = out.Name
		res.Address = out.Address
		res.RequestDate = out.RequestDate
	case errors.Is(err, domain.ErrServiceFault):
		// Validity undetermined, never confirmed false.
		res.ErrKind = domain.ServiceErrorFault
		res.ErrMsg = err.Error()
	default:
		res.ErrKind = domain.ServiceErrorUnavailable
		res.ErrMsg = err.Error()
	}
	return res
}

func (p *Processor) echo(res *domain.CheckResult) {
	if p.console == nil {
		return
	}
	switch {
	case res.ErrKind != domain.ServiceErrorNone:
		fmt.Fprintf(p.console, "%-40s %s%s -> ERROR (%s)\n",
			res.Record.Description, res.Record.CountryCode, res.Record.VATNumber, res.ErrMsg)
	case res.Valid:
		fmt.Fprintf(p.console, "%-40s %s%s -> VALID (%s)\n",
			res.Record.Description, res.Record.CountryCode, res.Record.VATNumber, res.Name)
	default:
		fmt.Fprintf(p.console, "%-40s %s%s -> INVALID\n",
			res.Record.Description, res.Record.CountryCode, res.Record.VATNumber)
	}
}
