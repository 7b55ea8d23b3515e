// Package service wires the pipeline components together: one RunFile call
// reads, validates, renders, persists, archives and notifies for a single
// input file.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/In-dig0/vat-controller/internal/batch"
	"github.com/In-dig0/vat-controller/internal/config"
	"github.com/In-dig0/vat-controller/internal/csvexport"
	"github.com/In-dig0/vat-controller/internal/domain"
	"github.com/In-dig0/vat-controller/internal/port"
	"github.com/In-dig0/vat-controller/internal/reader"
	"github.com/In-dig0/vat-controller/internal/report"
)

// BatchRunner runs complete batches over single input files.
type BatchRunner struct {
	cfg      *config.Config
	checker  port.VATChecker
	store    port.CheckResultStore
	archive  port.ReportArchive
	notifier port.Notifier
	console  io.Writer
}

// NewBatchRunner creates a BatchRunner. store, archive, notifier and console
// may each be nil to disable the corresponding step.
func NewBatchRunner(cfg *config.Config, checker port.VATChecker, store port.CheckResultStore,
	archive port.ReportArchive, notifier port.Notifier, console io.Writer) *BatchRunner {
	return &BatchRunner{
		cfg:      cfg,
		checker:  checker,
		store:    store,
		archive:  archive,
		notifier: notifier,
		console:  console,
	}
}

// RunFile processes one input file end to end and returns its summary.
// Reader-open and render failures are fatal; archive failures are logged,
// counted into StoreFailures, and left to the caller's exit policy;
// notification failures are logged only.
func (r *BatchRunner) RunFile(ctx context.Context, input string) (*domain.BatchSummary, error) {
	log.Printf("processing %s", input)

	src, err := reader.New(input, r.cfg.Source.SeparatorRune(), r.cfg.Source.Header)
	if err != nil {
		return nil, err
	}

	proc := batch.NewProcessor(r.checker, r.store, r.console)
	summary, err := proc.Process(ctx, src, input)
	closeErr := src.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		log.Printf("WARN: closing %s: %v", input, closeErr)
	}

	pdfBytes, pdfPath, err := r.writeArtifacts(summary, input)
	if err != nil {
		return nil, err
	}

	if r.archive != nil {
		key := summary.BatchID.String() + ".pdf"
		location, err := r.archive.Archive(ctx, key, bytes.NewReader(pdfBytes), "application/pdf")
		if err != nil {
			log.Printf("WARN: archiving report: %v", err)
			summary.StoreFailures++
		} else {
			log.Printf("report archived at %s", location)
		}
	}

	if r.notifier != nil {
		if err := r.notifier.NotifyBatchComplete(ctx, summary); err != nil {
			log.Printf("WARN: completion notification: %v", err)
		}
	}

	log.Printf("batch %s done: report %s", summary.BatchID, pdfPath)
	return summary, nil
}

func (r *BatchRunner) writeArtifacts(summary *domain.BatchSummary, input string) ([]byte, string, error) {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	pdfPath := filepath.Join(r.cfg.Report.OutputDir, stem+".pdf")

	pdfBytes, err := report.NewPDFRenderer(r.cfg.Report.Title).Render(summary)
	if err != nil {
		return nil, "", err
	}
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		return nil, "", fmt.Errorf("%w: writing %s: %v", domain.ErrRender, pdfPath, err)
	}

	if r.cfg.Report.XLSX {
		xlsxPath := filepath.Join(r.cfg.Report.OutputDir, stem+".xlsx")
		if err := report.NewXLSXRenderer(r.cfg.Report.Title).WriteFile(summary, xlsxPath); err != nil {
			return nil, "", err
		}
	}
	if r.cfg.Report.CSV {
		if err := writeCSV(summary, filepath.Join(r.cfg.Report.OutputDir, stem+".csv")); err != nil {
			return nil, "", err
		}
	}
	return pdfBytes, pdfPath, nil
}

func writeCSV(summary *domain.BatchSummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", domain.ErrRender, path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrRender, path, err)
	}
	w := csvexport.NewWriter(f)
	if err := w.WriteSummary(summary); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrRender, path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrRender, path, err)
	}
	return nil
}
