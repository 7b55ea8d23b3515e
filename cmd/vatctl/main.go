// Command vatctl validates EU VAT numbers against the VIES service.
// It reads partner rows from a delimited file, checks each one remotely,
// writes a PDF report (plus optional XLSX/CSV artifacts), and optionally
// persists the results to PostgreSQL.
//
// Usage: vatctl <config-file>
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/In-dig0/vat-controller/internal/config"
	"github.com/In-dig0/vat-controller/internal/notify/noop"
	"github.com/In-dig0/vat-controller/internal/notify/ses"
	"github.com/In-dig0/vat-controller/internal/port"
	"github.com/In-dig0/vat-controller/internal/repository/postgres"
	"github.com/In-dig0/vat-controller/internal/service"
	"github.com/In-dig0/vat-controller/internal/storage/s3"
	"github.com/In-dig0/vat-controller/internal/vies"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: vatctl <config-file>")
	}

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	ctx := context.Background()
	client := vies.NewClient(&cfg.VIES)

	if cfg.VIES.CheckStatusFirst {
		if err := printServiceStatus(ctx, client); err != nil {
			return fmt.Errorf("VIES status check: %w", err)
		}
	}

	var store port.CheckResultStore
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("opening result store: %w", err)
		}
		defer func() { _ = db.Close() }()
		store = postgres.NewPartnerCheckRepo(db)
	}

	var archive port.ReportArchive
	if cfg.Archive.Enabled {
		archive, err = s3.NewArchive(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("opening report archive: %w", err)
		}
	}

	var notifier port.Notifier
	switch cfg.Notify.Provider {
	case "ses":
		notifier, err = ses.NewSESNotifier(&cfg.Notify)
		if err != nil {
			return fmt.Errorf("creating SES notifier: %w", err)
		}
	default:
		notifier = noop.NewNoopNotifier()
	}

	inputs, err := resolveInputs(cfg.Source.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	var console io.Writer
	if cfg.Report.Console {
		console = os.Stdout
	}

	runner := service.NewBatchRunner(cfg, client, store, archive, notifier, console)

	failed := false
	for _, input := range inputs {
		summary, err := runner.RunFile(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s: %d checked, %d valid, %d invalid, %d errors, %d skipped lines\n",
			input, summary.Total, summary.ValidCount, summary.InvalidCount,
			summary.ErrorCount, summary.SkippedLines)
		if summary.StoreFailures > 0 {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("run completed with persistence failures")
	}
	return nil
}

// resolveInputs expands a source path to the list of files to process:
// the path itself, or every *.csv inside it when it names a directory.
func resolveInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("source path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing source dir: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no *.csv files in %s", path)
	}
	sort.Strings(matches)
	return matches, nil
}

func printServiceStatus(ctx context.Context, client *vies.Client) error {
	status, err := client.CheckStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("VIES service available: %t\n", status.Available)
	codes := make([]string, 0, len(status.MemberStates))
	for code := range status.MemberStates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	var down []string
	for _, code := range codes {
		if !status.MemberStates[code] {
			down = append(down, code)
		}
	}
	if len(down) > 0 {
		fmt.Printf("member states currently unavailable: %s\n", strings.Join(down, ", "))
	}
	return nil
}
