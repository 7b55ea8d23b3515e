package noop

import (
	"context"
	"log"

	"github.com/In-dig0/vat-controller/internal/domain"
	"github.com/In-dig0/vat-controller/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a Notifier that only logs the run summary.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) NotifyBatchComplete(_ context.Context, summary *domain.BatchSummary) error {
	log.Printf("[NOOP NOTIFY] batch %s complete: %d checked, %d valid, %d invalid, %d errors",
		summary.BatchID, summary.Total, summary.ValidCount, summary.InvalidCount, summary.ErrorCount)
	return nil
}
