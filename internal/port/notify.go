package port

import (
	"context"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// Notifier signals the completion of a batch run.
type Notifier interface {
	NotifyBatchComplete(ctx context.Context, summary *domain.BatchSummary) error
}
