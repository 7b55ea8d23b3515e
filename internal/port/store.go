package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// CheckResultStore persists validation results to the remote store.
type CheckResultStore interface {
	// Store writes one result under the given batch identifier.
	Store(ctx context.Context, batchID uuid.UUID, res *domain.CheckResult) error

	// StoreBatch writes a slice of results in one statement. Used by
	// backfill-style tooling; the live pipeline streams through Store.
	StoreBatch(ctx context.Context, batchID uuid.UUID, results []domain.CheckResult) error
}
