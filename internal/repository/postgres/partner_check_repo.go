package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/In-dig0/vat-controller/internal/domain"
	"github.com/In-dig0/vat-controller/internal/port"
)

type partnerCheckRepo struct {
	db *sqlx.DB
}

// NewPartnerCheckRepo creates a new PostgreSQL-backed CheckResultStore.
func NewPartnerCheckRepo(db *sqlx.DB) port.CheckResultStore {
	return &partnerCheckRepo{db: db}
}

const insertColumns = `batch_id, partner_id, partner_name, country_code, vat_number,
		company_name, company_address, status, error_message, request_date, checked_at`

func (r *partnerCheckRepo) Store(ctx context.Context, batchID uuid.UUID, res *domain.CheckResult) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO partner_checks (`+insertColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		batchID, res.Record.PartnerID(), res.Record.Description,
		res.Record.CountryCode, res.Record.VATNumber,
		res.Name, res.Address, res.Status(), res.ErrMsg, res.RequestDate, res.CheckedAt)
	if err != nil {
		return fmt.Errorf("%w: partnerCheckRepo.Store %s: %v", domain.ErrPersistence, res.Record.PartnerID(), err)
	}
	return nil
}

func (r *partnerCheckRepo) StoreBatch(ctx context.Context, batchID uuid.UUID, results []domain.CheckResult) error {
	if len(results) == 0 {
		return nil
	}

	const cols = 11
	valueStrings := make([]string, 0, len(results))
	valueArgs := make([]interface{}, 0, len(results)*cols)

	for i := range results {
		res := &results[i]
		base := i * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			batchID, res.Record.PartnerID(), res.Record.Description,
			res.Record.CountryCode, res.Record.VATNumber,
			res.Name, res.Address, res.Status(), res.ErrMsg, res.RequestDate, res.CheckedAt)
	}

	query := `INSERT INTO partner_checks (` + insertColumns + `) VALUES ` + strings.Join(valueStrings, ", ")
	if _, err := r.db.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("%w: partnerCheckRepo.StoreBatch: %v", domain.ErrPersistence, err)
	}
	return nil
}
