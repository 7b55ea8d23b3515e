package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/In-dig0/vat-controller/internal/domain"
)

func sampleSummary() *domain.BatchSummary {
	s := domain.NewBatchSummary("partners.csv")
	s.Add(domain.CheckResult{
		Record:      domain.PartnerRecord{Description: "07080436 |IPH FRANCE", CountryCode: "FR", VATNumber: "00353970262", Line: 1},
		Valid:       true,
		Name:        "IPH FRANCE",
		Address:     "12 RUE DE LA PAIX, 75002 PARIS",
		RequestDate: "2025-08-29+02:00",
		CheckedAt:   time.Now().UTC(),
	})
	s.Add(domain.CheckResult{
		Record:    domain.PartnerRecord{Description: "ACME GMBH", CountryCode: "DE", VATNumber: "129273398", Line: 2},
		CheckedAt: time.Now().UTC(),
	})
	s.Add(domain.CheckResult{
		Record:    domain.PartnerRecord{Description: "FIAT SPA", CountryCode: "IT", VATNumber: "00743110157", Line: 3},
		ErrKind:   domain.ServiceErrorFault,
		ErrMsg:    "VIES fault: MS_UNAVAILABLE",
		CheckedAt: time.Now().UTC(),
	})
	s.FinishedAt = time.Now().UTC()
	return s
}

func TestPDFRender(t *testing.T) {
	data, err := NewPDFRenderer("EU VAT validation report").Render(sampleSummary())
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFTableIncludesNameAndAddress(t *testing.T) {
	titles := make([]string, len(pdfColumns))
	for i, col := range pdfColumns {
		titles[i] = col.title
	}
	assert.Contains(t, titles, "Registered name")
	assert.Contains(t, titles, "Registered address")

	summary := sampleSummary()
	cells := rowCells(&summary.Results[0])
	require.Len(t, cells, len(pdfColumns))
	assert.Contains(t, cells, "IPH FRANCE")
	assert.Contains(t, cells, "12 RUE DE LA PAIX, 75002 PARIS")

	// Column widths must still fill the printable width of landscape A4.
	var total float64
	for _, col := range pdfColumns {
		total += col.width
	}
	assert.InDelta(t, 277.0, total, 0.01)
}

func TestPDFRender_EmptyBatch(t *testing.T) {
	summary := domain.NewBatchSummary("empty.csv")
	summary.FinishedAt = time.Now().UTC()

	data, err := NewPDFRenderer("EU VAT validation report").Render(summary)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFRender_ManyRowsPaginate(t *testing.T) {
	summary := domain.NewBatchSummary("big.csv")
	for i := 0; i < 120; i++ {
		summary.Add(domain.CheckResult{
			Record: domain.PartnerRecord{Description: "PARTNER", CountryCode: "FR", VATNumber: "11111111111", Line: i + 1},
			Valid:  true,
		})
	}
	summary.FinishedAt = time.Now().UTC()

	data, err := NewPDFRenderer("EU VAT validation report").Render(summary)
	require.NoError(t, err)
	assert.Greater(t, len(data), 4)
}
