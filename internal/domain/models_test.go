package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartnerRecord_Validate(t *testing.T) {
	good := PartnerRecord{Description: "ACME GMBH", CountryCode: "DE", VATNumber: "129273398"}
	assert.NoError(t, good.Validate())

	cases := map[string]PartnerRecord{
		"empty description": {CountryCode: "DE", VATNumber: "129273398"},
		"non-EU country":    {Description: "X", CountryCode: "US", VATNumber: "129273398"},
		"lowercase country": {Description: "X", CountryCode: "de", VATNumber: "129273398"},
		"empty vat":         {Description: "X", CountryCode: "DE"},
		"vat too long":      {Description: "X", CountryCode: "DE", VATNumber: "1234567890123"},
	}
	for name, rec := range cases {
		err := rec.Validate()
		assert.ErrorIs(t, err, ErrMalformedRecord, name)
	}

	// Greece is EL in VIES, and XI (Northern Ireland) is accepted.
	assert.NoError(t, PartnerRecord{Description: "X", CountryCode: "EL", VATNumber: "1"}.Validate())
	assert.NoError(t, PartnerRecord{Description: "X", CountryCode: "XI", VATNumber: "1"}.Validate())
}

func TestCheckResult_Status(t *testing.T) {
	valid := CheckResult{Valid: true}
	assert.Equal(t, "VALID", valid.Status())

	invalid := CheckResult{}
	assert.Equal(t, "INVALID", invalid.Status())

	// A service error is never reported as INVALID.
	errored := CheckResult{ErrKind: ServiceErrorUnavailable}
	assert.Equal(t, "ERROR", errored.Status())
}

func TestBatchSummary_AddKeepsInvariant(t *testing.T) {
	s := NewBatchSummary("partners.csv")
	s.Add(CheckResult{Valid: true})
	s.Add(CheckResult{})
	s.Add(CheckResult{ErrKind: ServiceErrorFault})
	s.Add(CheckResult{Valid: true})

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.ValidCount)
	assert.Equal(t, 1, s.InvalidCount)
	assert.Equal(t, 1, s.ErrorCount)
	assert.Equal(t, s.Total, s.ValidCount+s.InvalidCount+s.ErrorCount)
	assert.Len(t, s.Results, s.Total)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", s.BatchID.String())
}

func TestPartnerID(t *testing.T) {
	rec := PartnerRecord{CountryCode: "FR", VATNumber: "00353970262"}
	assert.Equal(t, "FR00353970262", rec.PartnerID())
}
