package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maxVATNumberLength is the longest VAT number issued by any member state.
const maxVATNumberLength = 12

// ServiceErrorKind classifies a failed remote validation call.
type ServiceErrorKind string

const (
	// ServiceErrorNone means the remote call completed normally.
	ServiceErrorNone ServiceErrorKind = ""
	// ServiceErrorUnavailable means the endpoint could not be reached or
	// returned a transport-level fault.
	ServiceErrorUnavailable ServiceErrorKind = "SERVICE_UNAVAILABLE"
	// ServiceErrorFault means the service responded with an application-level
	// SOAP fault (member-state down, timeout, concurrency limit, ...).
	ServiceErrorFault ServiceErrorKind = "SERVICE_FAULT"
)

// PartnerRecord is one parsed input row: a business partner whose VAT
// registration is to be checked. Immutable once produced by the reader.
type PartnerRecord struct {
	Description string
	CountryCode string
	VATNumber   string

	// Provenance for the report and the audit trail.
	SourceFile string
	Line       int
}

// PartnerID is the country code concatenated with the VAT number, the key
// under which results are persisted.
func (r PartnerRecord) PartnerID() string {
	return r.CountryCode + r.VATNumber
}

// Validate checks the field constraints enforced at read time. All failures
// wrap ErrMalformedRecord.
func (r PartnerRecord) Validate() error {
	if r.Description == "" {
		return fmt.Errorf("%w: empty partner description", ErrMalformedRecord)
	}
	if !IsEUCountryCode(r.CountryCode) {
		return fmt.Errorf("%w: country code %q is not an EU member state code", ErrMalformedRecord, r.CountryCode)
	}
	if r.VATNumber == "" {
		return fmt.Errorf("%w: empty VAT number", ErrMalformedRecord)
	}
	if len(r.VATNumber) > maxVATNumberLength {
		return fmt.Errorf("%w: VAT number %q exceeds %d characters", ErrMalformedRecord, r.VATNumber, maxVATNumberLength)
	}
	return nil
}

// CheckResult is the outcome of validating one PartnerRecord.
//
// A set ErrKind always implies Valid == false: validity could not be
// determined, which is distinct from a confirmed-invalid VAT number
// (ErrKind empty, Valid false). Report output keeps the two apart.
type CheckResult struct {
	Record      PartnerRecord
	Valid       bool
	Name        string
	Address     string
	RequestDate string
	CheckedAt   time.Time
	ErrKind     ServiceErrorKind
	ErrMsg      string
}

// Status returns the report label for the result.
func (r *CheckResult) Status() string {
	switch {
	case r.ErrKind != ServiceErrorNone:
		return "ERROR"
	case r.Valid:
		return "VALID"
	default:
		return "INVALID"
	}
}

// BatchSummary accumulates the outcomes of one run over one input file.
// Owned exclusively by the batch processor while in progress; read-only
// once the input sequence is exhausted.
//
// Invariant: Total == ValidCount+InvalidCount+ErrorCount == len(Results),
// and Results preserves input order.
type BatchSummary struct {
	BatchID    uuid.UUID
	SourceFile string
	StartedAt  time.Time
	FinishedAt time.Time

	Total        int
	ValidCount   int
	InvalidCount int
	ErrorCount   int

	// SkippedLines counts malformed input rows dropped by the reader.
	SkippedLines int
	// StoreFailures counts results the persistence sink failed to write.
	StoreFailures int

	Results []CheckResult
}

// NewBatchSummary starts an empty summary for the given source file.
func NewBatchSummary(sourceFile string) *BatchSummary {
	return &BatchSummary{
		BatchID:    uuid.New(),
		SourceFile: sourceFile,
		StartedAt:  time.Now().UTC(),
	}
}

// Add appends a result and bumps the matching counter.
func (s *BatchSummary) Add(res CheckResult) {
	s.Results = append(s.Results, res)
	s.Total++
	switch {
	case res.ErrKind != ServiceErrorNone:
		s.ErrorCount++
	case res.Valid:
		s.ValidCount++
	default:
		s.InvalidCount++
	}
}
