package port

import "context"

// CheckVATResult is the decoded response of a single checkVat call.
type CheckVATResult struct {
	CountryCode string
	VATNumber   string
	Valid       bool
	Name        string
	Address     string
	RequestDate string
}

// ServiceStatus is the decoded response of a checkStatus call: overall
// availability plus per-member-state availability.
type ServiceStatus struct {
	Available    bool
	MemberStates map[string]bool
}

// VATChecker abstracts the remote VAT validation service.
type VATChecker interface {
	// CheckVAT performs one remote lookup for a (country, VAT number) pair.
	// A registered-but-invalid VAT number is a normal result with
	// Valid == false, not an error.
	CheckVAT(ctx context.Context, countryCode, vatNumber string) (*CheckVATResult, error)

	// CheckStatus queries the availability of the service and of each
	// member state's backing service.
	CheckStatus(ctx context.Context) (*ServiceStatus, error)
}
