package vies

import (
	"fmt"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// FaultError is an application-level SOAP fault returned by the service:
// MS_UNAVAILABLE, TIMEOUT, MS_MAX_CONCURRENT_REQ and friends. All fault
// codes, member-state outages included, map to this one kind; the code
// string disambiguates. Wraps domain.ErrServiceFault for errors.Is.
type FaultError struct {
	Code string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("VIES fault: %s", e.Code)
}

func (e *FaultError) Unwrap() error {
	return domain.ErrServiceFault
}

// NewFaultError creates a FaultError. The service carries the fault reason
// in the SOAP faultstring element.
func NewFaultError(code string) *FaultError {
	return &FaultError{Code: code}
}
