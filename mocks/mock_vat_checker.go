package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/In-dig0/vat-controller/internal/port"
)

// MockVATChecker is a mock implementation of port.VATChecker.
type MockVATChecker struct {
	mock.Mock
}

func (m *MockVATChecker) CheckVAT(ctx context.Context, countryCode, vatNumber string) (*port.CheckVATResult, error) {
	args := m.Called(ctx, countryCode, vatNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CheckVATResult), args.Error(1)
}

func (m *MockVATChecker) CheckStatus(ctx context.Context) (*port.ServiceStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ServiceStatus), args.Error(1)
}
