package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBatchComplete(ctx context.Context, summary *domain.BatchSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}
