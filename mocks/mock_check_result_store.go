package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// MockCheckResultStore is a mock implementation of port.CheckResultStore.
type MockCheckResultStore struct {
	mock.Mock
}

func (m *MockCheckResultStore) Store(ctx context.Context, batchID uuid.UUID, res *domain.CheckResult) error {
	args := m.Called(ctx, batchID, res)
	return args.Error(0)
}

func (m *MockCheckResultStore) StoreBatch(ctx context.Context, batchID uuid.UUID, results []domain.CheckResult) error {
	args := m.Called(ctx, batchID, results)
	return args.Error(0)
}
