package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
)

// MockPayerRepo is a mock implementation of port.PayerRepository.
type MockPayerRepo struct {
	mock.Mock
}

func (m *MockPayerRepo) Create(ctx context.Context, payer *domain.Payer) error {
	args := m.Called(ctx, payer)
	return args.Error(0)
}

func (m *MockPayerRepo) GetByID(ctx context.Context, tenantID, payerID uuid.UUID) (*domain.Payer, error) {
	args := m.Called(ctx, tenantID, payerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payer), args.Error(1)
}

func (m *MockPayerRepo) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Payer, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payer), args.Error(1)
}

func (m *MockPayerRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Payer, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Payer), args.Int(1), args.Error(2)
}

func (m *MockPayerRepo) Update(ctx context.Context, payer *domain.Payer) error {
	args := m.Called(ctx, payer)
	return args.Error(0)
}

func (m *MockPayerRepo) Delete(ctx context.Context, tenantID, payerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, payerID)
	return args.Error(0)
}
