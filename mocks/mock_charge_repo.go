package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
)

// MockChargeRepo is a mock implementation of port.ChargeRepository.
type MockChargeRepo struct {
	mock.Mock
}

func (m *MockChargeRepo) Create(ctx context.Context, charge *domain.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockChargeRepo) GetByID(ctx context.Context, tenantID, chargeID uuid.UUID) (*domain.Charge, error) {
	args := m.Called(ctx, tenantID, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

func (m *MockChargeRepo) ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, offset, limit int) ([]domain.Charge, int, error) {
	args := m.Called(ctx, tenantID, patientID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Charge), args.Int(1), args.Error(2)
}

func (m *MockChargeRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Charge, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Charge), args.Int(1), args.Error(2)
}

func (m *MockChargeRepo) Update(ctx context.Context, charge *domain.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockChargeRepo) Delete(ctx context.Context, tenantID, chargeID uuid.UUID) error {
	args := m.Called(ctx, tenantID, chargeID)
	return args.Error(0)
}
