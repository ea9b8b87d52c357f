package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
	"cardintake/internal/service"
)

// MockChargeService is a mock implementation of service.ChargeService.
type MockChargeService struct {
	mock.Mock
}

func (m *MockChargeService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input service.CreateChargeInput) (*domain.Charge, error) {
	args := m.Called(ctx, tenantID, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

func (m *MockChargeService) PreviewUnits(minutes int) (*service.UnitsPreview, error) {
	args := m.Called(minutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UnitsPreview), args.Error(1)
}

func (m *MockChargeService) GetByID(ctx context.Context, tenantID, chargeID uuid.UUID) (*domain.Charge, error) {
	args := m.Called(ctx, tenantID, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

func (m *MockChargeService) ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, offset, limit int) ([]domain.Charge, int, error) {
	args := m.Called(ctx, tenantID, patientID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Charge), args.Int(1), args.Error(2)
}

func (m *MockChargeService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Charge, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Charge), args.Int(1), args.Error(2)
}

func (m *MockChargeService) Update(ctx context.Context, tenantID, chargeID uuid.UUID, input service.UpdateChargeInput) (*domain.Charge, error) {
	args := m.Called(ctx, tenantID, chargeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

func (m *MockChargeService) Delete(ctx context.Context, tenantID, chargeID uuid.UUID) error {
	args := m.Called(ctx, tenantID, chargeID)
	return args.Error(0)
}
