package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
)

// MockPatientRepo is a mock implementation of port.PatientRepository.
type MockPatientRepo struct {
	mock.Mock
}

func (m *MockPatientRepo) Create(ctx context.Context, patient *domain.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepo) GetByID(ctx context.Context, tenantID, patientID uuid.UUID) (*domain.Patient, error) {
	args := m.Called(ctx, tenantID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Patient, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Patient), args.Int(1), args.Error(2)
}

func (m *MockPatientRepo) SearchByName(ctx context.Context, tenantID uuid.UUID, query string, offset, limit int) ([]domain.Patient, int, error) {
	args := m.Called(ctx, tenantID, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Patient), args.Int(1), args.Error(2)
}

func (m *MockPatientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepo) Delete(ctx context.Context, tenantID, patientID uuid.UUID) error {
	args := m.Called(ctx, tenantID, patientID)
	return args.Error(0)
}
