package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
	"cardintake/internal/service"
)

// MockPatientService is a mock implementation of service.PatientService.
type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input service.CreatePatientInput) (*domain.Patient, error) {
	args := m.Called(ctx, tenantID, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientService) GetByID(ctx context.Context, tenantID, patientID uuid.UUID) (*domain.Patient, error) {
	args := m.Called(ctx, tenantID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Patient, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Patient), args.Int(1), args.Error(2)
}

func (m *MockPatientService) Search(ctx context.Context, tenantID uuid.UUID, query string, offset, limit int) ([]domain.Patient, int, error) {
	args := m.Called(ctx, tenantID, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Patient), args.Int(1), args.Error(2)
}

func (m *MockPatientService) Update(ctx context.Context, tenantID, patientID uuid.UUID, input service.UpdatePatientInput) (*domain.Patient, error) {
	args := m.Called(ctx, tenantID, patientID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientService) Delete(ctx context.Context, tenantID, patientID uuid.UUID) error {
	args := m.Called(ctx, tenantID, patientID)
	return args.Error(0)
}
