package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
	"cardintake/internal/service"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input service.CreateScanInput) (*domain.CardScan, error) {
	args := m.Called(ctx, tenantID, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardScan), args.Error(1)
}

func (m *MockScanService) GetByID(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error) {
	args := m.Called(ctx, tenantID, scanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardScan), args.Error(1)
}

func (m *MockScanService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.CardScan, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CardScan), args.Int(1), args.Error(2)
}

func (m *MockScanService) ProcessScan(ctx context.Context, scan *domain.CardScan, maxAttempts int) {
	m.Called(ctx, scan, maxAttempts)
}

func (m *MockScanService) Retry(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error) {
	args := m.Called(ctx, tenantID, scanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardScan), args.Error(1)
}

func (m *MockScanService) ApplyToPatient(ctx context.Context, tenantID, scanID, patientID uuid.UUID) (*domain.Patient, error) {
	args := m.Called(ctx, tenantID, scanID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockScanService) CreatePatient(ctx context.Context, tenantID, scanID, createdBy uuid.UUID) (*domain.Patient, error) {
	args := m.Called(ctx, tenantID, scanID, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockScanService) Delete(ctx context.Context, tenantID, scanID uuid.UUID) error {
	args := m.Called(ctx, tenantID, scanID)
	return args.Error(0)
}
