package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
)

// MockScanRepo is a mock implementation of port.ScanRepository.
type MockScanRepo struct {
	mock.Mock
}

func (m *MockScanRepo) Create(ctx context.Context, scan *domain.CardScan) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanRepo) GetByID(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error) {
	args := m.Called(ctx, tenantID, scanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardScan), args.Error(1)
}

func (m *MockScanRepo) GetByFileID(ctx context.Context, tenantID, fileID uuid.UUID) (*domain.CardScan, error) {
	args := m.Called(ctx, tenantID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardScan), args.Error(1)
}

func (m *MockScanRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.CardScan, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CardScan), args.Int(1), args.Error(2)
}

func (m *MockScanRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.CardScan, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CardScan), args.Error(1)
}

func (m *MockScanRepo) UpdateResult(ctx context.Context, scan *domain.CardScan) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanRepo) SetPatient(ctx context.Context, tenantID, scanID, patientID uuid.UUID) error {
	args := m.Called(ctx, tenantID, scanID, patientID)
	return args.Error(0)
}

func (m *MockScanRepo) Delete(ctx context.Context, tenantID, scanID uuid.UUID) error {
	args := m.Called(ctx, tenantID, scanID)
	return args.Error(0)
}
