package service

import (
	"context"

	"github.com/google/uuid"

	"cardintake/internal/domain"
	"cardintake/internal/port"
)

// CreatePayerInput is the DTO for creating a payer.
type CreatePayerInput struct {
	Name      string `json:"name" binding:"required"`
	PayerCode string `json:"payer_code" binding:"required"`
}

// UpdatePayerInput is the DTO for updating a payer.
type UpdatePayerInput struct {
	Name      *string `json:"name"`
	PayerCode *string `json:"payer_code"`
	IsActive  *bool   `json:"is_active"`
}

// PayerService defines the payer management contract.
type PayerService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreatePayerInput) (*domain.Payer, error)
	GetByID(ctx context.Context, tenantID, payerID uuid.UUID) (*domain.Payer, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Payer, int, error)
	Update(ctx context.Context, tenantID, payerID uuid.UUID, input UpdatePayerInput) (*domain.Payer, error)
	Delete(ctx context.Context, tenantID, payerID uuid.UUID) error
}

type payerService struct {
	repo port.PayerRepository
}

// NewPayerService creates a new PayerService implementation.
func NewPayerService(repo port.PayerRepository) PayerService {
	return &payerService{repo: repo}
}

func (s *payerService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePayerInput) (*domain.Payer, error) {
	payer := &domain.Payer{
		TenantID:  tenantID,
		Name:      input.Name,
		PayerCode: input.PayerCode,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, payer); err != nil {
		return nil, err
	}
	return payer, nil
}

func (s *payerService) GetByID(ctx context.Context, tenantID, payerID uuid.UUID) (*domain.Payer, error) {
	return s.repo.GetByID(ctx, tenantID, payerID)
}

func (s *payerService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Payer, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *payerService) Update(ctx context.Context, tenantID, payerID uuid.UUID, input UpdatePayerInput) (*domain.Payer, error) {
	payer, err := s.repo.GetByID(ctx, tenantID, payerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		payer.Name = *input.Name
	}
	if input.PayerCode != nil {
		payer.PayerCode = *input.PayerCode
	}
	if input.IsActive != nil {
		payer.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, payer); err != nil {
		return nil, err
	}
	return payer, nil
}

func (s *payerService) Delete(ctx context.Context, tenantID, payerID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, payerID)
}
