package service

import (
	"context"

	"github.com/google/uuid"

	"cardintake/internal/domain"
	"cardintake/internal/port"
)

// CreateProviderInput is the DTO for creating a provider.
type CreateProviderInput struct {
	FullName  string `json:"full_name" binding:"required"`
	NPI       string `json:"npi" binding:"required,len=10"`
	Specialty string `json:"specialty"`
}

// UpdateProviderInput is the DTO for updating a provider.
type UpdateProviderInput struct {
	FullName  *string `json:"full_name"`
	NPI       *string `json:"npi"`
	Specialty *string `json:"specialty"`
	IsActive  *bool   `json:"is_active"`
}

// ProviderService defines the provider management contract.
type ProviderService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateProviderInput) (*domain.Provider, error)
	GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Provider, int, error)
	Update(ctx context.Context, tenantID, providerID uuid.UUID, input UpdateProviderInput) (*domain.Provider, error)
	Delete(ctx context.Context, tenantID, providerID uuid.UUID) error
}

type providerService struct {
	repo port.ProviderRepository
}

// NewProviderService creates a new ProviderService implementation.
func NewProviderService(repo port.ProviderRepository) ProviderService {
	return &providerService{repo: repo}
}

func (s *providerService) Create(ctx context.Context, tenantID uuid.UUID, input CreateProviderInput) (*domain.Provider, error) {
	provider := &domain.Provider{
		TenantID:  tenantID,
		FullName:  input.FullName,
		NPI:       input.NPI,
		Specialty: input.Specialty,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (s *providerService) GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error) {
	return s.repo.GetByID(ctx, tenantID, providerID)
}

func (s *providerService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Provider, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *providerService) Update(ctx context.Context, tenantID, providerID uuid.UUID, input UpdateProviderInput) (*domain.Provider, error) {
	provider, err := s.repo.GetByID(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		provider.FullName = *input.FullName
	}
	if input.NPI != nil {
		provider.NPI = *input.NPI
	}
	if input.Specialty != nil {
		provider.Specialty = *input.Specialty
	}
	if input.IsActive != nil {
		provider.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (s *providerService) Delete(ctx context.Context, tenantID, providerID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, providerID)
}
