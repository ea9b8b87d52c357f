package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cardintake/internal/billing"
	"cardintake/internal/domain"
	"cardintake/internal/port"
)

// CreateChargeInput is the DTO for creating a charge.
type CreateChargeInput struct {
	PatientID   uuid.UUID `json:"patient_id" binding:"required"`
	ProviderID  uuid.UUID `json:"provider_id" binding:"required"`
	CPTCode     string    `json:"cpt_code" binding:"required"`
	ServiceDate time.Time `json:"service_date" binding:"required"`
	Minutes     int       `json:"minutes" binding:"required"`
	Notes       string    `json:"notes"`
}

// UpdateChargeInput is the DTO for updating a charge.
type UpdateChargeInput struct {
	ProviderID  *uuid.UUID           `json:"provider_id"`
	CPTCode     *string              `json:"cpt_code"`
	ServiceDate *time.Time           `json:"service_date"`
	Minutes     *int                 `json:"minutes"`
	Status      *domain.ChargeStatus `json:"status"`
	Notes       *string              `json:"notes"`
}

// UnitsPreview is the result of a billable-units computation for a given
// number of treatment minutes.
type UnitsPreview struct {
	Minutes int `json:"minutes"`
	Units   int `json:"units"`
}

// ChargeService defines the charge management contract.
type ChargeService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateChargeInput) (*domain.Charge, error)
	PreviewUnits(minutes int) (*UnitsPreview, error)
	GetByID(ctx context.Context, tenantID, chargeID uuid.UUID) (*domain.Charge, error)
	ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, offset, limit int) ([]domain.Charge, int, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Charge, int, error)
	Update(ctx context.Context, tenantID, chargeID uuid.UUID, input UpdateChargeInput) (*domain.Charge, error)
	Delete(ctx context.Context, tenantID, chargeID uuid.UUID) error
}

type chargeService struct {
	repo         port.ChargeRepository
	patientRepo  port.PatientRepository
	providerRepo port.ProviderRepository
}

// NewChargeService creates a new ChargeService implementation.
func NewChargeService(
	repo port.ChargeRepository,
	patientRepo port.PatientRepository,
	providerRepo port.ProviderRepository,
) ChargeService {
	return &chargeService{
		repo:         repo,
		patientRepo:  patientRepo,
		providerRepo: providerRepo,
	}
}

func (s *chargeService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateChargeInput) (*domain.Charge, error) {
	units, err := billing.UnitsForMinutes(input.Minutes)
	if err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetByID(ctx, tenantID, input.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.providerRepo.GetByID(ctx, tenantID, input.ProviderID); err != nil {
		return nil, err
	}

	charge := &domain.Charge{
		TenantID:    tenantID,
		PatientID:   input.PatientID,
		ProviderID:  input.ProviderID,
		PayerID:     patient.PayerID,
		CPTCode:     input.CPTCode,
		ServiceDate: input.ServiceDate,
		Minutes:     input.Minutes,
		Units:       units,
		Status:      domain.ChargeStatusDraft,
		Notes:       input.Notes,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

func (s *chargeService) PreviewUnits(minutes int) (*UnitsPreview, error) {
	units, err := billing.UnitsForMinutes(minutes)
	if err != nil {
		return nil, err
	}
	return &UnitsPreview{Minutes: minutes, Units: units}, nil
}

func (s *chargeService) GetByID(ctx context.Context, tenantID, chargeID uuid.UUID) (*domain.Charge, error) {
	return s.repo.GetByID(ctx, tenantID, chargeID)
}

func (s *chargeService) ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, offset, limit int) ([]domain.Charge, int, error) {
	return s.repo.ListByPatient(ctx, tenantID, patientID, offset, limit)
}

func (s *chargeService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Charge, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *chargeService) Update(ctx context.Context, tenantID, chargeID uuid.UUID, input UpdateChargeInput) (*domain.Charge, error) {
	charge, err := s.repo.GetByID(ctx, tenantID, chargeID)
	if err != nil {
		return nil, err
	}

	if input.ProviderID != nil {
		if _, err := s.providerRepo.GetByID(ctx, tenantID, *input.ProviderID); err != nil {
			return nil, err
		}
		charge.ProviderID = *input.ProviderID
	}
	if input.CPTCode != nil {
		charge.CPTCode = *input.CPTCode
	}
	if input.ServiceDate != nil {
		charge.ServiceDate = *input.ServiceDate
	}
	if input.Minutes != nil {
		units, err := billing.UnitsForMinutes(*input.Minutes)
		if err != nil {
			return nil, err
		}
		charge.Minutes = *input.Minutes
		charge.Units = units
	}
	if input.Status != nil {
		charge.Status = *input.Status
	}
	if input.Notes != nil {
		charge.Notes = *input.Notes
	}

	if err := s.repo.Update(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

func (s *chargeService) Delete(ctx context.Context, tenantID, chargeID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, chargeID)
}
