package port

import (
	"context"

	"github.com/google/uuid"

	"cardintake/internal/domain"
)

// PatientRepository defines the contract for patient persistence.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, tenantID, patientID uuid.UUID) (*domain.Patient, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Patient, int, error)
	SearchByName(ctx context.Context, tenantID uuid.UUID, query string, offset, limit int) ([]domain.Patient, int, error)
	Update(ctx context.Context, patient *domain.Patient) error
	Delete(ctx context.Context, tenantID, patientID uuid.UUID) error
}

// ProviderRepository defines the contract for provider persistence.
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) error
	GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Provider, int, error)
	Update(ctx context.Context, provider *domain.Provider) error
	Delete(ctx context.Context, tenantID, providerID uuid.UUID) error
}

// PayerRepository defines the contract for payer persistence.
type PayerRepository interface {
	Create(ctx context.Context, payer *domain.Payer) error
	GetByID(ctx context.Context, tenantID, payerID uuid.UUID) (*domain.Payer, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Payer, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Payer, int, error)
	Update(ctx context.Context, payer *domain.Payer) error
	Delete(ctx context.Context, tenantID, payerID uuid.UUID) error
}

// ChargeRepository defines the contract for charge persistence.
type ChargeRepository interface {
	Create(ctx context.Context, charge *domain.Charge) error
	GetByID(ctx context.Context, tenantID, chargeID uuid.UUID) (*domain.Charge, error)
	ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, offset, limit int) ([]domain.Charge, int, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Charge, int, error)
	Update(ctx context.Context, charge *domain.Charge) error
	Delete(ctx context.Context, tenantID, chargeID uuid.UUID) error
}
