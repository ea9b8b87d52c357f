package port

import (
	"context"

	"github.com/google/uuid"

	"cardintake/internal/domain"
)

// ScanRepository defines the contract for card scan persistence.
type ScanRepository interface {
	Create(ctx context.Context, scan *domain.CardScan) error
	GetByID(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error)
	GetByFileID(ctx context.Context, tenantID, fileID uuid.UUID) (*domain.CardScan, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.CardScan, int, error)
	// ClaimQueued atomically moves up to limit queued scans to the
	// processing status and returns them, so concurrent workers never claim
	// the same scan twice.
	ClaimQueued(ctx context.Context, limit int) ([]domain.CardScan, error)
	UpdateResult(ctx context.Context, scan *domain.CardScan) error
	SetPatient(ctx context.Context, tenantID, scanID, patientID uuid.UUID) error
	Delete(ctx context.Context, tenantID, scanID uuid.UUID) error
}
