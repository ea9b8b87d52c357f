package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cardintake/internal/domain"
	"cardintake/internal/port"
)

type scanRepo struct {
	db *sqlx.DB
}

// NewScanRepo creates a new PostgreSQL-backed ScanRepository.
func NewScanRepo(db *sqlx.DB) port.ScanRepository {
	return &scanRepo{db: db}
}

func (r *scanRepo) Create(ctx context.Context, scan *domain.CardScan) error {
	scan.ID = uuid.New()
	now := time.Now().UTC()
	scan.CreatedAt = now
	scan.UpdatedAt = now

	query := `INSERT INTO card_scans (
		id, tenant_id, file_id, patient_id, card_kind,
		status, model_used, prompt_used, raw_text, extracted_record,
		scan_error, scan_attempts, scanned_at,
		created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10,
		$11, $12, $13,
		$14, $15, $16
	)`

	_, err := r.db.ExecContext(ctx, query,
		scan.ID, scan.TenantID, scan.FileID, scan.PatientID, scan.CardKind,
		scan.Status, scan.ModelUsed, scan.PromptUsed, scan.RawText, scan.ExtractedRecord,
		scan.ScanError, scan.ScanAttempts, scan.ScannedAt,
		scan.CreatedBy, scan.CreatedAt, scan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("scanRepo.Create: %w", err)
	}
	return nil
}

func (r *scanRepo) GetByID(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error) {
	var scan domain.CardScan
	err := r.db.GetContext(ctx, &scan,
		"SELECT * FROM card_scans WHERE id = $1 AND tenant_id = $2", scanID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanRepo.GetByID: %w", err)
	}
	return &scan, nil
}

func (r *scanRepo) GetByFileID(ctx context.Context, tenantID, fileID uuid.UUID) (*domain.CardScan, error) {
	var scan domain.CardScan
	err := r.db.GetContext(ctx, &scan,
		"SELECT * FROM card_scans WHERE file_id = $1 AND tenant_id = $2", fileID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanRepo.GetByFileID: %w", err)
	}
	return &scan, nil
}

func (r *scanRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.CardScan, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM card_scans WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.ListByTenant count: %w", err)
	}

	var scans []domain.CardScan
	err = r.db.SelectContext(ctx, &scans,
		`SELECT * FROM card_scans WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.ListByTenant: %w", err)
	}
	return scans, total, nil
}

// ClaimQueued flips up to limit queued scans to processing and returns them.
// FOR UPDATE SKIP LOCKED makes concurrent workers claim disjoint rows.
func (r *scanRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.CardScan, error) {
	var scans []domain.CardScan
	err := r.db.SelectContext(ctx, &scans, `
		UPDATE card_scans SET
			status = $1,
			scan_attempts = scan_attempts + 1,
			updated_at = NOW()
		WHERE id IN (
			SELECT id FROM card_scans
			WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		domain.ScanStatusProcessing, domain.ScanStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("scanRepo.ClaimQueued: %w", err)
	}
	return scans, nil
}

func (r *scanRepo) UpdateResult(ctx context.Context, scan *domain.CardScan) error {
	scan.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE card_scans SET
			status = $1, model_used = $2, prompt_used = $3,
			raw_text = $4, extracted_record = $5,
			scan_error = $6, scan_attempts = $7, scanned_at = $8, updated_at = $9
		 WHERE id = $10 AND tenant_id = $11`,
		scan.Status, scan.ModelUsed, scan.PromptUsed,
		scan.RawText, scan.ExtractedRecord,
		scan.ScanError, scan.ScanAttempts, scan.ScannedAt, scan.UpdatedAt,
		scan.ID, scan.TenantID)
	if err != nil {
		return fmt.Errorf("scanRepo.UpdateResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scanRepo) SetPatient(ctx context.Context, tenantID, scanID, patientID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE card_scans SET patient_id = $1, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3`,
		patientID, scanID, tenantID)
	if err != nil {
		return fmt.Errorf("scanRepo.SetPatient: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scanRepo) Delete(ctx context.Context, tenantID, scanID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM card_scans WHERE id = $1 AND tenant_id = $2", scanID, tenantID)
	if err != nil {
		return fmt.Errorf("scanRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
