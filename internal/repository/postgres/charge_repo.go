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

type chargeRepo struct {
	db *sqlx.DB
}

// NewChargeRepo creates a new PostgreSQL-backed ChargeRepository.
func NewChargeRepo(db *sqlx.DB) port.ChargeRepository {
	return &chargeRepo{db: db}
}

func (r *chargeRepo) Create(ctx context.Context, charge *domain.Charge) error {
	charge.ID = uuid.New()
	now := time.Now().UTC()
	charge.CreatedAt = now
	charge.UpdatedAt = now

	query := `INSERT INTO charges (id, tenant_id, patient_id, provider_id, payer_id, cpt_code,
		service_date, minutes, units, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		charge.ID, charge.TenantID, charge.PatientID, charge.ProviderID, charge.PayerID,
		charge.CPTCode, charge.ServiceDate, charge.Minutes, charge.Units, charge.Status,
		charge.Notes, charge.CreatedBy, charge.CreatedAt, charge.UpdatedAt)
	if err != nil {
		return fmt.Errorf("chargeRepo.Create: %w", err)
	}
	return nil
}

func (r *chargeRepo) GetByID(ctx context.Context, tenantID, chargeID uuid.UUID) (*domain.Charge, error) {
	var charge domain.Charge
	err := r.db.GetContext(ctx, &charge,
		"SELECT * FROM charges WHERE id = $1 AND tenant_id = $2", chargeID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("chargeRepo.GetByID: %w", err)
	}
	return &charge, nil
}

func (r *chargeRepo) ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, offset, limit int) ([]domain.Charge, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM charges WHERE tenant_id = $1 AND patient_id = $2",
		tenantID, patientID)
	if err != nil {
		return nil, 0, fmt.Errorf("chargeRepo.ListByPatient count: %w", err)
	}

	var charges []domain.Charge
	err = r.db.SelectContext(ctx, &charges,
		`SELECT * FROM charges WHERE tenant_id = $1 AND patient_id = $2
		 ORDER BY service_date DESC LIMIT $3 OFFSET $4`,
		tenantID, patientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("chargeRepo.ListByPatient: %w", err)
	}
	return charges, total, nil
}

func (r *chargeRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Charge, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM charges WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("chargeRepo.ListByTenant count: %w", err)
	}

	var charges []domain.Charge
	err = r.db.SelectContext(ctx, &charges,
		`SELECT * FROM charges WHERE tenant_id = $1
		 ORDER BY service_date DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("chargeRepo.ListByTenant: %w", err)
	}
	return charges, total, nil
}

func (r *chargeRepo) Update(ctx context.Context, charge *domain.Charge) error {
	charge.UpdatedAt = time.Now().UTC()
	query := `UPDATE charges SET provider_id = $1, payer_id = $2, cpt_code = $3, service_date = $4,
		minutes = $5, units = $6, status = $7, notes = $8, updated_at = $9
		WHERE id = $10 AND tenant_id = $11`
	result, err := r.db.ExecContext(ctx, query,
		charge.ProviderID, charge.PayerID, charge.CPTCode, charge.ServiceDate,
		charge.Minutes, charge.Units, charge.Status, charge.Notes, charge.UpdatedAt,
		charge.ID, charge.TenantID)
	if err != nil {
		return fmt.Errorf("chargeRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *chargeRepo) Delete(ctx context.Context, tenantID, chargeID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM charges WHERE id = $1 AND tenant_id = $2", chargeID, tenantID)
	if err != nil {
		return fmt.Errorf("chargeRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
