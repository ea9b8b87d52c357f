package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cardintake/internal/domain"
	"cardintake/internal/port"
)

type payerRepo struct {
	db *sqlx.DB
}

// NewPayerRepo creates a new PostgreSQL-backed PayerRepository.
func NewPayerRepo(db *sqlx.DB) port.PayerRepository {
	return &payerRepo{db: db}
}

func (r *payerRepo) Create(ctx context.Context, payer *domain.Payer) error {
	payer.ID = uuid.New()
	now := time.Now().UTC()
	payer.CreatedAt = now
	payer.UpdatedAt = now

	query := `INSERT INTO payers (id, tenant_id, name, payer_code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		payer.ID, payer.TenantID, payer.Name, payer.PayerCode,
		payer.IsActive, payer.CreatedAt, payer.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicatePayerCode
		}
		return fmt.Errorf("payerRepo.Create: %w", err)
	}
	return nil
}

func (r *payerRepo) GetByID(ctx context.Context, tenantID, payerID uuid.UUID) (*domain.Payer, error) {
	var payer domain.Payer
	err := r.db.GetContext(ctx, &payer,
		"SELECT * FROM payers WHERE id = $1 AND tenant_id = $2", payerID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("payerRepo.GetByID: %w", err)
	}
	return &payer, nil
}

func (r *payerRepo) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Payer, error) {
	var payer domain.Payer
	err := r.db.GetContext(ctx, &payer,
		"SELECT * FROM payers WHERE tenant_id = $1 AND LOWER(name) = LOWER($2)", tenantID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("payerRepo.GetByName: %w", err)
	}
	return &payer, nil
}

func (r *payerRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Payer, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM payers WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("payerRepo.ListByTenant count: %w", err)
	}

	var payers []domain.Payer
	err = r.db.SelectContext(ctx, &payers,
		"SELECT * FROM payers WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("payerRepo.ListByTenant: %w", err)
	}
	return payers, total, nil
}

func (r *payerRepo) Update(ctx context.Context, payer *domain.Payer) error {
	payer.UpdatedAt = time.Now().UTC()
	query := `UPDATE payers SET name = $1, payer_code = $2, is_active = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`
	result, err := r.db.ExecContext(ctx, query,
		payer.Name, payer.PayerCode, payer.IsActive, payer.UpdatedAt, payer.ID, payer.TenantID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicatePayerCode
		}
		return fmt.Errorf("payerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *payerRepo) Delete(ctx context.Context, tenantID, payerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM payers WHERE id = $1 AND tenant_id = $2", payerID, tenantID)
	if err != nil {
		return fmt.Errorf("payerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
