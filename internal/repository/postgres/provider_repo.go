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

type providerRepo struct {
	db *sqlx.DB
}

// NewProviderRepo creates a new PostgreSQL-backed ProviderRepository.
func NewProviderRepo(db *sqlx.DB) port.ProviderRepository {
	return &providerRepo{db: db}
}

func (r *providerRepo) Create(ctx context.Context, provider *domain.Provider) error {
	provider.ID = uuid.New()
	now := time.Now().UTC()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	query := `INSERT INTO providers (id, tenant_id, full_name, npi, specialty, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		provider.ID, provider.TenantID, provider.FullName, provider.NPI,
		provider.Specialty, provider.IsActive, provider.CreatedAt, provider.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "npi") {
			return domain.ErrDuplicateNPI
		}
		return fmt.Errorf("providerRepo.Create: %w", err)
	}
	return nil
}

func (r *providerRepo) GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error) {
	var provider domain.Provider
	err := r.db.GetContext(ctx, &provider,
		"SELECT * FROM providers WHERE id = $1 AND tenant_id = $2", providerID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("providerRepo.GetByID: %w", err)
	}
	return &provider, nil
}

func (r *providerRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Provider, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM providers WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("providerRepo.ListByTenant count: %w", err)
	}

	var providers []domain.Provider
	err = r.db.SelectContext(ctx, &providers,
		"SELECT * FROM providers WHERE tenant_id = $1 ORDER BY full_name LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("providerRepo.ListByTenant: %w", err)
	}
	return providers, total, nil
}

func (r *providerRepo) Update(ctx context.Context, provider *domain.Provider) error {
	provider.UpdatedAt = time.Now().UTC()
	query := `UPDATE providers SET full_name = $1, npi = $2, specialty = $3, is_active = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7`
	result, err := r.db.ExecContext(ctx, query,
		provider.FullName, provider.NPI, provider.Specialty, provider.IsActive,
		provider.UpdatedAt, provider.ID, provider.TenantID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "npi") {
			return domain.ErrDuplicateNPI
		}
		return fmt.Errorf("providerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *providerRepo) Delete(ctx context.Context, tenantID, providerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM providers WHERE id = $1 AND tenant_id = $2", providerID, tenantID)
	if err != nil {
		return fmt.Errorf("providerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
