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

type patientRepo struct {
	db *sqlx.DB
}

// NewPatientRepo creates a new PostgreSQL-backed PatientRepository.
func NewPatientRepo(db *sqlx.DB) port.PatientRepository {
	return &patientRepo{db: db}
}

func (r *patientRepo) Create(ctx context.Context, patient *domain.Patient) error {
	patient.ID = uuid.New()
	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	query := `INSERT INTO patients (id, tenant_id, first_name, last_name, date_of_birth, gender,
		phone, email, street, city, state, zip_code, insurance_id, payer_id, payer_name,
		created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.ExecContext(ctx, query,
		patient.ID, patient.TenantID, patient.FirstName, patient.LastName, patient.DateOfBirth,
		patient.Gender, patient.Phone, patient.Email, patient.Street, patient.City, patient.State,
		patient.ZipCode, patient.InsuranceID, patient.PayerID, patient.PayerName,
		patient.CreatedBy, patient.CreatedAt, patient.UpdatedAt)
	if err != nil {
		return fmt.Errorf("patientRepo.Create: %w", err)
	}
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, tenantID, patientID uuid.UUID) (*domain.Patient, error) {
	var patient domain.Patient
	err := r.db.GetContext(ctx, &patient,
		"SELECT * FROM patients WHERE id = $1 AND tenant_id = $2", patientID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("patientRepo.GetByID: %w", err)
	}
	return &patient, nil
}

func (r *patientRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Patient, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM patients WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("patientRepo.ListByTenant count: %w", err)
	}

	var patients []domain.Patient
	err = r.db.SelectContext(ctx, &patients,
		`SELECT * FROM patients WHERE tenant_id = $1
		 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("patientRepo.ListByTenant: %w", err)
	}
	return patients, total, nil
}

func (r *patientRepo) SearchByName(ctx context.Context, tenantID uuid.UUID, query string, offset, limit int) ([]domain.Patient, int, error) {
	pattern := "%" + query + "%"

	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM patients WHERE tenant_id = $1
		 AND (first_name ILIKE $2 OR last_name ILIKE $2)`,
		tenantID, pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("patientRepo.SearchByName count: %w", err)
	}

	var patients []domain.Patient
	err = r.db.SelectContext(ctx, &patients,
		`SELECT * FROM patients WHERE tenant_id = $1
		 AND (first_name ILIKE $2 OR last_name ILIKE $2)
		 ORDER BY last_name, first_name LIMIT $3 OFFSET $4`,
		tenantID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("patientRepo.SearchByName: %w", err)
	}
	return patients, total, nil
}

func (r *patientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	patient.UpdatedAt = time.Now().UTC()
	query := `UPDATE patients SET first_name = $1, last_name = $2, date_of_birth = $3, gender = $4,
		phone = $5, email = $6, street = $7, city = $8, state = $9, zip_code = $10,
		insurance_id = $11, payer_id = $12, payer_name = $13, updated_at = $14
		WHERE id = $15 AND tenant_id = $16`
	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName, patient.LastName, patient.DateOfBirth, patient.Gender,
		patient.Phone, patient.Email, patient.Street, patient.City, patient.State,
		patient.ZipCode, patient.InsuranceID, patient.PayerID, patient.PayerName,
		patient.UpdatedAt, patient.ID, patient.TenantID)
	if err != nil {
		return fmt.Errorf("patientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *patientRepo) Delete(ctx context.Context, tenantID, patientID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM patients WHERE id = $1 AND tenant_id = $2", patientID, tenantID)
	if err != nil {
		return fmt.Errorf("patientRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
