package service

import (
	"context"

	"github.com/google/uuid"

	"cardintake/internal/domain"
	"cardintake/internal/port"
)

// CreatePatientInput is the DTO for creating a patient.
type CreatePatientInput struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	InsuranceID string `json:"insurance_id"`
	PayerName   string `json:"payer_name"`
}

// UpdatePatientInput is the DTO for updating a patient.
type UpdatePatientInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Street      *string `json:"street"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`
	InsuranceID *string `json:"insurance_id"`
	PayerName   *string `json:"payer_name"`
}

// PatientService defines the patient management contract.
type PatientService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreatePatientInput) (*domain.Patient, error)
	GetByID(ctx context.Context, tenantID, patientID uuid.UUID) (*domain.Patient, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Patient, int, error)
	Search(ctx context.Context, tenantID uuid.UUID, query string, offset, limit int) ([]domain.Patient, int, error)
	Update(ctx context.Context, tenantID, patientID uuid.UUID, input UpdatePatientInput) (*domain.Patient, error)
	Delete(ctx context.Context, tenantID, patientID uuid.UUID) error
}

type patientService struct {
	repo      port.PatientRepository
	payerRepo port.PayerRepository
}

// NewPatientService creates a new PatientService implementation.
func NewPatientService(repo port.PatientRepository, payerRepo port.PayerRepository) PatientService {
	return &patientService{repo: repo, payerRepo: payerRepo}
}

func (s *patientService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreatePatientInput) (*domain.Patient, error) {
	patient := &domain.Patient{
		TenantID:    tenantID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Phone:       input.Phone,
		Email:       input.Email,
		Street:      input.Street,
		City:        input.City,
		State:       input.State,
		ZipCode:     input.ZipCode,
		InsuranceID: input.InsuranceID,
		PayerName:   input.PayerName,
		CreatedBy:   createdBy,
	}
	s.linkPayer(ctx, patient)

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) GetByID(ctx context.Context, tenantID, patientID uuid.UUID) (*domain.Patient, error) {
	return s.repo.GetByID(ctx, tenantID, patientID)
}

func (s *patientService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Patient, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *patientService) Search(ctx context.Context, tenantID uuid.UUID, query string, offset, limit int) ([]domain.Patient, int, error) {
	return s.repo.SearchByName(ctx, tenantID, query, offset, limit)
}

func (s *patientService) Update(ctx context.Context, tenantID, patientID uuid.UUID, input UpdatePatientInput) (*domain.Patient, error) {
	patient, err := s.repo.GetByID(ctx, tenantID, patientID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = *input.DateOfBirth
	}
	if input.Gender != nil {
		patient.Gender = *input.Gender
	}
	if input.Phone != nil {
		patient.Phone = *input.Phone
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}
	if input.Street != nil {
		patient.Street = *input.Street
	}
	if input.City != nil {
		patient.City = *input.City
	}
	if input.State != nil {
		patient.State = *input.State
	}
	if input.ZipCode != nil {
		patient.ZipCode = *input.ZipCode
	}
	if input.InsuranceID != nil {
		patient.InsuranceID = *input.InsuranceID
	}
	if input.PayerName != nil {
		patient.PayerName = *input.PayerName
		patient.PayerID = nil
		s.linkPayer(ctx, patient)
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) Delete(ctx context.Context, tenantID, patientID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, patientID)
}

// linkPayer resolves a free-text payer name to a known payer record. A miss
// leaves the name as-is; the payer link is a convenience, not a requirement.
func (s *patientService) linkPayer(ctx context.Context, patient *domain.Patient) {
	if patient.PayerName == "" || patient.PayerID != nil {
		return
	}
	payer, err := s.payerRepo.GetByName(ctx, patient.TenantID, patient.PayerName)
	if err != nil {
		return
	}
	patient.PayerID = &payer.ID
}
