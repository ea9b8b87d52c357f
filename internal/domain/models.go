package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated clinic or practice.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents a staff member belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Patient represents a patient record. Demographic fields mirror what a card
// scan can populate; date of birth is stored as text because an unparseable
// value from a card is preserved verbatim rather than dropped.
type Patient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	DateOfBirth string     `db:"date_of_birth" json:"date_of_birth"`
	Gender      string     `db:"gender" json:"gender"`
	Phone       string     `db:"phone" json:"phone"`
	Email       string     `db:"email" json:"email"`
	Street      string     `db:"street" json:"street"`
	City        string     `db:"city" json:"city"`
	State       string     `db:"state" json:"state"`
	ZipCode     string     `db:"zip_code" json:"zip_code"`
	InsuranceID string     `db:"insurance_id" json:"insurance_id"`
	PayerID     *uuid.UUID `db:"payer_id" json:"payer_id"`
	PayerName   string     `db:"payer_name" json:"payer_name"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Provider represents a rendering clinician.
type Provider struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	NPI       string    `db:"npi" json:"npi"`
	Specialty string    `db:"specialty" json:"specialty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Payer represents an insurance company.
type Payer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	PayerCode string    `db:"payer_code" json:"payer_code"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Charge represents a billable service line for a patient encounter.
// Units are derived from timed minutes via the eight-minute rule.
type Charge struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	TenantID    uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	PatientID   uuid.UUID    `db:"patient_id" json:"patient_id"`
	ProviderID  uuid.UUID    `db:"provider_id" json:"provider_id"`
	PayerID     *uuid.UUID   `db:"payer_id" json:"payer_id"`
	CPTCode     string       `db:"cpt_code" json:"cpt_code"`
	ServiceDate time.Time    `db:"service_date" json:"service_date"`
	Minutes     int          `db:"minutes" json:"minutes"`
	Units       int          `db:"units" json:"units"`
	Status      ChargeStatus `db:"status" json:"status"`
	Notes       string       `db:"notes" json:"notes"`
	CreatedBy   uuid.UUID    `db:"created_by" json:"created_by"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded card image.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// CardScan represents one extraction job: an uploaded card image that gets
// described by a vision model and run through the extraction pipeline. The
// raw model text is kept alongside the extracted record for auditing.
type CardScan struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	FileID          uuid.UUID       `db:"file_id" json:"file_id"`
	PatientID       *uuid.UUID      `db:"patient_id" json:"patient_id"`
	CardKind        CardKind        `db:"card_kind" json:"card_kind"`
	Status          ScanStatus      `db:"status" json:"status"`
	ModelUsed       string          `db:"model_used" json:"model_used"`
	PromptUsed      string          `db:"prompt_used" json:"prompt_used"`
	RawText         string          `db:"raw_text" json:"raw_text"`
	ExtractedRecord json.RawMessage `db:"extracted_record" json:"extracted_record"`
	ScanError       string          `db:"scan_error" json:"scan_error"`
	ScanAttempts    int             `db:"scan_attempts" json:"scan_attempts"`
	ScannedAt       *time.Time      `db:"scanned_at" json:"scanned_at"`
	CreatedBy       uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
