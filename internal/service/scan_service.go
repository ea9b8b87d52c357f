package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"cardintake/internal/domain"
	"cardintake/internal/extract"
	"cardintake/internal/port"
	"cardintake/internal/vision"
)

// CreateScanInput is the DTO for creating a card scan.
type CreateScanInput struct {
	FileID   uuid.UUID       `json:"file_id" binding:"required"`
	CardKind domain.CardKind `json:"card_kind" binding:"required"`
}

// ScanService defines the card scan contract: scan creation, worker-driven
// processing, and applying extracted records to patients.
type ScanService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateScanInput) (*domain.CardScan, error)
	GetByID(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.CardScan, int, error)
	// ProcessScan runs the describe-then-extract pipeline for a claimed scan.
	// It never returns an error: outcomes are persisted on the scan row.
	ProcessScan(ctx context.Context, scan *domain.CardScan, maxAttempts int)
	Retry(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error)
	ApplyToPatient(ctx context.Context, tenantID, scanID, patientID uuid.UUID) (*domain.Patient, error)
	CreatePatient(ctx context.Context, tenantID, scanID, createdBy uuid.UUID) (*domain.Patient, error)
	Delete(ctx context.Context, tenantID, scanID uuid.UUID) error
}

type scanService struct {
	scanRepo    port.ScanRepository
	fileRepo    port.FileMetaRepository
	patientRepo port.PatientRepository
	payerRepo   port.PayerRepository
	storage     port.ObjectStorage
	describer   port.CardDescriber
}

// NewScanService creates a new ScanService implementation.
func NewScanService(
	scanRepo port.ScanRepository,
	fileRepo port.FileMetaRepository,
	patientRepo port.PatientRepository,
	payerRepo port.PayerRepository,
	storage port.ObjectStorage,
	describer port.CardDescriber,
) ScanService {
	return &scanService{
		scanRepo:    scanRepo,
		fileRepo:    fileRepo,
		patientRepo: patientRepo,
		payerRepo:   payerRepo,
		storage:     storage,
		describer:   describer,
	}
}

func (s *scanService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateScanInput) (*domain.CardScan, error) {
	if !domain.ValidCardKinds[input.CardKind] {
		return nil, domain.ErrInvalidCardKind
	}

	file, err := s.fileRepo.GetByID(ctx, tenantID, input.FileID)
	if err != nil {
		return nil, err
	}
	if file.Status != domain.FileStatusUploaded {
		return nil, domain.ErrUploadFailed
	}

	// One scan per file
	if _, err := s.scanRepo.GetByFileID(ctx, tenantID, input.FileID); err == nil {
		return nil, domain.ErrScanAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	scan := &domain.CardScan{
		TenantID:  tenantID,
		FileID:    input.FileID,
		CardKind:  input.CardKind,
		Status:    domain.ScanStatusQueued,
		CreatedBy: createdBy,
	}
	if err := s.scanRepo.Create(ctx, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

func (s *scanService) GetByID(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error) {
	return s.scanRepo.GetByID(ctx, tenantID, scanID)
}

func (s *scanService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.CardScan, int, error) {
	return s.scanRepo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *scanService) ProcessScan(ctx context.Context, scan *domain.CardScan, maxAttempts int) {
	file, err := s.fileRepo.GetByID(ctx, scan.TenantID, scan.FileID)
	if err != nil {
		s.failScan(ctx, scan, fmt.Sprintf("looking up file: %v", err))
		return
	}

	imageBytes, err := s.storage.Download(ctx, file.S3Bucket, file.S3Key)
	if err != nil {
		s.failScan(ctx, scan, fmt.Sprintf("downloading image: %v", err))
		return
	}

	output, err := s.describer.Describe(ctx, port.DescribeInput{
		ImageBytes:  imageBytes,
		ContentType: file.ContentType,
		CardKind:    scan.CardKind,
	})
	if err != nil {
		s.handleDescribeError(ctx, scan, err, maxAttempts)
		return
	}

	record, err := extract.Extract(output.Text)
	if err != nil {
		s.failScan(ctx, scan, fmt.Sprintf("extracting record: %v", err))
		return
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		s.failScan(ctx, scan, fmt.Sprintf("encoding record: %v", err))
		return
	}

	now := time.Now().UTC()
	scan.Status = domain.ScanStatusExtracted
	scan.ModelUsed = output.ModelUsed
	scan.PromptUsed = output.PromptUsed
	scan.RawText = output.Text
	scan.ExtractedRecord = recordJSON
	scan.ScanError = ""
	scan.ScannedAt = &now

	if err := s.scanRepo.UpdateResult(ctx, scan); err != nil {
		log.Printf("scanService.ProcessScan: failed to save results for %s: %v", scan.ID, err)
		return
	}

	log.Printf("scanService.ProcessScan: scan %s extracted successfully (model=%s)", scan.ID, scan.ModelUsed)
}

// handleDescribeError requeues rate-limited scans under the attempt threshold,
// otherwise marks the scan as permanently failed. A rate-limited pass gives
// its claim-time attempt back: only real describe failures count against
// maxAttempts.
func (s *scanService) handleDescribeError(ctx context.Context, scan *domain.CardScan, describeErr error, maxAttempts int) {
	var rlErr *vision.RateLimitError
	if errors.As(describeErr, &rlErr) && scan.ScanAttempts <= maxAttempts {
		scan.Status = domain.ScanStatusQueued
		if scan.ScanAttempts > 0 {
			scan.ScanAttempts--
		}
		scan.ScanError = fmt.Sprintf("rate limited by %s, queued for retry", rlErr.Provider)
		if err := s.scanRepo.UpdateResult(ctx, scan); err != nil {
			log.Printf("scanService.handleDescribeError: failed to requeue scan %s: %v", scan.ID, err)
		} else {
			log.Printf("scanService.handleDescribeError: scan %s queued for retry (attempt %d)", scan.ID, scan.ScanAttempts)
		}
		return
	}
	s.failScan(ctx, scan, fmt.Sprintf("describing card: %v", describeErr))
}

func (s *scanService) failScan(ctx context.Context, scan *domain.CardScan, errMsg string) {
	log.Printf("scanService.failScan: scan %s failed: %s", scan.ID, errMsg)
	scan.Status = domain.ScanStatusFailed
	scan.ScanError = errMsg
	if err := s.scanRepo.UpdateResult(ctx, scan); err != nil {
		log.Printf("scanService.failScan: failed to update status for %s: %v", scan.ID, err)
	}
}

func (s *scanService) Retry(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, error) {
	scan, err := s.scanRepo.GetByID(ctx, tenantID, scanID)
	if err != nil {
		return nil, err
	}
	if scan.Status != domain.ScanStatusFailed {
		return scan, nil
	}
	scan.Status = domain.ScanStatusQueued
	scan.ScanError = ""
	scan.ScanAttempts = 0
	if err := s.scanRepo.UpdateResult(ctx, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

func (s *scanService) ApplyToPatient(ctx context.Context, tenantID, scanID, patientID uuid.UUID) (*domain.Patient, error) {
	scan, record, err := s.extractedRecord(ctx, tenantID, scanID)
	if err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetByID(ctx, tenantID, patientID)
	if err != nil {
		return nil, err
	}

	s.mergeRecord(ctx, patient, record)

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	if err := s.scanRepo.SetPatient(ctx, tenantID, scan.ID, patient.ID); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *scanService) CreatePatient(ctx context.Context, tenantID, scanID, createdBy uuid.UUID) (*domain.Patient, error) {
	scan, record, err := s.extractedRecord(ctx, tenantID, scanID)
	if err != nil {
		return nil, err
	}

	patient := &domain.Patient{
		TenantID:  tenantID,
		CreatedBy: createdBy,
	}
	s.mergeRecord(ctx, patient, record)

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	if err := s.scanRepo.SetPatient(ctx, tenantID, scan.ID, patient.ID); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *scanService) Delete(ctx context.Context, tenantID, scanID uuid.UUID) error {
	return s.scanRepo.Delete(ctx, tenantID, scanID)
}

func (s *scanService) extractedRecord(ctx context.Context, tenantID, scanID uuid.UUID) (*domain.CardScan, *extract.Record, error) {
	scan, err := s.scanRepo.GetByID(ctx, tenantID, scanID)
	if err != nil {
		return nil, nil, err
	}
	if scan.Status != domain.ScanStatusExtracted || len(scan.ExtractedRecord) == 0 {
		return nil, nil, domain.ErrScanNotReady
	}
	if scan.PatientID != nil {
		return nil, nil, domain.ErrScanAlreadyApplied
	}

	var record extract.Record
	if err := json.Unmarshal(scan.ExtractedRecord, &record); err != nil {
		return nil, nil, fmt.Errorf("decoding extracted record: %w", err)
	}
	return scan, &record, nil
}

// mergeRecord copies extracted values into the patient, filling only fields
// that are currently empty. Existing patient data always wins over a scan.
func (s *scanService) mergeRecord(ctx context.Context, patient *domain.Patient, record *extract.Record) {
	fillString(&patient.FirstName, record.FirstName)
	fillString(&patient.LastName, record.LastName)
	fillString(&patient.DateOfBirth, record.DateOfBirth)
	fillString(&patient.Gender, record.Gender)
	fillString(&patient.Phone, record.Phone)
	fillString(&patient.Email, record.Email)
	fillString(&patient.InsuranceID, record.InsuranceID)
	fillString(&patient.PayerName, record.InsuranceProvider)
	if record.Address != nil {
		fillString(&patient.Street, record.Address.Street)
		fillString(&patient.City, record.Address.City)
		fillString(&patient.State, record.Address.State)
		fillString(&patient.ZipCode, record.Address.ZipCode)
	}

	// Link the payer when the extracted name matches a known payer exactly.
	if patient.PayerID == nil && patient.PayerName != "" {
		if payer, err := s.payerRepo.GetByName(ctx, patient.TenantID, patient.PayerName); err == nil {
			patient.PayerID = &payer.ID
		}
	}
}

func fillString(dst *string, src *string) {
	if *dst == "" && src != nil {
		*dst = *src
	}
}
