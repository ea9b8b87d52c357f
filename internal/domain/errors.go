package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrUserInactive        = errors.New("user is inactive")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail      = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug = errors.New("tenant slug already exists")
	ErrInvalidTenantSlug   = errors.New("tenant slug must be lowercase letters, digits and hyphens")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidCardKind     = errors.New("invalid card kind")
	ErrScanAlreadyExists   = errors.New("a scan already exists for this file")
	ErrScanNotReady        = errors.New("scan has not produced an extracted record yet")
	ErrScanAlreadyApplied  = errors.New("scan already applied to a patient")
	ErrDuplicateNPI        = errors.New("provider NPI already exists for this tenant")
	ErrDuplicatePayerCode  = errors.New("payer code already exists for this tenant")
	ErrInvalidMinutes      = errors.New("charge minutes out of range")
	ErrInsufficientRole    = errors.New("insufficient role for this action")
)
