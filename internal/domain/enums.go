package domain

// FileType represents the allowed file types for card image upload.
// Only image formats the vision providers accept are allowed.
type FileType string

const (
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWEBP: "image/webp",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
	"image/webp": FileTypeWEBP,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"webp": FileTypeWEBP,
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles lists the accepted user roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// CardKind identifies the kind of card that was photographed.
type CardKind string

const (
	CardKindID        CardKind = "id"
	CardKindInsurance CardKind = "insurance"
)

// ValidCardKinds lists the accepted card kinds.
var ValidCardKinds = map[CardKind]bool{
	CardKindID:        true,
	CardKindInsurance: true,
}

// ScanStatus represents the lifecycle of a card scan job.
type ScanStatus string

const (
	ScanStatusQueued     ScanStatus = "queued"
	ScanStatusProcessing ScanStatus = "processing"
	ScanStatusExtracted  ScanStatus = "extracted"
	ScanStatusFailed     ScanStatus = "failed"
)

// ChargeStatus represents the billing lifecycle of a charge.
type ChargeStatus string

const (
	ChargeStatusDraft  ChargeStatus = "draft"
	ChargeStatusReady  ChargeStatus = "ready"
	ChargeStatusBilled ChargeStatus = "billed"
	ChargeStatusVoid   ChargeStatus = "void"
)
