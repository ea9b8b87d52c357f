package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cardintake/internal/middleware"
	"cardintake/internal/service"
)

// ScanHandler handles card scan endpoints: scan creation, status, and
// applying extracted records to patients.
type ScanHandler struct {
	scanService service.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Create handles POST /api/v1/scans
// The scan is queued; a background worker runs the describe-then-extract
// pipeline and the client polls GET /scans/:id for the result.
func (h *ScanHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	scan, err := h.scanService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, scan)
}

// List handles GET /api/v1/scans
func (h *ScanHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	scans, total, err := h.scanService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, scans, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/scans/:id
func (h *ScanHandler) GetByID(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	scan, err := h.scanService.GetByID(c.Request.Context(), tenantID, scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, scan)
}

// Retry handles POST /api/v1/scans/:id/retry
// Requeues a failed scan for another pass through the pipeline.
func (h *ScanHandler) Retry(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	scan, err := h.scanService.Retry(c.Request.Context(), tenantID, scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, scan)
}

// applyInput is the request body for applying a scan to an existing patient.
type applyInput struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
}

// ApplyToPatient handles POST /api/v1/scans/:id/apply
// Merges the extracted record into an existing patient; existing patient
// fields are never overwritten.
func (h *ScanHandler) ApplyToPatient(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	var input applyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	patient, err := h.scanService.ApplyToPatient(c.Request.Context(), tenantID, scanID, input.PatientID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, patient)
}

// CreatePatient handles POST /api/v1/scans/:id/patient
// Creates a new patient from the extracted record.
func (h *ScanHandler) CreatePatient(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	patient, err := h.scanService.CreatePatient(c.Request.Context(), tenantID, scanID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, patient)
}

// Delete handles DELETE /api/v1/scans/:id
func (h *ScanHandler) Delete(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	if err := h.scanService.Delete(c.Request.Context(), tenantID, scanID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "scan deleted"})
}
