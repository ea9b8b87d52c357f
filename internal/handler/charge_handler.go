package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cardintake/internal/csvexport"
	"cardintake/internal/domain"
	"cardintake/internal/middleware"
	"cardintake/internal/service"
)

// ChargeHandler handles charge capture endpoints.
type ChargeHandler struct {
	chargeService service.ChargeService
}

// NewChargeHandler creates a new ChargeHandler.
func NewChargeHandler(chargeService service.ChargeService) *ChargeHandler {
	return &ChargeHandler{chargeService: chargeService}
}

// Create handles POST /api/v1/charges
func (h *ChargeHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	charge, err := h.chargeService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, charge)
}

// PreviewUnits handles GET /api/v1/charges/units
// Computes billable units for a "minutes" query parameter without persisting
// anything, so the client can show the unit count before the charge is saved.
func (h *ChargeHandler) PreviewUnits(c *gin.Context) {
	minutes, err := strconv.Atoi(c.Query("minutes"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "minutes must be an integer")
		return
	}

	preview, err := h.chargeService.PreviewUnits(minutes)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// List handles GET /api/v1/charges
// A "patient_id" query parameter filters to one patient. "format=csv" streams
// the result as a CSV download instead of JSON.
func (h *ChargeHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	var patientID *uuid.UUID
	if pidStr := c.Query("patient_id"); pidStr != "" {
		pid, parseErr := uuid.Parse(pidStr)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient_id")
			return
		}
		patientID = &pid
	}

	if strings.EqualFold(c.Query("format"), "csv") {
		h.exportCSV(c, tenantID, patientID)
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

	var (
		charges []domain.Charge
		total   int
	)
	if patientID != nil {
		charges, total, err = h.chargeService.ListByPatient(c.Request.Context(), tenantID, *patientID, offset, limit)
	} else {
		charges, total, err = h.chargeService.List(c.Request.Context(), tenantID, offset, limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, charges, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// exportCSV streams charges as a CSV attachment.
func (h *ChargeHandler) exportCSV(c *gin.Context, tenantID uuid.UUID, patientID *uuid.UUID) {
	var (
		charges []domain.Charge
		err     error
	)
	if patientID != nil {
		charges, _, err = h.chargeService.ListByPatient(c.Request.Context(), tenantID, *patientID, 0, exportPageLimit)
	} else {
		charges, _, err = h.chargeService.List(c.Request.Context(), tenantID, 0, exportPageLimit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("charges")+`"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		log.Printf("chargeHandler.exportCSV: write BOM: %v", err)
		return
	}

	w := csvexport.NewChargeWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("chargeHandler.exportCSV: write header: %v", err)
		return
	}
	if err := w.WriteCharges(charges); err != nil {
		log.Printf("chargeHandler.exportCSV: write rows: %v", err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("chargeHandler.exportCSV: flush: %v", err)
	}
}

// GetByID handles GET /api/v1/charges/:id
func (h *ChargeHandler) GetByID(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	chargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid charge ID")
		return
	}

	charge, err := h.chargeService.GetByID(c.Request.Context(), tenantID, chargeID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, charge)
}

// Update handles PUT /api/v1/charges/:id
func (h *ChargeHandler) Update(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	chargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid charge ID")
		return
	}

	var input service.UpdateChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	charge, err := h.chargeService.Update(c.Request.Context(), tenantID, chargeID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, charge)
}

// Delete handles DELETE /api/v1/charges/:id
func (h *ChargeHandler) Delete(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	chargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid charge ID")
		return
	}

	if err := h.chargeService.Delete(c.Request.Context(), tenantID, chargeID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "charge deleted"})
}
