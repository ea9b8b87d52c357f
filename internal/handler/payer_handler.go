package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cardintake/internal/middleware"
	"cardintake/internal/service"
)

// PayerHandler handles insurance payer endpoints.
type PayerHandler struct {
	payerService service.PayerService
}

// NewPayerHandler creates a new PayerHandler.
func NewPayerHandler(payerService service.PayerService) *PayerHandler {
	return &PayerHandler{payerService: payerService}
}

// Create handles POST /api/v1/payers
func (h *PayerHandler) Create(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	var input service.CreatePayerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	payer, err := h.payerService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, payer)
}

// List handles GET /api/v1/payers
func (h *PayerHandler) List(c *gin.Context) {
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

	payers, total, err := h.payerService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, payers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/payers/:id
func (h *PayerHandler) GetByID(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	payerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payer ID")
		return
	}

	payer, err := h.payerService.GetByID(c.Request.Context(), tenantID, payerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payer)
}

// Update handles PUT /api/v1/payers/:id
func (h *PayerHandler) Update(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	payerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payer ID")
		return
	}

	var input service.UpdatePayerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	payer, err := h.payerService.Update(c.Request.Context(), tenantID, payerID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payer)
}

// Delete handles DELETE /api/v1/payers/:id
func (h *PayerHandler) Delete(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	payerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payer ID")
		return
	}

	if err := h.payerService.Delete(c.Request.Context(), tenantID, payerID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "payer deleted"})
}
