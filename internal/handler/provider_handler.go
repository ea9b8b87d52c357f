package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cardintake/internal/middleware"
	"cardintake/internal/service"
)

// ProviderHandler handles rendering provider endpoints.
type ProviderHandler struct {
	providerService service.ProviderService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(providerService service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// Create handles POST /api/v1/providers
func (h *ProviderHandler) Create(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	var input service.CreateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	provider, err := h.providerService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, provider)
}

// List handles GET /api/v1/providers
func (h *ProviderHandler) List(c *gin.Context) {
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

	providers, total, err := h.providerService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, providers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/providers/:id
func (h *ProviderHandler) GetByID(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider ID")
		return
	}

	provider, err := h.providerService.GetByID(c.Request.Context(), tenantID, providerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, provider)
}

// Update handles PUT /api/v1/providers/:id
func (h *ProviderHandler) Update(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider ID")
		return
	}

	var input service.UpdateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	provider, err := h.providerService.Update(c.Request.Context(), tenantID, providerID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, provider)
}

// Delete handles DELETE /api/v1/providers/:id
func (h *ProviderHandler) Delete(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider ID")
		return
	}

	if err := h.providerService.Delete(c.Request.Context(), tenantID, providerID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "provider deleted"})
}
