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

// exportPageLimit caps how many rows a CSV export fetches.
const exportPageLimit = 1000

// PatientHandler handles patient management endpoints.
type PatientHandler struct {
	patientService service.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create handles POST /api/v1/patients
func (h *PatientHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, patient)
}

// List handles GET /api/v1/patients
// A "q" query parameter switches to name search. "format=csv" streams the
// roster as a CSV download instead of JSON.
func (h *PatientHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	if strings.EqualFold(c.Query("format"), "csv") {
		h.exportCSV(c, tenantID)
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

	query := strings.TrimSpace(c.Query("q"))

	var (
		patients []domain.Patient
		total    int
	)
	if query != "" {
		patients, total, err = h.patientService.Search(c.Request.Context(), tenantID, query, offset, limit)
	} else {
		patients, total, err = h.patientService.List(c.Request.Context(), tenantID, offset, limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, patients, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// exportCSV streams the patient roster as a CSV attachment.
func (h *PatientHandler) exportCSV(c *gin.Context, tenantID uuid.UUID) {
	patients, _, err := h.patientService.List(c.Request.Context(), tenantID, 0, exportPageLimit)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("patients")+`"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		log.Printf("patientHandler.exportCSV: write BOM: %v", err)
		return
	}

	w := csvexport.NewPatientWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("patientHandler.exportCSV: write header: %v", err)
		return
	}
	if err := w.WritePatients(patients); err != nil {
		log.Printf("patientHandler.exportCSV: write rows: %v", err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("patientHandler.exportCSV: flush: %v", err)
	}
}

// GetByID handles GET /api/v1/patients/:id
func (h *PatientHandler) GetByID(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	patient, err := h.patientService.GetByID(c.Request.Context(), tenantID, patientID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, patient)
}

// Update handles PUT /api/v1/patients/:id
func (h *PatientHandler) Update(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	var input service.UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), tenantID, patientID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, patient)
}

// Delete handles DELETE /api/v1/patients/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	if err := h.patientService.Delete(c.Request.Context(), tenantID, patientID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "patient deleted"})
}
