package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cardintake/internal/csvexport"
	"cardintake/internal/domain"
	"cardintake/internal/handler"
	"cardintake/internal/service"
	"cardintake/mocks"
)

func TestChargeHandler_Create_Success(t *testing.T) {
	mockCharge := new(mocks.MockChargeService)
	h := handler.NewChargeHandler(mockCharge)

	tenantID := uuid.New()
	userID := uuid.New()
	patientID := uuid.New()
	providerID := uuid.New()
	serviceDate := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	charge := &domain.Charge{
		ID:         uuid.New(),
		TenantID:   tenantID,
		PatientID:  patientID,
		ProviderID: providerID,
		CPTCode:    "97110",
		Minutes:    38,
		Units:      3,
		Status:     domain.ChargeStatusDraft,
	}
	mockCharge.On("Create", mock.Anything, tenantID, userID, service.CreateChargeInput{
		PatientID:   patientID,
		ProviderID:  providerID,
		CPTCode:     "97110",
		ServiceDate: serviceDate,
		Minutes:     38,
	}).Return(charge, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"patient_id":   patientID.String(),
		"provider_id":  providerID.String(),
		"cpt_code":     "97110",
		"service_date": serviceDate.Format(time.RFC3339),
		"minutes":      38,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/charges", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, tenantID, userID, "member")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockCharge.AssertExpectations(t)
}

func TestChargeHandler_Create_InvalidMinutes(t *testing.T) {
	mockCharge := new(mocks.MockChargeService)
	h := handler.NewChargeHandler(mockCharge)

	tenantID := uuid.New()
	userID := uuid.New()

	mockCharge.On("Create", mock.Anything, tenantID, userID, mock.AnythingOfType("service.CreateChargeInput")).
		Return(nil, domain.ErrInvalidMinutes)

	body, _ := json.Marshal(map[string]interface{}{
		"patient_id":   uuid.New().String(),
		"provider_id":  uuid.New().String(),
		"cpt_code":     "97110",
		"service_date": time.Now().Format(time.RFC3339),
		"minutes":      900,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/charges", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, tenantID, userID, "member")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_MINUTES", resp.Error.Code)
}

func TestChargeHandler_PreviewUnits_Success(t *testing.T) {
	mockCharge := new(mocks.MockChargeService)
	h := handler.NewChargeHandler(mockCharge)

	mockCharge.On("PreviewUnits", 38).Return(&service.UnitsPreview{Minutes: 38, Units: 3}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/charges/units?minutes=38", nil)

	h.PreviewUnits(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["units"])
}

func TestChargeHandler_PreviewUnits_BadMinutes(t *testing.T) {
	mockCharge := new(mocks.MockChargeService)
	h := handler.NewChargeHandler(mockCharge)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/charges/units?minutes=abc", nil)

	h.PreviewUnits(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockCharge.AssertNotCalled(t, "PreviewUnits", mock.Anything)
}

func TestChargeHandler_List_ByPatient(t *testing.T) {
	mockCharge := new(mocks.MockChargeService)
	h := handler.NewChargeHandler(mockCharge)

	tenantID := uuid.New()
	patientID := uuid.New()

	charges := []domain.Charge{
		{ID: uuid.New(), TenantID: tenantID, PatientID: patientID, CPTCode: "97110"},
	}
	mockCharge.On("ListByPatient", mock.Anything, tenantID, patientID, 0, 20).Return(charges, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/charges?patient_id="+patientID.String(), http.NoBody)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockCharge.AssertExpectations(t)
	mockCharge.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChargeHandler_List_ExportCSV(t *testing.T) {
	mockCharge := new(mocks.MockChargeService)
	h := handler.NewChargeHandler(mockCharge)

	tenantID := uuid.New()
	charges := []domain.Charge{
		{
			ID:          uuid.New(),
			TenantID:    tenantID,
			PatientID:   uuid.New(),
			ProviderID:  uuid.New(),
			CPTCode:     "97110",
			ServiceDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			Minutes:     38,
			Units:       3,
			Status:      domain.ChargeStatusDraft,
			CreatedAt:   time.Now(),
		},
	}
	mockCharge.On("List", mock.Anything, tenantID, 0, 1000).Return(charges, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/charges?format=csv", http.NoBody)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "charges_")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, csvexport.BOM, body[:3])

	r := csv.NewReader(strings.NewReader(string(body[3:])))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "97110", records[1][2])
	assert.Equal(t, "3", records[1][5])
	mockCharge.AssertExpectations(t)
}

func TestChargeHandler_List_InvalidPatientID(t *testing.T) {
	mockCharge := new(mocks.MockChargeService)
	h := handler.NewChargeHandler(mockCharge)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/charges?patient_id=nope", http.NoBody)
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockCharge.AssertNotCalled(t, "ListByPatient", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
