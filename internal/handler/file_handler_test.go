package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cardintake/internal/domain"
	"cardintake/internal/handler"
	"cardintake/mocks"
)

func TestFileHandler_Upload_Success(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	tenantID := uuid.New()
	userID := uuid.New()
	fileID := uuid.New()

	expectedMeta := &domain.FileMeta{
		ID:           fileID,
		TenantID:     tenantID,
		UploadedBy:   userID,
		FileName:     fileID.String() + ".jpg",
		OriginalName: "card-front.jpg",
		FileType:     domain.FileTypeJPG,
		Status:       domain.FileStatusUploaded,
	}

	mockFileSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.FileUploadInput")).
		Return(expectedMeta, nil)

	// Create multipart form body
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "card-front.jpg")
	part.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	setAuthContext(c, tenantID, userID, "member")

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockFileSvc.AssertExpectations(t)
}

func TestFileHandler_Upload_NoFile(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/upload", nil)
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileHandler_Upload_NoAuthContext(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/upload", nil)

	h.Upload(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFileHandler_Upload_UnsupportedType(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	mockFileSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.FileUploadInput")).
		Return(nil, domain.ErrUnsupportedFileType)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "card.pdf")
	part.Write([]byte("%PDF-1.4"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestFileHandler_GetByID_WithDownloadURL(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	tenantID := uuid.New()
	fileID := uuid.New()

	meta := &domain.FileMeta{ID: fileID, TenantID: tenantID, Status: domain.FileStatusUploaded}
	mockFileSvc.On("GetByID", mock.Anything, tenantID, fileID).Return(meta, nil)
	mockFileSvc.On("GetDownloadURL", mock.Anything, tenantID, fileID).
		Return("https://example.com/presigned", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/files/"+fileID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://example.com/presigned")
	mockFileSvc.AssertExpectations(t)
}
