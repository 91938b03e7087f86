package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func uploadContext(req *http.Request) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return w, c
}

func TestBindUpload_Multipart(t *testing.T) {
	_, c := uploadContext(multipartRequest(t, UploadField, "hosts.csv", "10.0.0.1\n"))

	file, ok := BindUpload(c, 1<<20)
	require.True(t, ok)
	assert.Equal(t, "hosts.csv", file.Name)
	assert.Equal(t, int64(9), file.Size)
}

func TestBindUpload_MultipartMissingField(t *testing.T) {
	w, c := uploadContext(multipartRequest(t, "attachment", "hosts.csv", "x"))

	_, ok := BindUpload(c, 1<<20)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "field 'file' is required", decodeResponse(t, w).Error)
}

func TestBindUpload_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"filename":"x.jpg"}`))
	req.Header.Set("Content-Type", "application/json")
	_, c := uploadContext(req)

	file, ok := BindUpload(c, 1<<20)
	require.True(t, ok)
	assert.Equal(t, "x.jpg", file.Name)
	assert.Zero(t, file.Size)
}

func TestBindUpload_JSONMissingFilename(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w, c := uploadContext(req)

	_, ok := BindUpload(c, 1<<20)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeValidation, decodeResponse(t, w).Code)
}

func TestBindUpload_TooLarge(t *testing.T) {
	body := `{"filename":"` + strings.Repeat("a", 256) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w, c := uploadContext(req)

	_, ok := BindUpload(c, 64)
	assert.False(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, CodePayloadTooLarge, decodeResponse(t, w).Code)
}
