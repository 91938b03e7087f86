package kavach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trishulai/trishul-api/internal/models"
)

// MockService mocks the scan Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateScan(ctx context.Context, file models.UploadedFile) (models.Envelope[models.ScanCreated], error) {
	args := m.Called(ctx, file)
	return args.Get(0).(models.Envelope[models.ScanCreated]), args.Error(1)
}

func (m *MockService) ListScans(ctx context.Context) (models.Envelope[[]models.ScanRecord], error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Envelope[[]models.ScanRecord]), args.Error(1)
}

func (m *MockService) GetReport(ctx context.Context, scanID string) (models.Envelope[models.Report], error) {
	args := m.Called(ctx, scanID)
	return args.Get(0).(models.Envelope[models.Report]), args.Error(1)
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func setupRouter(svc Service, createMW ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	router := gin.New()
	NewController(svc, logger, 1<<20).RegisterRoutes(router.Group("/api/v1"), createMW...)
	return router
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func sampleScans() []models.ScanRecord {
	return []models.ScanRecord{
		{ScanID: "SCN-003", Target: "db", Status: models.ScanStatusRunning, FinishedAt: models.NotFinished},
		{ScanID: "SCN-002", Target: "web", Status: models.ScanStatusCompleted, FinishedAt: "2025-09-05", Vulnerabilities: 3},
		{ScanID: "SCN-001", Target: "api", Status: models.ScanStatusCompleted, FinishedAt: "2025-09-04", Vulnerabilities: 7},
	}
}

func TestCreateScan_Multipart(t *testing.T) {
	svc := new(MockService)
	svc.On("CreateScan", mock.Anything, mock.MatchedBy(func(f models.UploadedFile) bool {
		return f.Name == "hosts.csv" && f.Size == 8
	})).Return(models.Ok(models.ScanCreated{ScanID: "SCN-042"}, "Scan initiated successfully"), nil)
	router := setupRouter(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "hosts.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("10.0.0.1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/kavach/scans", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode[models.ScanCreated](t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "SCN-042", env.Data.ScanID)
	assert.Equal(t, "Scan initiated successfully", env.Message)
	svc.AssertExpectations(t)
}

func TestCreateScan_JSON(t *testing.T) {
	svc := new(MockService)
	svc.On("CreateScan", mock.Anything, models.UploadedFile{Name: "targets.txt"}).
		Return(models.Ok(models.ScanCreated{ScanID: "SCN-007"}, "Scan initiated successfully"), nil)
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/kavach/scans", strings.NewReader(`{"filename":"targets.txt"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SCN-007", decode[models.ScanCreated](t, w).Data.ScanID)
	svc.AssertExpectations(t)
}

func TestCreateScan_NoFile(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/kavach/scans", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode[json.RawMessage](t, w)
	assert.False(t, env.Success)
	assert.Contains(t, strings.ToLower(env.Error), "filename")
	svc.AssertNotCalled(t, "CreateScan", mock.Anything, mock.Anything)
}

func TestCreateScan_MiddlewareRunsFirst(t *testing.T) {
	svc := new(MockService)
	blocked := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	router := setupRouter(svc, blocked)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/kavach/scans", strings.NewReader(`{"filename":"a.txt"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	svc.AssertNotCalled(t, "CreateScan", mock.Anything, mock.Anything)

	// Listing is not behind the creation middleware
	svc.On("ListScans", mock.Anything).Return(models.Ok(sampleScans(), ""), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateScan_ServiceError(t *testing.T) {
	svc := new(MockService)
	svc.On("CreateScan", mock.Anything, mock.Anything).
		Return(models.Envelope[models.ScanCreated]{}, errors.New("database is locked"))
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/kavach/scans", strings.NewReader(`{"filename":"a.txt"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode[json.RawMessage](t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to start scan", env.Error)
}

func TestListScans(t *testing.T) {
	svc := new(MockService)
	svc.On("ListScans", mock.Anything).Return(models.Ok(sampleScans(), ""), nil)
	router := setupRouter(svc)

	t.Run("Full", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Limit"))
		env := decode[[]models.ScanRecord](t, w)
		require.Len(t, env.Data, 3)
		assert.Equal(t, "SCN-003", env.Data[0].ScanID)
		assert.Equal(t, models.NotFinished, env.Data[0].FinishedAt)
	})

	t.Run("Paged", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans?limit=1&skip=1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Limit"))
		assert.Equal(t, "1", w.Header().Get("X-Skip"))
		env := decode[[]models.ScanRecord](t, w)
		require.Len(t, env.Data, 1)
		assert.Equal(t, "SCN-002", env.Data[0].ScanID)
	})

	t.Run("Clamped", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans?limit=500&skip=-3", nil))

		assert.Equal(t, "50", w.Header().Get("X-Limit"))
		assert.Equal(t, "0", w.Header().Get("X-Skip"))
		assert.Len(t, decode[[]models.ScanRecord](t, w).Data, 3)
	})

	t.Run("PastEnd", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans?skip=10", nil))

		env := decode[[]models.ScanRecord](t, w)
		assert.True(t, env.Success)
		assert.NotNil(t, env.Data)
		assert.Empty(t, env.Data)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans?limit=many", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListScans_Canceled(t *testing.T) {
	svc := new(MockService)
	svc.On("ListScans", mock.Anything).Return(models.Envelope[[]models.ScanRecord]{}, context.Canceled)
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans", nil))

	assert.Equal(t, 499, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGetReport(t *testing.T) {
	svc := new(MockService)
	content := []byte("Vulnerability Report for SCN-001\n\nGenerated: 2025-09-06T12:00:00Z")
	svc.On("GetReport", mock.Anything, "SCN-001").Return(models.Ok(models.Report{
		ScanID:      "SCN-001",
		Filename:    "SCN-001-report.txt",
		ContentType: "text/plain",
		Content:     content,
	}, "Report generated"), nil)
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans/SCN-001/report", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=SCN-001-report.txt", w.Header().Get("Content-Disposition"))
	assert.Equal(t, content, w.Body.Bytes())
	svc.AssertExpectations(t)
}

func TestGetReport_AnyScanID(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		scanID   string
		filename string
	}{
		{"Space", "a%20b", "a b", "a_b-report.txt"},
		{"Colon", "scan:1", "scan:1", "scan_1-report.txt"},
		{"NonASCII", "%C3%A9t%C3%A9", "\u00e9t\u00e9", "_t_-report.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte("Vulnerability Report for " + tt.scanID)
			svc := new(MockService)
			svc.On("GetReport", mock.Anything, tt.scanID).Return(models.Ok(models.Report{
				ScanID:      tt.scanID,
				Filename:    tt.scanID + "-report.txt",
				ContentType: "text/plain",
				Content:     body,
			}, ""), nil)
			router := setupRouter(svc)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans/"+tt.path+"/report", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "attachment; filename="+tt.filename, w.Header().Get("Content-Disposition"))
			assert.Equal(t, string(body), w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestGetReport_Timeout(t *testing.T) {
	svc := new(MockService)
	svc.On("GetReport", mock.Anything, "SCN-001").Return(models.Envelope[models.Report]{}, context.DeadlineExceeded)
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans/SCN-001/report", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}
