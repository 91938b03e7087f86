package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trishulai/trishul-api/internal/models"
)

func TestCreateScan_Multipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/kavach/scans", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "app.apk", header.Filename)
		assert.Equal(t, "binary", string(content))

		writeJSON(w, http.StatusCreated, `{"success": true, "data": {"scanId": "SCN-123"}, "message": "Scan started successfully"}`)
	})

	created, err := client.CreateScan(context.Background(), "app.apk", strings.NewReader("binary"))
	require.NoError(t, err)
	assert.Equal(t, "SCN-123", created.ScanID)
}

func TestCreateScan_FilenameOnly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		var req models.CreateScanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "app.apk", req.Filename)

		writeJSON(w, http.StatusCreated, `{"success": true, "data": {"scanId": "SCN-7"}}`)
	})

	created, err := client.CreateScan(context.Background(), "app.apk", nil)
	require.NoError(t, err)
	assert.Equal(t, "SCN-7", created.ScanID)
}

func TestListScans(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("skip"))
		writeJSON(w, http.StatusOK, `{"success": true, "data": [
			{"scanId": "SCN-2", "target": "b.apk", "status": "running", "finishedAt": "-", "vulnerabilities": 0},
			{"scanId": "SCN-1", "target": "a.apk", "status": "completed", "finishedAt": "2025-09-01", "vulnerabilities": 7}
		]}`)
	})

	limit := 2
	scans, err := client.ListScans(context.Background(), &models.PageRequest{Limit: &limit})
	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.Equal(t, "SCN-2", scans[0].ScanID)
	assert.Equal(t, 7, scans[1].Vulnerabilities)
}

func TestGetReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/kavach/scans/SCN-1/report", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Disposition", "attachment; filename=SCN-1-report.txt")
		_, _ = w.Write([]byte("Report for scan SCN-1"))
	})

	report, err := client.GetReport(context.Background(), "SCN-1")
	require.NoError(t, err)
	assert.Equal(t, "SCN-1-report.txt", report.Filename)
	assert.Equal(t, "text/plain", report.ContentType)
	assert.Equal(t, "Report for scan SCN-1", string(report.Content))
}

func TestGetReport_Error(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success": false, "error": "Invalid scan id", "code": "BAD_REQUEST"}`)
	})

	_, err := client.GetReport(context.Background(), "bad id")
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "Invalid scan id")
}
