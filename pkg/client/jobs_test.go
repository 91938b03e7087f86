package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trishulai/trishul-api/internal/models"
)

func TestSubmitScanJob(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/kavach/scan", r.URL.Path)
		writeJSON(w, http.StatusAccepted, `{"success": true, "data": {"jobId": "job-1", "status": "queued"}}`)
	})

	accepted, err := client.SubmitScanJob(context.Background(), "app.apk", nil)
	require.NoError(t, err)
	assert.Equal(t, "job-1", accepted.JobID)
	assert.Equal(t, models.JobQueued, accepted.Status)
}

func TestSubmitInferenceJob(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/trinetra/inference", r.URL.Path)
		writeJSON(w, http.StatusAccepted, `{"success": true, "data": {"jobId": "job-2", "status": "queued"}}`)
	})

	accepted, err := client.SubmitInferenceJob(context.Background(), "part.png", nil)
	require.NoError(t, err)
	assert.Equal(t, "job-2", accepted.JobID)
}

func TestGetJob_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/missing", r.URL.Path)
		writeJSON(w, http.StatusNotFound, `{"success": false, "error": "Job not found", "code": "NOT_FOUND"}`)
	})

	_, err := client.GetJob(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWaitJob(t *testing.T) {
	var polls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&polls, 1) < 3 {
			writeJSON(w, http.StatusOK, `{"success": true, "data": {"id": "job-1", "kind": "kavach.scan", "status": "running"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": {"id": "job-1", "kind": "kavach.scan", "status": "succeeded", "result": {"scanId": "SCN-9"}}}`)
	})

	job, err := client.WaitJob(context.Background(), "job-1", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, models.JobSucceeded, job.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
}

func TestWaitJob_ContextDone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success": true, "data": {"id": "job-1", "status": "running"}}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.WaitJob(ctx, "job-1", 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
