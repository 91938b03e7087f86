package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trishulai/trishul-api/internal/models"
)

func TestInferImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/trinetra/inference", r.URL.Path)
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "part.png", header.Filename)
		writeJSON(w, http.StatusOK, `{"success": true, "data": {
			"defectsFound": 1, "confidence": 91.5, "processingTime": "1.2s",
			"boundingBoxes": [{"id": 1, "x": 10, "y": 20, "width": 30, "height": 40, "label": "Scratch", "confidence": 91.5}]
		}}`)
	})

	result, err := client.InferImage(context.Background(), "part.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.DefectsFound)
	require.Len(t, result.BoundingBoxes, 1)
	assert.Equal(t, "Scratch", result.BoundingBoxes[0].Label)
}

func TestSaveDecision(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/trinetra/decisions", r.URL.Path)
		var req models.SaveDecisionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "part.png", req.Filename)
		assert.Equal(t, models.QCDecision("fail"), req.Decision)
		require.NotNil(t, req.Defects)
		assert.Equal(t, 2, *req.Defects)
		writeJSON(w, http.StatusOK, `{"success": true, "data": {"id": 4, "filename": "part.png", "decision": "fail", "timestamp": "2025-09-06 12:00:00", "defects": 2}}`)
	})

	entry, err := client.SaveDecision(context.Background(), "part.png", "fail", 2)
	require.NoError(t, err)
	assert.Equal(t, 4, entry.ID)
	assert.Equal(t, 2, entry.Defects)
}

func TestSaveDecision_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success": false, "error": "field 'decision' must be one of [pass fail]", "code": "VALIDATION_ERROR"}`)
	})

	_, err := client.SaveDecision(context.Background(), "part.png", "maybe", 0)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGetQCHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("skip"))
		writeJSON(w, http.StatusOK, `{"success": true, "data": [{"id": 2, "filename": "b.png", "decision": "pass", "timestamp": "t", "defects": 0}]}`)
	})

	skip := 1
	history, err := client.GetQCHistory(context.Background(), &models.PageRequest{Skip: &skip})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "b.png", history[0].Filename)
}
