package client

import (
	"context"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/trishulai/trishul-api/internal/models"
)

// InferImage runs defect detection on a product image. content may be nil,
// in which case only the file name is sent.
func (c *APIClient) InferImage(ctx context.Context, filename string, content io.Reader) (*models.DetectionResult, error) {
	env, err := call[models.DetectionResult](ctx, c, http.MethodPost, APIPathInference, uploadRequest(filename, content))
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// SaveDecision records a QC verdict
func (c *APIClient) SaveDecision(ctx context.Context, filename string, decision models.QCDecision, defects int) (*models.QcHistoryEntry, error) {
	req := models.SaveDecisionRequest{Filename: filename, Decision: decision, Defects: &defects}
	env, err := call[models.QcHistoryEntry](ctx, c, http.MethodPost, APIPathDecisions, func(r *resty.Request) {
		r.SetBody(req)
	})
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetQCHistory returns the QC history, newest first. A nil page returns the
// full history.
func (c *APIClient) GetQCHistory(ctx context.Context, page *models.PageRequest) ([]models.QcHistoryEntry, error) {
	env, err := call[[]models.QcHistoryEntry](ctx, c, http.MethodGet, APIPathHistory, func(r *resty.Request) {
		r.SetQueryParams(pageQuery(page))
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
