package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/trishulai/trishul-api/internal/models"
)

// SubmitScanJob queues a scan as a background job
func (c *APIClient) SubmitScanJob(ctx context.Context, filename string, content io.Reader) (*models.JobAccepted, error) {
	env, err := call[models.JobAccepted](ctx, c, http.MethodPost, APIPathScanJobs, uploadRequest(filename, content))
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// SubmitInferenceJob queues defect detection as a background job
func (c *APIClient) SubmitInferenceJob(ctx context.Context, filename string, content io.Reader) (*models.JobAccepted, error) {
	env, err := call[models.JobAccepted](ctx, c, http.MethodPost, APIPathInferenceJobs, uploadRequest(filename, content))
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetJob returns the current state of a job
func (c *APIClient) GetJob(ctx context.Context, id string) (*models.Job, error) {
	env, err := call[models.Job](ctx, c, http.MethodGet, APIPathJobs+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// WaitJob polls the job every interval until it finishes or ctx is done
func (c *APIClient) WaitJob(ctx context.Context, id string, interval time.Duration) (*models.Job, error) {
	if interval <= 0 {
		interval = defaultJobPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-ticker.C:
		}
	}
}
