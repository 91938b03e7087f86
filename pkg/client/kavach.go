package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/trishulai/trishul-api/internal/models"
)

// Report is a downloaded scan report
type Report struct {
	Filename    string
	ContentType string
	Content     []byte
}

// uploadRequest sends content as the multipart file field, or only the file
// name as JSON when content is nil
func uploadRequest(filename string, content io.Reader) func(r *resty.Request) {
	return func(r *resty.Request) {
		if content != nil {
			r.SetFileReader("file", filename, content)
			return
		}
		r.SetBody(map[string]string{"filename": filename})
	}
}

// CreateScan starts a scan of the given target file. content may be nil, in
// which case only the file name is sent.
func (c *APIClient) CreateScan(ctx context.Context, filename string, content io.Reader) (*models.ScanCreated, error) {
	env, err := call[models.ScanCreated](ctx, c, http.MethodPost, APIPathScans, uploadRequest(filename, content))
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListScans returns the scan history, newest first. A nil page returns the
// full history.
func (c *APIClient) ListScans(ctx context.Context, page *models.PageRequest) ([]models.ScanRecord, error) {
	env, err := call[[]models.ScanRecord](ctx, c, http.MethodGet, APIPathScans, func(r *resty.Request) {
		r.SetQueryParams(pageQuery(page))
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetReport downloads the text report of a scan
func (c *APIClient) GetReport(ctx context.Context, scanID string) (*Report, error) {
	path := fmt.Sprintf("%s/%s/report", APIPathScans, url.PathEscape(scanID))

	var failure envelope[any]
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		SetError(&failure).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp, failure)
	}

	report := &Report{
		Filename:    scanID + "-report.txt",
		ContentType: resp.Header().Get("Content-Type"),
		Content:     resp.Body(),
	}
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		report.Filename = params["filename"]
	}
	return report, nil
}
