// Package client is a Go client for the Trishul API.
package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/models"
)

// API paths
const (
	APIBasePath          = "/api/v1"
	APIPathHealth        = "/health"
	APIPathScans         = "/kavach/scans"
	APIPathForecast      = "/rudra/forecast"
	APIPathAlerts        = "/rudra/alerts"
	APIPathBudgetAlert   = "/rudra/budget-alert"
	APIPathConfigCheck   = "/rudra/config-check"
	APIPathInference     = "/trinetra/inference"
	APIPathDecisions     = "/trinetra/decisions"
	APIPathHistory       = "/trinetra/history"
	APIPathJobs          = "/jobs"
	APIPathScanJobs      = "/jobs/kavach/scan"
	APIPathInferenceJobs = "/jobs/trinetra/inference"
)

const (
	defaultServerURL       = "http://localhost:8000"
	defaultUserAgent       = "trishul-client/1.0"
	defaultJobPollInterval = 500 * time.Millisecond
	maxRetryWaitMultiplier = 8
)

// Common errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
	ErrRateLimited  = errors.New("rate limited")
	ErrServerError  = errors.New("server error")
	ErrUnavailable  = errors.New("service unavailable")
	ErrUnsuccessful = errors.New("request unsuccessful")
)

// APIError is returned when the server answers with success=false
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

// Unwrap maps the status code to one of the common errors
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode == http.StatusServiceUnavailable:
		return ErrUnavailable
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrServerError
	case e.StatusCode >= http.StatusBadRequest:
		return ErrBadRequest
	default:
		return ErrUnsuccessful
	}
}

// --- Client Configuration ---

// ClientOption represents a functional option for configuring the client
type ClientOption func(*ClientConfig) error

// ClientConfig represents the configuration for the client
type ClientConfig struct {
	BaseURL               string
	Timeout               time.Duration
	MaxRetries            int
	RetryDelay            time.Duration
	UserAgent             string
	HTTPClient            *http.Client
	Headers               map[string]string
	TLSInsecureSkipVerify bool
	Logger                *logrus.Logger
	Debug                 bool
}

// DefaultClientConfig returns the default client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:    defaultServerURL,
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelay: 500 * time.Millisecond,
		UserAgent:  defaultUserAgent,
		Headers:    make(map[string]string),
	}
}

// WithBaseURL sets the server URL, e.g. http://localhost:8000
func WithBaseURL(baseURL string) ClientOption {
	return func(config *ClientConfig) error {
		if baseURL == "" {
			return fmt.Errorf("base URL cannot be empty")
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base URL: scheme must be http or https")
		}
		config.BaseURL = baseURL
		return nil
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(config *ClientConfig) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		config.Timeout = timeout
		return nil
	}
}

// WithRetryOptions sets the retry options. Only connection failures and 503
// responses are retried.
func WithRetryOptions(maxRetries int, retryDelay time.Duration) ClientOption {
	return func(config *ClientConfig) error {
		if maxRetries < 0 {
			return fmt.Errorf("max retries must be non-negative")
		}
		if retryDelay < 0 {
			return fmt.Errorf("retry delay must be non-negative")
		}
		config.MaxRetries = maxRetries
		config.RetryDelay = retryDelay
		return nil
	}
}

// WithUserAgent sets the user agent
func WithUserAgent(userAgent string) ClientOption {
	return func(config *ClientConfig) error {
		if userAgent == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		config.UserAgent = userAgent
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(config *ClientConfig) error {
		if client == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		config.HTTPClient = client
		return nil
	}
}

// WithHeader adds an HTTP header to every request
func WithHeader(key, value string) ClientOption {
	return func(config *ClientConfig) error {
		if key == "" {
			return fmt.Errorf("header key cannot be empty")
		}
		if config.Headers == nil {
			config.Headers = make(map[string]string)
		}
		config.Headers[key] = value
		return nil
	}
}

// WithTLSInsecureSkipVerify sets the TLS insecure skip verify option
func WithTLSInsecureSkipVerify(skip bool) ClientOption {
	return func(config *ClientConfig) error {
		config.TLSInsecureSkipVerify = skip
		return nil
	}
}

// WithLogger routes client logs through logger. debug also logs every
// request and response.
func WithLogger(logger *logrus.Logger, debug bool) ClientOption {
	return func(config *ClientConfig) error {
		config.Logger = logger
		config.Debug = debug
		return nil
	}
}

// APIClient is the Trishul API client
type APIClient struct {
	config ClientConfig
	http   *resty.Client
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*APIClient, error) {
	config := DefaultClientConfig()

	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, fmt.Errorf("option application failed: %w", err)
		}
	}

	var rc *resty.Client
	if config.HTTPClient != nil {
		rc = resty.NewWithClient(config.HTTPClient)
	} else {
		rc = resty.New().SetTimeout(config.Timeout)
	}
	if config.TLSInsecureSkipVerify {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	if config.Logger != nil {
		rc.SetLogger(config.Logger)
	}

	rc.
		SetHostURL(config.BaseURL+APIBasePath).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeaders(config.Headers).
		SetDebug(config.Debug).
		SetRetryCount(config.MaxRetries).
		SetRetryWaitTime(config.RetryDelay).
		SetRetryMaxWaitTime(config.RetryDelay * maxRetryWaitMultiplier).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
			}
			return r.StatusCode() == http.StatusServiceUnavailable
		})

	return &APIClient{config: config, http: rc}, nil
}

// BaseURL returns the server URL the client talks to
func (c *APIClient) BaseURL() string {
	return c.config.BaseURL
}

// envelope is the JSON body of every API response
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Meta    struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

// call sends the request built by prepare and decodes the envelope. It fails
// on transport errors, non-2xx responses and success=false bodies.
func call[T any](ctx context.Context, c *APIClient, method, path string, prepare func(r *resty.Request)) (envelope[T], error) {
	var result envelope[T]
	var failure envelope[any]

	req := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&failure)
	if prepare != nil {
		prepare(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return result, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		return result, newAPIError(resp, failure)
	}
	if !result.Success {
		return result, &APIError{
			StatusCode: resp.StatusCode(),
			Code:       result.Code,
			Message:    result.Error,
			RequestID:  result.Meta.RequestID,
		}
	}
	return result, nil
}

func newAPIError(resp *resty.Response, body envelope[any]) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Code:       body.Code,
		Message:    body.Error,
		RequestID:  body.Meta.RequestID,
	}
	if apiErr.RequestID == "" {
		apiErr.RequestID = resp.Header().Get("X-Request-ID")
	}
	if secs, err := strconv.Atoi(resp.Header().Get("Retry-After")); err == nil {
		apiErr.RetryAfter = time.Duration(secs) * time.Second
	}
	return apiErr
}

func pageQuery(page *models.PageRequest) map[string]string {
	params := map[string]string{}
	if page == nil {
		return params
	}
	if page.Limit != nil {
		params["limit"] = strconv.Itoa(*page.Limit)
	}
	if page.Skip != nil {
		params["skip"] = strconv.Itoa(*page.Skip)
	}
	return params
}

// Health returns the server health
func (c *APIClient) Health(ctx context.Context) (*models.HealthResponse, error) {
	env, err := call[models.HealthResponse](ctx, c, http.MethodGet, APIPathHealth, nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}
