package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/utils"
)

// redactedHeaders are never written to the log
var redactedHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"x-api-key":     true,
}

// LoggingMiddleware writes one log line per request
type LoggingMiddleware struct {
	logger     *logrus.Logger
	logHeaders bool
	skipPaths  map[string]bool
}

// LoggingOption configures the logging middleware
type LoggingOption func(*LoggingMiddleware)

// WithHeaderLogging adds request headers to each entry
func WithHeaderLogging(enabled bool) LoggingOption {
	return func(m *LoggingMiddleware) {
		m.logHeaders = enabled
	}
}

// WithSkipPaths disables logging for requests whose path matches exactly,
// unless they fail
func WithSkipPaths(paths ...string) LoggingOption {
	return func(m *LoggingMiddleware) {
		for _, p := range paths {
			m.skipPaths[p] = true
		}
	}
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *logrus.Logger, opts ...LoggingOption) *LoggingMiddleware {
	m := &LoggingMiddleware{
		logger:    logger,
		skipPaths: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Logger returns the gin handler
func (m *LoggingMiddleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		if m.skipPaths[c.Request.URL.Path] && status < 400 {
			return
		}

		fields := logrus.Fields{
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"method":     c.Request.Method,
			"path":       path,
			"route":      c.FullPath(),
			"bytes":      c.Writer.Size(),
			"request_id": utils.GetRequestID(c),
			"user_agent": c.Request.UserAgent(),
		}
		if m.logHeaders {
			fields["request_headers"] = headersForLog(c)
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields["error"] = errs
		}

		entry := m.logger.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request processed")
		}
	}
}

func headersForLog(c *gin.Context) map[string]string {
	headers := make(map[string]string, len(c.Request.Header))
	for k, v := range c.Request.Header {
		if redactedHeaders[strings.ToLower(k)] {
			headers[k] = "[REDACTED]"
			continue
		}
		headers[k] = strings.Join(v, ", ")
	}
	return headers
}
