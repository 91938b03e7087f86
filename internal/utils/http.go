package utils

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/models"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// StatusClientClosedRequest is recorded when the client disconnects before
// the response is ready. Nothing is written to the connection.
const StatusClientClosedRequest = 499

// Error codes carried in error responses
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeRequestTimeout     = "REQUEST_TIMEOUT"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// Response is the JSON body of responses written by the HTTP layer itself.
// Its success, data, message and error fields line up with models.Envelope
// so clients can decode either with the same type.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains request metadata
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

func newMeta(c *gin.Context) *Meta {
	return &Meta{
		Timestamp: time.Now().UTC(),
		RequestID: GetRequestID(c),
	}
}

// ErrorResponse writes a standardized error response and aborts the chain
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	logEntry := logrus.WithFields(logrus.Fields{
		"status_code": statusCode,
		"error_code":  code,
		"message":     message,
		"client_ip":   c.ClientIP(),
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"request_id":  GetRequestID(c),
	})

	// Client errors are not server faults
	if statusCode >= http.StatusInternalServerError {
		logEntry.Error("API error response")
	} else {
		logEntry.Debug("API client error response")
	}

	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Error:   message,
		Code:    code,
		Meta:    newMeta(c),
	})
}

// SuccessResponse writes data with a 200 status
func SuccessResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Message: message,
		Meta:    newMeta(c),
	})
}

// AcceptedResponse writes data with a 202 status
func AcceptedResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusAccepted, Response{
		Success: true,
		Data:    data,
		Message: message,
		Meta:    newMeta(c),
	})
}

type envelopeBody[T any] struct {
	models.Envelope[T]
	Meta *Meta `json:"meta"`
}

// EnvelopeResponse writes a service envelope with request metadata. Failed
// envelopes are sent with a 422 status.
func EnvelopeResponse[T any](c *gin.Context, env models.Envelope[T]) {
	status := http.StatusOK
	if !env.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, envelopeBody[T]{Envelope: env, Meta: newMeta(c)})
}

// ServiceFailure maps an error returned by a service call to a response
func ServiceFailure(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(StatusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		ErrorResponse(c, http.StatusGatewayTimeout, CodeRequestTimeout, "Request timed out")
	default:
		InternalServerError(c, message)
	}
}

// SafeFilename replaces every character outside [a-zA-Z0-9_.-] with an
// underscore so the name is safe in a Content-Disposition header
func SafeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	if strings.Trim(safe, ".") == "" {
		return "download"
	}
	return safe
}

// FileResponse sends data as a file attachment
func FileResponse(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", SafeFilename(filename)))
	c.Data(http.StatusOK, contentType, data)
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, CodeBadRequest, message)
}

// ValidationFailed returns a 400 response describing the binding error
func ValidationFailed(c *gin.Context, err error) {
	ErrorResponse(c, http.StatusBadRequest, CodeValidation, FormatValidationError(err))
}

// NotFound returns a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "The requested resource was not found"
	}
	ErrorResponse(c, http.StatusNotFound, CodeNotFound, message)
}

// TooManyRequests returns a 429 response with a Retry-After header in whole
// seconds
func TooManyRequests(c *gin.Context, message string, retryAfter time.Duration) {
	if message == "" {
		message = "Too many requests, please try again later"
	}
	if retryAfter > 0 {
		seconds := int(math.Ceil(retryAfter.Seconds()))
		c.Header("Retry-After", strconv.Itoa(seconds))
	}
	ErrorResponse(c, http.StatusTooManyRequests, CodeRateLimited, message)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An internal server error occurred"
	}
	ErrorResponse(c, http.StatusInternalServerError, CodeInternal, message)
}

// ServiceUnavailable returns a 503 Service Unavailable response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "The service is currently unavailable"
	}
	ErrorResponse(c, http.StatusServiceUnavailable, CodeServiceUnavailable, message)
}

// BindJSON binds the request body to obj, writing a 400 on failure
func BindJSON(c *gin.Context, obj interface{}) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 1<<20)

	if err := c.ShouldBindJSON(obj); err != nil {
		ValidationFailed(c, err)
		return false
	}
	return true
}

// BindQuery binds the query parameters to obj, writing a 400 on failure
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		ValidationFailed(c, err)
		return false
	}
	return true
}

// GetRequestID returns the request id set by the request id middleware
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// GetClientIP returns the client IP used for rate limiting
func GetClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return c.Request.RemoteAddr
}
