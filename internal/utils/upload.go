package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trishulai/trishul-api/internal/models"
)

// UploadField is the multipart form field carrying the uploaded file
const UploadField = "file"

type uploadJSON struct {
	Filename string `json:"filename" binding:"required"`
}

// BindUpload reads the uploaded file from a multipart request, or a JSON body
// of the form {"filename": "..."} for clients that only send the name. The
// file content is never read. On failure a response is written and false is
// returned.
func BindUpload(c *gin.Context, maxSize int64) (models.UploadedFile, bool) {
	if maxSize > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
	}

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var req uploadJSON
		if err := c.ShouldBindJSON(&req); err != nil {
			if isTooLarge(err) {
				PayloadTooLarge(c, maxSize)
				return models.UploadedFile{}, false
			}
			ValidationFailed(c, err)
			return models.UploadedFile{}, false
		}
		return models.UploadedFile{Name: req.Filename}, true
	}

	fh, err := c.FormFile(UploadField)
	if err != nil {
		if isTooLarge(err) {
			PayloadTooLarge(c, maxSize)
			return models.UploadedFile{}, false
		}
		ErrorResponse(c, http.StatusBadRequest, CodeValidation, fmt.Sprintf("field '%s' is required", UploadField))
		return models.UploadedFile{}, false
	}
	if fh.Filename == "" {
		ErrorResponse(c, http.StatusBadRequest, CodeValidation, "uploaded file has no name")
		return models.UploadedFile{}, false
	}

	return models.UploadedFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}, true
}

// PayloadTooLarge returns a 413 response
func PayloadTooLarge(c *gin.Context, limit int64) {
	ErrorResponse(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
		fmt.Sprintf("request body exceeds %d bytes", limit))
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
