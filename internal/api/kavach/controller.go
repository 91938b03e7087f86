// Package kavach exposes the vulnerability scan service over HTTP.
package kavach

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/utils"
)

// Service is the scan service used by the controller
type Service interface {
	CreateScan(ctx context.Context, file models.UploadedFile) (models.Envelope[models.ScanCreated], error)
	ListScans(ctx context.Context) (models.Envelope[[]models.ScanRecord], error)
	GetReport(ctx context.Context, scanID string) (models.Envelope[models.Report], error)
}

// Controller handles scan API requests
type Controller struct {
	service       Service
	logger        *logrus.Logger
	maxUploadSize int64
}

// NewController creates a new scan controller
func NewController(service Service, logger *logrus.Logger, maxUploadSize int64) *Controller {
	return &Controller{
		service:       service,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes registers the scan routes. createMW runs before scan
// creation only.
func (ctrl *Controller) RegisterRoutes(router *gin.RouterGroup, createMW ...gin.HandlerFunc) {
	scans := router.Group("/kavach/scans")

	create := append(append([]gin.HandlerFunc{}, createMW...), ctrl.CreateScan)
	scans.POST("", create...)
	scans.GET("", ctrl.ListScans)
	scans.GET("/:id/report", ctrl.GetReport)
}

// CreateScan godoc
// @Summary Start a scan
// @Description Registers a vulnerability scan for the uploaded target file. The target is the file name without its extension.
// @Tags Kavach
// @Accept multipart/form-data,json
// @Produce json
// @Param file formData file false "Target file"
// @Param request body models.CreateScanRequest false "Target file name, for clients that do not upload"
// @Success 200 {object} models.Envelope[models.ScanCreated] "Scan initiated"
// @Failure 400 {object} utils.Response "No file supplied"
// @Failure 429 {object} utils.Response "Rate limit exceeded"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /kavach/scans [post]
func (ctrl *Controller) CreateScan(c *gin.Context) {
	file, ok := utils.BindUpload(c, ctrl.maxUploadSize)
	if !ok {
		return
	}

	env, err := ctrl.service.CreateScan(c.Request.Context(), file)
	if err != nil {
		ctrl.logger.WithError(err).WithField("file", file.Name).Error("Failed to create scan")
		utils.ServiceFailure(c, err, "Failed to start scan")
		return
	}
	utils.EnvelopeResponse(c, env)
}

// ListScans godoc
// @Summary List scans
// @Description Returns the scan history, newest first. The full history is returned unless limit or skip is given.
// @Tags Kavach
// @Produce json
// @Param limit query int false "Page size" minimum(1) maximum(50)
// @Param skip query int false "Entries to skip" minimum(0) maximum(10000)
// @Success 200 {object} models.Envelope[[]models.ScanRecord] "Scan history"
// @Failure 400 {object} utils.Response "Invalid paging parameters"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /kavach/scans [get]
func (ctrl *Controller) ListScans(c *gin.Context) {
	var page models.PageRequest
	if !utils.BindQuery(c, &page) {
		return
	}

	env, err := ctrl.service.ListScans(c.Request.Context())
	if err != nil {
		ctrl.logger.WithError(err).Error("Failed to list scans")
		utils.ServiceFailure(c, err, "Failed to retrieve scan history")
		return
	}

	if page.Requested() {
		limit, skip := page.Normalize()
		c.Header("X-Limit", strconv.Itoa(limit))
		c.Header("X-Skip", strconv.Itoa(skip))
		env.Data = models.Page(env.Data, page)
	}
	utils.EnvelopeResponse(c, env)
}

// GetReport godoc
// @Summary Download a scan report
// @Description Generates the plain text report for a scan and sends it as an attachment named <id>-report.txt.
// @Tags Kavach
// @Produce plain
// @Param id path string true "Scan ID" example(SCN-001)
// @Success 200 {file} file "Report"
// @Failure 400 {object} utils.Response "Invalid scan ID"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /kavach/scans/{id}/report [get]
func (ctrl *Controller) GetReport(c *gin.Context) {
	scanID := c.Param("id")

	env, err := ctrl.service.GetReport(c.Request.Context(), scanID)
	if err != nil {
		ctrl.logger.WithError(err).WithField("scan_id", scanID).Error("Failed to generate report")
		utils.ServiceFailure(c, err, "Failed to generate report")
		return
	}
	if !env.Success {
		utils.EnvelopeResponse(c, env)
		return
	}

	report := env.Data
	utils.FileResponse(c, report.Content, report.Filename, report.ContentType)
}
