// Package trinetra exposes the defect inspection service over HTTP.
package trinetra

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/utils"
)

// Service is the inspection service used by the controller
type Service interface {
	InferImage(ctx context.Context, file models.UploadedFile) (models.Envelope[models.DetectionResult], error)
	SaveDecision(ctx context.Context, filename string, decision models.QCDecision, defects int) (models.Envelope[models.QcHistoryEntry], error)
	GetQCHistory(ctx context.Context) (models.Envelope[[]models.QcHistoryEntry], error)
}

// Controller handles inspection API requests
type Controller struct {
	service       Service
	logger        *logrus.Logger
	maxUploadSize int64
}

// NewController creates a new inspection controller
func NewController(service Service, logger *logrus.Logger, maxUploadSize int64) *Controller {
	return &Controller{
		service:       service,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes registers the inspection routes
func (ctrl *Controller) RegisterRoutes(router *gin.RouterGroup) {
	trinetra := router.Group("/trinetra")

	trinetra.POST("/inference", ctrl.InferImage)
	trinetra.POST("/decisions", ctrl.SaveDecision)
	trinetra.GET("/history", ctrl.GetQCHistory)
}

// InferImage godoc
// @Summary Run defect detection
// @Description Runs simulated defect detection on an uploaded product image and returns up to three bounding boxes.
// @Tags Trinetra
// @Accept multipart/form-data,json
// @Produce json
// @Param file formData file false "Product image"
// @Param request body models.InferRequest false "Image file name, for clients that do not upload"
// @Success 200 {object} models.Envelope[models.DetectionResult] "Detection result"
// @Failure 400 {object} utils.Response "No file supplied"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /trinetra/inference [post]
func (ctrl *Controller) InferImage(c *gin.Context) {
	file, ok := utils.BindUpload(c, ctrl.maxUploadSize)
	if !ok {
		return
	}

	env, err := ctrl.service.InferImage(c.Request.Context(), file)
	if err != nil {
		ctrl.logger.WithError(err).WithField("file", file.Name).Error("Failed to run inference")
		utils.ServiceFailure(c, err, "Failed to analyze image")
		return
	}
	utils.EnvelopeResponse(c, env)
}

// SaveDecision godoc
// @Summary Save a QC decision
// @Description Records an operator pass or fail verdict at the front of the QC history.
// @Tags Trinetra
// @Accept json
// @Produce json
// @Param request body models.SaveDecisionRequest true "Decision"
// @Success 200 {object} models.Envelope[models.QcHistoryEntry] "Saved entry"
// @Failure 400 {object} utils.Response "Invalid decision"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /trinetra/decisions [post]
func (ctrl *Controller) SaveDecision(c *gin.Context) {
	var req models.SaveDecisionRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	env, err := ctrl.service.SaveDecision(c.Request.Context(), req.Filename, req.Decision, *req.Defects)
	if err != nil {
		ctrl.logger.WithError(err).WithFields(logrus.Fields{
			"filename": req.Filename,
			"decision": req.Decision,
		}).Error("Failed to save QC decision")
		utils.ServiceFailure(c, err, "Failed to save decision")
		return
	}
	utils.EnvelopeResponse(c, env)
}

// GetQCHistory godoc
// @Summary List QC decisions
// @Description Returns the QC history, newest first. The full history is returned unless limit or skip is given.
// @Tags Trinetra
// @Produce json
// @Param limit query int false "Page size" minimum(1) maximum(50)
// @Param skip query int false "Entries to skip" minimum(0) maximum(10000)
// @Success 200 {object} models.Envelope[[]models.QcHistoryEntry] "QC history"
// @Failure 400 {object} utils.Response "Invalid paging parameters"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /trinetra/history [get]
func (ctrl *Controller) GetQCHistory(c *gin.Context) {
	var page models.PageRequest
	if !utils.BindQuery(c, &page) {
		return
	}

	env, err := ctrl.service.GetQCHistory(c.Request.Context())
	if err != nil {
		ctrl.logger.WithError(err).Error("Failed to list QC history")
		utils.ServiceFailure(c, err, "Failed to retrieve QC history")
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
