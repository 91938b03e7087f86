// Package rudra exposes the cost forecast service over HTTP.
package rudra

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/utils"
)

// DefaultMonths is the horizon used when the months parameter is absent
const DefaultMonths = 6

// Service is the forecast service used by the controller
type Service interface {
	GetForecast(ctx context.Context, months int) (models.Envelope[[]models.ForecastPoint], error)
	GetAlerts(ctx context.Context) (models.Envelope[[]models.AlertMessage], error)
	UpdateBudgetAlert(ctx context.Context, threshold float64) (models.Envelope[models.Empty], error)
	CheckConfig(ctx context.Context, cfg models.CloudConfig) (models.Envelope[models.ConfigCheckResult], error)
}

// Controller handles forecast API requests
type Controller struct {
	service Service
	logger  *logrus.Logger
}

// NewController creates a new forecast controller
func NewController(service Service, logger *logrus.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the forecast routes
func (ctrl *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rudra := router.Group("/rudra")

	rudra.GET("/forecast", ctrl.GetForecast)
	rudra.GET("/alerts", ctrl.GetAlerts)
	rudra.PUT("/budget-alert", ctrl.UpdateBudgetAlert)
	rudra.POST("/config-check", ctrl.CheckConfig)
}

// GetForecast godoc
// @Summary Get the cost forecast
// @Description Returns monthly actual and forecast spend. Six months covers Jul 2025 to Dec 2025; twelve extends the series to Jun 2026.
// @Tags Rudra
// @Produce json
// @Param months query int false "Forecast horizon" Enums(6, 12) default(6)
// @Success 200 {object} models.Envelope[[]models.ForecastPoint] "Forecast series"
// @Failure 400 {object} utils.Response "Unsupported horizon"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /rudra/forecast [get]
func (ctrl *Controller) GetForecast(c *gin.Context) {
	var req models.ForecastRequest
	if !utils.BindQuery(c, &req) {
		return
	}
	if req.Months == 0 {
		req.Months = DefaultMonths
	}

	env, err := ctrl.service.GetForecast(c.Request.Context(), req.Months)
	if err != nil {
		ctrl.logger.WithError(err).WithField("months", req.Months).Error("Failed to generate forecast")
		utils.ServiceFailure(c, err, "Failed to generate forecast")
		return
	}
	utils.EnvelopeResponse(c, env)
}

// GetAlerts godoc
// @Summary Get cost alerts
// @Description Returns the current cost alerts.
// @Tags Rudra
// @Produce json
// @Success 200 {object} models.Envelope[[]models.AlertMessage] "Alerts"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /rudra/alerts [get]
func (ctrl *Controller) GetAlerts(c *gin.Context) {
	env, err := ctrl.service.GetAlerts(c.Request.Context())
	if err != nil {
		ctrl.logger.WithError(err).Error("Failed to load alerts")
		utils.ServiceFailure(c, err, "Failed to load alerts")
		return
	}
	utils.EnvelopeResponse(c, env)
}

// UpdateBudgetAlert godoc
// @Summary Update the budget alert threshold
// @Description Acknowledges a new budget alert threshold. The threshold is not persisted.
// @Tags Rudra
// @Accept json
// @Produce json
// @Param request body models.BudgetAlertRequest true "Threshold in dollars"
// @Success 200 {object} models.Envelope[models.Empty] "Threshold acknowledged"
// @Failure 400 {object} utils.Response "Invalid threshold"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /rudra/budget-alert [put]
func (ctrl *Controller) UpdateBudgetAlert(c *gin.Context) {
	var req models.BudgetAlertRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	env, err := ctrl.service.UpdateBudgetAlert(c.Request.Context(), *req.Threshold)
	if err != nil {
		ctrl.logger.WithError(err).Error("Failed to update budget alert")
		utils.ServiceFailure(c, err, "Failed to update budget alert")
		return
	}
	utils.EnvelopeResponse(c, env)
}

// CheckConfig godoc
// @Summary Check a cloud configuration
// @Description Reports posture issues in a cloud account configuration. enforce_mfa defaults to true and public_s3 to false; an empty body checks the defaults.
// @Tags Rudra
// @Accept json
// @Produce json
// @Param request body models.CloudConfig false "Configuration flags"
// @Success 200 {object} models.Envelope[models.ConfigCheckResult] "Check result"
// @Failure 400 {object} utils.Response "Invalid body"
// @Failure 500 {object} utils.Response "Internal server error"
// @Router /rudra/config-check [post]
func (ctrl *Controller) CheckConfig(c *gin.Context) {
	var cfg models.CloudConfig
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 1<<20)
		if err := c.ShouldBindJSON(&cfg); err != nil && !errors.Is(err, io.EOF) {
			utils.ValidationFailed(c, err)
			return
		}
	}

	env, err := ctrl.service.CheckConfig(c.Request.Context(), cfg)
	if err != nil {
		ctrl.logger.WithError(err).Error("Failed to check configuration")
		utils.ServiceFailure(c, err, "Failed to check configuration")
		return
	}
	utils.EnvelopeResponse(c, env)
}
