// Package rudra implements the mock cloud cost forecasting service.
package rudra

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trishulai/trishul-api/internal/latency"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/store"
)

// Simulated durations
const (
	ForecastDelay    = 600 * time.Millisecond
	AlertsDelay      = 300 * time.Millisecond
	BudgetDelay      = 400 * time.Millisecond
	ConfigCheckDelay = 300 * time.Millisecond
)

// DefaultHorizon is the forecast horizon used when none is requested
const DefaultHorizon = 6

// Config check issue texts
const (
	IssueMFANotEnforced = "MFA not enforced"
	IssueS3Public       = "S3 buckets public"
)

// Service is the Rudra forecast service
type Service struct {
	sleeper latency.Sleeper
	logger  *logrus.Logger
}

// NewService creates a forecast service
func NewService(sleeper latency.Sleeper, logger *logrus.Logger) *Service {
	if sleeper == nil {
		sleeper = latency.NewReal(1)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		sleeper: sleeper,
		logger:  logger,
	}
}

// GetForecast returns the cost series for the horizon. Six months yields the
// base series; any other value yields the twelve-month series.
func (s *Service) GetForecast(ctx context.Context, months int) (models.Envelope[[]models.ForecastPoint], error) {
	if err := s.sleeper.Sleep(ctx, ForecastDelay); err != nil {
		return models.Envelope[[]models.ForecastPoint]{}, err
	}

	points := store.ForecastBase()
	if months != 6 {
		points = store.ForecastExtended()
	}
	return models.Ok(points, fmt.Sprintf("%d-month forecast generated successfully", months)), nil
}

// GetAlerts returns the current cost alerts
func (s *Service) GetAlerts(ctx context.Context) (models.Envelope[[]models.AlertMessage], error) {
	if err := s.sleeper.Sleep(ctx, AlertsDelay); err != nil {
		return models.Envelope[[]models.AlertMessage]{}, err
	}
	return models.Ok(store.Alerts(), ""), nil
}

// UpdateBudgetAlert acknowledges a new budget alert threshold. The value is
// not stored and has no effect on alerts.
func (s *Service) UpdateBudgetAlert(ctx context.Context, threshold float64) (models.Envelope[models.Empty], error) {
	if err := s.sleeper.Sleep(ctx, BudgetDelay); err != nil {
		return models.Envelope[models.Empty]{}, err
	}

	s.logger.WithField("threshold", threshold).Info("Budget alert threshold update requested")
	msg := "Budget alert threshold updated to $" + strconv.FormatFloat(threshold, 'f', -1, 64)
	return models.Ok[models.Empty](nil, msg), nil
}

// CheckConfig reports posture issues in a cloud account configuration
func (s *Service) CheckConfig(ctx context.Context, cfg models.CloudConfig) (models.Envelope[models.ConfigCheckResult], error) {
	if err := s.sleeper.Sleep(ctx, ConfigCheckDelay); err != nil {
		return models.Envelope[models.ConfigCheckResult]{}, err
	}

	issues := []string{}
	if !cfg.MFAEnforced() {
		issues = append(issues, IssueMFANotEnforced)
	}
	if cfg.S3Public() {
		issues = append(issues, IssueS3Public)
	}

	status := models.ConfigStatusOK
	if len(issues) > 0 {
		status = models.ConfigStatusIssues
	}
	return models.Ok(models.ConfigCheckResult{Status: status, Issues: issues}, ""), nil
}
