package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/trishulai/trishul-api/internal/models"
)

// GetForecast returns the cost forecast for a 6 or 12 month horizon. Zero uses
// the server default.
func (c *APIClient) GetForecast(ctx context.Context, months int) ([]models.ForecastPoint, error) {
	env, err := call[[]models.ForecastPoint](ctx, c, http.MethodGet, APIPathForecast, func(r *resty.Request) {
		if months != 0 {
			r.SetQueryParam("months", strconv.Itoa(months))
		}
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetAlerts returns the current cost alerts
func (c *APIClient) GetAlerts(ctx context.Context) ([]models.AlertMessage, error) {
	env, err := call[[]models.AlertMessage](ctx, c, http.MethodGet, APIPathAlerts, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UpdateBudgetAlert sets the budget alert threshold and returns the server
// confirmation message
func (c *APIClient) UpdateBudgetAlert(ctx context.Context, threshold float64) (string, error) {
	env, err := call[any](ctx, c, http.MethodPut, APIPathBudgetAlert, func(r *resty.Request) {
		r.SetBody(models.BudgetAlertRequest{Threshold: &threshold})
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// CheckConfig checks a cloud account configuration for posture issues
func (c *APIClient) CheckConfig(ctx context.Context, cfg models.CloudConfig) (*models.ConfigCheckResult, error) {
	env, err := call[models.ConfigCheckResult](ctx, c, http.MethodPost, APIPathConfigCheck, func(r *resty.Request) {
		r.SetBody(cfg)
	})
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}
