package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/utils"
)

func newForecastCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "forecast",
		Aliases: []string{"rudra"},
		Short:   "Rudra cloud cost forecasting",
	}
	cmd.AddCommand(
		newForecastGetCmd(opts),
		newForecastAlertsCmd(opts),
		newForecastBudgetCmd(opts),
		newForecastCheckCmd(opts),
	)
	return cmd
}

func newForecastGetCmd(opts *rootOptions) *cobra.Command {
	var months int
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the cost forecast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if months != 6 && months != 12 {
				return fmt.Errorf("--months must be 6 or 12")
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			points, err := c.GetForecast(ctx, months)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, points, func(t *table) {
				t.row("MONTH", "ACTUAL", "FORECAST")
				for _, p := range points {
					t.row(p.Month, formatActual(p.Actual), fmt.Sprintf("%.2f", p.Forecast))
				}
			})
		},
	}
	cmd.Flags().IntVar(&months, "months", 6, "Forecast horizon in months (6 or 12)")
	return cmd
}

func newForecastAlertsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List cost alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			alerts, err := c.GetAlerts(ctx)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, alerts, func(t *table) {
				t.row("ID", "TYPE", "SEVERITY", "MESSAGE")
				for _, a := range alerts {
					t.row(a.ID, a.Type, a.Severity, a.Message)
				}
			})
		},
	}
}

func newForecastBudgetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "budget THRESHOLD",
		Short: "Set the budget alert threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid threshold %q: %w", args[0], err)
			}
			if err := utils.ValidateStruct(models.BudgetAlertRequest{Threshold: &threshold}); err != nil {
				return fmt.Errorf("invalid threshold: %s", utils.FormatValidationError(err))
			}

			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			msg, err := c.UpdateBudgetAlert(ctx, threshold)
			if err != nil {
				return err
			}
			result := map[string]string{"message": msg}
			return render(cmd.OutOrStdout(), opts.output, result, func(t *table) {
				t.row(msg)
			})
		},
	}
}

func newForecastCheckCmd(opts *rootOptions) *cobra.Command {
	var enforceMFA, publicS3 bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a cloud account configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg models.CloudConfig
			if cmd.Flags().Changed("enforce-mfa") {
				cfg.EnforceMFA = &enforceMFA
			}
			if cmd.Flags().Changed("public-s3") {
				cfg.PublicS3 = &publicS3
			}

			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			result, err := c.CheckConfig(ctx, cfg)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, result, func(t *table) {
				t.row("STATUS", result.Status)
				for _, issue := range result.Issues {
					t.row("ISSUE", issue)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&enforceMFA, "enforce-mfa", true, "Whether MFA is enforced")
	cmd.Flags().BoolVar(&publicS3, "public-s3", false, "Whether an S3 bucket is public")
	return cmd
}
