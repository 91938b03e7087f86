package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/trishulai/trishul-api/internal/models"
)

func newJobCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Background jobs",
	}
	cmd.AddCommand(newJobGetCmd(opts))
	return cmd
}

func newJobGetCmd(opts *rootOptions) *cobra.Command {
	var wait bool
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "get JOB_ID",
		Short: "Show a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var job *models.Job
			if wait {
				job, err = c.WaitJob(ctx, args[0], interval)
			} else {
				job, err = c.GetJob(ctx, args[0])
			}
			if err != nil {
				return err
			}
			return renderJob(cmd, opts, job)
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for the job to finish")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "Polling interval with --wait")
	return cmd
}

func renderJob(cmd *cobra.Command, opts *rootOptions, job *models.Job) error {
	return render(cmd.OutOrStdout(), opts.output, job, func(t *table) {
		t.row("JOB ID", "KIND", "STATUS", "ATTEMPTS", "ERROR")
		errMsg := job.Error
		if errMsg == "" {
			errMsg = "-"
		}
		t.row(job.ID, job.Kind, job.Status, job.Attempts, errMsg)
	})
}
