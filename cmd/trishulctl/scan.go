package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/pkg/client"
)

// uploadFlags selects how a file is sent and whether to run it as a job
type uploadFlags struct {
	nameOnly bool
	async    bool
	wait     bool
}

func (u *uploadFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&u.nameOnly, "name-only", false, "Send only the file name, not its content")
	cmd.Flags().BoolVar(&u.async, "async", false, "Submit as a background job")
	cmd.Flags().BoolVar(&u.wait, "wait", false, "With --async, wait for the job to finish")
}

// openUpload returns the file name to send and, unless nameOnly, its content.
// The returned close func is never nil.
func openUpload(path string, nameOnly bool) (string, io.Reader, func(), error) {
	name := filepath.Base(path)
	if nameOnly {
		return name, nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return name, f, func() { f.Close() }, nil
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Kavach vulnerability scans",
	}
	cmd.AddCommand(newScanCreateCmd(opts), newScanListCmd(opts), newScanReportCmd(opts))
	return cmd
}

func newScanCreateCmd(opts *rootOptions) *cobra.Command {
	var upload uploadFlags
	cmd := &cobra.Command{
		Use:   "create FILE",
		Short: "Start a scan of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			name, content, closeFile, err := openUpload(args[0], upload.nameOnly)
			if err != nil {
				return err
			}
			defer closeFile()

			if upload.async {
				accepted, err := c.SubmitScanJob(ctx, name, content)
				if err != nil {
					return err
				}
				return followJob(cmd, opts, c, accepted, upload.wait)
			}

			created, err := c.CreateScan(ctx, name, content)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, created, func(t *table) {
				t.row("SCAN ID")
				t.row(created.ScanID)
			})
		},
	}
	upload.bind(cmd)
	return cmd
}

func newScanListCmd(opts *rootOptions) *cobra.Command {
	var page pageFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scan history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := page.request(cmd)
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			scans, err := c.ListScans(ctx, req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, scans, func(t *table) {
				t.row("SCAN ID", "TARGET", "STATUS", "FINISHED", "VULNERABILITIES")
				for _, s := range scans {
					t.row(s.ScanID, s.Target, s.Status, s.FinishedAt, s.Vulnerabilities)
				}
			})
		},
	}
	page.bind(cmd)
	return cmd
}

func newScanReportCmd(opts *rootOptions) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "report SCAN_ID",
		Short: "Download the report of a scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			report, err := c.GetReport(ctx, args[0])
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(report.Content)
				return err
			}
			if outFile == "." {
				outFile = report.Filename
			}
			if err := os.WriteFile(outFile, report.Content, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved report to %s\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write the report to this file, or to its server file name with \".\"")
	return cmd
}

// followJob prints an accepted job, or waits for it and prints the result
func followJob(cmd *cobra.Command, opts *rootOptions, c *client.APIClient, accepted *models.JobAccepted, wait bool) error {
	if !wait {
		return render(cmd.OutOrStdout(), opts.output, accepted, func(t *table) {
			t.row("JOB ID", "STATUS")
			t.row(accepted.JobID, accepted.Status)
		})
	}

	ctx, cancel := opts.context(cmd)
	defer cancel()
	job, err := c.WaitJob(ctx, accepted.JobID, 500*time.Millisecond)
	if err != nil {
		return err
	}
	return renderJob(cmd, opts, job)
}
