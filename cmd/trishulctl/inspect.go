package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/utils"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect",
		Aliases: []string{"trinetra"},
		Short:   "Trinetra visual defect inspection",
	}
	cmd.AddCommand(newInspectInferCmd(opts), newInspectDecideCmd(opts), newInspectHistoryCmd(opts))
	return cmd
}

func newInspectInferCmd(opts *rootOptions) *cobra.Command {
	var upload uploadFlags
	cmd := &cobra.Command{
		Use:   "infer FILE",
		Short: "Run defect detection on an image",
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
				accepted, err := c.SubmitInferenceJob(ctx, name, content)
				if err != nil {
					return err
				}
				return followJob(cmd, opts, c, accepted, upload.wait)
			}

			result, err := c.InferImage(ctx, name, content)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, result, func(t *table) {
				t.row("DEFECTS", "CONFIDENCE", "TIME")
				t.row(result.DefectsFound, fmt.Sprintf("%.1f%%", result.Confidence), result.ProcessingTime)
				if len(result.BoundingBoxes) > 0 {
					t.row("")
					t.row("ID", "LABEL", "X", "Y", "WIDTH", "HEIGHT", "CONFIDENCE")
					for _, b := range result.BoundingBoxes {
						t.row(b.ID, b.Label, b.X, b.Y, b.Width, b.Height, fmt.Sprintf("%.1f%%", b.Confidence))
					}
				}
			})
		},
	}
	upload.bind(cmd)
	return cmd
}

func newInspectDecideCmd(opts *rootOptions) *cobra.Command {
	var defects int
	cmd := &cobra.Command{
		Use:   "decide FILENAME pass|fail",
		Short: "Record a QC decision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.SaveDecisionRequest{
				Filename: args[0],
				Decision: models.QCDecision(args[1]),
				Defects:  &defects,
			}
			if err := utils.ValidateStruct(req); err != nil {
				return fmt.Errorf("invalid decision: %s", utils.FormatValidationError(err))
			}

			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			entry, err := c.SaveDecision(ctx, req.Filename, req.Decision, defects)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, entry, func(t *table) {
				t.row("ID", "FILENAME", "DECISION", "DEFECTS", "TIMESTAMP")
				t.row(entry.ID, entry.Filename, entry.Decision, entry.Defects, entry.Timestamp)
			})
		},
	}
	cmd.Flags().IntVar(&defects, "defects", 0, "Number of defects found")
	return cmd
}

func newInspectHistoryCmd(opts *rootOptions) *cobra.Command {
	var page pageFlags
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List QC history, newest first",
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

			history, err := c.GetQCHistory(ctx, req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, history, func(t *table) {
				t.row("ID", "FILENAME", "DECISION", "DEFECTS", "TIMESTAMP")
				for _, e := range history {
					t.row(e.ID, e.Filename, e.Decision, e.Defects, e.Timestamp)
				}
			})
		},
	}
	page.bind(cmd)
	return cmd
}
