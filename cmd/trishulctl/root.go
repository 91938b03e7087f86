package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/pkg/client"
)

// Version is set during build
var Version = "dev"

// Output formats
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	server  string
	output  string
	timeout time.Duration
	debug   bool
}

func (o *rootOptions) validate() error {
	switch o.output {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or yaml)", o.output)
	}
}

func (o *rootOptions) client() (*client.APIClient, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if o.debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return client.NewClient(
		client.WithBaseURL(o.server),
		client.WithTimeout(o.timeout),
		client.WithUserAgent("trishulctl/"+Version),
		client.WithLogger(logger, o.debug),
	)
}

// context bounds a whole command, including job polling
func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

// NewRootCmd creates the trishulctl command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "trishulctl",
		Short:         "Command line client for the Trishul AI API",
		Version:       Version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("TRISHUL_SERVER", "http://localhost:8000"), "Trishul API server URL")
	flags.StringVarP(&opts.output, "output", "o", OutputTable, "Output format: table, json or yaml")
	flags.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Overall timeout for the command")
	flags.BoolVar(&opts.debug, "debug", false, "Log HTTP requests and responses")

	cmd.AddCommand(
		newHealthCmd(opts),
		newScanCmd(opts),
		newForecastCmd(opts),
		newInspectCmd(opts),
		newJobCmd(opts),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			health, err := c.Health(ctx)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, health, func(t *table) {
				t.row("STATUS", "VERSION", "STORAGE", "UPTIME")
				t.row(health.Status, health.Version, health.Storage, health.Uptime)
			})
		},
	}
}

// pageFlags binds --limit and --skip. Unset flags are left out of the request.
type pageFlags struct {
	limit int
	skip  int
}

func (p *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.limit, "limit", 0, "Maximum number of entries to return")
	cmd.Flags().IntVar(&p.skip, "skip", 0, "Number of entries to skip")
}

func (p *pageFlags) request(cmd *cobra.Command) (*models.PageRequest, error) {
	var page models.PageRequest
	if cmd.Flags().Changed("limit") {
		if p.limit < 1 {
			return nil, fmt.Errorf("--limit must be at least 1")
		}
		page.Limit = &p.limit
	}
	if cmd.Flags().Changed("skip") {
		if p.skip < 0 {
			return nil, fmt.Errorf("--skip must not be negative")
		}
		page.Skip = &p.skip
	}
	if page.Limit == nil && page.Skip == nil {
		return nil, nil
	}
	return &page, nil
}
