package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sectionflow/internal/server"
)

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   cacheFlags
		addr    string
		maxBody int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  GET  /healthz     liveness probe
  GET  /version     build information
  POST /v1/layout   layout JSON (and optional artifacts) for an inline document
  POST /v1/render   a single rendered artifact (?format=svg|txt|json)

Use --cache-url redis://host:6379/0 to share cached results between
instances, and --cache-scope to keep separate deployments on that backend
apart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd, flags)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, loggerFromContext(cmd.Context()), server.Config{
				Addr:           addr,
				MaxBody:        maxBody,
				RequestTimeout: timeout,
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", 0, "request body limit in bytes (default 4 MiB)")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")
	flags.register(cmd)

	return cmd
}
