// Package cli implements the sectionflow command-line interface.
//
// # Commands
//
//   - layout: compute a layout for a document and write JSON, SVG or text
//   - preview: interactive terminal preview that re-lays out on resize
//   - serve: run the HTTP API
//   - cache: inspect and clear the local result cache
//   - completion: shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sectionflow/pkg/buildinfo"
	"github.com/matzehuels/sectionflow/pkg/cache"
	"github.com/matzehuels/sectionflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sectionflow"

	// envCacheURL selects the cache backend when --cache-url is not given.
	envCacheURL = "SECTIONFLOW_CACHE_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sectionflow lays out sectioned collections of items",
		Long:         `Sectionflow computes frames for sectioned item collections in flow (wrapping rows) and waterfall (shortest column) modes, with section headers and footers, RTL mirroring and row alignment.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are the cache flags shared by layout and serve.
type cacheFlags struct {
	noCache bool
	url     string
	scope   string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.url, "cache-url", "", "cache backend: file:///dir, redis://host:6379/0 or none (default: local file cache, $"+envCacheURL+")")
	cmd.Flags().StringVar(&f.scope, "cache-scope", "", "prefix for cache keys, to keep deployments sharing one backend apart")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cmd *cobra.Command, flags cacheFlags) (*pipeline.Runner, error) {
	cc, err := c.newCache(cmd, flags)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, newKeyer(flags.scope), c.Logger), nil
}

// newKeyer returns nil (the runner's default keyer) unless a scope is set.
func newKeyer(scope string) cache.Keyer {
	if scope == "" {
		return nil
	}
	if !strings.HasSuffix(scope, ":") {
		scope += ":"
	}
	return cache.NewScopedKeyer(nil, scope)
}

func (c *CLI) newCache(cmd *cobra.Command, flags cacheFlags) (cache.Cache, error) {
	if flags.noCache {
		return cache.NewNullCache(), nil
	}
	url := flags.url
	if url == "" {
		url = os.Getenv(envCacheURL)
	}
	dir, err := cacheDir()
	if err != nil && url == "" {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.Open(cmd.Context(), url, dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sectionflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies CLI-specific defaults on top of pipeline defaults.
func setCLIDefaults(opts *pipeline.Options) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Labels = true
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
