package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sectionflow/pkg/document"
	"github.com/matzehuels/sectionflow/pkg/pipeline"
)

// defaultTableRows caps the --table output.
const defaultTableRows = 40

// layoutFlags holds the layout command flags that do not map directly onto
// pipeline.Options.
type layoutFlags struct {
	output  string
	formats string
	spacing float64
	table   bool
	cache   cacheFlags
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute the layout of a sectioned document",
		Long: `Compute the layout of a sectioned document.

The document is a JSON, TOML or YAML file listing sections and their items.
Without an argument the built-in sample document is laid out.

Outputs are written next to the input unless -o is given:
  json  <input>.layout.json   positioned blocks and content size
  svg   <input>.svg           boxes for every block
  txt   <input>.txt           character grid

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(flags.formats)
			if cmd.Flags().Changed("spacing") {
				opts.Spacing = &flags.spacing
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runLayout(cmd, input, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): json (default), svg, txt (comma-separated)")
	cmd.Flags().BoolVar(&flags.table, "table", false, "print the computed blocks as a table")
	flags.cache.register(cmd)

	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "container width in points")
	cmd.Flags().BoolVar(&opts.RTL, "rtl", false, "lay out right-to-left")
	cmd.Flags().StringVar(&opts.Alignment, "alignment", opts.Alignment, "flow row alignment: leading, center, trailing")
	registerAlignmentCompletion(cmd)
	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "waterfall column count (default: document, then 2)")
	cmd.Flags().Float64Var(&flags.spacing, "spacing", 0, "item and line spacing for every section, overriding the document")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&opts.Labels, "labels", opts.Labels, "draw item labels (svg, txt)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "svg scale factor")
	cmd.Flags().IntVar(&opts.TextColumns, "text-columns", 0, "txt output width in characters")

	return cmd
}

// runLayout executes the pipeline and writes every requested artifact.
func (c *CLI) runLayout(cmd *cobra.Command, input string, opts pipeline.Options, flags layoutFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if input == "" {
		opts.Document = document.Sample()
	} else {
		opts.Path = input
	}
	opts.Logger = logger

	runner, err := c.newRunner(cmd, flags.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(input, flags.output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Laid out %d items", result.Stats.ItemCount))

	printSuccess("Layout complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.SectionCount, result.Stats.ItemCount, result.Stats.BlockCount, result.CacheInfo.LayoutHit)
	printKeyValue("size", fmt.Sprintf("%s × %s", formatNum(result.Layout.Width), formatNum(result.Layout.Height)))
	for _, w := range result.Layout.Warnings {
		printWarning("%s: %s", w.Code, w.Message)
	}
	if flags.table {
		printNewline()
		printBlockTable(result.Layout, defaultTableRows)
	}
	printNewline()
	if input == "" {
		printNextStep("Preview", appName+" preview")
	} else {
		printNextStep("Preview", appName+" preview "+input)
	}

	return nil
}

// outputPaths maps each format to the file it is written to.
//
// A single format with -o writes exactly that file. Several formats with -o
// treat it as a base path and append the format extension. Without -o the
// input path, minus its extension, is the base.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
		if base == "" {
			base = "sample"
		}
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for _, f := range formats {
		switch f {
		case pipeline.FormatJSON:
			paths[f] = base + ".layout.json"
		default:
			paths[f] = base + "." + f
		}
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// loadDocument reads path, or returns the sample document when path is empty.
func loadDocument(ctx context.Context, path string) (*document.Document, error) {
	if path == "" {
		return document.Sample(), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return document.ReadFile(path)
}
