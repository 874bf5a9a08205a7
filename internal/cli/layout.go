package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output     string   // output file path (single format) or base path (multiple)
	filter     string   // label to isolate; empty means full overview
	formats    []string // output formats: "svg", "json"
	showLabels bool     // draw object labels in the SVG
	refresh    bool     // recompute even on a cache hit
	noCache    bool     // disable the cache entirely
}

// layoutCommand creates the layout command for arranging a board's objects.
func (c *CLI) layoutCommand() *cobra.Command {
	var formatsStr string
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [board.json]",
		Short: "Arrange a board's objects into labeled groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runLayout(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "isolate one label; everything else packs into a grid")
	cmd.Flags().StringVar(&formatsStr, "format", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().BoolVar(&opts.showLabels, "labels", false, "draw object labels in the SVG")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable layout caching")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, path string, opts *layoutOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	b, err := board.ReadBoardFile(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, b, pipeline.Options{
		Filter:     opts.filter,
		Settings:   &cfg.Layout,
		Formats:    opts.formats,
		ShowLabels: opts.showLabels,
		Refresh:    opts.refresh,
		Palette:    cfg.NewPalette(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Arranged %d objects into %d groups", result.Stats.ObjectCount, result.Stats.GroupCount))

	// Default artifact base keeps a .layout infix so a json artifact never
	// overwrites the input board file.
	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path)) + ".layout"
	}

	printSuccess("Layout complete")
	printStats(result.Stats.ObjectCount, result.Stats.GroupCount, result.CacheInfo.LayoutHit)

	for _, format := range opts.formats {
		out := outputPath(base, format, len(opts.formats) == 1 && opts.output != "")
		if err := os.WriteFile(out, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}

	return nil
}

// outputPath derives the artifact path for a format. An explicit --output with
// a single format is used verbatim; otherwise the format becomes the extension.
func outputPath(base, format string, explicit bool) string {
	if explicit {
		return base
	}
	return base + "." + format
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
