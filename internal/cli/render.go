package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated output formats
	cells   string  // occupants, one glyph per cell: X, O, or anything else for empty
	scale   float64 // PNG pixel density
	labels  bool    // draw record locations
	noCache bool
	refresh bool
}

// renderCommand creates the render command for drawing the board.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		opts  renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the board layout to SVG, PNG, JSON, or text",
		Long: `Render the board layout to SVG, PNG, JSON, or text.

The layout is computed (or loaded from the cache) and drawn in every
requested format. With a single format, -o names the output file; with
several, -o is a base path and each format gets its own extension.

Marks can be drawn with --cells, one glyph per cell, for example
--cells "X.O.X" places player one on cells 0 and 4 and player two on cell 2.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, formats, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json, txt (comma-separated)")
	cmd.Flags().StringVar(&opts.cells, "cells", "", "cell occupants, e.g. \"X.O\"")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label every record with its location")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached layouts and artifacts")

	return cmd
}

// runRender runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, formats []string, ro renderOpts) error {
	m := cfg.Metrics()
	cells, err := parsePlayers(ro.cells, m.ItemCount(0))
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipelineOptions(cfg)
	opts.Formats = formats
	opts.Scale = ro.scale
	opts.Labels = ro.labels
	opts.Refresh = ro.refresh
	opts.Logger = c.Logger
	if ro.cells != "" {
		opts.Cells = cells
	}

	spin := newSpinner(ctx, c.spinnerOut, "Rendering "+strings.Join(formats, ", "))
	spin.Start()

	result, err := runner.Execute(ctx, m, opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spin.Stop()

	if spin.Cancelled() {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   formats,
		output:    ro.output,
		records:   result.Stats.Records,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}
