package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// layoutCommand creates the layout command for computing snapshots.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the waterfall layout of the configured board",
		Long: `Compute the waterfall layout of the configured board.

The board (or the explicit [[sections]] of the config file) is packed into
columns: every item goes to the currently shortest column, and each section
restarts all columns below its header. The resulting snapshot, with every
record's frame and the content size, is written as JSON.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cfg, output, noCache, refresh)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")

	return cmd
}

// runLayout computes the snapshot and writes it to output.
func (c *CLI) runLayout(ctx context.Context, cfg config.Config, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipelineOptions(cfg)
	opts.Refresh = refresh
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, c.spinnerOut, "Computing layout")
	spin.Start()
	snap, cacheHit, err := runner.LayoutWithCacheInfo(ctx, cfg.Metrics(), opts)
	if err != nil {
		spin.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	if spin.Cancelled() {
		spin.Stop()
		return ctx.Err()
	}
	prog.done("Computed layout")

	if err := waterfall.WriteSnapshotFile(snap, output); err != nil {
		spin.StopWithError("Write failed")
		return fmt.Errorf("write output %s: %w", output, err)
	}

	size := snap.ContentSize()
	spin.StopWithSuccess("Layout complete")
	printFile(output)
	printKeyValue("content", fmt.Sprintf("%g x %g", size.Width, size.Height))
	printKeyValue("columns", fmt.Sprintf("%d (padding %g)", snap.Params.Columns, snap.Params.Padding))
	printStats(snap.Len(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render -f svg,png")

	return nil
}
