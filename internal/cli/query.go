package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// queryCommand creates the query command for viewport lookups.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		flags layoutFlags
		rect  waterfall.Rect
		input string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List the records visible in a rectangle",
		Long: `List the records visible in a rectangle.

A record is visible when its frame strictly overlaps the query rectangle:
frames that only touch an edge, and empty rectangles, never match. Without
--w and --h the query covers the whole content.

The layout is computed from the config, or read from a snapshot written by
'layout' when --input is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := c.querySnapshot(cmd, &flags, input)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("w") {
				rect.Width = snap.ContentWidth - rect.X
			}
			if !cmd.Flags().Changed("h") {
				rect.Height = snap.ContentHeight - rect.Y
			}

			records := snap.Query(rect)
			c.Logger.Debug("query", "rect", rect, "records", len(records), "generation", snap.Generation)
			printRecords(cmd.OutOrStdout(), records)
			printDetail("%d of %d records in %v", len(records), snap.Len(), rect)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "snapshot file written by 'layout'")
	cmd.Flags().Float64Var(&rect.X, "x", 0, "query origin x")
	cmd.Flags().Float64Var(&rect.Y, "y", 0, "query origin y")
	cmd.Flags().Float64Var(&rect.Width, "w", 0, "query width (default: to the content edge)")
	cmd.Flags().Float64Var(&rect.Height, "h", 0, "query height (default: to the content edge)")

	return cmd
}

func (c *CLI) querySnapshot(cmd *cobra.Command, flags *layoutFlags, input string) (*waterfall.Snapshot, error) {
	if input != "" {
		snap, err := waterfall.ReadSnapshotFile(input)
		if err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", input, err)
		}
		return snap, nil
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := flags.apply(cmd, &cfg); err != nil {
		return nil, err
	}
	l := waterfall.New(cfg.Metrics(), append(cfg.LayoutOptions(), waterfall.WithLogger(c.Logger))...)
	return l.Snapshot(), nil
}

// printRecords prints records as a table.
func printRecords(w io.Writer, records []waterfall.Record) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		natural := ""
		if r.Kind == waterfall.KindCell {
			natural = fmt.Sprintf("%g", r.CustomHeight)
		}
		rows = append(rows, []string{
			r.Kind.String(),
			r.Location.String(),
			fmt.Sprintf("%g", r.Frame.X),
			fmt.Sprintf("%g", r.Frame.Y),
			fmt.Sprintf("%g", r.Frame.Width),
			fmt.Sprintf("%g", r.Frame.Height),
			natural,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Loc", "X", "Y", "W", "H", "Natural").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 && rows[row][0] != waterfall.KindCell.String() {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}
