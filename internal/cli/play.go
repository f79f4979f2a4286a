package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/peer"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	offline bool
	logFile string
}

// playCommand creates the play command for the interactive board.
func (c *CLI) playCommand() *cobra.Command {
	var (
		layout layoutFlags
		peers  peerFlags
		opts   playOpts
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play on the board in the terminal",
		Long: `Play on the board in the terminal.

The board is laid out in waterfall columns and drawn in the terminal. Move
the cursor with the arrow keys and press enter to place the next marker.
Placed moves are published on the configured channel, and moves from other
players on the channel are placed as they arrive.

With the redis transport, players on different machines share a channel.
The memory transport only reaches this process, so it is useful for trying
the board out alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := layout.apply(cmd, &cfg); err != nil {
				return err
			}
			if err := peers.apply(cmd, &cfg); err != nil {
				return err
			}
			if len(cfg.Sections) > 0 {
				return errors.New(errors.ErrCodeUnsupported, "play needs a board; the config file defines explicit sections")
			}
			return c.runPlay(cmd.Context(), cfg, opts)
		},
	}

	layout.register(cmd)
	peers.register(cmd)
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "play without joining a channel")
	cmd.Flags().StringVar(&opts.logFile, "log", "", "write session logs to this file")

	return cmd
}

// runPlay runs the board UI until the user quits.
func (c *CLI) runPlay(ctx context.Context, cfg config.Config, opts playOpts) error {
	// The terminal belongs to the UI, so logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := newLogger(w, c.Logger.GetLevel())

	b := cfg.NewBoard()
	l := waterfall.New(b, append(cfg.LayoutOptions(), waterfall.WithLogger(logger))...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var (
		sess     *peer.Session
		incoming chan peer.Move
	)
	if !opts.offline {
		s, err := openSession(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("join channel %s: %w", cfg.Peer.Channel, err)
		}
		defer s.Close()
		sess = s

		incoming = make(chan peer.Move, 16)
		g.Go(func() error {
			defer close(incoming)
			return sess.Run(gctx, func(ctx context.Context, m peer.Move) {
				select {
				case incoming <- m:
				case <-ctx.Done():
				}
			})
		})
	}

	model := NewBoardModel(ctx, b, l, sess, incoming)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	cancel()
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	if stderrors.Is(err, tea.ErrProgramKilled) {
		return context.Canceled
	}
	return err
}
