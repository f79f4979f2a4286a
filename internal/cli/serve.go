package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/scorpionlabs/tictac/pkg/api"
	"github.com/scorpionlabs/tictac/pkg/config"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		layout  layoutFlags
		peers   peerFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board layout and moves over HTTP",
		Long: `Serve the board layout and moves over HTTP.

The server keeps one live layout of the configured board. Clients read the
content size and the records visible in a rectangle, change the bounds or
column parameters, place moves, and render the board in any output format.
Moves placed through the API are published on the configured channel, and
moves received from peers are applied to the served board.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := layout.apply(cmd, &cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := peers.apply(cmd, &cfg); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	layout.register(cmd)
	peers.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe runs the API and the peer session until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	sess, err := openSession(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("join channel %s: %w", cfg.Peer.Channel, err)
	}
	defer sess.Close()

	srv := api.New(cfg,
		api.WithRunner(runner),
		api.WithSession(sess),
		api.WithLogger(logger),
	)

	printSuccess("Serving %s", StyleLink.Render(serverURL(cfg.Server.Addr)))
	printKeyValue("player", cfg.Peer.Name)
	printKeyValue("channel", cfg.Peer.Channel+" ("+cfg.Peer.Transport+")")
	if cfg.Peer.Transport == config.TransportMemory {
		printWarning("memory transport: moves reach this process only")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	})
	g.Go(func() error {
		return sess.Run(ctx, srv.ApplyRemote)
	})
	return g.Wait()
}

// serverURL turns a listen address into a URL for display.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
