package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/buildinfo"
	"github.com/scorpionlabs/tictac/pkg/cache"
	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/pipeline"
	"github.com/scorpionlabs/tictac/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tictac"
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

	// configPath is the --config flag. Empty means the default location,
	// which may be absent.
	configPath string

	// spinnerOut receives progress animation; nil means stderr.
	spinnerOut io.Writer
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
		Short:        "tictac lays out a game board as a waterfall of columns",
		Long:         `tictac computes multi-column waterfall layouts for a game board, renders them, serves them over HTTP, and plays moves with peers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/tictac/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the --config file, or the default file when it exists,
// or falls back to built-in defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return config.Config{}, err
		}
		c.Logger.Debug("loaded config", "path", c.configPath)
		return cfg, nil
	}

	cfg, path, err := config.LoadDefault()
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// layoutFlags are the layout overrides shared by several commands.
type layoutFlags struct {
	columns int
	padding float64
	width   float64
	height  float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.columns, "columns", 0, "column count (default from config)")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "cell padding (default from config)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "container width (default from config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "container height (default from config)")
}

// apply overrides cfg with the flags the user set.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("columns") {
		cfg.Layout.Columns = f.columns
	}
	if cmd.Flags().Changed("padding") {
		cfg.Layout.Padding = f.padding
	}
	if cmd.Flags().Changed("width") {
		cfg.Layout.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Layout.Height = f.height
	}
	return cfg.ValidateAndSetDefaults()
}

// pipelineOptions converts the layout section of cfg.
func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Columns: cfg.Layout.Columns,
		Padding: cfg.Layout.Padding,
		Width:   cfg.Layout.Width,
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped by
// build version.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache opens the configured cache backend.
func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr})
	case config.CacheMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tictac/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parsePlayers parses a cell string such as "X.O" into occupants: X is
// player one, O is player two, anything else is empty.
func parsePlayers(s string, n int) ([]board.Player, error) {
	if len([]rune(s)) > n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cells: %d marks for a board of %d cells", len([]rune(s)), n)
	}
	cells := make([]board.Player, n)
	for i, r := range []rune(s) {
		switch r {
		case 'X', 'x':
			cells[i] = board.One
		case 'O', 'o':
			cells[i] = board.Two
		}
	}
	return cells, nil
}
