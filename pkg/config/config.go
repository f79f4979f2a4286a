// Package config loads tictac settings from a TOML file.
//
// Every field has a default, so an empty or missing file yields a working
// configuration. Keys present in the file override the defaults; keys
// absent from it keep them. Command-line flags override both.
//
//	[layout]
//	columns = 3
//	padding = 2.0
//	width   = 360.0
//
//	[peer]
//	transport  = "redis"
//	redis_addr = "localhost:6379"
//
//	[cache]
//	backend   = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// appName names the configuration directory.
const appName = "tictac"

// Defaults for fields left unset.
const (
	DefaultWidth     = 300.0
	DefaultHeight    = 600.0
	DefaultTransport = TransportMemory
	DefaultChannel   = "tictac:moves"
	DefaultRedisAddr = "localhost:6379"
	DefaultAddr      = ":8080"
	DefaultCache     = CacheFile
	DefaultMongoURI  = "mongodb://localhost:27017"
)

// Transport names.
const (
	TransportMemory = "memory"
	TransportRedis  = "redis"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheMongo = "mongo"
	CacheNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Layout   Layout    `toml:"layout" json:"layout"`
	Board    Board     `toml:"board" json:"board"`
	Sections []Section `toml:"sections,omitempty" json:"sections,omitempty"`
	Peer     Peer      `toml:"peer" json:"peer"`
	Server   Server    `toml:"server" json:"server"`
	Cache    Cache     `toml:"cache" json:"cache"`
}

// Layout holds the waterfall parameters and the container bounds.
type Layout struct {
	Columns int     `toml:"columns" json:"columns"`
	Padding float64 `toml:"padding" json:"padding"`
	Width   float64 `toml:"width" json:"width"`
	Height  float64 `toml:"height" json:"height"`
}

// Board describes the game board used when no explicit sections are given.
// Header and Footer are heights; zero means none.
type Board struct {
	Cells  int     `toml:"cells" json:"cells"`
	Header float64 `toml:"header" json:"header"`
	Footer float64 `toml:"footer" json:"footer"`
}

// Section is an explicit layout section. Header and Footer are [width,
// height] pairs. A height that is zero or negative means the item has no
// natural height and is laid out square.
type Section struct {
	Header  []float64 `toml:"header,omitempty" json:"header,omitempty"`
	Footer  []float64 `toml:"footer,omitempty" json:"footer,omitempty"`
	Heights []float64 `toml:"heights" json:"heights"`
}

// Peer configures the move exchange.
type Peer struct {
	Name      string `toml:"name" json:"name"`
	Transport string `toml:"transport" json:"transport"`
	RedisAddr string `toml:"redis_addr" json:"redis_addr"`
	Channel   string `toml:"channel" json:"channel"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr" json:"addr"`
}

// Cache selects where layouts and rendered artifacts are kept between runs.
// The file backend lives under the user cache directory.
type Cache struct {
	Backend       string `toml:"backend" json:"backend"`
	RedisAddr     string `toml:"redis_addr" json:"redis_addr"`
	MongoURI      string `toml:"mongo_uri" json:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database" json:"mongo_database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			Columns: waterfall.DefaultColumns,
			Padding: waterfall.DefaultPadding,
			Width:   DefaultWidth,
			Height:  DefaultHeight,
		},
		Board: Board{Cells: board.DefaultCells},
		Peer: Peer{
			Transport: DefaultTransport,
			RedisAddr: DefaultRedisAddr,
			Channel:   DefaultChannel,
		},
		Server: Server{Addr: DefaultAddr},
		Cache: Cache{
			Backend:   DefaultCache,
			RedisAddr: DefaultRedisAddr,
			MongoURI:  DefaultMongoURI,
		},
	}
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the file at [DefaultPath] if it exists, and the built-in
// defaults otherwise. It returns the path it read, or "" for the defaults.
func LoadDefault() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// DefaultPath returns the configuration file location following the XDG
// convention (~/.config/tictac/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
