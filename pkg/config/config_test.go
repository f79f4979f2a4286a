package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := Default()
	if cfg.Layout != want.Layout || cfg.Board != want.Board || cfg.Peer != want.Peer || cfg.Server != want.Server {
		t.Errorf("Parse(\"\") = %+v, want %+v", cfg, want)
	}
	if cfg.Cache != want.Cache || cfg.Cache.Backend != CacheFile {
		t.Errorf("Cache = %+v, want file backend defaults", cfg.Cache)
	}
}

func TestParseCache(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[cache]\nbackend = \"mongo\"\nmongo_uri = \"mongodb://db:27017\"\nmongo_database = \"games\""))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := Cache{Backend: CacheMongo, RedisAddr: DefaultRedisAddr, MongoURI: "mongodb://db:27017", MongoDatabase: "games"}
	if cfg.Cache != want {
		t.Errorf("Cache = %+v, want %+v", cfg.Cache, want)
	}
}

func TestParseOverrides(t *testing.T) {
	const doc = `
[layout]
columns = 3
padding = 0.0
width = 360.0

[board]
cells = 12
header = 40.0

[[sections]]
header = [300.0, 50.0]
heights = [100.0, 0.0, 80.0]

[peer]
name = "alice"
transport = "redis"
redis_addr = "cache:6379"
channel = "room-1"

[server]
addr = "127.0.0.1:9000"
`
	cfg, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Layout.Columns != 3 || cfg.Layout.Width != 360 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Layout.Padding != 0 {
		t.Errorf("explicit zero padding = %v, want 0", cfg.Layout.Padding)
	}
	if cfg.Layout.Height != DefaultHeight {
		t.Errorf("unset height = %v, want default %v", cfg.Layout.Height, DefaultHeight)
	}
	if cfg.Board.Cells != 12 || cfg.Board.Header != 40 {
		t.Errorf("Board = %+v", cfg.Board)
	}
	if cfg.Peer.Transport != TransportRedis || cfg.Peer.RedisAddr != "cache:6379" || cfg.Peer.Channel != "room-1" {
		t.Errorf("Peer = %+v", cfg.Peer)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Sections) != 1 || len(cfg.Sections[0].Heights) != 3 {
		t.Fatalf("Sections = %+v", cfg.Sections)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[layout\ncolumns = 2"},
		{"wrong type", "[layout]\ncolumns = \"two\""},
		{"unknown key", "[layout]\ncolumnz = 2"},
		{"negative columns", "[layout]\ncolumns = -1"},
		{"negative padding", "[layout]\npadding = -1.0"},
		{"negative width", "[layout]\nwidth = -10.0"},
		{"negative cells", "[board]\ncells = -9"},
		{"bad header pair", "[[sections]]\nheader = [1.0]\nheights = []"},
		{"bad transport", "[peer]\ntransport = \"carrier-pigeon\""},
		{"bad redis addr", "[peer]\ntransport = \"redis\"\nredis_addr = \"nohost\""},
		{"bad channel", "[peer]\nchannel = \"room*\""},
		{"bad name", "[peer]\nname = \"a\\nb\""},
		{"bad server addr", "[server]\naddr = \"8080\""},
		{"bad cache backend", "[cache]\nbackend = \"tape\""},
		{"bad cache redis addr", "[cache]\nbackend = \"redis\"\nredis_addr = \"nohost\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if errors.GetCode(err) == "" {
				t.Errorf("Parse() error should be coded: %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[layout]\ncolumns = 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Layout.Columns != 4 {
		t.Errorf("Columns = %d, want 4", cfg.Layout.Columns)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, path, err := LoadDefault()
	if err != nil || path != "" {
		t.Fatalf("LoadDefault() without file = %q, %v", path, err)
	}
	if cfg.Layout != Default().Layout {
		t.Errorf("LoadDefault() = %+v, want defaults", cfg.Layout)
	}

	want := filepath.Join(dir, "tictac", "config.toml")
	if err := os.MkdirAll(filepath.Dir(want), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte("[board]\ncells = 16\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err = LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error: %v", err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if cfg.Board.Cells != 16 {
		t.Errorf("Cells = %d, want 16", cfg.Board.Cells)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Layout.Columns = 5
	cfg.Sections = []Section{{Header: []float64{100, 20}, Heights: []float64{10, 20}}}

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse(Write()) error: %v", err)
	}
	if got.Layout.Columns != 5 || len(got.Sections) != 1 || got.Sections[0].Header[1] != 20 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestMetrics(t *testing.T) {
	cfg := Default()
	cfg.Board.Header = 30

	b, ok := cfg.Metrics().(*board.Board)
	if !ok {
		t.Fatalf("Metrics() without sections = %T, want *board.Board", cfg.Metrics())
	}
	if b.Len() != board.DefaultCells {
		t.Errorf("board cells = %d", b.Len())
	}
	if size, ok := b.HeaderSize(0); !ok || size != (waterfall.Size{Width: DefaultWidth, Height: 30}) {
		t.Errorf("board header = %v, %v", size, ok)
	}

	cfg.Sections = []Section{
		{Footer: []float64{200, 10}, Heights: []float64{50, 0, -1}},
		{Heights: []float64{25}},
	}
	m := cfg.Metrics()
	if m.SectionCount() != 2 || m.ItemCount(0) != 3 {
		t.Fatalf("sections = %d, items = %d", m.SectionCount(), m.ItemCount(0))
	}
	if h, ok := m.ItemHeight(waterfall.Location{Item: 0}, 100); !ok || h != 50 {
		t.Errorf("ItemHeight(0.0) = %v, %v", h, ok)
	}
	for _, item := range []int{1, 2} {
		if _, ok := m.ItemHeight(waterfall.Location{Item: item}, 100); ok {
			t.Errorf("ItemHeight(0.%d) should be unknown", item)
		}
	}
	if _, ok := m.FooterSize(0); !ok {
		t.Error("FooterSize(0) missing")
	}
	if _, ok := m.HeaderSize(1); ok {
		t.Error("HeaderSize(1) should be absent")
	}
}

func TestLayoutOptions(t *testing.T) {
	cfg := Default()
	cfg.Layout.Columns = 3
	cfg.Layout.Padding = 2

	l := waterfall.New(cfg.Metrics(), cfg.LayoutOptions()...)
	p := l.Params()
	if p.Columns != 3 || p.Padding != 2 || p.ContainerWidth != DefaultWidth {
		t.Errorf("Params() = %+v", p)
	}
	if l.Bounds() != cfg.Bounds() {
		t.Errorf("Bounds() = %v, want %v", l.Bounds(), cfg.Bounds())
	}
}
