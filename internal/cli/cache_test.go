package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scorpionlabs/tictac/pkg/cache"
	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/errors"
)

func TestCachePathCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	cmd := c.cachePathCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache path: %v", err)
	}

	want, _ := cacheDir()
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path printed %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"layout:a", "artifact:b"} {
		if err := fc.Set(ctx, key, []byte(`{}`), time.Hour); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	c := New(io.Discard, log.InfoLevel)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, ok, _ := fc.Get(ctx, "layout:a"); ok {
		t.Error("entry survived cache clear")
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*", "*.json"))
	if len(matches) != 0 {
		t.Errorf("%d entry files left after clear", len(matches))
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "absent"))

	c := New(io.Discard, log.InfoLevel)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear on a missing dir: %v", err)
	}
	dir, _ := cacheDir()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache clear created %s", dir)
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.Cache
		noCache bool
		check   func(cache.Cache) bool
	}{
		{"file", config.Cache{Backend: config.CacheFile}, false, func(c cache.Cache) bool { _, ok := c.(*cache.FileCache); return ok }},
		{"none", config.Cache{Backend: config.CacheNone}, false, func(c cache.Cache) bool { _, ok := c.(cache.NullCache); return ok }},
		{"no-cache flag wins", config.Cache{Backend: config.CacheRedis}, true, func(c cache.Cache) bool { _, ok := c.(cache.NullCache); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(ctx, tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("newCache returned %T", c)
			}
		})
	}
}

func TestNewCacheRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := newCache(ctx, config.Cache{Backend: config.CacheRedis, RedisAddr: "127.0.0.1:1"}, false)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("newCache error = %v, want INTERNAL_ERROR", err)
	}
}
