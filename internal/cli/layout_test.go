package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

func TestRunLayout(t *testing.T) {
	out := filepath.Join(t.TempDir(), "layout.json")
	cfg := config.Default()
	cfg.Layout.Columns = 3
	cfg.Layout.Width = 300
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	c.spinnerOut = io.Discard
	if err := c.runLayout(context.Background(), cfg, out, true, false); err != nil {
		t.Fatalf("runLayout: %v", err)
	}

	snap, err := waterfall.ReadSnapshotFile(out)
	if err != nil {
		t.Fatalf("ReadSnapshotFile: %v", err)
	}
	if snap.Len() != board.DefaultCells {
		t.Errorf("Len() = %d, want %d", snap.Len(), board.DefaultCells)
	}
	if snap.Params.Columns != 3 {
		t.Errorf("Columns = %d, want 3", snap.Params.Columns)
	}
}

func TestRunLayoutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	c := New(io.Discard, log.InfoLevel)
	c.spinnerOut = io.Discard
	err := c.runLayout(ctx, cfg, filepath.Join(t.TempDir(), "layout.json"), true, false)
	if err == nil {
		t.Fatal("runLayout with a cancelled context should fail")
	}
}
