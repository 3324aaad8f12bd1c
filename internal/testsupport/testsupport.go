// Package testsupport provides helpers shared by tests: short-lived socket
// paths and preconfigured configs rooted in per-test temp directories.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"ipcbus/internal/config"
	"ipcbus/internal/journal"
)

// SocketPath returns a unique socket path in a directory short enough to
// stay under the sun_path limit. t.TempDir can exceed it on systems with
// deep temp roots, so a dedicated temp dir is used instead.
func SocketPath(t testing.TB) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "ipc")
	if err != nil {
		t.Fatalf("create socket dir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})
	return filepath.Join(dir, "s.sock")
}

// NewConfig produces a config rooted in per-test temp directories.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Socket = SocketPath(t)
	cfg.Logging.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// MustOpenJournal opens the journal store for cfg and closes it with the
// test.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
