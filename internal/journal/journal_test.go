package journal_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ipcbus/internal/journal"
)

func openStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, "cli", "first message")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Fatalf("entry not filled in: %#v", first)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := store.Append(ctx, "cli", "second message"); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "second message" || entries[1].Text != "first message" {
		t.Fatalf("expected newest first, got %q then %q", entries[0].Text, entries[1].Text)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Append(ctx, "cli", "message"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestCount(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	if total, err := store.Count(ctx); err != nil || total != 0 {
		t.Fatalf("Count on empty store: %d, %v", total, err)
	}
	if _, err := store.Append(ctx, "", "hello"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	total, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 entry, got %d", total)
	}
}

func TestAppendRejectsEmptyText(t *testing.T) {
	store := openStore(t)
	if _, err := store.Append(context.Background(), "cli", "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Append(context.Background(), "cli", "persisted"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "persisted" {
		t.Fatalf("unexpected entries after reopen: %#v", entries)
	}
}
