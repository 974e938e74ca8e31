package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGetRoundtrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	goals := []deck.Goal{
		{ID: "g1", Title: "Ship release", Priority: deck.PriorityHigh, Progress: 40},
	}
	if err := c.Put(ctx, "goals", goals); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	var got []deck.Goal
	fetchedAt, err := c.Get(ctx, "goals", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetchedAt.IsZero() {
		t.Error("expected non-zero fetched_at")
	}
	if len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("unexpected snapshot: %v", got)
	}
}

func TestGetMissingResource(t *testing.T) {
	c := openTestCache(t)

	var got []deck.Goal
	_, err := c.Get(context.Background(), "goals", &got)
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestPutReplacesSnapshot(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "goals", []deck.Goal{{ID: "old"}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Put(ctx, "goals", []deck.Goal{{ID: "new"}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	var got []deck.Goal
	if _, err := c.Get(ctx, "goals", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("expected replacement to win, got %v", got)
	}
}

func TestPurgeRemovesAllSnapshots(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "goals", []deck.Goal{{ID: "g1"}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Put(ctx, "teams", []deck.Team{{ID: "t1"}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if err := c.Purge(ctx); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}

	var goals []deck.Goal
	if _, err := c.Get(ctx, "goals", &goals); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected goals purged, got %v", err)
	}
	var teams []deck.Team
	if _, err := c.Get(ctx, "teams", &teams); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected teams purged, got %v", err)
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c.Close()
}
