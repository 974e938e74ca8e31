// Package cache persists the last successful fetch of each remote
// collection so a fresh launch can paint views before the first round
// trip completes. It is a warm-start buffer, not an offline store:
// cached data is always treated as stale and replaced on the next
// successful load.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned when no snapshot exists for a resource.
var ErrNoSnapshot = errors.New("no snapshot")

// Cache is the SQLite-backed snapshot store.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the snapshot database at dbPath. It applies
// pragmas and runs pending migrations.
func Open(dbPath string) (*Cache, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Cache{db: db}, nil
}

func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores value as the snapshot for resource, replacing any
// previous one.
func (c *Cache) Put(ctx context.Context, resource string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", resource, err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO snapshots (resource, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(resource) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, resource, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store snapshot %s: %w", resource, err)
	}
	return nil
}

// Get decodes the snapshot for resource into out and returns when it
// was fetched. Returns ErrNoSnapshot if none exists.
func (c *Cache) Get(ctx context.Context, resource string, out any) (time.Time, error) {
	var payload []byte
	var fetchedAt string

	err := c.db.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM snapshots WHERE resource = ?",
		resource,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load snapshot %s: %w", resource, err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		// A snapshot that no longer decodes is treated as absent, not
		// fatal; the next successful fetch overwrites it.
		return time.Time{}, ErrNoSnapshot
	}

	ts, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		ts = time.Time{}
	}
	return ts, nil
}

// Purge removes every stored snapshot. Called on logout so the next
// account's session does not see another user's data.
func (c *Cache) Purge(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("purge snapshots: %w", err)
	}
	return nil
}
