package sync

import (
	"context"
	"log/slog"
)

// Loader fetches a resource collection and reconciles it into its
// Collection. On failure the previous items stay in place and the
// error is recorded, not raised past the caller's alert boundary.
type Loader[T any] struct {
	name       string
	collection *Collection[T]
	fetch      func(ctx context.Context) ([]T, error)
}

// NewLoader creates a loader for the named resource.
func NewLoader[T any](name string, collection *Collection[T], fetch func(ctx context.Context) ([]T, error)) *Loader[T] {
	return &Loader[T]{
		name:       name,
		collection: collection,
		fetch:      fetch,
	}
}

// Collection returns the backing collection.
func (l *Loader[T]) Collection() *Collection[T] {
	return l.collection
}

// Load fetches the collection and replaces local state with the
// result. Concurrent calls collapse: if a load is already in flight
// this returns immediately. The loading flag clears on every path.
func (l *Loader[T]) Load(ctx context.Context) error {
	if !l.collection.beginLoad() {
		return nil
	}
	defer l.collection.endLoad()

	items, err := l.fetch(ctx)
	if err != nil {
		l.collection.setError(err)
		slog.Error("load failed",
			"resource", l.name,
			"error", err,
		)
		return err
	}

	l.collection.Replace(items)
	slog.Debug("load complete",
		"resource", l.name,
		"items", len(items),
	)
	return nil
}
