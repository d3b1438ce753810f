package storage

import (
	"context"
	"errors"
)

// ErrNoChange can be returned by a Mutate function to abort the write while
// still reporting success to the caller.
var ErrNoChange = errors.New("storage: no change")

// Store persists one JSON document per logical table, addressed by a string
// key. Get reports whether the key exists; a missing key is not an error.
// Implementations must be safe for concurrent use, but callers are expected
// to be a single client: read-modify-write cycles are not serialized and
// the last writer wins on the whole document.
type Store interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Load reads the list stored under key. A missing key yields an empty list.
func Load[T any](ctx context.Context, s Store, key string) ([]T, error) {
	var items []T
	if _, err := s.Get(ctx, key, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Mutate reads the whole list under key, applies fn, and writes the result
// back. A non-nil error from fn aborts without writing; ErrNoChange aborts
// silently. This is the pseudo-transaction every mutating operation goes
// through.
func Mutate[T any](ctx context.Context, s Store, key string, fn func(items []T) ([]T, error)) error {
	items, err := Load[T](ctx, s, key)
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	return s.Set(ctx, key, updated)
}
