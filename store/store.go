// Package store defines the primitive operation set redimap synthesizes
// partition scans from.
//
// Implementations MUST be value-transparent: Get must return exactly the
// string previously passed to Set for a triple (no metadata, no
// re-encoding). They must be safe for concurrent use; redimap issues
// overlapping calls through one Store and adds no locking of its own.
//
// None of the batched operations is atomic across records. A key returned
// by Keys may be gone by the time Get or MGet reaches it; that shows up as
// an absent slot, never as an error.
package store

import "context"

// Store is a flat remote (or embedded) key-value backend addressed through
// logical (keyspace, storage, key) triples.
type Store interface {
	// Connect establishes the backend connection. It must be called once
	// before any other operation, fails loudly and never retries.
	Connect(ctx context.Context) error

	// Get returns (value, true, nil) on hit and ("", false, nil) on miss.
	// IO/remote errors come back as (_, false, err).
	Get(ctx context.Context, keyspace, storage, key string) (string, bool, error)

	// Set stores an opaque text value under the triple.
	Set(ctx context.Context, keyspace, storage, key, value string) error

	// Del removes the given record keys in one batched call and returns
	// how many of them existed.
	Del(ctx context.Context, keyspace, storage string, keys ...string) (int64, error)

	// Exists reports whether a record is present for the triple.
	Exists(ctx context.Context, keyspace, storage, key string) (bool, error)

	// Keys enumerates the logical record keys of one partition. Order is
	// backend-defined and not stable across calls.
	Keys(ctx context.Context, keyspace, storage string) ([]string, error)

	// MGet fetches many records in one round-trip. The result is
	// positional with the input: a nil slot is an absent record.
	MGet(ctx context.Context, keyspace, storage string, keys []string) ([]*string, error)

	// Shared reports whether state behind this store is visible to other
	// process instances.
	Shared() bool

	// Close releases resources.
	Close(ctx context.Context) error
}
