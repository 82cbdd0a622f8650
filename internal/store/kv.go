package store

import "context"

// KVStore is a string key-value store. Implementations must be safe for
// concurrent use.
type KVStore interface {
	// Get returns the value stored at key, or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// SetMany stores every entry. Backends apply the writes atomically
	// where they can.
	SetMany(ctx context.Context, entries map[string]string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every key starting with prefix and its value.
	List(ctx context.Context, prefix string) (map[string]string, error)
}
