package core

import "context"

// Storage defines the contract for a string keyed store of serialized values.
// It plays the role browser local storage plays for a web application:
// every write replaces the whole value stored under a key.
type Storage interface {
	// Get returns the value stored under key. found is false if the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)

	// Initialize ensures the underlying storage is ready (directories, schema).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by storages that can report changes made by other
// processes, the analogue of the browser "storage" event.
type Watchable interface {
	// Watch emits an Event for every key matching pattern (a doublestar glob)
	// that changes. The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Closer is implemented by storages holding resources (files, connections).
type Closer interface {
	Close() error
}
