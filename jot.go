package jot

import (
	"context"
	"log/slog"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Store is an opened note store. It embeds *notes.Service.
type Store = platform.Store

// Settings is the resolved configuration of a Store.
type Settings = platform.Settings

// Config is the content of jot.yaml.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// WithAutoInit enables automatic initialization of the store (creates its directory).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage injects a custom storage.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithEventBuffer sets the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithStableNoteIDs keeps a note's ID when it is updated.
func WithStableNoteIDs(stable bool) Option {
	return platform.WithStableNoteIDs(stable)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// Open opens the store rooted at root and loads its state.
func Open(ctx context.Context, root string, opts ...Option) (*Store, error) {
	return platform.Open(ctx, root, opts...)
}

// WriteConfig writes jot.yaml into root unless it already exists.
func WriteConfig(root string, cfg Config) (bool, error) {
	return platform.WriteConfig(root, cfg)
}

// --- Safety & Utils ---

// ResolvePath determines the actual store root based on safety rules.
func ResolvePath(userPath string, forceTemp bool) string {
	return platform.ResolvePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a store root (.jot directory or jot.yaml).
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
