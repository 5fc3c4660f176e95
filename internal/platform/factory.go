package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/adapters/sqlite"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/notes"
)

// DatabaseFile is the name of the SQLite database under SystemDir.
const DatabaseFile = "jot.db"

// Store is an opened note store: the service plus the storage under it.
type Store struct {
	*notes.Service

	Root     string
	Storage  core.Storage
	Settings Settings
}

// Close releases the storage.
func (s *Store) Close() error {
	if c, ok := s.Storage.(core.Closer); ok {
		return c.Close()
	}
	return nil
}

// Open opens the store rooted at root and loads its state.
//
//	store, err := jot.Open(".", jot.WithAdapter("sqlite"))
func Open(ctx context.Context, root string, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := build(root, o)
	if err != nil {
		return nil, err
	}

	if err := store.Storage.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initialize storage: %w", err)
	}

	if err := store.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load store: %w", err)
	}
	return store, nil
}

func build(root string, o *options) (*Store, error) {
	// jot.yaml at the given root may itself ask for read-only access or turn
	// the sandbox off, so it is merged before the root is resolved.
	rootFile, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}
	pre, err := decodeSettings(rootFile, o.config)
	if err != nil {
		return nil, err
	}

	// Bypass safety if read-only (inherently safe) or explicitly disabled.
	bypassSafety := pre.ReadOnly || !pre.DevSafety
	useTemp := pre.TempDir || (IsDevRun() && !bypassSafety)
	resolved := root
	if o.storage == nil {
		resolved = ResolvePath(root, useTemp)
	}

	if IsDevRun() && o.logger != nil && o.storage == nil {
		if bypassSafety {
			o.logger.Debug("bypassing dev sandbox", "path", resolved, "read_only", pre.ReadOnly)
		} else {
			o.logger.Debug("dev sandbox enabled", "original_path", root, "resolved_path", resolved)
		}
	}

	settings := pre
	if resolved != root {
		file, err := LoadConfig(resolved)
		if err != nil {
			return nil, err
		}
		if settings, err = decodeSettings(file, o.config); err != nil {
			return nil, err
		}
	}

	storage := o.storage
	if storage == nil {
		// A missing store is an error unless we may create it.
		mustExist := settings.MustExist || (!settings.AutoInit && !useTemp)
		storage, err = newStorage(resolved, settings, mustExist, o)
		if err != nil {
			return nil, err
		}
	}

	svc := notes.New(storage,
		notes.WithLogger(o.logger),
		notes.WithStableNoteIDs(settings.StableIDs),
	)

	return &Store{
		Service:  svc,
		Root:     resolved,
		Storage:  storage,
		Settings: settings,
	}, nil
}

func newStorage(root string, s Settings, mustExist bool, o *options) (core.Storage, error) {
	dir := filepath.Join(root, SystemDir)

	switch s.Adapter {
	case AdapterMemory:
		return memory.New(), nil

	case AdapterSQLite:
		if err := ensureDir(dir, mustExist || s.ReadOnly); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, DatabaseFile)
		if s.ReadOnly {
			// Never let the driver create the file.
			path = "file:" + path + "?mode=ro"
		}
		return sqlite.New(sqlite.Config{
			Path:     path,
			ReadOnly: s.ReadOnly,
			Logger:   o.logger,
		})

	default:
		return fs.New(fs.Config{
			Path:         dir,
			MustExist:    mustExist,
			ReadOnly:     s.ReadOnly,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
			EventBuffer:  s.EventBuffer,
		}), nil
	}
}

func ensureDir(dir string, mustExist bool) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("storage path is not a directory: %s", dir)
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return err
	case mustExist:
		return fmt.Errorf("storage path does not exist: %s", dir)
	}
	return os.MkdirAll(dir, 0755)
}
