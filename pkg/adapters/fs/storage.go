// Package fs implements core.Storage on the local filesystem.
//
// Each key is stored in its own JSON file, {Path}/{key}.json, written
// atomically. Changes made by other processes are observed with fsnotify.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// FileExt is the extension of key files.
const FileExt = ".json"

// Storage implements core.Storage using one file per key.
type Storage struct {
	Path   string
	config Config
	cache  *cache

	mu        sync.RWMutex
	watchers  int
	lastEvent *time.Time
}

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error) // Called on watcher errors; defaults to logging.
	EventBuffer  int         // Size of the Watch channel buffer. Zero means 100.
	Debounce     time.Duration
}

// New creates a new filesystem-backed storage.
func New(config Config) *Storage {
	if config.EventBuffer <= 0 {
		config.EventBuffer = 100
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Storage{
		Path:   config.Path,
		config: config,
		cache:  newCache(),
	}
}

// Initialize creates the storage directory unless it must already exist.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("storage path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

// Get reads the file of key. Unchanged files are served from the cache.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		s.cache.Delete(key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if entry, hit := s.cache.Get(key, info.ModTime(), info.Size()); hit {
		return append([]byte(nil), entry.Data...), true, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	s.cache.Set(key, &cacheEntry{
		Data:         append([]byte(nil), data...),
		Size:         info.Size(),
		LastModified: info.ModTime(),
	})
	return data, true, nil
}

// Set writes the file of key atomically.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.cache.Delete(key)
	if err := replaceFile(path, value, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	s.debug("key written", "key", key, "bytes", len(value))
	return nil
}

// Delete removes the file of key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.cache.Delete(key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	s.debug("key deleted", "key", key)
	return nil
}

// Keys lists the keys that have a file in the storage directory.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyFromFile(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Storage) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: key %q", core.ErrInvalidInput, key)
	}
	return filepath.Join(s.Path, key+FileExt), nil
}

// keyFromFile maps a file name back to its key, skipping temp files.
func keyFromFile(name string) (string, bool) {
	if strings.HasPrefix(name, TempFilePrefix) || filepath.Ext(name) != FileExt {
		return "", false
	}
	key := strings.TrimSuffix(name, FileExt)
	if key == "" {
		return "", false
	}
	return key, true
}

func (s *Storage) debug(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, args...)
	}
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
