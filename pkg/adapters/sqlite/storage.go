// Package sqlite implements core.Storage on a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/jot/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Storage keeps every key as a row of the kv table.
type Storage struct {
	Path     string
	readOnly bool
	logger   *slog.Logger
	db       *sql.DB
}

// Config holds the configuration for the SQLite storage.
type Config struct {
	Path     string // Database file, or ":memory:".
	ReadOnly bool
	Logger   *slog.Logger
}

// New opens the database at config.Path. The schema is created by Initialize.
func New(config Config) (*Storage, error) {
	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	return &Storage{
		Path:     config.Path,
		readOnly: config.ReadOnly,
		logger:   config.Logger,
		db:       db,
	}, nil
}

// Initialize creates the schema.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.readOnly {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if s.logger != nil {
		s.logger.Debug("key written", "key", key, "bytes", len(value))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

var _ core.Storage = (*Storage)(nil)
var _ core.Closer = (*Storage)(nil)
