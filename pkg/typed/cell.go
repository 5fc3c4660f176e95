// Package typed binds Go values to keys of a core.Storage.
package typed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Cell is a typed, observable value persisted under a single storage key.
//
// The in-memory value is authoritative for reads. Every write serializes the
// whole value to JSON and overwrites the stored representation.
type Cell[T any] struct {
	storage core.Storage
	key     string
	def     T
	logger  *slog.Logger

	mu     sync.RWMutex
	value  T
	raw    []byte // serialized form of value as last read or written
	loaded bool

	subMu   sync.Mutex
	subs    map[int]func(T)
	nextSub int

	deliverMu  sync.Mutex
	delivering bool
	pending    bool
}

// CellOption configures a Cell.
type CellOption func(*cellOptions)

type cellOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for debug traces of reads and writes.
func WithLogger(logger *slog.Logger) CellOption {
	return func(o *cellOptions) {
		o.logger = logger
	}
}

// NewCell creates a cell bound to key. def is the value used, and persisted,
// when nothing is stored under key yet.
func NewCell[T any](storage core.Storage, key string, def T, opts ...CellOption) *Cell[T] {
	o := &cellOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return &Cell[T]{
		storage: storage,
		key:     key,
		def:     def,
		value:   def,
		logger:  o.logger,
		subs:    make(map[int]func(T)),
	}
}

// Key returns the storage key of the cell.
func (c *Cell[T]) Key() string {
	return c.key
}

// Load reads the stored value. If the key is absent the default value is
// written immediately. A stored value that cannot be decoded yields an error
// wrapping core.ErrCorrupt.
func (c *Cell[T]) Load(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

func (c *Cell[T]) loadLocked(ctx context.Context) (T, error) {
	data, found, err := c.storage.Get(ctx, c.key)
	if err != nil {
		return c.value, fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	if !found {
		err := c.writeLocked(ctx, c.def)
		switch {
		case errors.Is(err, core.ErrReadOnly):
			// Read-only stores keep the default in memory only.
			c.value, c.raw = c.def, nil
		case err != nil:
			return c.value, err
		}
		c.debug("initialized with default")
		c.loaded = true
		return c.value, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return c.value, fmt.Errorf("%w: key %s: %v", core.ErrCorrupt, c.key, err)
	}
	c.value = v
	c.raw = data
	c.loaded = true
	c.debug("loaded", "bytes", len(data))
	return v, nil
}

// Reload re-reads the stored value and notifies subscribers if it changed.
// It is used when the storage reports a change made by another process.
func (c *Cell[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	prev := c.raw
	_, err := c.loadLocked(ctx)
	changed := !bytes.Equal(prev, c.raw)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if changed {
		c.notify()
	}
	return nil
}

// Get returns the current in-memory value.
// Callers must treat the result as read-only.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Loaded reports whether the cell has been synchronized with its storage.
func (c *Cell[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Set replaces the value.
func (c *Cell[T]) Set(ctx context.Context, v T) error {
	return c.Update(ctx, func(T) T { return v })
}

// Update replaces the value with fn applied to the previous one.
// Concurrent updates are serialized; fn must not modify prev in place.
// The value only changes if the write to storage succeeds.
func (c *Cell[T]) Update(ctx context.Context, fn func(prev T) T) error {
	_, err := c.Mutate(ctx, func(prev T) (T, bool) { return fn(prev), true })
	return err
}

// Mutate is Update for transformations that may leave the value untouched.
// When fn reports no change nothing is written and subscribers are not called.
func (c *Cell[T]) Mutate(ctx context.Context, fn func(prev T) (next T, changed bool)) (bool, error) {
	c.mu.Lock()
	next, changed := fn(c.value)
	if !changed {
		c.mu.Unlock()
		return false, nil
	}
	if err := c.writeLocked(ctx, next); err != nil {
		c.mu.Unlock()
		return false, err
	}
	c.mu.Unlock()

	c.notify()
	return true, nil
}

func (c *Cell[T]) writeLocked(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	if err := c.storage.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	c.value = v
	c.raw = data
	c.debug("written", "bytes", len(data))
	return nil
}

// Subscribe registers fn to be called with the new value after every change.
// fn runs outside the cell's lock, and calls never overlap. Changes made while
// subscribers are running are coalesced into one more call carrying the latest
// value, so the last value fn receives is always the current one. fn may
// change the cell itself. The returned function removes the subscription.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

// notify delivers the current value to subscribers. Only one goroutine
// delivers at a time; a change made meanwhile marks the delivery pending and
// the delivering goroutine runs another round with the newer value.
func (c *Cell[T]) notify() {
	c.deliverMu.Lock()
	if c.delivering {
		c.pending = true
		c.deliverMu.Unlock()
		return
	}
	c.delivering = true
	for {
		c.pending = false
		c.deliverMu.Unlock()

		c.fanOut(c.Get())

		c.deliverMu.Lock()
		if !c.pending {
			c.delivering = false
			c.deliverMu.Unlock()
			return
		}
	}
}

func (c *Cell[T]) fanOut(v T) {
	defer func() {
		// Reset before propagating a subscriber panic.
		if r := recover(); r != nil {
			c.deliverMu.Lock()
			c.delivering, c.pending = false, false
			c.deliverMu.Unlock()
			panic(r)
		}
	}()

	c.subMu.Lock()
	fns := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (c *Cell[T]) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, append([]any{"key", c.key}, args...)...)
	}
}
