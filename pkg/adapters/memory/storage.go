// Package memory provides a volatile core.Storage, useful for tests and
// throwaway sessions.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/jot/pkg/core"
)

// Storage keeps values in a map. It implements core.Watchable: every write
// is reported to watchers, standing in for changes made by another process.
type Storage struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[chan core.Event]string
}

// New creates an empty memory storage.
func New() *Storage {
	return &Storage{
		data:     make(map[string][]byte),
		watchers: make(map[chan core.Event]string),
	}
}

func (s *Storage) Initialize(ctx context.Context) error { return nil }

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	_, existed := s.data[key]
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()

	t := core.EventCreate
	if existed {
		t = core.EventModify
	}
	s.broadcast(core.Event{Type: t, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()

	if existed {
		s.broadcast(core.Event{Type: core.EventDelete, Key: key, Timestamp: time.Now().Unix()})
	}
	return nil
}

func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Watch implements core.Watchable. Events are dropped for watchers that do
// not keep up.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, core.ErrInvalidInput
	}

	ch := make(chan core.Event, 16)
	s.mu.Lock()
	s.watchers[ch] = pattern
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

func (s *Storage) broadcast(e core.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch, pattern := range s.watchers {
		if ok, _ := doublestar.Match(pattern, e.Key); !ok {
			continue
		}
		select {
		case ch <- e:
		default:
		}
	}
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
