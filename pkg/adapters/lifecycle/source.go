// Package lifecycle exposes storage change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
)

type storageSource struct {
	storage core.Watchable
	pattern string
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting the core.Event of every key
// of storage matching pattern. Watching begins on Start.
func NewSource(storage core.Watchable, pattern string) lifecycle.Source {
	return &storageSource{
		storage: storage,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *storageSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storageSource) Start(ctx context.Context) error {
	events, err := s.storage.Watch(ctx, s.pattern)
	if err != nil {
		close(s.out)
		return fmt.Errorf("start storage source: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
