package notes

import (
	"context"
	"fmt"

	"github.com/aretw0/jot/pkg/core"
)

// Watch keeps the service in sync with changes other processes make to the
// storage, until ctx is done. It returns core.ErrNotWatchable if the storage
// cannot report changes.
func (s *Service) Watch(ctx context.Context) error {
	w, ok := s.storage.(core.Watchable)
	if !ok {
		return core.ErrNotWatchable
	}

	events, err := w.Watch(ctx, "*")
	if err != nil {
		return fmt.Errorf("watch storage: %w", err)
	}

	for e := range events {
		if err := s.apply(ctx, e); err != nil {
			// A corrupt external write must not take the process down; the
			// in-memory state stays as it was.
			if s.logger != nil {
				s.logger.Error("failed to reload", "key", e.Key, "error", err)
			}
		}
	}
	return nil
}

func (s *Service) apply(ctx context.Context, e core.Event) error {
	s.debug("storage changed", "key", e.Key, "type", string(e.Type))
	switch e.Key {
	case KeyNotes:
		return s.notes.Reload(ctx)
	case KeyTags:
		return s.tags.Reload(ctx)
	case KeyTheme:
		return s.dark.Reload(ctx)
	}
	return nil
}
