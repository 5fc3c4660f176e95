package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jot/pkg/core"
)

// Watch implements core.Watchable. It reports changes to key files whose key
// matches pattern, debounced per key. The channel is closed once ctx is done.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: watch pattern %q", core.ErrInvalidInput, pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	events := make(chan core.Event, s.config.EventBuffer)
	w := &watchWorker{
		storage:   s,
		pattern:   pattern,
		events:    events,
		watcher:   watcher,
		debouncer: newDebouncer(s.config.Debounce),
	}

	s.setWatching(1)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.handleError(fmt.Errorf("watcher panic: %w", err))
	}))
	return events, nil
}

type watchWorker struct {
	storage   *Storage
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) error {
	defer w.storage.setWatching(-1)
	defer w.watcher.Close()

	err := w.mainEventLoop(ctx)

	// In-flight timers must finish before the channel is closed.
	if !w.debouncer.stopAndWait(5 * time.Second) {
		w.storage.handleError(fmt.Errorf("watcher: timed out draining pending events"))
	}
	close(w.events)
	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.storage.handleError(wErr)
		}
	}
}

// processFilesystemEvent filters and maps a filesystem event to a key event.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) bool {
	key, ok := keyFromFile(filepath.Base(event.Name))
	if !ok {
		return false
	}
	if match, _ := doublestar.Match(w.pattern, key); !match {
		return false
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	w.storage.debug("event received", "key", key, "op", event.Op.String())
	w.storage.recordEvent()
	w.sendEvent(ctx, core.Event{
		Type:      eType,
		Key:       key,
		Timestamp: time.Now().Unix(),
	})
	return true
}

// sendEvent enqueues an event via the debouncer.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// The channel may be closed if draining timed out.
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

func (s *Storage) handleError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
		return
	}
	if s.config.Logger != nil {
		s.config.Logger.Error("watcher error", "error", err)
	}
}
