// Package notes is the note and tag repository of jot.
//
// A Service owns three persisted cells (notes, tags and the dark-mode flag)
// and exposes the mutations the presentation layer invokes. Every mutation
// is a pure transformation of the previous collection, applied through the
// cell so that it is persisted before the call returns. References to
// missing notes or tags are silently ignored.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/typed"
)

// Storage keys, compatible with the browser application's local storage.
const (
	KeyNotes = "NOTES"
	KeyTags  = "TAGS"
	KeyTheme = "THEME_NOTEAPP"
)

// Service handles the note and tag collections.
type Service struct {
	storage   core.Storage
	logger    *slog.Logger
	stableIDs bool
	newID     func() string

	notes *typed.Cell[[]core.RawNote]
	tags  *typed.Cell[[]core.Tag]
	dark  *typed.Cell[bool]

	mu      sync.Mutex
	derived []core.Note // memoized ResolveNotesWithTags, nil when stale

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStableNoteIDs controls whether UpdateNote keeps the note's ID.
// By default every update assigns a new ID, as the browser application did.
func WithStableNoteIDs(stable bool) Option {
	return func(s *Service) {
		s.stableIDs = stable
	}
}

// WithIDGenerator replaces core.NewID, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// New creates a Service over storage. Call Load before use.
func New(storage core.Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		newID:   core.NewID,
		subs:    make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}

	cellOpts := []typed.CellOption{typed.WithLogger(s.logger)}
	s.notes = typed.NewCell(storage, KeyNotes, []core.RawNote{}, cellOpts...)
	s.tags = typed.NewCell(storage, KeyTags, []core.Tag{}, cellOpts...)
	s.dark = typed.NewCell(storage, KeyTheme, false, cellOpts...)

	s.notes.Subscribe(func([]core.RawNote) { s.invalidate() })
	s.tags.Subscribe(func([]core.Tag) { s.invalidate() })
	s.dark.Subscribe(func(bool) { s.notify() })
	return s
}

// Load reads the persisted state once. Missing keys are initialized with
// empty collections and the light theme. Corrupt state yields an error
// wrapping core.ErrCorrupt.
func (s *Service) Load(ctx context.Context) error {
	if _, err := s.notes.Load(ctx); err != nil {
		return err
	}
	if _, err := s.tags.Load(ctx); err != nil {
		return err
	}
	if _, err := s.dark.Load(ctx); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// --- Notes ---

// CreateNote appends a new note with a fresh ID. The tags of data must
// already exist; only their IDs are stored.
func (s *Service) CreateNote(ctx context.Context, data core.NoteData) (core.RawNote, error) {
	note := core.RawNote{
		ID:       s.newID(),
		Title:    data.Title,
		Markdown: data.Markdown,
		TagIDs:   data.TagIDs(),
	}

	err := s.notes.Update(ctx, func(prev []core.RawNote) []core.RawNote {
		return append(slices.Clip(prev), note)
	})
	if err != nil {
		return core.RawNote{}, fmt.Errorf("create note: %w", err)
	}

	s.debug("note created", "id", note.ID)
	return note, nil
}

// UpdateNote replaces the title, markdown and tags of the note with the given ID.
//
// Unless the service was built WithStableNoteIDs(true), the updated note gets
// a new ID; callers holding the old ID must switch to the returned one.
// found is false, and nothing is written, when no note has the ID.
func (s *Service) UpdateNote(ctx context.Context, id string, data core.NoteData) (updated core.RawNote, found bool, err error) {
	newID := id
	if !s.stableIDs {
		newID = s.newID()
	}

	_, err = s.notes.Mutate(ctx, func(prev []core.RawNote) ([]core.RawNote, bool) {
		idx := slices.IndexFunc(prev, func(n core.RawNote) bool { return n.ID == id })
		if idx < 0 {
			return prev, false
		}
		updated = core.RawNote{
			ID:       newID,
			Title:    data.Title,
			Markdown: data.Markdown,
			TagIDs:   data.TagIDs(),
		}
		found = true

		next := slices.Clone(prev)
		next[idx] = updated
		return next, true
	})
	if err != nil {
		return core.RawNote{}, false, fmt.Errorf("update note %s: %w", id, err)
	}

	if found {
		s.debug("note updated", "id", id, "new_id", updated.ID)
	}
	return updated, found, nil
}

// DeleteNote removes the note with the given ID, if any.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	removed, err := s.notes.Mutate(ctx, func(prev []core.RawNote) ([]core.RawNote, bool) {
		next := slices.DeleteFunc(slices.Clone(prev), func(n core.RawNote) bool { return n.ID == id })
		return next, len(next) != len(prev)
	})
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	if removed {
		s.debug("note deleted", "id", id)
	}
	return nil
}

// RawNotes returns a copy of the persisted notes.
func (s *Service) RawNotes() []core.RawNote {
	return slices.Clone(s.notes.Get())
}

// Notes returns every note with its tags resolved.
// The result is recomputed only after notes or tags change.
func (s *Service) Notes() []core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.derived == nil {
		s.derived = core.ResolveNotesWithTags(s.notes.Get(), s.tags.Get())
	}
	return slices.Clone(s.derived)
}

// Note returns the resolved note with the given ID.
func (s *Service) Note(id string) (core.Note, bool) {
	for _, n := range s.Notes() {
		if n.ID == id {
			return n, true
		}
	}
	return core.Note{}, false
}

// Filter returns the notes matching titleQuery and carrying every tag in tagIDs.
// An ID naming no tag matches no note.
func (s *Service) Filter(titleQuery string, tagIDs []string) []core.Note {
	required, ok := core.TagsByID(s.Tags(), tagIDs)
	if !ok {
		return []core.Note{}
	}
	return core.FilterNotes(s.Notes(), titleQuery, required)
}

// --- Tags ---

// AddTag appends tag to the collection. The caller chooses its ID.
func (s *Service) AddTag(ctx context.Context, tag core.Tag) error {
	err := s.tags.Update(ctx, func(prev []core.Tag) []core.Tag {
		return append(slices.Clip(prev), tag)
	})
	if err != nil {
		return fmt.Errorf("add tag: %w", err)
	}
	s.debug("tag added", "id", tag.ID)
	return nil
}

// NewTag creates a tag with a fresh ID, as picking a new option in the tag
// selector does.
func (s *Service) NewTag(ctx context.Context, label string) (core.Tag, error) {
	tag := core.Tag{ID: s.newID(), Label: label}
	if err := s.AddTag(ctx, tag); err != nil {
		return core.Tag{}, err
	}
	return tag, nil
}

// EnsureTags returns the tags with the given labels, matched
// case-insensitively, creating those that do not exist yet. Repeated labels
// yield one tag.
func (s *Service) EnsureTags(ctx context.Context, labels []string) ([]core.Tag, error) {
	byLabel := make(map[string]core.Tag)
	for _, t := range s.tags.Get() {
		key := strings.ToLower(t.Label)
		if _, ok := byLabel[key]; !ok {
			byLabel[key] = t
		}
	}

	out := make([]core.Tag, 0, len(labels))
	seen := make(map[string]bool)
	for _, label := range labels {
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true

		tag, ok := byLabel[key]
		if !ok {
			var err error
			if tag, err = s.NewTag(ctx, label); err != nil {
				return nil, err
			}
			byLabel[key] = tag
		}
		out = append(out, tag)
	}
	return out, nil
}

// UpdateTag renames the tag with the given ID in place.
func (s *Service) UpdateTag(ctx context.Context, id, label string) error {
	renamed, err := s.tags.Mutate(ctx, func(prev []core.Tag) ([]core.Tag, bool) {
		idx := slices.IndexFunc(prev, func(t core.Tag) bool { return t.ID == id })
		if idx < 0 {
			return prev, false
		}
		next := slices.Clone(prev)
		for i := range next {
			if next[i].ID == id {
				next[i].Label = label
			}
		}
		return next, true
	})
	if err != nil {
		return fmt.Errorf("update tag %s: %w", id, err)
	}
	if renamed {
		s.debug("tag renamed", "id", id)
	}
	return nil
}

// DeleteTag removes the tag with the given ID. Notes keep referencing it;
// the reference is dropped when notes are resolved.
func (s *Service) DeleteTag(ctx context.Context, id string) error {
	removed, err := s.tags.Mutate(ctx, func(prev []core.Tag) ([]core.Tag, bool) {
		next := slices.DeleteFunc(slices.Clone(prev), func(t core.Tag) bool { return t.ID == id })
		return next, len(next) != len(prev)
	})
	if err != nil {
		return fmt.Errorf("delete tag %s: %w", id, err)
	}
	if removed {
		s.debug("tag deleted", "id", id)
	}
	return nil
}

// Tags returns a copy of the tag collection.
func (s *Service) Tags() []core.Tag {
	return slices.Clone(s.tags.Get())
}

// Tag returns the tag with the given ID.
func (s *Service) Tag(id string) (core.Tag, bool) {
	for _, t := range s.tags.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return core.Tag{}, false
}

// --- Subscriptions ---

// Subscribe registers fn to be called after any change to notes, tags or
// the theme, including changes picked up by Watch.
func (s *Service) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Service) invalidate() {
	s.mu.Lock()
	s.derived = nil
	s.mu.Unlock()
	s.notify()
}

func (s *Service) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
