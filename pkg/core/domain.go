// Package core holds the domain of jot: notes, tags, the storage contract
// and the pure derivations (tag resolution and filtering) computed over them.
package core

import (
	"github.com/google/uuid"
)

// Tag is a user defined label. Notes reference tags by ID.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label" validate:"required"`
}

// RawNote is the persisted form of a note. Tags are stored by reference.
// TagIDs may contain duplicates or IDs of tags that no longer exist.
type RawNote struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Markdown string   `json:"markdown"`
	TagIDs   []string `json:"tagIds"`
}

// Note is the view form of a note, with its tag references resolved.
type Note struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	Tags     []Tag  `json:"tags"`
}

// NoteData is the user supplied content of a note, as submitted by a form.
type NoteData struct {
	Title    string `json:"title" validate:"required"`
	Markdown string `json:"markdown" validate:"required"`
	Tags     []Tag  `json:"tags"`
}

// TagIDs strips the tags down to their IDs, preserving order.
func (d NoteData) TagIDs() []string {
	ids := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// Raw returns the persisted form of the note.
func (n Note) Raw() RawNote {
	return RawNote{
		ID:       n.ID,
		Title:    n.Title,
		Markdown: n.Markdown,
		TagIDs:   NoteData{Tags: n.Tags}.TagIDs(),
	}
}

// NewID generates a globally unique identifier for notes and tags.
func NewID() string {
	return uuid.New().String()
}

// EventType represents the type of change observed on a storage key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a storage key made outside the current process.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}
