package notes_test

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/notes"
)

func titleGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9 ]{1,40}`)
}

func newRapidService(t *rapid.T) *notes.Service {
	svc := notes.New(memory.New())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func testCreate_UniqueIDs_Properties(t *rapid.T) {
	svc := newRapidService(t)
	ctx := context.Background()

	count := rapid.IntRange(1, 30).Draw(t, "count")
	for i := 0; i < count; i++ {
		data := core.NoteData{Title: titleGenerator().Draw(t, "title"), Markdown: "m"}
		if _, err := svc.CreateNote(ctx, data); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	seen := make(map[string]bool)
	for _, n := range svc.RawNotes() {
		if seen[n.ID] {
			t.Fatalf("duplicate note id %s", n.ID)
		}
		seen[n.ID] = true
	}
	if len(seen) != count {
		t.Fatalf("expected %d notes, got %d", count, len(seen))
	}
}

func TestCreate_UniqueIDs_Properties(t *testing.T) {
	rapid.Check(t, testCreate_UniqueIDs_Properties)
}

// Deleting an absent note never changes the collection.
func testDelete_Absent_Properties(t *rapid.T) {
	svc := newRapidService(t)
	ctx := context.Background()

	count := rapid.IntRange(0, 10).Draw(t, "count")
	for i := 0; i < count; i++ {
		if _, err := svc.CreateNote(ctx, core.NoteData{Title: titleGenerator().Draw(t, "title"), Markdown: "m"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	before := svc.RawNotes()

	ghost := rapid.StringMatching(`ghost-[a-z0-9]{4,12}`).Draw(t, "ghost")
	if err := svc.DeleteNote(ctx, ghost); err != nil {
		t.Fatalf("delete: %v", err)
	}

	after := svc.RawNotes()
	if len(before) != len(after) {
		t.Fatalf("length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID || before[i].Title != after[i].Title {
			t.Fatalf("note %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestDelete_Absent_Properties(t *testing.T) {
	rapid.Check(t, testDelete_Absent_Properties)
}

// Any sequence of tag deletions leaves resolution well defined and leaves
// tagIds untouched.
func testDeleteTag_Dangling_Properties(t *rapid.T) {
	svc := newRapidService(t)
	ctx := context.Background()

	nTags := rapid.IntRange(1, 6).Draw(t, "tags")
	var tags []core.Tag
	for i := 0; i < nTags; i++ {
		tag, err := svc.NewTag(ctx, titleGenerator().Draw(t, "label"))
		if err != nil {
			t.Fatalf("new tag: %v", err)
		}
		tags = append(tags, tag)
	}

	picked := rapid.SliceOf(rapid.SampledFrom(tags)).Draw(t, "picked")
	note, err := svc.CreateNote(ctx, core.NoteData{Title: "n", Markdown: "m", Tags: picked})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	victim := rapid.SampledFrom(tags).Draw(t, "victim")
	if err := svc.DeleteTag(ctx, victim.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	resolved, ok := svc.Note(note.ID)
	if !ok {
		t.Fatalf("note vanished")
	}
	for _, tag := range resolved.Tags {
		if tag.ID == victim.ID {
			t.Fatalf("deleted tag %s still resolved", victim.ID)
		}
	}
	raw := svc.RawNotes()[0]
	if len(raw.TagIDs) != len(picked) {
		t.Fatalf("tagIds changed: %v", raw.TagIDs)
	}
}

func TestDeleteTag_Dangling_Properties(t *testing.T) {
	rapid.Check(t, testDeleteTag_Dangling_Properties)
}
