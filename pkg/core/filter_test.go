package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/aretw0/jot/pkg/core"
)

var (
	tagA = core.Tag{ID: "a", Label: "A"}
	tagB = core.Tag{ID: "b", Label: "B"}
)

func TestFilterNotes(t *testing.T) {
	notes := []core.Note{
		{ID: "1", Title: "Weekly meeting notes", Tags: []core.Tag{tagA, tagB}},
		{ID: "2", Title: "Groceries", Tags: []core.Tag{tagA}},
		{ID: "3", Title: "Meeting prep"},
	}

	tests := []struct {
		name  string
		notes []core.Note
		query string
		tags  []core.Tag
		want  []string
	}{
		{name: "empty input", notes: nil, want: nil},
		{name: "no criteria keeps everything in order", notes: notes, want: []string{"1", "2", "3"}},
		{name: "title is case-insensitive", notes: notes, query: "Meeting", want: []string{"1", "3"}},
		{name: "title substring", notes: notes, query: "cer", want: []string{"2"}},
		{name: "single tag", notes: notes, tags: []core.Tag{tagA}, want: []string{"1", "2"}},
		{name: "all tags required", notes: notes, tags: []core.Tag{tagA, tagB}, want: []string{"1"}},
		{name: "tags match by id", notes: notes, tags: []core.Tag{{ID: "b", Label: "renamed"}}, want: []string{"1"}},
		{name: "title and tags combine", notes: notes, query: "meeting", tags: []core.Tag{tagA}, want: []string{"1"}},
		{name: "no match", notes: notes, query: "nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.FilterNotes(tt.notes, tt.query, tt.tags)
			assert.NotNil(t, got)

			var ids []string
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestTagsByID(t *testing.T) {
	tags := []core.Tag{tagA, tagB}

	got, ok := core.TagsByID(tags, []string{"b", "a"})
	assert.True(t, ok)
	assert.Equal(t, []core.Tag{tagB, tagA}, got)

	got, ok = core.TagsByID(tags, nil)
	assert.True(t, ok)
	assert.Empty(t, got)

	_, ok = core.TagsByID(tags, []string{"a", "missing"})
	assert.False(t, ok)
}

func noteGenerator() *rapid.Generator[core.Note] {
	tag := rapid.SampledFrom([]core.Tag{tagA, tagB, {ID: "c", Label: "C"}})
	return rapid.Custom(func(t *rapid.T) core.Note {
		return core.Note{
			ID:    rapid.StringMatching(`[a-z0-9]{8}`).Draw(t, "id"),
			Title: rapid.StringMatching(`[A-Za-z ]{0,20}`).Draw(t, "title"),
			Tags:  rapid.SliceOfNDistinct(tag, 0, 3, func(t core.Tag) string { return t.ID }).Draw(t, "tags"),
		}
	})
}

// Filtering yields an order-preserving subsequence whose members all match,
// and an empty query with no tags is the identity.
func testFilterNotes_Properties(t *rapid.T) {
	notes := rapid.SliceOf(noteGenerator()).Draw(t, "notes")
	query := rapid.StringMatching(`[A-Za-z]{0,3}`).Draw(t, "query")
	required := rapid.SliceOfNDistinct(rapid.SampledFrom([]core.Tag{tagA, tagB}), 0, 2,
		func(t core.Tag) string { return t.ID }).Draw(t, "required")

	if got := core.FilterNotes(notes, "", nil); len(got) != len(notes) {
		t.Fatalf("identity filter dropped notes: %d -> %d", len(notes), len(got))
	}

	got := core.FilterNotes(notes, query, required)
	i := 0
	for _, n := range got {
		for i < len(notes) && notes[i].ID != n.ID {
			i++
		}
		if i == len(notes) {
			t.Fatalf("result is not a subsequence of the input")
		}
		i++

		if len(core.FilterNotes([]core.Note{n}, query, required)) != 1 {
			t.Fatalf("note %v does not match", n)
		}
	}
}

func TestFilterNotes_Properties(t *testing.T) {
	rapid.Check(t, testFilterNotes_Properties)
}
