package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

func TestResolveNotesWithTags(t *testing.T) {
	tags := []core.Tag{tagA, tagB}

	t.Run("resolves in tag order", func(t *testing.T) {
		got := core.ResolveNotesWithTags([]core.RawNote{
			{ID: "1", Title: "t", Markdown: "m", TagIDs: []string{"b", "a"}},
		}, tags)
		require.Len(t, got, 1)
		assert.Equal(t, core.Note{ID: "1", Title: "t", Markdown: "m", Tags: []core.Tag{tagA, tagB}}, got[0])
	})

	t.Run("drops dangling references", func(t *testing.T) {
		got := core.ResolveNotesWithTags([]core.RawNote{
			{ID: "1", TagIDs: []string{"gone", "a"}},
		}, tags)
		assert.Equal(t, []core.Tag{tagA}, got[0].Tags)
	})

	t.Run("duplicate references resolve once", func(t *testing.T) {
		got := core.ResolveNotesWithTags([]core.RawNote{
			{ID: "1", TagIDs: []string{"a", "a"}},
		}, tags)
		assert.Equal(t, []core.Tag{tagA}, got[0].Tags)
	})

	t.Run("untagged notes get an empty list", func(t *testing.T) {
		got := core.ResolveNotesWithTags([]core.RawNote{{ID: "1"}}, tags)
		assert.NotNil(t, got[0].Tags)
		assert.Empty(t, got[0].Tags)
	})

	t.Run("empty input", func(t *testing.T) {
		got := core.ResolveNotesWithTags(nil, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		raw := []core.RawNote{{ID: "1", TagIDs: []string{"b", "gone"}}}
		tagsCopy := []core.Tag{tagA, tagB}

		core.ResolveNotesWithTags(raw, tagsCopy)
		assert.Equal(t, []string{"b", "gone"}, raw[0].TagIDs)
		assert.Equal(t, []core.Tag{tagA, tagB}, tagsCopy)
	})
}

func TestNoteRaw(t *testing.T) {
	n := core.Note{ID: "1", Title: "t", Markdown: "m", Tags: []core.Tag{tagB, tagA}}
	assert.Equal(t, core.RawNote{ID: "1", Title: "t", Markdown: "m", TagIDs: []string{"b", "a"}}, n.Raw())
}

func TestNewID(t *testing.T) {
	a, b := core.NewID(), core.NewID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
