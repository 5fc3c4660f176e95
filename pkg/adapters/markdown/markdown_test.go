package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/markdown"
	"github.com/aretw0/jot/pkg/core"
)

func TestEncodeDecode(t *testing.T) {
	n := core.Note{
		ID:       "1234",
		Title:    "Weekly: meeting --- notes",
		Markdown: "# Agenda\n\n---\n\n- item\n",
		Tags:     []core.Tag{{ID: "a", Label: "work"}, {ID: "b", Label: "q3"}},
	}

	data, err := markdown.Encode(n)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\n"))

	doc, err := markdown.Decode(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "1234", doc.ID)
	assert.Equal(t, n.Title, doc.Title)
	assert.Equal(t, []string{"work", "q3"}, doc.Tags)
	assert.Equal(t, n.Markdown, doc.Markdown)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    markdown.Document
		wantErr error
	}{
		{
			name:  "no frontmatter",
			input: "just text\n",
			want:  markdown.Document{Markdown: "just text\n"},
		},
		{
			name:  "crlf",
			input: "---\r\ntitle: T\r\n---\r\nbody",
			want:  markdown.Document{Frontmatter: markdown.Frontmatter{Title: "T"}, Markdown: "body"},
		},
		{
			name:  "empty body",
			input: "---\ntitle: T\n---",
			want:  markdown.Document{Frontmatter: markdown.Frontmatter{Title: "T"}},
		},
		{
			name:    "unclosed",
			input:   "---\ntitle: T\nbody",
			wantErr: markdown.ErrNoClosingDelimiter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := markdown.Decode(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_InvalidYAML(t *testing.T) {
	_, err := markdown.Decode(strings.NewReader("---\ntitle: [\n---\nbody"))
	assert.ErrorContains(t, err, "frontmatter")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "weekly-meeting-notes", markdown.Slug("Weekly  Meeting: notes!"))
	assert.Equal(t, "note", markdown.Slug("???"))
	assert.Equal(t, "a1", markdown.Slug("--a1--"))
	assert.LessOrEqual(t, len(markdown.Slug(strings.Repeat("ab ", 50))), 60)
}
