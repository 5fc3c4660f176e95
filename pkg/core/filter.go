package core

import (
	"slices"
	"strings"
)

// FilterNotes returns, in their original order, the notes whose title contains
// titleQuery (case-insensitively) and that carry every tag in requiredTags.
// Tags are matched by ID. An empty query or an empty tag set matches everything.
func FilterNotes(notes []Note, titleQuery string, requiredTags []Tag) []Note {
	query := strings.ToLower(titleQuery)

	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if query != "" && !strings.Contains(strings.ToLower(n.Title), query) {
			continue
		}
		if !hasAllTags(n, requiredTags) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func hasAllTags(n Note, required []Tag) bool {
	for _, want := range required {
		found := false
		for _, t := range n.Tags {
			if t.ID == want.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// TagsByID looks up tags by ID, in the order of ids. It reports false when
// an ID names no tag; such an ID can never be matched by FilterNotes, since
// resolved notes carry no dangling tags.
func TagsByID(tags []Tag, ids []string) ([]Tag, bool) {
	out := make([]Tag, 0, len(ids))
	for _, id := range ids {
		i := slices.IndexFunc(tags, func(t Tag) bool { return t.ID == id })
		if i < 0 {
			return nil, false
		}
		out = append(out, tags[i])
	}
	return out, true
}
