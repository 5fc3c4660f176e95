package core

// ResolveNotesWithTags joins notes to their tags.
//
// A note's Tags follow the order of the tag collection and contain each tag at
// most once, whatever the order or repetition of its TagIDs. IDs with no
// matching tag are dropped: a dangling reference is not an error.
// The function is pure; neither input is modified.
func ResolveNotesWithTags(notes []RawNote, tags []Tag) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		refs := make(map[string]struct{}, len(n.TagIDs))
		for _, id := range n.TagIDs {
			refs[id] = struct{}{}
		}

		resolved := make([]Tag, 0, len(n.TagIDs))
		for _, t := range tags {
			if _, ok := refs[t.ID]; ok {
				resolved = append(resolved, t)
			}
		}

		out = append(out, Note{
			ID:       n.ID,
			Title:    n.Title,
			Markdown: n.Markdown,
			Tags:     resolved,
		})
	}
	return out
}
