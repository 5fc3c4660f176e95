// Package jot is the Composition Root of jot, a local markdown note store.
//
// It connects the domain (pkg/core, pkg/notes) with the storage adapters
// (pkg/adapters) using the Hexagonal Architecture pattern.
//
// Notes hold a title, a markdown body and references to tags. Tags are shared
// labels; deleting one never touches the notes that reference it, the
// reference simply stops resolving. The whole state lives under three keys
// (NOTES, TAGS and THEME_NOTEAPP) of a key/value storage:
//
//   - **fs** (default): one JSON file per key under .jot/, written atomically
//     and watched with fsnotify.
//   - **sqlite**: a single table in .jot/jot.db.
//   - **memory**: volatile, for tests.
//
// Usage:
//
//	store, err := jot.Open(ctx, ".",
//		jot.WithAutoInit(true),
//		jot.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	tag, _ := store.NewTag(ctx, "work")
//	note, err := store.CreateNote(ctx, core.NoteData{
//		Title:    "Plan",
//		Markdown: "# Q3",
//		Tags:     []core.Tag{tag},
//	})
package jot
