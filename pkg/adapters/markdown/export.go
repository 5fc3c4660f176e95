package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/jot/pkg/core"
)

// Target receives imported notes. *notes.Service satisfies it.
type Target interface {
	EnsureTags(ctx context.Context, labels []string) ([]core.Tag, error)
	CreateNote(ctx context.Context, data core.NoteData) (core.RawNote, error)
}

// FileName is the name a note is exported under: its slug plus a short ID
// prefix, so that notes sharing a title do not collide.
func FileName(n core.Note) string {
	id := n.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return Slug(n.Title) + "-" + id + Ext
}

// Export writes every note into dir, creating it if needed.
// It returns the paths written.
func Export(ctx context.Context, dir string, notes []core.Note) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	paths := make([]string, len(notes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, n := range notes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := Encode(n)
			if err != nil {
				return fmt.Errorf("encode %s: %w", n.ID, err)
			}
			path := filepath.Join(dir, FileName(n))
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Import reads every markdown file under dir matching pattern (a doublestar
// glob, "**/*.md" when empty) and creates a note for each in target. Tags are
// matched by label, case-insensitively; missing ones are created.
// Files without a title in their frontmatter are titled after the file name.
func Import(ctx context.Context, dir, pattern string, target Target) (int, error) {
	if pattern == "" {
		pattern = "**/*" + Ext
	}
	if !doublestar.ValidatePattern(pattern) {
		return 0, fmt.Errorf("%w: bad pattern %q", core.ErrInvalidInput, pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", dir, err)
	}

	imported := 0
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		doc, err := readFile(filepath.Join(dir, rel))
		if err != nil {
			return imported, err
		}

		data := core.NoteData{Title: doc.Title, Markdown: doc.Markdown}
		if data.Title == "" {
			data.Title = strings.TrimSuffix(filepath.Base(rel), Ext)
		}

		data.Tags, err = target.EnsureTags(ctx, doc.Tags)
		if err != nil {
			return imported, err
		}

		if _, err := target.CreateNote(ctx, data); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func readFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
