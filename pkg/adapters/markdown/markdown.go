// Package markdown exports notes as markdown files with a YAML frontmatter
// and imports them back.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

// Ext is the extension of exported notes.
const Ext = ".md"

var delimiter = []byte("---")

// ErrNoClosingDelimiter is returned when a frontmatter is opened but never closed.
var ErrNoClosingDelimiter = errors.New("frontmatter started but no closing delimiter found")

// Frontmatter is the YAML header of an exported note. Tags are stored by
// label so that files stay readable and portable between stores.
type Frontmatter struct {
	ID    string   `yaml:"id,omitempty"`
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,omitempty"`
}

// Document is a parsed markdown file.
type Document struct {
	Frontmatter
	Markdown string
}

// Encode renders n as a markdown document.
func Encode(n core.Note) ([]byte, error) {
	fm := Frontmatter{ID: n.ID, Title: n.Title}
	for _, t := range n.Tags {
		fm.Tags = append(fm.Tags, t.Label)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.WriteString(n.Markdown)
	return buf.Bytes(), nil
}

// Decode parses a markdown document. A file without frontmatter is all body.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return Document{Markdown: string(data)}, nil
	}

	header, body, ok := splitFrontmatter(data)
	if !ok {
		return Document{}, ErrNoClosingDelimiter
	}

	var doc Document
	if err := yaml.Unmarshal(header, &doc.Frontmatter); err != nil {
		return Document{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	doc.Markdown = string(body)
	return doc, nil
}

// splitFrontmatter separates the YAML header from the body. The closing
// delimiter must stand on its own line.
func splitFrontmatter(data []byte) (header, body []byte, ok bool) {
	_, rest, _ := bytes.Cut(data, []byte("\n"))

	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		end := bytes.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if bytes.Equal(bytes.TrimRight(line, "\r"), delimiter) {
			header = rest[:offset]
			if end < 0 {
				return header, nil, true
			}
			return header, rest[offset+end+1:], true
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return nil, nil, false
}

// Slug turns a title into a file name friendly string.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if len(s) > 60 {
		s = strings.TrimSuffix(s[:60], "-")
	}
	if s == "" {
		return "note"
	}
	return s
}
