package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

// run executes the CLI in-process and returns its standard output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	require.NoError(t, err, "jot %s", strings.Join(args, " "))
	return out
}

func initStore(t *testing.T, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	out := mustRun(t, append([]string{"init", "--dir", dir}, extra...)...)
	require.Contains(t, out, "Initialized empty jot store")
	return dir
}

func listJSON(t *testing.T, dir string, args ...string) []core.Note {
	t.Helper()
	out := mustRun(t, append([]string{"list", "--dir", dir, "--json"}, args...)...)
	var notes []core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	return notes
}

func TestCLI_NoteLifecycle(t *testing.T) {
	dir := initStore(t)
	assert.FileExists(t, filepath.Join(dir, "jot.yaml"))
	assert.DirExists(t, filepath.Join(dir, ".jot"))

	id := strings.TrimSpace(mustRun(t, "new", "--dir", dir, "-t", "Weekly meeting notes", "-m", "# Agenda", "--tag", "work"))
	require.NotEmpty(t, id)

	notes := listJSON(t, dir)
	require.Len(t, notes, 1)
	assert.Equal(t, "Weekly meeting notes", notes[0].Title)
	require.Len(t, notes[0].Tags, 1)
	assert.Equal(t, "work", notes[0].Tags[0].Label)

	out := mustRun(t, "show", "--dir", dir, id)
	assert.Contains(t, out, "# Weekly meeting notes")
	assert.Contains(t, out, "tags: work")
	assert.Contains(t, out, "# Agenda")

	newID := strings.TrimSpace(mustRun(t, "edit", "--dir", dir, id, "-t", "T2"))
	assert.NotEqual(t, id, newID)

	notes = listJSON(t, dir)
	require.Len(t, notes, 1)
	assert.Equal(t, "T2", notes[0].Title)
	assert.Equal(t, "# Agenda", notes[0].Markdown, "fields not given are kept")
	assert.Equal(t, newID, notes[0].ID)

	_, err := run(t, "", "show", "--dir", dir, id)
	assert.ErrorContains(t, err, "not found")

	mustRun(t, "delete", "--dir", dir, newID)
	assert.Empty(t, listJSON(t, dir))

	_, err = run(t, "", "delete", "--dir", dir, newID)
	assert.ErrorContains(t, err, "not found")
}

func TestCLI_StableIDs(t *testing.T) {
	dir := initStore(t, "--stable-ids")

	id := strings.TrimSpace(mustRun(t, "new", "--dir", dir, "-t", "T1", "-m", "m"))
	newID := strings.TrimSpace(mustRun(t, "edit", "--dir", dir, id, "-t", "T2"))
	assert.Equal(t, id, newID)
}

func TestCLI_NewFromStdin(t *testing.T) {
	dir := initStore(t)

	_, err := run(t, "# from stdin\n", "new", "--dir", dir, "-t", "Piped", "-f", "-")
	require.NoError(t, err)

	notes := listJSON(t, dir)
	require.Len(t, notes, 1)
	assert.Equal(t, "# from stdin\n", notes[0].Markdown)
}

func TestCLI_Validation(t *testing.T) {
	dir := initStore(t)

	_, err := run(t, "", "new", "--dir", dir, "-t", "no body")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = run(t, "", "new", "--dir", dir, "-m", "no title")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = run(t, "", "list", "--dir", dir, "--tag-glob", "[")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	assert.Empty(t, listJSON(t, dir))
}

func TestCLI_ListFilters(t *testing.T) {
	dir := initStore(t)
	mustRun(t, "new", "--dir", dir, "-t", "Weekly meeting notes", "-m", "m", "--tag", "work", "--tag", "q3")
	mustRun(t, "new", "--dir", dir, "-t", "Meeting prep", "-m", "m", "--tag", "work")
	mustRun(t, "new", "--dir", dir, "-t", "Groceries", "-m", "m", "--tag", "home")

	assert.Len(t, listJSON(t, dir), 3)
	assert.Len(t, listJSON(t, dir, "--title", "MEETING"), 2)
	assert.Len(t, listJSON(t, dir, "--tag", "work", "--tag", "Q3"), 1)
	assert.Len(t, listJSON(t, dir, "--tag", "unknown"), 0)
	assert.Len(t, listJSON(t, dir, "--tag-glob", "h*"), 1)

	out := mustRun(t, "list", "--dir", dir, "--title", "groceries")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "home")
}

func TestCLI_Tags(t *testing.T) {
	dir := initStore(t)

	workID := strings.TrimSpace(mustRun(t, "tag", "add", "--dir", dir, "work"))
	mustRun(t, "tag", "add", "--dir", dir, "--id", "home", "home")
	_, err := run(t, "", "tag", "add", "--dir", dir, "--id", "home", "again")
	assert.ErrorContains(t, err, "already exists")

	mustRun(t, "new", "--dir", dir, "-t", "Plan", "-m", "m", "--tag", "work", "--tag", "home")

	mustRun(t, "tag", "rename", "--dir", dir, workID, "office")
	out := mustRun(t, "tag", "list", "--dir", dir)
	assert.Contains(t, out, "office")
	assert.NotContains(t, out, "work")

	mustRun(t, "tag", "delete", "--dir", dir, "home")
	notes := listJSON(t, dir)
	require.Len(t, notes, 1, "deleting a tag keeps its notes")
	assert.Equal(t, []core.Tag{{ID: workID, Label: "office"}}, notes[0].Tags)

	_, err = run(t, "", "tag", "delete", "--dir", dir, "home")
	assert.ErrorContains(t, err, "not found")
}

func TestCLI_Theme(t *testing.T) {
	dir := initStore(t)

	assert.Equal(t, "theme: light (toggle: Dark)\n", mustRun(t, "theme", "--dir", dir))
	assert.Equal(t, "theme: dark (toggle: Light)\n", mustRun(t, "theme", "--dir", dir, "toggle"))
	assert.Equal(t, "theme: dark (toggle: Light)\n", mustRun(t, "theme", "--dir", dir))
	assert.Equal(t, "theme: light (toggle: Dark)\n", mustRun(t, "theme", "--dir", dir, "light"))

	_, err := run(t, "", "theme", "--dir", dir, "sepia")
	assert.Error(t, err)
}

func TestCLI_SQLiteFromConfig(t *testing.T) {
	dir := initStore(t, "--adapter", "sqlite")
	assert.FileExists(t, filepath.Join(dir, ".jot", "jot.db"))

	// Later commands pick the adapter up from jot.yaml.
	mustRun(t, "new", "--dir", dir, "-t", "T", "-m", "m")
	assert.Len(t, listJSON(t, dir), 1)
	_, err := os.Stat(filepath.Join(dir, ".jot", "NOTES.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_ExportImport(t *testing.T) {
	src := initStore(t)
	mustRun(t, "new", "--dir", src, "-t", "Plan", "-m", "# plan", "--tag", "work")
	mustRun(t, "new", "--dir", src, "-t", "Idea", "-m", "idea")

	exportDir := filepath.Join(t.TempDir(), "md")
	out := mustRun(t, "export", "--dir", src, exportDir)
	assert.Contains(t, out, "Exported 2 notes")

	dst := initStore(t)
	out = mustRun(t, "import", "--dir", dst, exportDir)
	assert.Contains(t, out, "Imported 2 notes")

	notes := listJSON(t, dst, "--tag", "work")
	require.Len(t, notes, 1)
	assert.Equal(t, "Plan", notes[0].Title)
}

func TestCLI_ReadOnly(t *testing.T) {
	dir := initStore(t)
	mustRun(t, "new", "--dir", dir, "-t", "T", "-m", "m")

	_, err := run(t, "", "new", "--dir", dir, "--read-only", "-t", "T", "-m", "m")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.Len(t, listJSON(t, dir, "--read-only"), 1)
}

func TestCLI_NotInitialized(t *testing.T) {
	_, err := run(t, "", "list", "--dir", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCLI_Status(t *testing.T) {
	dir := initStore(t)
	mustRun(t, "new", "--dir", dir, "-t", "T", "-m", "m")

	var status struct {
		Root  string `json:"root"`
		State struct {
			Notes       int    `json:"notes"`
			StorageType string `json:"storage_type"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "status", "--dir", dir)), &status))
	assert.Equal(t, dir, status.Root)
	assert.Equal(t, 1, status.State.Notes)
	assert.Equal(t, "storage", status.State.StorageType)
}

func TestCLI_Version(t *testing.T) {
	assert.Regexp(t, `^jot version \d+\.\d+\.\d+\n$`, mustRun(t, "version"))
}

func TestCLI_StatusDiagram(t *testing.T) {
	dir := initStore(t)
	out := mustRun(t, "status", "--dir", dir, "--diagram")
	assert.NotEmpty(t, strings.TrimSpace(out))
}
