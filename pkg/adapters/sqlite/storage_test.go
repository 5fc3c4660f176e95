package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(Config{Path: filepath.Join(t.TempDir(), "jot.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStorage_CRUD(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	_, found, err := s.Get(ctx, "NOTES")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "NOTES", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "NOTES", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Set(ctx, "TAGS", []byte(`[]`)))

	got, found, err := s.Get(ctx, "NOTES")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"NOTES", "TAGS"}, keys)

	require.NoError(t, s.Delete(ctx, "NOTES"))
	require.NoError(t, s.Delete(ctx, "NOTES"))
	_, found, err = s.Get(ctx, "NOTES")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStorage_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jot.db")
	ctx := context.Background()

	s, err := New(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Set(ctx, "THEME_NOTEAPP", []byte("true")))
	require.NoError(t, s.Close())

	reopened, err := New(Config{Path: path, ReadOnly: true})
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Get(ctx, "THEME_NOTEAPP")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", string(got))

	assert.ErrorIs(t, reopened.Set(ctx, "THEME_NOTEAPP", []byte("false")), core.ErrReadOnly)
}
