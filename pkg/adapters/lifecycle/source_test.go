package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
)

func TestSource_BridgesEvents(t *testing.T) {
	storage := memory.New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src := lifecycle.NewSource(storage, "NOTES")
	require.NoError(t, src.Start(ctx))

	require.NoError(t, storage.Set(ctx, "TAGS", []byte(`[]`)))
	require.NoError(t, storage.Set(ctx, "NOTES", []byte(`[]`)))

	select {
	case e := <-src.Events():
		ev, ok := e.(core.Event)
		require.True(t, ok)
		assert.Equal(t, "NOTES", ev.Key)
		assert.Equal(t, core.EventCreate, ev.Type)
	case <-ctx.Done():
		t.Fatal("no event received")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, open := <-src.Events():
			return !open
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSource_InvalidPattern(t *testing.T) {
	src := lifecycle.NewSource(memory.New(), "[")
	err := src.Start(context.Background())
	assert.Error(t, err)

	_, open := <-src.Events()
	assert.False(t, open)
}
