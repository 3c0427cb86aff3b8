package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	b, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	ctx := context.Background()

	_, ok, err := b.Load(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save(ctx, "users", []byte(`[{"id":"1"}]`)))

	value, ok, err := b.Load(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[{"id":"1"}]`), value)

	// overwrite
	require.NoError(t, b.Save(ctx, "users", []byte(`[]`)))
	value, ok, err = b.Load(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), value)

	require.NoError(t, b.Delete(ctx, "users"))
	_, ok, err = b.Load(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteBackend_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	ctx := context.Background()

	b, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, b.Save(ctx, "pets", []byte(`[{"id":"1","name":"Max"}]`)))
	require.NoError(t, b.Close())

	b2, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b2.Close() })

	value, ok, err := b2.Load(ctx, "pets")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[{"id":"1","name":"Max"}]`), value)
}

func TestMemoryBackend_RoundTrip(t *testing.T) {
	b := NewMemory()
	ctx := context.Background()

	_, ok, err := b.Load(ctx, "session")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save(ctx, "session", []byte(`{"id":"2"}`)))
	value, ok, err := b.Load(ctx, "session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"id":"2"}`), value)

	// the returned slice is a copy
	value[0] = 'x'
	again, _, err := b.Load(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"2"}`), again)

	require.NoError(t, b.Delete(ctx, "session"))
	_, ok, err = b.Load(ctx, "session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithLatency_ZeroDelayReturnsBackend(t *testing.T) {
	b := NewMemory()
	assert.Same(t, Backend(b), WithLatency(b, 0))
}

func TestWithLatency_DelaysAndHonorsContext(t *testing.T) {
	b := WithLatency(NewMemory(), 20*time.Millisecond)

	start := time.Now()
	require.NoError(t, b.Save(context.Background(), "users", []byte(`[]`)))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := b.Save(ctx, "users", []byte(`[]`))
	assert.ErrorIs(t, err, context.Canceled)
}
