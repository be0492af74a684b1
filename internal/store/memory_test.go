package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPutGetRoundtrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "ROOM1", []byte(`{"phase":"lobby"}`)))

	got, err := m.Get(ctx, "ROOM1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"phase":"lobby"}`), got)
}

func TestMemoryPutOverwrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "ROOM1", []byte(`one`)))
	require.NoError(t, m.Put(ctx, "ROOM1", []byte(`two`)))

	got, err := m.Get(ctx, "ROOM1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`two`), got)
}

func TestMemoryCopiesOnWrite(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	blob := []byte(`original`)
	require.NoError(t, m.Put(ctx, "ROOM1", blob))
	blob[0] = 'X'

	got, err := m.Get(ctx, "ROOM1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`original`), got)

	// Mutating what Get handed out must not poison the stored copy either.
	got[0] = 'Y'
	again, err := m.Get(ctx, "ROOM1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`original`), again)
}
