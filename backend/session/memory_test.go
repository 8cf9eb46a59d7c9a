package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, "token-a", time.Minute))

	token, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "token-a", token)

	require.NoError(t, store.Delete(ctx, 1))
	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, "old", time.Minute))
	require.NoError(t, store.Save(ctx, 1, "new", time.Minute))

	token, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", token)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 2, "short-lived", -time.Second))
	_, err := store.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownUser(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
