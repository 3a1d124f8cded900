package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "user:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "user:1", []byte("alice")))
	require.NoError(t, store.Put(ctx, "user:2", []byte("bob")))
	require.NoError(t, store.Put(ctx, "chapter:1", []byte("gdp")))

	value, err := store.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), value)

	require.NoError(t, store.Put(ctx, "user:1", []byte("alice2")))
	value, err = store.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("alice2"), value)

	keys, err := store.List(ctx, "user:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user:1", "user:2"}, keys)

	require.NoError(t, store.Delete(ctx, "user:1"))
	_, err = store.Get(ctx, "user:1")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting an absent key is not an error
	require.NoError(t, store.Delete(ctx, "user:missing"))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryStoreWithoutList(t *testing.T) {
	store := NewMemoryWithoutList()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user:1", []byte("alice")))
	_, err := store.List(ctx, "user:")
	assert.ErrorIs(t, err, ErrListUnsupported)
}

func TestBoltStore(t *testing.T) {
	store, err := OpenBolt(filepath.Join(t.TempDir(), "test.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close bolt: %v", err)
		}
	})

	testStore(t, store)
}

func TestRedisStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	store := NewRedisFromClient(client)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close redis: %v", err)
		}
	})

	testStore(t, store)
}
