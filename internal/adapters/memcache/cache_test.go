package memcache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emartell/grocery-be/internal/adapters/memcache"
	"github.com/emartell/grocery-be/test/helpers"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_SetGet(t *testing.T) {
	cache := memcache.NewCache(time.Minute, helpers.TestLogger())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", payload{Name: "milk", Count: 3}))

	var got payload
	require.NoError(t, cache.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "milk", Count: 3}, got)
}

func TestCache_Miss(t *testing.T) {
	cache := memcache.NewCache(time.Minute, helpers.TestLogger())

	var got payload
	err := cache.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, memcache.ErrCacheMiss)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache := memcache.NewCache(time.Minute, helpers.TestLogger())
	ctx := context.Background()

	require.NoError(t, cache.SetWithTTL(ctx, "k", payload{Name: "x"}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got payload
	err := cache.Get(ctx, "k", &got)
	assert.ErrorIs(t, err, memcache.ErrCacheMiss)
}

func TestCache_DeleteAndExists(t *testing.T) {
	cache := memcache.NewCache(time.Minute, helpers.TestLogger())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", 1))
	require.NoError(t, cache.Set(ctx, "b", 2))

	ok, err := cache.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, cache.Delete(ctx, "a"))
	ok, err = cache.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_GetOrSet(t *testing.T) {
	cache := memcache.NewCache(time.Minute, helpers.TestLogger())
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return payload{Name: "fetched", Count: calls}, nil
	}

	var first payload
	require.NoError(t, cache.GetOrSet(ctx, "k", &first, fetch, time.Minute))
	assert.Equal(t, 1, first.Count)

	var second payload
	require.NoError(t, cache.GetOrSet(ctx, "k", &second, fetch, time.Minute))
	assert.Equal(t, 1, second.Count, "second call must be served from cache")
	assert.Equal(t, 1, calls)
}

func TestCache_GetOrSet_FetchError(t *testing.T) {
	cache := memcache.NewCache(time.Minute, helpers.TestLogger())

	var got payload
	err := cache.GetOrSet(context.Background(), "k", &got,
		func() (interface{}, error) { return nil, fmt.Errorf("boom") }, time.Minute)
	assert.Error(t, err)
}

func TestCache_Flush(t *testing.T) {
	cache := memcache.NewCache(time.Minute, helpers.TestLogger())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", 1))
	require.NoError(t, cache.Flush(ctx))

	var got int
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), memcache.ErrCacheMiss)
}
