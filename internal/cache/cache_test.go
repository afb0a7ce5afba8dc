package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listing struct {
	Names []string `json:"names"`
}

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedis(context.Background(), Config{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	var got listing
	found, err := c.Get(ctx, KeyCategories, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, KeyCategories, listing{Names: []string{"Phones", "Laptops"}}))
	found, err = c.Get(ctx, KeyCategories, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Phones", "Laptops"}, got.Names)
	assert.Equal(t, time.Minute, mr.TTL(KeyCategories))

	require.NoError(t, c.Delete(ctx, KeyCategories, KeyBanners))
	found, err = c.Get(ctx, KeyCategories, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheDropsUndecodableValues(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)
	require.NoError(t, mr.Set(KeyBanners, "{not json"))

	var got listing
	found, err := c.Get(ctx, KeyBanners, &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists(KeyBanners))
}

func TestRedisCounters(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	n, err := c.Count(ctx, "login:a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	for i := 1; i <= 3; i++ {
		n, err = c.Incr(ctx, "login:a@b.c", 15*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}
	assert.Equal(t, 15*time.Minute, mr.TTL("login:a@b.c"))

	n, err = c.Count(ctx, "login:a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mr.FastForward(16 * time.Minute)
	n, err = c.Count(ctx, "login:a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, KeySettings, "x"))
	var s string
	found, err := c.Get(ctx, KeySettings, &s)
	assert.NoError(t, err)
	assert.False(t, found)
}
