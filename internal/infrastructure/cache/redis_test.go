package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0", "run-1")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return mr, c
}

func TestRedisCache_SetAndGet(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "brand:7", []byte(`{"id":7}`), time.Minute))

	got, err := c.Get(ctx, "brand:7")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":7}`), got)

	// keys are namespaced per run
	assert.True(t, mr.Exists("run-1:brand:7"))
	assert.False(t, mr.Exists("brand:7"))
}

func TestRedisCache_MissAndExpiry(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Delete(t *testing.T) {
	_, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url", "run")
	assert.Error(t, err)
}
