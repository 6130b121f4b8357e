package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisCache(client, "blog:").(*RedisCache)
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tags:popular:20", []cachedTag{{Name: "go", Count: 3}}, time.Minute))
	assert.True(t, mr.Exists("blog:tags:popular:20"))

	var got []cachedTag
	found, err := c.Get(ctx, "tags:popular:20", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []cachedTag{{Name: "go", Count: 3}}, got)
}

func TestRedisCache_Miss(t *testing.T) {
	_, c := newTestCache(t)

	var got cachedTag
	found, err := c.Get(context.Background(), "nothing", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, cachedTag{}, got)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", cachedTag{Name: "x"}, 30*time.Second))
	mr.FastForward(31 * time.Second)

	var got cachedTag
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_CorruptPayloadIsEvicted(t *testing.T) {
	mr, c := newTestCache(t)
	require.NoError(t, mr.Set("blog:k", "{not json"))

	var got cachedTag
	found, err := c.Get(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("blog:k"))
}

func TestRedisCache_DeleteAndDeletePattern(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"tags:popular:5", "tags:popular:20", "user:1", "user:2"} {
		require.NoError(t, c.Set(ctx, k, 1, time.Minute))
	}

	require.NoError(t, c.DeletePattern(ctx, "tags:popular:*"))
	assert.False(t, mr.Exists("blog:tags:popular:5"))
	assert.False(t, mr.Exists("blog:tags:popular:20"))
	assert.True(t, mr.Exists("blog:user:1"))

	require.NoError(t, c.Delete(ctx, "user:1"))
	assert.False(t, mr.Exists("blog:user:1"))
	assert.True(t, mr.Exists("blog:user:2"))

	assert.NoError(t, c.Delete(ctx))
}

func TestRedisCache_Ping(t *testing.T) {
	mr, c := newTestCache(t)
	assert.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestRedisClient_HealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := NewRedisClient(mr.Addr(), "", 0)
	defer rc.Close()

	assert.NoError(t, rc.Connect(context.Background()))
	assert.NoError(t, rc.HealthCheck(context.Background()))
}
