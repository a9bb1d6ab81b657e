package redis

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rianlucascs/dowtrend/pkg/config"
)

func TestNew_Disabled(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.False(t, client.Enabled())
	assert.Nil(t, client.Redis())
	assert.NoError(t, client.Close())
}

func TestCache_Disabled(t *testing.T) {
	client, _ := New(context.Background(), config.RedisConfig{Enabled: false})
	cache := NewCache(client, "dowtrend")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, TTLNone))

	var got map[string]int
	found, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, cache.Delete(ctx, "k"))
}

func TestCache_Key(t *testing.T) {
	cache := NewCache(&Client{}, "dowtrend")
	assert.Equal(t, "dowtrend:results:index_IDIV", cache.Key(ResultsKey("index_IDIV")))
}

func TestCache_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping integration test")
	}
	host, port, _ := strings.Cut(addr, ":")

	ctx := context.Background()
	client, err := New(ctx, config.RedisConfig{Host: host, Port: port, Enabled: true})
	require.NoError(t, err)
	defer client.Close()

	cache := NewCache(client, "dowtrend-test")
	require.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, TTLNone))
	defer cache.Delete(ctx, "k")

	var got map[string]int
	found, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]int{"a": 1}, got)

	found, err = cache.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
