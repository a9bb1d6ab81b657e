package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rianlucascs/dowtrend/pkg/config"
	"github.com/rianlucascs/dowtrend/pkg/redis"
)

func TestRedisStore_Disabled(t *testing.T) {
	client, err := redis.New(context.Background(), config.RedisConfig{Enabled: false})
	require.NoError(t, err)

	s := NewRedisStore(client)
	spec := indexSpec(t, "IDIV")
	assert.Equal(t, "dowtrend:results:index_IDIV", s.Key(spec))

	require.NoError(t, s.Save(context.Background(), spec, sampleResults()))

	_, err = s.Load(context.Background(), spec)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping integration test")
	}
	host, port, _ := strings.Cut(addr, ":")

	ctx := context.Background()
	client, err := redis.New(ctx, config.RedisConfig{Host: host, Port: port, Enabled: true})
	require.NoError(t, err)
	defer client.Close()

	s := NewRedisStore(client)
	spec := indexSpec(t, "ZZTEST")
	want := sampleResults()
	require.NoError(t, s.Save(ctx, spec, want))
	defer client.Redis().Del(ctx, s.Key(spec))

	got, err := s.Load(ctx, spec)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, want.Tickers(), got.Tickers())
}
