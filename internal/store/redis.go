package store

import (
	"context"
	"fmt"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/pkg/redis"
)

// RedisStore mirrors the latest result map of each sample for API readers
type RedisStore struct {
	cache *redis.Cache
}

// NewRedisStore creates a Redis backed store with keys dowtrend:results:<file key>
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{cache: redis.NewCache(client, "dowtrend")}
}

// Name implements Backend
func (s *RedisStore) Name() string {
	return "redis"
}

// Key returns the Redis key of a sample
func (s *RedisStore) Key(spec contracts.SampleSpecifier) string {
	return s.cache.Key(redis.ResultsKey(spec.FileKey()))
}

// Save overwrites the cached map of the sample
func (s *RedisStore) Save(ctx context.Context, spec contracts.SampleSpecifier, results *contracts.ResultMap) error {
	if err := s.cache.Set(ctx, redis.ResultsKey(spec.FileKey()), results, redis.TTLNone); err != nil {
		return fmt.Errorf("%w: redis set %s: %w", contracts.ErrPersistenceFailure, spec, err)
	}
	return nil
}

// Load returns the cached map; ErrNotFound when absent or Redis is disabled
func (s *RedisStore) Load(ctx context.Context, spec contracts.SampleSpecifier) (*contracts.ResultMap, error) {
	results := contracts.NewResultMap(0)
	found, err := s.cache.Get(ctx, redis.ResultsKey(spec.FileKey()), results)
	if err != nil {
		return nil, fmt.Errorf("%w: redis get %s: %w", contracts.ErrPersistenceFailure, spec, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: redis %s: %w", contracts.ErrPersistenceFailure, spec, ErrNotFound)
	}
	return results, nil
}
