package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	cli *redis.Client
}

func NewRedisCache(cli *redis.Client) *RedisCache {
	return &RedisCache{cli: cli}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	label, err := r.cli.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return label, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, label string, ttl time.Duration) error {
	return r.cli.Set(ctx, key, label, ttl).Err()
}
