package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and returns a TokenCache backed by it.
func NewRedisCache(ctx context.Context, addr, password string, db int) (TokenCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisCache{client: rdb}, nil
}

// NewRedisCacheFromClient wraps an existing client; used by tests.
func NewRedisCacheFromClient(client *redis.Client) TokenCache {
	return &redisCache{client: client}
}

func (c *redisCache) Save(ctx context.Context, key, value string, ttlSeconds int64) error {
	return c.client.Set(ctx, key, value, time.Duration(ttlSeconds)*time.Second).Err()
}

// Get pipelines GET and TTL so value and remaining TTL come back in a
// single round trip.
func (c *redisCache) Get(ctx context.Context, key string) (Entry, error) {
	pipe := c.client.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Entry{}, err
	}

	if errors.Is(getCmd.Err(), redis.Nil) {
		return Entry{Value: "", TTL: TTLMissing}, nil
	}
	if err := getCmd.Err(); err != nil {
		return Entry{}, err
	}

	ttl := ttlCmd.Val()
	entry := Entry{Value: getCmd.Val()}
	switch {
	case ttl < 0:
		entry.TTL = TTLNoExpiry
	default:
		entry.TTL = int64(ttl / time.Second)
	}
	return entry, nil
}
