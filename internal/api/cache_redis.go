package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nrrscope/nrrscope/internal/logging"
	"github.com/nrrscope/nrrscope/pkg/scenario"
)

// RedisResultCache is a ResultCache shared across API replicas. Values are
// JSON with a TTL; Redis errors are logged and treated as misses.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisResultCache connects to the Redis instance at url
// (redis://[:password@]host:port/db) and checks it responds.
func NewRedisResultCache(ctx context.Context, url string, ttl time.Duration) (*RedisResultCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisResultCache(client, ttl), nil
}

func newRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisResultCache{client: client, ttl: ttl}
}

func (c *RedisResultCache) Get(ctx context.Context, key string) (*scenario.Result, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Log.WithError(err).Warn("redis cache get")
		}
		return nil, false
	}

	var res scenario.Result
	if err := json.Unmarshal(data, &res); err != nil {
		logging.Log.WithError(err).Warn("redis cache decode")
		return nil, false
	}
	return &res, true
}

func (c *RedisResultCache) Put(ctx context.Context, key string, res *scenario.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		logging.Log.WithError(err).Warn("redis cache encode")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logging.Log.WithError(err).Warn("redis cache set")
	}
}

// Close closes the Redis client.
func (c *RedisResultCache) Close() error {
	return c.client.Close()
}
