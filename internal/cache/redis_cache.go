package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// keyPrefix namespaces cached reads so a flush only touches this
// service's keys.
const keyPrefix = "qcache:"

// RedisCache shares the read cache across instances. Same contract as
// MemoryCache: lookups miss on error, writes are best-effort.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.Client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	_ = c.Client.Set(ctx, keyPrefix+key, value, c.TTL).Err()
}

func (c *RedisCache) Flush(ctx context.Context) {
	iter := c.Client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.Client.Del(ctx, iter.Val()).Err()
	}
}
