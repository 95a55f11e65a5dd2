package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "showshelf:"

// operationTimeout bounds every round trip so a slow Redis degrades into cache misses.
const operationTimeout = 2 * time.Second

func init() {
	Register("redis", newRedisCache)
}

// redisCache stores each entry as its own string key with a native TTL.
// Capacity is left to the server's maxmemory policy; Size is ignored.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	cfg    ProviderConfig
}

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &redisCache{
		client: client,
		ttl:    cfg.TTL,
		prefix: prefix,
		cfg:    cfg,
	}, nil
}

func (r *redisCache) logError(op string, err error) {
	if r.cfg.Logger != nil {
		r.cfg.Logger.Error().Err(err).Str("op", op).Msg("redis cache operation failed")
	}
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logError("get", err)
		}
		return nil, false
	}
	return val, true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		r.logError("set", err)
	}
}

func (r *redisCache) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	n, err := r.client.Exists(ctx, r.prefix+key).Result()
	if err != nil {
		r.logError("exists", err)
		return false
	}
	return n > 0
}

// Len counts the keys under the prefix with SCAN, so it is O(keys) and only
// meant for the metrics scrape.
func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	count := 0
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		r.logError("scan", err)
		return 0
	}
	return count
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
