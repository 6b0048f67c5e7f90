package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"venturelens/domain/narrative"
	"venturelens/internal/errors"
)

const narrativeKeyPrefix = "narrative:"

// RedisNarrativeCache stores narratives as JSON values in Redis.
type RedisNarrativeCache struct {
	client *redis.Client
}

// NewRedisNarrativeCache connects to Redis and verifies the connection.
func NewRedisNarrativeCache(ctx context.Context, addr, password string, db int) (*RedisNarrativeCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to redis")
	}
	return &RedisNarrativeCache{client: client}, nil
}

func (c *RedisNarrativeCache) Get(ctx context.Context, key string) (*narrative.Report, bool, error) {
	raw, err := c.client.Get(ctx, narrativeKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get failed")
	}

	var rep narrative.Report
	if err := json.Unmarshal(raw, &rep); err != nil {
		// A corrupt entry is treated as a miss so it gets rewritten.
		return nil, false, nil
	}
	return &rep, true, nil
}

func (c *RedisNarrativeCache) Set(ctx context.Context, key string, rep *narrative.Report, ttl time.Duration) error {
	raw, err := json.Marshal(rep)
	if err != nil {
		return errors.Wrap(err, "failed to encode narrative")
	}
	if err := c.client.Set(ctx, narrativeKeyPrefix+key, raw, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set failed")
	}
	return nil
}

func (c *RedisNarrativeCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, narrativeKeyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "redis delete failed")
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *RedisNarrativeCache) Close() error {
	return c.client.Close()
}
