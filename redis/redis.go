package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var RedisClient *redis.Client

// InitRedis connects to addr. When Redis is unreachable RedisClient stays nil
// and the server runs without a cache.
func InitRedis(ctx context.Context, addr string) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("Redis not available. Running without Redis.")
		_ = client.Close()
		RedisClient = nil
		return
	}

	RedisClient = client
	log.Info().Str("addr", addr).Msg("Redis connected successfully.")
}

func CloseRedis() {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close redis")
	}
}

// Cache stores JSON values under versioned keys. Bumping a version makes
// every key built from it unreachable, so readers never see stale entries.
// A Cache without a client misses on every read and drops every write.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// Get decodes the value at key into dest. It reports false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// GetVersion returns the current version of a key family, 0 if never bumped.
func (c *Cache) GetVersion(ctx context.Context, name string) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	v, err := c.client.Get(ctx, versionKey(name)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *Cache) IncrementVersion(ctx context.Context, name string) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, versionKey(name)).Err()
}

// Key builds the versioned key for name.
func (c *Cache) Key(ctx context.Context, name string) (string, error) {
	v, err := c.GetVersion(ctx, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", name, v), nil
}

func versionKey(name string) string {
	return name + ":version"
}
