// cache.go implements the read-through estimate cache.
package popularity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quipshot/phrase-gate/internal/contextutil"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

const cacheKeyPrefix = "popularity:"

// ErrCacheMiss is returned by a CacheStore when the key is absent.
var ErrCacheMiss = errors.New("popularity cache miss")

// CacheStore is the narrow cache surface the cached source needs.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedSource decorates another source with a read-through cache. Cache
// failures degrade to the wrapped source and never fail an estimate.
type CachedSource struct {
	source Source
	store  CacheStore
	ttl    time.Duration
	logger logging.Logger
}

// NewCachedSource wraps source with the given cache store and TTL.
func NewCachedSource(logger logging.Logger, source Source, store CacheStore, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Name reports the wrapped source's name.
func (c *CachedSource) Name() string {
	return c.source.Name()
}

// Estimate serves from cache when possible, otherwise delegates and stores
// the fresh estimate.
func (c *CachedSource) Estimate(ctx context.Context, phrase string) (Estimate, error) {
	key := cacheKeyPrefix + textutil.Normalize(phrase)

	if raw, err := c.store.Get(ctx, key); err == nil {
		var cached Estimate
		if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
			return cached, nil
		}
		c.logger.Warn("discarding undecodable cached estimate",
			logging.String("key", key))
	} else if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("popularity cache read failed",
			logging.String("key", key),
			logging.Error(err))
	}

	estimate, err := c.source.Estimate(ctx, phrase)
	if err != nil {
		return Estimate{}, err
	}

	if payload, marshalErr := json.Marshal(estimate); marshalErr == nil {
		if setErr := c.store.Set(ctx, key, string(payload), c.ttl); setErr != nil {
			c.logger.Warn("popularity cache write failed",
				logging.String("key", key),
				logging.Error(setErr))
		}
	}

	return estimate, nil
}

// RedisStore implements CacheStore over a go-redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get fetches a cached value, mapping redis.Nil to ErrCacheMiss.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

// Set stores a value with the given TTL.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// NewRedisClient creates a redis client and verifies the connection.
func NewRedisClient(address, password string, db int) (*redis.Client, error) {
	if address == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	ctx, cancel := contextutil.WithPingTimeout()
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
