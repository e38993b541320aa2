package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"governanceevents/internal/domain"
)

// DefaultCacheKey is where the parsed feed is cached.
const DefaultCacheKey = "events:feed"

// Cache is the key/value store CachedSource keeps the parsed feed in.
type Cache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache connects to addr and pings it.
func NewRedisCache(ctx context.Context, addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisCache{Client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// CachedSource serves the feed from Cache and reloads it from Next after TTL.
// Cache failures are logged and fall through to Next.
type CachedSource struct {
	Next   domain.EventSource
	Cache  Cache
	Key    string
	TTL    time.Duration
	Logger *slog.Logger
}

// NewCachedSource wraps next with a cache entry under DefaultCacheKey.
func NewCachedSource(next domain.EventSource, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{Next: next, Cache: cache, Key: DefaultCacheKey, TTL: ttl, Logger: logger}
}

func (s *CachedSource) Load(ctx context.Context) ([]*domain.Event, error) {
	b, ok, err := s.Cache.Get(ctx, s.Key)
	switch {
	case err != nil:
		s.Logger.WarnContext(ctx, "events cache read failed", "key", s.Key, "err", err)
	case ok:
		var events []*domain.Event
		if err := json.Unmarshal(b, &events); err == nil {
			return events, nil
		}
		s.Logger.WarnContext(ctx, "events cache entry unreadable", "key", s.Key)
	}

	events, err := s.Next.Load(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(events); err == nil {
		if err := s.Cache.Set(ctx, s.Key, b, s.TTL); err != nil {
			s.Logger.WarnContext(ctx, "events cache write failed", "key", s.Key, "err", err)
		}
	}
	return events, nil
}
