package listdb

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL applies when no cache TTL is configured.
const DefaultCacheTTL = 5 * time.Minute

// CachedSource is a read-through Redis cache in front of another Source.
// Redis failures are logged and fall through to the inner source.
type CachedSource struct {
	inner  Source
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSource wraps inner with a Redis cache. Keys are namespaced by prefix.
func NewCachedSource(inner Source, client redis.Cmdable, prefix string, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if prefix == "" {
		prefix = "demonlist"
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachedSource{
		inner:  inner,
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedSource) Kind() string { return c.inner.Kind() + "+redis" }

// Manifest returns the cached manifest or reads it from the inner source.
func (c *CachedSource) Manifest(ctx context.Context) ([]string, error) {
	key := c.prefix + ":manifest"

	var paths []string
	if c.load(ctx, key, &paths) {
		return paths, nil
	}

	paths, err := c.inner.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, paths)
	return paths, nil
}

// Level returns the cached level document or reads it from the inner source.
func (c *CachedSource) Level(ctx context.Context, path string) (listdomain.Level, error) {
	key := c.prefix + ":level:" + path

	var level listdomain.Level
	if c.load(ctx, key, &level) {
		return level, nil
	}

	level, err := c.inner.Level(ctx, path)
	if err != nil {
		return listdomain.Level{}, err
	}
	c.store(ctx, key, level)
	return level, nil
}

func (c *CachedSource) load(ctx context.Context, key string, v any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "Cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		c.logger.WarnContext(ctx, "Discarding undecodable cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedSource) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.WarnContext(ctx, "Cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Cache write failed", "key", key, "error", err)
	}
}
