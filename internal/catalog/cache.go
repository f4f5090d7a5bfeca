package catalog

import (
	"context"
	"errors"
	"time"

	"dogmatch-workers/internal/common/database"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/metrics"
	"dogmatch-workers/internal/scoring"
)

const DefaultCacheKey = "dogmatch:catalog:v1"

// CachedFetcher keeps the catalog from an upstream Fetcher in Redis.
// Cache failures are logged and fall through to the upstream.
type CachedFetcher struct {
	upstream Fetcher
	redis    *database.RedisClient
	key      string
	ttl      time.Duration
	logger   logger.Logger
}

func NewCachedFetcher(upstream Fetcher, redis *database.RedisClient, ttl time.Duration, log logger.Logger) *CachedFetcher {
	return &CachedFetcher{
		upstream: upstream,
		redis:    redis,
		key:      DefaultCacheKey,
		ttl:      ttl,
		logger:   log,
	}
}

func (f *CachedFetcher) FetchBreeds(ctx context.Context) ([]scoring.Breed, error) {
	var cached []scoring.Breed
	err := f.redis.GetJSON(ctx, f.key, &cached)
	switch {
	case err == nil && len(cached) > 0:
		metrics.CatalogCache.WithLabelValues(metrics.CacheHit).Inc()
		return cached, nil
	case err == nil, errors.Is(err, database.ErrCacheMiss):
		metrics.CatalogCache.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		metrics.CatalogCache.WithLabelValues(metrics.CacheError).Inc()
		f.logger.Warn("catalog cache read failed", map[string]interface{}{"key": f.key, "error": err.Error()})
	}

	breeds, err := f.upstream.FetchBreeds(ctx)
	if err != nil {
		return nil, err
	}

	// An empty catalog is never cached so a later load can fill it.
	if len(breeds) > 0 {
		if err := f.redis.SetJSON(ctx, f.key, breeds, f.ttl); err != nil {
			f.logger.Warn("catalog cache write failed", map[string]interface{}{"key": f.key, "error": err.Error()})
		}
	}
	return breeds, nil
}

// Invalidate drops the cached catalog.
func (f *CachedFetcher) Invalidate(ctx context.Context) error {
	return f.redis.Del(ctx, f.key)
}
