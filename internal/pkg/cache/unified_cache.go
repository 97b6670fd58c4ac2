package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/observability/metrics"
)

// CacheMetrics tracks cache performance
type CacheMetrics struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// UnifiedCache is a typed TTL cache on top of go-cache.
type UnifiedCache[T any] struct {
	store  *gocache.Cache
	ttl    time.Duration
	name   string
	logger *zap.Logger

	hits, misses, sets atomic.Int64
}

// NewUnifiedCache creates a cache whose entries expire after ttl.
// Expired entries are purged every 2*ttl.
func NewUnifiedCache[T any](ttl time.Duration, name string, logger *zap.Logger) *UnifiedCache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnifiedCache[T]{
		store:  gocache.New(ttl, 2*ttl),
		ttl:    ttl,
		name:   name,
		logger: logger,
	}
}

// Set stores an item in the cache with the given key
func (c *UnifiedCache[T]) Set(key string, value T) {
	c.store.Set(key, value, gocache.DefaultExpiration)
	c.sets.Add(1)

	c.logger.Debug("Cache set",
		zap.String("cache", c.name),
		zap.String("key", key),
		zap.Duration("ttl", c.ttl),
	)
}

// Get retrieves an unexpired item from the cache
func (c *UnifiedCache[T]) Get(key string) (T, bool) {
	attrs := metric.WithAttributes(attribute.String("cache", c.name))

	if raw, found := c.store.Get(key); found {
		if value, ok := raw.(T); ok {
			c.hits.Add(1)
			metrics.Get().CacheHitsTotal.Add(context.Background(), 1, attrs)
			c.logger.Debug("Cache hit", zap.String("cache", c.name), zap.String("key", key))
			return value, true
		}
	}

	c.misses.Add(1)
	metrics.Get().CacheMissesTotal.Add(context.Background(), 1, attrs)
	c.logger.Debug("Cache miss", zap.String("cache", c.name), zap.String("key", key))
	var zero T
	return zero, false
}

// Delete removes an item from the cache
func (c *UnifiedCache[T]) Delete(key string) {
	c.store.Delete(key)
	c.logger.Debug("Cache delete", zap.String("cache", c.name), zap.String("key", key))
}

// OnEvicted registers fn to run when an entry expires or is deleted.
func (c *UnifiedCache[T]) OnEvicted(fn func(key string, value T)) {
	c.store.OnEvicted(func(key string, raw interface{}) {
		if value, ok := raw.(T); ok {
			fn(key, value)
		}
	})
}

// Clear removes all items from the cache
func (c *UnifiedCache[T]) Clear() {
	c.store.Flush()
	c.logger.Info("Cache cleared", zap.String("cache", c.name))
}

// GetMetrics returns current cache metrics
func (c *UnifiedCache[T]) GetMetrics() CacheMetrics {
	return CacheMetrics{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Sets:   c.sets.Load(),
	}
}

// Size returns the number of items in the cache, including expired ones not yet purged.
func (c *UnifiedCache[T]) Size() int {
	return c.store.ItemCount()
}

// CacheKeyBuilder helps build consistent cache keys
type CacheKeyBuilder struct {
	components []interface{}
	logger     *zap.Logger
}

// NewCacheKeyBuilder creates a new cache key builder
func NewCacheKeyBuilder(logger *zap.Logger) *CacheKeyBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheKeyBuilder{
		components: make([]interface{}, 0, 4),
		logger:     logger,
	}
}

// Add adds a component to the cache key
func (b *CacheKeyBuilder) Add(key string, value interface{}) *CacheKeyBuilder {
	b.components = append(b.components, map[string]interface{}{key: value})
	return b
}

func (b *CacheKeyBuilder) AddURL(url string) *CacheKeyBuilder {
	return b.Add("url", url)
}

// AddDuration adds the requested trip length; nil and absent hash the same.
func (b *CacheKeyBuilder) AddDuration(days *int) *CacheKeyBuilder {
	return b.Add("duration", days)
}

func (b *CacheKeyBuilder) AddPreferences(prefs *string) *CacheKeyBuilder {
	return b.Add("preferences", prefs)
}

// Build generates the final cache key as an MD5 hash
func (b *CacheKeyBuilder) Build() (string, error) {
	jsonBytes, err := json.Marshal(b.components)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key components: %w", err)
	}

	hash := md5.Sum(jsonBytes)
	key := hex.EncodeToString(hash[:])

	b.logger.Debug("Cache key built",
		zap.String("key", key),
		zap.String("components", string(jsonBytes)),
	)

	return key, nil
}

// BuildOrDefault builds the cache key, returns empty string on error
func (b *CacheKeyBuilder) BuildOrDefault() string {
	key, err := b.Build()
	if err != nil {
		b.logger.Error("Failed to build cache key", zap.Error(err))
		return ""
	}
	return key
}
