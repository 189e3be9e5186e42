// Package cache holds the Redis-backed cache for the public store and category listings.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	aws_pkg "deals-service/pkg/aws"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	DefaultTTL = 5 * time.Minute

	NamespaceStores     = "stores"
	NamespaceCategories = "categories"

	keyPrefix = "deals:"
)

// ListingCache caches whole listing responses per namespace. Writes bump the
// namespace version instead of deleting keys, so stale entries simply expire.
// A nil *ListingCache is valid and never hits.
type ListingCache struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics *aws_pkg.MetricsClient
}

func NewListingCache(client *redis.Client) *ListingCache {
	if client == nil {
		return nil
	}
	return &ListingCache{redis: client, ttl: DefaultTTL}
}

// WithMetrics reports hits and misses to CloudWatch.
func (c *ListingCache) WithMetrics(m *aws_pkg.MetricsClient) *ListingCache {
	if c != nil {
		c.metrics = m
	}
	return c
}

// Get decodes the cached listing into dest and reports whether it was found.
// On a miss the returned version is the one the caller passes to SetAsync.
// Zero means the version could not be read and nothing should be cached.
func (c *ListingCache) Get(ctx context.Context, namespace string, dest interface{}) (int64, bool) {
	if c == nil {
		return 0, false
	}
	version, hit := c.get(ctx, namespace, dest)
	if c.metrics.IsEnabled() {
		name := aws_pkg.MetricCacheMisses
		if hit {
			name = aws_pkg.MetricCacheHits
		}
		go func() {
			mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = c.metrics.RecordCount(mctx, name, map[string]string{"Namespace": namespace})
		}()
	}
	return version, hit
}

func (c *ListingCache) get(ctx context.Context, namespace string, dest interface{}) (int64, bool) {
	version, err := c.version(ctx, namespace)
	if err != nil {
		return 0, false
	}
	raw, err := c.redis.Get(ctx, listKey(namespace, version)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Debug("Listing cache read failed", zap.String("namespace", namespace), zap.Error(err))
		}
		return version, false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		zap.L().Warn("Failed to unmarshal cached listing", zap.String("namespace", namespace), zap.Error(err))
		return version, false
	}
	return version, true
}

// SetAsync stores value under the version returned by the Get that missed, so a
// listing read before an Invalidate never lands under the newer version.
func (c *ListingCache) SetAsync(namespace string, version int64, value interface{}) {
	if c == nil || version <= 0 {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		zap.L().Warn("Failed to marshal listing for cache", zap.String("namespace", namespace), zap.Error(err))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.set(ctx, namespace, version, payload); err != nil {
			zap.L().Warn("Failed to cache listing", zap.String("namespace", namespace), zap.Error(err))
		}
	}()
}

func (c *ListingCache) set(ctx context.Context, namespace string, version int64, payload []byte) error {
	return c.redis.Set(ctx, listKey(namespace, version), payload, c.ttl).Err()
}

// Invalidate bumps the namespace version. Failures are logged; a stale listing
// lives at most one TTL.
func (c *ListingCache) Invalidate(ctx context.Context, namespace string) {
	if c == nil {
		return
	}
	v, err := c.redis.Incr(ctx, versionKey(namespace)).Result()
	if err != nil {
		zap.L().Error("Failed to invalidate listing cache", zap.String("namespace", namespace), zap.Error(err))
		return
	}
	zap.L().Debug("Listing cache invalidated", zap.String("namespace", namespace), zap.Int64("version", v))
}

func (c *ListingCache) version(ctx context.Context, namespace string) (int64, error) {
	v, err := c.redis.Get(ctx, versionKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX so concurrent initialisers agree on version 1.
		if err := c.redis.SetNX(ctx, versionKey(namespace), 1, 0).Err(); err != nil {
			return 0, fmt.Errorf("init cache version: %w", err)
		}
		return c.redis.Get(ctx, versionKey(namespace)).Int64()
	}
	if err != nil {
		return 0, fmt.Errorf("read cache version: %w", err)
	}
	return v, nil
}

func versionKey(namespace string) string {
	return keyPrefix + namespace + ":version"
}

func listKey(namespace string, version int64) string {
	return fmt.Sprintf("%s%s:v:%d:list", keyPrefix, namespace, version)
}
