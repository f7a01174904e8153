package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexkart/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productListKeyPrefix = "products:list:"
	defaultTTL           = 5 * time.Minute
)

// ProductCache caches rendered product listings in Redis. Sync runs
// and admin writes invalidate the whole listing namespace; a cold key
// is simply recomputed from the database.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache creates a cache backed by a new Redis client
func NewProductCache(cfg config.RedisConfig, logger *zap.Logger) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewProductCacheWithClient(client, logger), nil
}

// NewProductCacheWithClient creates a cache with an existing client.
// The caller retains ownership of the client.
func NewProductCacheWithClient(client *redis.Client, logger *zap.Logger) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    defaultTTL,
		logger: logger,
	}
}

// listKey builds the cache key for one listing variant
func listKey(variant string) string {
	return productListKeyPrefix + variant
}

// GetList retrieves a cached listing into dest. Returns false on a
// miss; cache failures degrade to a miss rather than an error.
func (c *ProductCache) GetList(ctx context.Context, variant string, dest any) bool {
	data, err := c.client.Get(ctx, listKey(variant)).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("Product cache read failed", zap.String("variant", variant), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Product cache entry corrupt", zap.String("variant", variant), zap.Error(err))
		return false
	}
	return true
}

// SetList stores a listing under the variant key
func (c *ProductCache) SetList(ctx context.Context, variant string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Product cache marshal failed", zap.String("variant", variant), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, listKey(variant), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Product cache write failed", zap.String("variant", variant), zap.Error(err))
	}
}

// InvalidateAll drops every cached listing variant
func (c *ProductCache) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, productListKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Product cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Product cache invalidation failed", zap.Error(err))
		return
	}
	c.logger.Debug("Product cache invalidated", zap.Int("keys", len(keys)))
}

// Close closes the underlying Redis client
func (c *ProductCache) Close() error {
	return c.client.Close()
}
