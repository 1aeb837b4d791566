package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecommerce/internal/domain"
)

// ErrCacheMiss is returned when the requested product is not cached.
var ErrCacheMiss = errors.New("product not in cache")

// ProductCache is a read-through cache for product rows. Writers must call
// Invalidate after every durable product mutation, stock decrements included.
type ProductCache interface {
	Get(ctx context.Context, productID int64) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Invalidate(ctx context.Context, productIDs ...int64) error
}

type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) ProductCache {
	return &redisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func productKey(productID int64) string {
	return fmt.Sprintf("product:%d", productID)
}

func (c *redisProductCache) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	data, err := c.client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read product %d from cache: %w", productID, err)
	}

	product := &domain.Product{}
	if err := json.Unmarshal(data, product); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		c.logger.Warn("Dropping unreadable product cache entry",
			zap.Int64("product_id", productID),
			zap.Error(err))
		return nil, ErrCacheMiss
	}
	return product, nil
}

func (c *redisProductCache) Set(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %d for cache: %w", product.ID, err)
	}
	if err := c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache product %d: %w", product.ID, err)
	}
	return nil
}

func (c *redisProductCache) Invalidate(ctx context.Context, productIDs ...int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = productKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache entries: %w", err)
	}
	return nil
}

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
