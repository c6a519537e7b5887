package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

const catalogKeyPrefix = "pricing:catalog:"

// JSONCache wraps Redis helpers for JSON payloads.
type JSONCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJSONCache constructs a cache helper. A nil client or non-positive TTL disables caching.
func NewJSONCache(client *redis.Client, ttl time.Duration) *JSONCache {
	return &JSONCache{client: client, ttl: ttl}
}

func (c *JSONCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// GetJSON unmarshals a cached JSON payload into dst. It reports whether the key existed.
func (c *JSONCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if !c.enabled() || key == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serialises v as JSON and stores it with the configured TTL.
func (c *JSONCache) SetJSON(ctx context.Context, key string, v any) error {
	if !c.enabled() || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// CachedCatalog decorates a CatalogLookup with a read-through Redis cache.
// Cache failures are logged and the lookup falls through to the next layer.
// Missing items are never cached.
type CachedCatalog struct {
	next   contracts.CatalogLookup
	cache  *JSONCache
	logger zerolog.Logger
}

// NewCachedCatalog wraps next with cache.
func NewCachedCatalog(next contracts.CatalogLookup, cache *JSONCache, logger zerolog.Logger) *CachedCatalog {
	return &CachedCatalog{
		next:   next,
		cache:  cache,
		logger: logger.With().Str("component", "catalog_cache").Logger(),
	}
}

var _ contracts.CatalogLookup = (*CachedCatalog)(nil)

func productKey(id string) string     { return catalogKeyPrefix + "product:" + id }
func halfProductKey(id string) string { return catalogKeyPrefix + "half_product:" + id }

// GetProduct implements CatalogLookup.
func (c *CachedCatalog) GetProduct(ctx context.Context, productID string) (*domain.ProductCatalog, error) {
	key := productKey(productID)

	var cached domain.ProductCatalog
	hit, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
	}
	if hit {
		return &cached, nil
	}

	product, err := c.next.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, key, product); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
	return product, nil
}

// GetHalfProduct implements CatalogLookup.
func (c *CachedCatalog) GetHalfProduct(ctx context.Context, halfProductID string) (*domain.HalfProductCatalog, error) {
	key := halfProductKey(halfProductID)

	var cached domain.HalfProductCatalog
	hit, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
	}
	if hit {
		return &cached, nil
	}

	half, err := c.next.GetHalfProduct(ctx, halfProductID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, key, half); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
	return half, nil
}
