package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listVersionKey  = "catalog:products:version"
	listKeyPrefix   = "catalog:products:list:"
	detailKeyPrefix = "catalog:products:id:"
)

// Cache wraps Redis helpers for JSON payloads. A nil client disables caching.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// GetJSON unmarshals a cached JSON payload into dst. It reports whether the key existed.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
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
func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if !c.enabled() || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// listVersion returns the generation counter embedded in list keys.
func (c *Cache) listVersion(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	v, err := c.client.Get(ctx, listVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// ListKey builds the cache key for a filtered product list under the current generation.
func (c *Cache) ListKey(ctx context.Context, filter string) (string, error) {
	v, err := c.listVersion(ctx)
	if err != nil {
		return "", err
	}
	return listKeyPrefix + strconv.FormatInt(v, 10) + ":" + filter, nil
}

// Invalidate drops cached product details for ids and retires every cached list
// by bumping the list generation. Old list keys expire on their own TTL.
func (c *Cache) Invalidate(ctx context.Context, productIDs ...string) error {
	if !c.enabled() {
		return nil
	}
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, listVersionKey)
	for _, id := range productIDs {
		if id != "" {
			pipe.Del(ctx, detailKeyPrefix+id)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func detailCacheKey(id string) string {
	return detailKeyPrefix + id
}
