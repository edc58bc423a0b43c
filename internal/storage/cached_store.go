package storage

import (
	"context"
	json "github.com/goccy/go-json"
	"hourbot/internal/models"
	"hourbot/internal/providers"
	"hourbot/internal/storage/interfaces"
	"time"
)

// CachedStore serves AllEntries from the cache provider and drops the identity's
// key on every write that goes through it.
type CachedStore struct {
	inner  interfaces.StoreInterface
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewCachedStore(inner interfaces.StoreInterface, cache providers.CacheProviderInterface, logger providers.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

func entriesKey(identity string) string {
	return "entries:" + identity
}

func (c *CachedStore) Name() string {
	return c.inner.Name()
}

// Writes drop the key before and after the inner call. A read that started before
// the write can still refill the key with old entries until the TTL expires.
func (c *CachedStore) Append(ctx context.Context, identity string, hours float64, at time.Time) error {
	c.cache.Del(entriesKey(identity))
	defer c.cache.Del(entriesKey(identity))
	return c.inner.Append(ctx, identity, hours, at)
}

func (c *CachedStore) Reset(ctx context.Context, identity string, at time.Time) error {
	c.cache.Del(entriesKey(identity))
	defer c.cache.Del(entriesKey(identity))
	return c.inner.Reset(ctx, identity, at)
}

func (c *CachedStore) AllEntries(ctx context.Context, identity string) ([]models.Entry, error) {
	key := entriesKey(identity)
	if data, ok := c.cache.Get(key); ok {
		var entries []models.Entry
		if err := json.Unmarshal(data, &entries); err == nil {
			return entries, nil
		}
		c.logger.Warnf(providers.TypeApp, "Dropping undecodable cache entry %s", key)
		c.cache.Del(key)
	}

	entries, err := c.inner.AllEntries(ctx, identity)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		c.cache.Set(key, data)
	}
	return entries, nil
}

func (c *CachedStore) Close() error {
	return c.inner.Close()
}
