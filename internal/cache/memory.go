package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, found := m.c.Get(key)
	if !found {
		return "", false, nil
	}
	label, ok := v.(string)
	return label, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, label string, ttl time.Duration) error {
	m.c.Set(key, label, ttl)
	return nil
}
