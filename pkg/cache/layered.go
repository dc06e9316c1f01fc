package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache reads through memory first, then the remote layer, refilling
// memory on a remote hit. Writes and deletes go to both layers.
type LayeredCache struct {
	local  Service
	remote Service // may be nil: memory-only deployments
}

// NewLayeredCache creates a two-layer cache. remote may be nil.
func NewLayeredCache(local, remote Service) *LayeredCache {
	return &LayeredCache{local: local, remote: remote}
}

func (c *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := c.local.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	if c.remote != nil {
		return c.remote.Set(ctx, key, value, expiration)
	}
	return nil
}

func (c *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	err := c.local.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) || c.remote == nil {
		return err
	}
	if err := c.remote.Get(ctx, key, dest); err != nil {
		return err
	}
	// refill local; TTL is managed by callers, keep a short default here
	_ = c.local.Set(ctx, key, dest, 10*time.Second)
	return nil
}

func (c *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	err := c.local.Delete(ctx, keys...)
	if c.remote != nil {
		if rerr := c.remote.Delete(ctx, keys...); err == nil {
			err = rerr
		}
	}
	return err
}

func (c *LayeredCache) DeleteByPattern(ctx context.Context, pattern string) error {
	err := c.local.DeleteByPattern(ctx, pattern)
	if c.remote != nil {
		if rerr := c.remote.DeleteByPattern(ctx, pattern); err == nil {
			err = rerr
		}
	}
	return err
}

func (c *LayeredCache) Close() error {
	err := c.local.Close()
	if c.remote != nil {
		if rerr := c.remote.Close(); err == nil {
			err = rerr
		}
	}
	return err
}
