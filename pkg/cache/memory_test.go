package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", map[string]int{"n": 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]int
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["n"] != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	var got string
	if err := c.Get(context.Background(), "absent", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	var got string
	if err := c.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	_ = c.Set(ctx, "recent:1", "a", 0)
	_ = c.Set(ctx, "recent:2", "b", 0)
	_ = c.Set(ctx, "other", "c", 0)

	if err := c.DeleteByPattern(ctx, "recent:*"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var got string
	if err := c.Get(ctx, "recent:1", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("recent:1 should be gone, got %v", err)
	}
	if err := c.Get(ctx, "other", &got); err != nil {
		t.Fatalf("other should survive: %v", err)
	}
}

func TestLayeredCacheFallsBackToRemote(t *testing.T) {
	local := NewMemoryCache()
	remote := NewMemoryCache()
	layered := NewLayeredCache(local, remote)
	ctx := context.Background()

	if err := remote.Set(ctx, "k", 42, time.Minute); err != nil {
		t.Fatalf("seed remote: %v", err)
	}
	var got int
	if err := layered.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d", got)
	}
}
