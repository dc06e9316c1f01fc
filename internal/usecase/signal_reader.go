package usecase

import (
	"context"
	"fmt"
	"time"

	"FlipScout/internal/domain/models"
	domrepo "FlipScout/internal/domain/repository"
	"FlipScout/pkg/cache"
)

// SignalReader serves recent persisted signals through a short-TTL cache.
type SignalReader struct {
	store domrepo.SignalStore
	cache cache.Service // nil disables caching
	ttl   time.Duration
}

// NewSignalReader creates a cached signal reader.
func NewSignalReader(store domrepo.SignalStore, cacheSvc cache.Service, ttl time.Duration) *SignalReader {
	return &SignalReader{store: store, cache: cacheSvc, ttl: ttl}
}

// Recent returns up to limit signals, newest first, optionally filtered by
// product and a lower time bound.
func (r *SignalReader) Recent(ctx context.Context, productID *int64, since time.Time, limit int) ([]models.Signal, error) {
	if r.store == nil {
		return nil, domrepo.ErrNotReady
	}

	key := recentKey(productID, since, limit)
	if r.cache != nil {
		var cached []models.Signal
		if err := r.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	signals, err := r.store.RecentSignals(ctx, productID, since, limit)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, key, signals, r.ttl)
	}
	return signals, nil
}

func recentKey(productID *int64, since time.Time, limit int) string {
	var pid, ts int64
	if productID != nil {
		pid = *productID
	}
	if !since.IsZero() {
		ts = since.Unix()
	}
	return fmt.Sprintf("recent:%d:%d:%d", pid, ts, limit)
}
