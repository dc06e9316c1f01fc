package usecase

import (
	"context"
	"testing"
	"time"

	"FlipScout/internal/domain/models"
	"FlipScout/pkg/cache"
)

type countingStore struct {
	fakeStore
	recentCalls int
	rows        []models.Signal
}

func (c *countingStore) RecentSignals(context.Context, *int64, time.Time, int) ([]models.Signal, error) {
	c.recentCalls++
	return c.rows, nil
}

func TestRecentServesFromCacheOnSecondCall(t *testing.T) {
	store := &countingStore{rows: []models.Signal{{ID: 1, ProductID: 7, Status: models.StatusWatch}}}
	reader := NewSignalReader(store, cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	first, err := reader.Recent(ctx, nil, time.Time{}, 50)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := reader.Recent(ctx, nil, time.Time{}, 50)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if store.recentCalls != 1 {
		t.Fatalf("expected one store hit, got %d", store.recentCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ProductID != 7 {
		t.Fatalf("unexpected rows: %v / %v", first, second)
	}
}

func TestRecentDistinctParamsMissCache(t *testing.T) {
	store := &countingStore{}
	reader := NewSignalReader(store, cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	pid := int64(3)
	if _, err := reader.Recent(ctx, nil, time.Time{}, 50); err != nil {
		t.Fatalf("recent: %v", err)
	}
	if _, err := reader.Recent(ctx, &pid, time.Time{}, 50); err != nil {
		t.Fatalf("recent: %v", err)
	}
	if store.recentCalls != 2 {
		t.Fatalf("distinct params must not share cache entries, got %d calls", store.recentCalls)
	}
}

func TestRecentWithoutCacheGoesStraightThrough(t *testing.T) {
	store := &countingStore{}
	reader := NewSignalReader(store, nil, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := reader.Recent(ctx, nil, time.Time{}, 10); err != nil {
			t.Fatalf("recent: %v", err)
		}
	}
	if store.recentCalls != 3 {
		t.Fatalf("expected 3 store hits, got %d", store.recentCalls)
	}
}
