package repository

import (
	"context"
	"errors"
	"time"

	"FlipScout/internal/domain/models"
)

// ErrNotReady is returned when the backing store has not been initialized.
var ErrNotReady = errors.New("signal store not ready")

// CandidateSource yields at most one candidate per product: the latest price
// snapshot inside the freshness window joined with the latest market comp.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, window time.Duration) ([]models.Candidate, error)
}

// SignalStore persists scored signals. InsertBatch runs inside a single
// transaction: either every signal commits or none do.
type SignalStore interface {
	InsertBatch(ctx context.Context, signals []models.Signal) (int, error)
	RecentSignals(ctx context.Context, productID *int64, since time.Time, limit int) ([]models.Signal, error)
	Health(ctx context.Context) error
	Close() error
}

// SignalPublisher emits persisted signals to downstream consumers.
type SignalPublisher interface {
	PublishBatch(ctx context.Context, signals []models.Signal) error
	Close() error
}

// Metrics records scoring run observability counters.
type Metrics interface {
	RecordRun(outcome string, seconds float64)
	RecordCandidates(n int)
	RecordSignal(status string)
	RecordError(kind string)
}
