package usecase

import (
	"context"
	"time"

	"FlipScout/internal/domain/models"
	domrepo "FlipScout/internal/domain/repository"
	"FlipScout/internal/valuation"
	"FlipScout/pkg/cache"
	applogger "FlipScout/pkg/logger"
)

// ScoreRunner orchestrates one scoring run: fetch candidates, valuate each,
// persist the batch transactionally, then fan out to optional sinks.
type ScoreRunner struct {
	src     domrepo.CandidateSource
	store   domrepo.SignalStore
	pub     domrepo.SignalPublisher // nil when event publishing is disabled
	cache   cache.Service           // nil when no read cache is wired
	metrics domrepo.Metrics
	l       *applogger.Logger
}

// NewScoreRunner creates the scoring orchestrator.
func NewScoreRunner(src domrepo.CandidateSource, store domrepo.SignalStore, pub domrepo.SignalPublisher, cacheSvc cache.Service, metrics domrepo.Metrics) *ScoreRunner {
	return &ScoreRunner{src: src, store: store, pub: pub, cache: cacheSvc, metrics: metrics}
}

// SetLogger injects a structured logger.
func (u *ScoreRunner) SetLogger(l *applogger.Logger) { u.l = l }

// Run executes one scoring pass. Candidate processing is strictly sequential;
// all inserts share one transaction, so a failure persists nothing.
func (u *ScoreRunner) Run(ctx context.Context, opts models.RunOptions) (models.RunResult, error) {
	start := time.Now()

	if u.src == nil || u.store == nil {
		u.metrics.RecordError("not_ready")
		return models.RunResult{}, domrepo.ErrNotReady
	}

	candidates, err := u.src.FetchCandidates(ctx, opts.Window)
	if err != nil {
		u.metrics.RecordError("candidate_fetch")
		u.metrics.RecordRun("error", time.Since(start).Seconds())
		return models.RunResult{}, err
	}
	u.metrics.RecordCandidates(len(candidates))

	signals := make([]models.Signal, 0, len(candidates))
	for _, c := range candidates {
		v := valuation.Valuate(c.PriceCents, c.MedianSaleCents, c.Sales30d, c.Variance)
		u.metrics.RecordSignal(string(v.Status))
		signals = append(signals, models.Signal{
			ProductID:       c.ProductID,
			PriceSnapshotID: c.PriceSnapshotID,
			CompID:          c.CompID,
			Status:          v.Status,
			NetProfitCents:  v.NetProfitCents,
			MarginPct:       v.MarginPct,
			Confidence:      v.Confidence,
			Rationale:       v.Rationale,
		})
	}

	if opts.DryRun {
		u.metrics.RecordRun("dry_run", time.Since(start).Seconds())
		u.logRun("dry run complete", len(candidates), 0, start)
		return models.RunResult{Processed: len(candidates), Inserted: 0}, nil
	}

	inserted, err := u.store.InsertBatch(ctx, signals)
	if err != nil {
		u.metrics.RecordError("signal_insert")
		u.metrics.RecordRun("error", time.Since(start).Seconds())
		return models.RunResult{}, err
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, "recent:*"); err != nil && u.l != nil {
			u.l.Warn("cache invalidation failed", applogger.Error(err))
		}
	}

	// Publishing happens after commit. A publish failure must not undo
	// persisted signals, so it is logged and counted, never returned.
	if u.pub != nil && len(signals) > 0 {
		if err := u.pub.PublishBatch(ctx, signals); err != nil {
			u.metrics.RecordError("signal_publish")
			if u.l != nil {
				u.l.Error("signal publish failed", applogger.Error(err), applogger.Int("signals", len(signals)))
			}
		}
	}

	u.metrics.RecordRun("ok", time.Since(start).Seconds())
	u.logRun("scoring run complete", len(candidates), inserted, start)
	return models.RunResult{Processed: len(candidates), Inserted: inserted}, nil
}

func (u *ScoreRunner) logRun(msg string, processed, inserted int, start time.Time) {
	if u.l == nil {
		return
	}
	u.l.Info(msg,
		applogger.Int("processed", processed),
		applogger.Int("inserted", inserted),
		applogger.Duration("duration_ms", time.Since(start)),
	)
}
