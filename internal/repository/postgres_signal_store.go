package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"FlipScout/internal/domain/models"
	domrepo "FlipScout/internal/domain/repository"
	applogger "FlipScout/pkg/logger"
	pkgpg "FlipScout/pkg/postgres"
)

// candidateQuery pairs each product's freshest price snapshot with its latest
// market comp. DISTINCT ON with the created_at/id ordering makes the
// "most recent" pick deterministic when timestamps tie; the comp join stays
// LEFT so products without comps still surface (and get the low-confidence
// fallback).
const candidateQuery = `
	WITH latest_comp AS (
		SELECT DISTINCT ON (product_id)
			id, product_id, median_sale_cents, sales_30d, variance
		FROM market_comps
		ORDER BY product_id, created_at DESC, id DESC
	),
	latest_price AS (
		SELECT DISTINCT ON (product_id)
			id, product_id, price_cents, created_at
		FROM price_snapshots
		ORDER BY product_id, created_at DESC, id DESC
	)
	SELECT p.id, ps.id, mc.id, ps.price_cents, mc.median_sale_cents, mc.sales_30d, mc.variance
	FROM products p
	JOIN latest_price ps ON ps.product_id = p.id
	LEFT JOIN latest_comp mc ON mc.product_id = p.id
	WHERE ps.created_at > now() - make_interval(secs => $1)
`

const insertSignalQuery = `
	INSERT INTO signals (product_id, price_snapshot_id, comp_id, status,
	                     net_profit_cents, margin_pct, confidence, rationale)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const recentSignalsQuery = `
	SELECT id, product_id, price_snapshot_id, comp_id, status,
	       net_profit_cents, margin_pct, confidence, rationale, created_at
	FROM signals
	WHERE ($1::bigint IS NULL OR product_id = $1)
	  AND ($2::timestamptz IS NULL OR created_at >= $2)
	ORDER BY created_at DESC, id DESC
	LIMIT $3
`

// PostgresSignalStore implements CandidateSource and SignalStore on Postgres.
type PostgresSignalStore struct {
	client *pkgpg.Client
	l      *applogger.Logger
}

// NewPostgresSignalStore creates the Postgres-backed store.
func NewPostgresSignalStore(client *pkgpg.Client) *PostgresSignalStore {
	return &PostgresSignalStore{client: client}
}

// SetLogger injects a structured logger.
func (s *PostgresSignalStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *PostgresSignalStore) FetchCandidates(ctx context.Context, window time.Duration) ([]models.Candidate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	start := time.Now()

	rows, err := s.client.Pool().Query(ctx, candidateQuery, window.Seconds())
	if err != nil {
		s.logError("candidate query error", err)
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candidate, 0, 64)
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ProductID, &c.PriceSnapshotID, &c.CompID,
			&c.PriceCents, &c.MedianSaleCents, &c.Sales30d, &c.Variance); err != nil {
			s.logError("candidate scan error", err)
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		s.logError("candidate rows error", err)
		return nil, fmt.Errorf("rows: %w", err)
	}

	if s.l != nil {
		s.l.Info("candidates fetched",
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// InsertBatch writes all signals inside one transaction. Any insert failure
// rolls back the whole batch; no partial signal set is ever persisted.
func (s *PostgresSignalStore) InsertBatch(ctx context.Context, signals []models.Signal) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	if len(signals) == 0 {
		return 0, nil
	}

	inserted := 0
	err := s.client.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, sig := range signals {
			if _, err := tx.Exec(ctx, insertSignalQuery,
				sig.ProductID, sig.PriceSnapshotID, sig.CompID, string(sig.Status),
				sig.NetProfitCents, sig.MarginPct, sig.Confidence, sig.Rationale,
			); err != nil {
				return fmt.Errorf("insert signal product=%d: %w", sig.ProductID, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		s.logError("signal insert error", err)
		return 0, err
	}
	return inserted, nil
}

func (s *PostgresSignalStore) RecentSignals(ctx context.Context, productID *int64, since time.Time, limit int) ([]models.Signal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var sinceArg *time.Time
	if !since.IsZero() {
		sinceArg = &since
	}

	rows, err := s.client.Pool().Query(ctx, recentSignalsQuery, productID, sinceArg, limit)
	if err != nil {
		s.logError("recent signals query error", err)
		return nil, fmt.Errorf("recent signals: %w", err)
	}
	defer rows.Close()

	out := make([]models.Signal, 0, limit)
	for rows.Next() {
		var sig models.Signal
		var status string
		if err := rows.Scan(&sig.ID, &sig.ProductID, &sig.PriceSnapshotID, &sig.CompID,
			&status, &sig.NetProfitCents, &sig.MarginPct, &sig.Confidence,
			&sig.Rationale, &sig.CreatedAt); err != nil {
			s.logError("recent signals scan error", err)
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		sig.Status = models.Status(status)
		out = append(out, sig)
	}
	return out, rows.Err()
}

func (s *PostgresSignalStore) Health(ctx context.Context) error {
	if s.client == nil {
		return domrepo.ErrNotReady
	}
	if err := s.client.Ready(ctx); err != nil {
		if errors.Is(err, pkgpg.ErrPoolNotReady) {
			return domrepo.ErrNotReady
		}
		return err
	}
	return nil
}

func (s *PostgresSignalStore) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

func (s *PostgresSignalStore) ready() error {
	if s.client == nil || s.client.Pool() == nil {
		return domrepo.ErrNotReady
	}
	return nil
}

func (s *PostgresSignalStore) logError(msg string, err error) {
	if s.l != nil {
		s.l.Error(msg, applogger.Error(err))
	}
}
