package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPoolNotReady is returned when the pool was never initialized.
var ErrPoolNotReady = errors.New("postgres: pool not initialized")

// Client wraps a pgx connection pool. Acquisition has no timeout of its own:
// once the pool is exhausted callers queue until a connection frees or their
// context is done.
type Client struct {
	pool *pgxpool.Pool
}

// NewClient creates a pooled Postgres client and verifies connectivity.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &Config{
		MinConns:    1,
		MaxConns:    5,
		DialTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres: dsn is required")
	}

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	pc.MinConns = cfg.MinConns
	pc.MaxConns = cfg.MaxConns
	pc.ConnConfig.ConnectTimeout = cfg.DialTimeout
	if cfg.SimpleProtocol {
		pc.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return &Client{pool: pool}, nil
}

// Pool returns the underlying pgx pool.
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// Ready reports whether the pool is initialized and reachable.
func (c *Client) Ready(ctx context.Context) error {
	if c == nil || c.pool == nil {
		return ErrPoolNotReady
	}
	return c.pool.Ping(ctx)
}

// WithinTx runs fn inside one transaction: commit on nil, rollback otherwise.
func (c *Client) WithinTx(ctx context.Context, fn func(pgx.Tx) error) error {
	if c == nil || c.pool == nil {
		return ErrPoolNotReady
	}
	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Close tears the pool down.
func (c *Client) Close() {
	if c != nil && c.pool != nil {
		c.pool.Close()
	}
}
