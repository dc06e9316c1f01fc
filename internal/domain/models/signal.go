package models

import "time"

// Status is the decision emitted for a scored candidate.
type Status string

const (
	StatusBuyable Status = "BUYABLE"
	StatusWatch   Status = "WATCH"
	StatusPass    Status = "PASS"
)

// Candidate is one product eligible for scoring: its freshest price snapshot
// joined with the most recent market comparable. Comp columns are nil when no
// comparable exists yet.
type Candidate struct {
	ProductID       int64
	PriceSnapshotID int64
	CompID          *int64
	PriceCents      int64
	MedianSaleCents *int64
	Sales30d        *int64
	Variance        *float64
}

// Valuation is the decision tuple produced by the valuation rule.
type Valuation struct {
	Status         Status  `json:"status"`
	NetProfitCents int64   `json:"net_profit_cents"`
	MarginPct      float64 `json:"margin_pct"`
	Confidence     float64 `json:"confidence"`
	Rationale      string  `json:"rationale"`
}

// Signal is one persisted valuation row. Signals are append-only: a scoring
// run only ever inserts, never updates or deletes.
type Signal struct {
	ID              int64     `json:"id,omitempty"`
	ProductID       int64     `json:"product_id"`
	PriceSnapshotID int64     `json:"price_snapshot_id"`
	CompID          *int64    `json:"comp_id,omitempty"`
	Status          Status    `json:"status"`
	NetProfitCents  int64     `json:"net_profit_cents"`
	MarginPct       float64   `json:"margin_pct"`
	Confidence      float64   `json:"confidence"`
	Rationale       string    `json:"rationale"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// RunOptions controls one scoring run.
type RunOptions struct {
	Window time.Duration // freshness window for price snapshots
	DryRun bool          // evaluate without persisting
}

// RunResult reports what one scoring run did.
type RunResult struct {
	Processed int `json:"processed"`
	Inserted  int `json:"inserted"`
}
