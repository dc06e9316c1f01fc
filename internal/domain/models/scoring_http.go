package models

// Requests for the scoring HTTP endpoints. Defined in domain for consistency and reuse.

type RunRequest struct {
	WindowHours int  `json:"window_hours" validate:"omitempty,gte=1,lte=24"`
	DryRun      bool `json:"dry_run"`
}

type RecentSignalsRequest struct {
	ProductID *int64 `query:"product_id" json:"product_id" validate:"omitempty,gt=0"`
	Limit     int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
	Since     string `query:"since" json:"since"`
}
