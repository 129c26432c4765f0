package ports

import (
	"context"
	"time"

	"leanfunnel/domain/enquiry"
)

// Snapshot is one recorded computation of the funnel metrics
type Snapshot struct {
	ID               string    `db:"id" json:"id"`
	Source           string    `db:"source" json:"source"`
	ComputedAt       time.Time `db:"computed_at" json:"computed_at"`
	FinalValueColumn string    `db:"final_value_column" json:"final_value_column"`
	enquiry.Metrics
}

// SnapshotRepository stores computed metrics for the history view.
// It is write-and-list only; nothing downstream reads snapshots back into a computation.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	ListRecent(ctx context.Context, limit int) ([]Snapshot, error)
}
