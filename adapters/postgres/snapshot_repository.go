package postgres

import (
	"context"
	"errors"
	"time"

	"leanfunnel/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrInvalidLimit is returned when ListRecent is asked for a non-positive number of rows
var ErrInvalidLimit = errors.New("limit must be positive")

// SnapshotRepositoryImpl implements SnapshotRepository for PostgreSQL
type SnapshotRepositoryImpl struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new PostgreSQL snapshot repository
func NewSnapshotRepository(db *sqlx.DB) ports.SnapshotRepository {
	return &SnapshotRepositoryImpl{db: db}
}

// Save inserts a snapshot, assigning its ID and timestamp when unset
func (r *SnapshotRepositoryImpl) Save(ctx context.Context, snapshot *ports.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if snapshot.ComputedAt.IsZero() {
		snapshot.ComputedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO funnel_snapshots (
			id, source, computed_at, final_value_column,
			total_enquiries, sample_approved, orders_confirmed,
			overall_conversion, lead_to_sample, sample_to_order,
			total_expected_value, final_order_value, value_conversion
		) VALUES (
			:id, :source, :computed_at, :final_value_column,
			:total_enquiries, :sample_approved, :orders_confirmed,
			:overall_conversion, :lead_to_sample, :sample_to_order,
			:total_expected_value, :final_order_value, :value_conversion
		)
	`, snapshot)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P01" { // undefined_table
			return errors.New("funnel_snapshots table missing; run the migrate command")
		}
		return err
	}
	return nil
}

// ListRecent returns up to limit snapshots, newest first
func (r *SnapshotRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]ports.Snapshot, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	snapshots := []ports.Snapshot{}
	err := r.db.SelectContext(ctx, &snapshots, `
		SELECT id, source, computed_at, final_value_column,
			total_enquiries, sample_approved, orders_confirmed,
			overall_conversion, lead_to_sample, sample_to_order,
			total_expected_value, final_order_value, value_conversion
		FROM funnel_snapshots
		ORDER BY computed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
