package migration

import (
	"context"

	"leanfunnel/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// Runner creates and upgrades the snapshot history schema
type Runner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *Runner {
	return &Runner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *Runner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every step is idempotent.
func (r *Runner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createSnapshotsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create funnel_snapshots table")
	}

	if err := r.addFinalValueColumn(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add final_value_column to funnel_snapshots")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *Runner) createSnapshotsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS funnel_snapshots (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL,
			computed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			total_enquiries INTEGER NOT NULL DEFAULT 0,
			sample_approved INTEGER NOT NULL DEFAULT 0,
			orders_confirmed INTEGER NOT NULL DEFAULT 0,
			overall_conversion DOUBLE PRECISION NOT NULL DEFAULT 0,
			lead_to_sample DOUBLE PRECISION NOT NULL DEFAULT 0,
			sample_to_order DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_expected_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			final_order_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			value_conversion DOUBLE PRECISION NOT NULL DEFAULT 0
		)
	`)
	return err
}

// addFinalValueColumn upgrades tables created before the detected column was recorded
func (r *Runner) addFinalValueColumn(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'funnel_snapshots' AND column_name = 'final_value_column'
			) THEN
				ALTER TABLE funnel_snapshots ADD COLUMN final_value_column TEXT NOT NULL DEFAULT '';
			END IF;
		END $$;
	`)
	return err
}

func (r *Runner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_funnel_snapshots_computed_at ON funnel_snapshots(computed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_funnel_snapshots_source ON funnel_snapshots(source)`,
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
