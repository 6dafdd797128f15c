package migration

import (
	"context"
	"fmt"

	"fairmind/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createDatasetsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create datasets table")
	}

	if err := r.createBiasAuditsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create bias_audits table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createDatasetsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			record_count INTEGER NOT NULL DEFAULT 0,
			group_column VARCHAR(255),
			source VARCHAR(50) DEFAULT 'upload',
			sample_hash VARCHAR(64),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createBiasAuditsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bias_audits (
			id UUID PRIMARY KEY,
			model_id VARCHAR(255) NOT NULL,
			dataset_id UUID REFERENCES datasets(id) ON DELETE SET NULL,
			sample_size INTEGER NOT NULL,
			group_count INTEGER NOT NULL,
			threshold DECIMAL(4,3) NOT NULL,
			positive_label DOUBLE PRECISION NOT NULL DEFAULT 1.0,
			sample_hash VARCHAR(64) NOT NULL,
			results JSONB NOT NULL,
			remediations JSONB NOT NULL DEFAULT '[]'::jsonb,
			overall_passed BOOLEAN NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_audits_model_id ON bias_audits(model_id)",
		"CREATE INDEX IF NOT EXISTS idx_audits_model_created ON bias_audits(model_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_audits_passed ON bias_audits(overall_passed)",
		"CREATE INDEX IF NOT EXISTS idx_audits_created_at ON bias_audits(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_audits_dataset_id ON bias_audits(dataset_id)",

		"CREATE INDEX IF NOT EXISTS idx_datasets_created_at ON datasets(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_datasets_name ON datasets(name)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Log but don't fail on index creation errors
			fmt.Printf("Warning: failed to create index: %v\n", err)
		}
	}

	return nil
}
