package postgres

import (
	"context"
	"database/sql"
	"time"

	"fairmind/domain/core"
	"fairmind/ports"

	"github.com/jmoiron/sqlx"
)

// DatasetRepositoryImpl implements DatasetRepository for PostgreSQL
type DatasetRepositoryImpl struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new PostgreSQL dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &DatasetRepositoryImpl{db: db}
}

// Create registers a dataset
func (r *DatasetRepositoryImpl) Create(ctx context.Context, record *ports.DatasetRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO datasets (
			id, name, description, record_count, group_column,
			source, sample_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			record_count = EXCLUDED.record_count,
			group_column = EXCLUDED.group_column,
			source = EXCLUDED.source,
			sample_hash = EXCLUDED.sample_hash,
			updated_at = NOW()`,
		record.ID.String(), record.Name, record.Description, record.RecordCount,
		record.GroupColumn, record.Source, record.SampleHash.String(),
		record.CreatedAt.Time(), record.UpdatedAt.Time())

	return err
}

// GetByID retrieves a dataset registration by ID
func (r *DatasetRepositoryImpl) GetByID(ctx context.Context, id core.DatasetID) (*ports.DatasetRecord, error) {
	record, err := scanDataset(r.db.QueryRowContext(ctx, `
		SELECT id, name, description, record_count, group_column,
			   source, sample_hash, created_at, updated_at
		FROM datasets
		WHERE id = $1
	`, id.String()))
	if err == sql.ErrNoRows {
		return nil, core.ErrDatasetNotFound
	}
	return record, err
}

// List returns dataset registrations, newest first
func (r *DatasetRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*ports.DatasetRecord, error) {
	query := `
		SELECT id, name, description, record_count, group_column,
			   source, sample_hash, created_at, updated_at
		FROM datasets
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $1"
	}
	if offset > 0 {
		args = append(args, offset)
		if len(args) == 1 {
			query += " OFFSET $1"
		} else {
			query += " OFFSET $2"
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ports.DatasetRecord
	for rows.Next() {
		record, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Delete removes a dataset registration
func (r *DatasetRepositoryImpl) Delete(ctx context.Context, id core.DatasetID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrDatasetNotFound
	}
	return nil
}

func scanDataset(row rowScanner) (*ports.DatasetRecord, error) {
	var record ports.DatasetRecord
	var id, sampleHash string
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&id, &record.Name, &record.Description, &record.RecordCount,
		&record.GroupColumn, &record.Source, &sampleHash, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ID = core.DatasetID(id)
	record.SampleHash = core.Hash(sampleHash)
	record.CreatedAt = core.NewTimestamp(createdAt)
	record.UpdatedAt = core.NewTimestamp(updatedAt)

	return &record, nil
}
