package ports

import (
	"context"

	"fairmind/domain/core"
)

// DatasetRecord is a persisted registration of an audited dataset
type DatasetRecord struct {
	ID          core.DatasetID `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	RecordCount int            `json:"record_count" db:"record_count"`
	GroupColumn string         `json:"group_column" db:"group_column"`
	Source      string         `json:"source" db:"source"`
	SampleHash  core.Hash      `json:"sample_hash" db:"sample_hash"`
	CreatedAt   core.Timestamp `json:"created_at" db:"created_at"`
	UpdatedAt   core.Timestamp `json:"updated_at" db:"updated_at"`
}

// DatasetRepository persists dataset registrations
type DatasetRepository interface {
	Create(ctx context.Context, record *DatasetRecord) error
	GetByID(ctx context.Context, id core.DatasetID) (*DatasetRecord, error)
	List(ctx context.Context, limit, offset int) ([]*DatasetRecord, error)
	Delete(ctx context.Context, id core.DatasetID) error
}
