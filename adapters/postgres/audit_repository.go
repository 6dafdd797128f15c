package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
	"fairmind/ports"

	"github.com/jmoiron/sqlx"
)

// AuditRepositoryImpl implements AuditRepository for PostgreSQL
type AuditRepositoryImpl struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new PostgreSQL audit repository
func NewAuditRepository(db *sqlx.DB) ports.AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

// Create persists a completed audit. Metric results and the remediation
// plan are stored as JSONB so the aggregate round-trips without a table
// per metric.
func (r *AuditRepositoryImpl) Create(ctx context.Context, audit *fairness.BiasAudit) error {
	resultsJSON, err := json.Marshal(audit.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal audit results: %w", err)
	}
	remediationsJSON, err := json.Marshal(audit.Remediations)
	if err != nil {
		return fmt.Errorf("failed to marshal remediations: %w", err)
	}

	var datasetID *string
	if !core.ID(audit.DatasetID).IsEmpty() {
		s := audit.DatasetID.String()
		datasetID = &s
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO bias_audits (
			id, model_id, dataset_id, sample_size, group_count,
			threshold, positive_label, sample_hash,
			results, remediations, overall_passed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		audit.ID.String(), audit.ModelID.String(), datasetID,
		audit.SampleSize, audit.GroupCount,
		audit.Threshold, audit.PositiveLabel, audit.SampleHash.String(),
		resultsJSON, remediationsJSON, audit.OverallPassed, audit.CreatedAt.Time())

	return err
}

// GetByID retrieves an audit by ID
func (r *AuditRepositoryImpl) GetByID(ctx context.Context, id core.AuditID) (*fairness.BiasAudit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, model_id, dataset_id, sample_size, group_count,
			   threshold, positive_label, sample_hash,
			   results, remediations, overall_passed, created_at
		FROM bias_audits
		WHERE id = $1
	`, id.String())

	audit, err := scanAudit(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrAuditNotFound
	}
	return audit, err
}

// List returns audits matching the filters, newest first
func (r *AuditRepositoryImpl) List(ctx context.Context, filters ports.AuditFilters) ([]*fairness.BiasAudit, error) {
	query := `
		SELECT id, model_id, dataset_id, sample_size, group_count,
			   threshold, positive_label, sample_hash,
			   results, remediations, overall_passed, created_at
		FROM bias_audits
		WHERE 1=1
	`
	args := []interface{}{}

	if filters.ModelID != nil {
		args = append(args, filters.ModelID.String())
		query += fmt.Sprintf(" AND model_id = $%d", len(args))
	}
	if filters.Passed != nil {
		args = append(args, *filters.Passed)
		query += fmt.Sprintf(" AND overall_passed = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []*fairness.BiasAudit
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, audit)
	}

	return audits, rows.Err()
}

// Delete removes an audit by ID
func (r *AuditRepositoryImpl) Delete(ctx context.Context, id core.AuditID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bias_audits WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrAuditNotFound
	}
	return nil
}

// CountByModel returns the number of audits recorded for a model
func (r *AuditRepositoryImpl) CountByModel(ctx context.Context, modelID core.ModelID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bias_audits WHERE model_id = $1
	`, modelID.String()).Scan(&count)
	return count, err
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAudit(row rowScanner) (*fairness.BiasAudit, error) {
	var audit fairness.BiasAudit
	var id, modelID, sampleHash string
	var datasetID sql.NullString
	var resultsJSON, remediationsJSON []byte
	var createdAt time.Time

	err := row.Scan(
		&id, &modelID, &datasetID, &audit.SampleSize, &audit.GroupCount,
		&audit.Threshold, &audit.PositiveLabel, &sampleHash,
		&resultsJSON, &remediationsJSON, &audit.OverallPassed, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	audit.ID = core.AuditID(id)
	audit.ModelID = core.ModelID(modelID)
	if datasetID.Valid {
		audit.DatasetID = core.DatasetID(datasetID.String)
	}
	audit.SampleHash = core.Hash(sampleHash)
	audit.CreatedAt = core.NewTimestamp(createdAt)

	audit.Results = make(map[fairness.MetricName]fairness.FairnessResult)
	if err := json.Unmarshal(resultsJSON, &audit.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit results: %w", err)
	}
	audit.Remediations = []remediation.RemediationResult{}
	if err := json.Unmarshal(remediationsJSON, &audit.Remediations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal remediations: %w", err)
	}

	return &audit, nil
}
