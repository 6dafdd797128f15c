package app

import (
	"context"
	"fmt"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/ports"
)

// DatasetService manages the registry of audited datasets
type DatasetService struct {
	datasetRepo ports.DatasetRepository
}

// RegisterDatasetRequest defines inputs for a dataset registration
type RegisterDatasetRequest struct {
	Name        string
	Description string
	GroupColumn string
	Source      string
	Samples     fairness.Samples
}

// NewDatasetService creates a dataset service
func NewDatasetService(datasetRepo ports.DatasetRepository) *DatasetService {
	return &DatasetService{datasetRepo: datasetRepo}
}

// Register validates and persists a dataset registration. The sample
// fingerprint is recorded so later audits can be tied back to the data
// they ran against.
func (s *DatasetService) Register(ctx context.Context, req RegisterDatasetRequest) (*ports.DatasetRecord, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("dataset name is required")
	}
	if err := req.Samples.Validate(); err != nil {
		return nil, err
	}
	if req.Source == "" {
		req.Source = "upload"
	}

	now := core.Now()
	record := &ports.DatasetRecord{
		ID:          core.DatasetID(core.NewID()),
		Name:        req.Name,
		Description: req.Description,
		RecordCount: req.Samples.Len(),
		GroupColumn: req.GroupColumn,
		Source:      req.Source,
		SampleHash:  core.ComputeSampleHash(req.Samples.Predictions, req.Samples.GroundTruth, req.Samples.Groups),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.datasetRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist dataset: %w", err)
	}
	return record, nil
}

// Get retrieves a dataset registration by ID
func (s *DatasetService) Get(ctx context.Context, id core.DatasetID) (*ports.DatasetRecord, error) {
	return s.datasetRepo.GetByID(ctx, id)
}

// List returns dataset registrations, newest first
func (s *DatasetService) List(ctx context.Context, limit, offset int) ([]*ports.DatasetRecord, error) {
	return s.datasetRepo.List(ctx, limit, offset)
}

// Delete removes a dataset registration
func (s *DatasetService) Delete(ctx context.Context, id core.DatasetID) error {
	return s.datasetRepo.Delete(ctx, id)
}
