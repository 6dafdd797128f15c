package app

import (
	"context"
	"fmt"
	"time"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
	"fairmind/internal"
	"fairmind/ports"
)

// AuditService orchestrates a full bias audit: metric computation,
// remediation analysis, and persistence of the resulting aggregate
type AuditService struct {
	fairnessEngine    ports.FairnessEngine
	remediationEngine ports.RemediationEngine
	auditRepo         ports.AuditRepository
	threshold         float64
	logger            *internal.Logger
}

// AuditRequest defines the inputs for a bias audit run
type AuditRequest struct {
	ModelID   core.ModelID
	DatasetID core.DatasetID
	Samples   fairness.Samples
	// PositiveLabel is the prediction value counted as positive; nil
	// means the default. Zero is a legitimate label and is not coerced.
	PositiveLabel *float64
	// Strategies selects the remediation strategies to evaluate; nil
	// means the default set, empty slice means skip remediation
	Strategies []remediation.Strategy
}

// AuditResult contains the persisted audit plus run timing
type AuditResult struct {
	Audit     *fairness.BiasAudit
	RuntimeMs int64
}

// NewAuditService creates an audit service
func NewAuditService(fairnessEngine ports.FairnessEngine, remediationEngine ports.RemediationEngine,
	auditRepo ports.AuditRepository, threshold float64) *AuditService {
	return &AuditService{
		fairnessEngine:    fairnessEngine,
		remediationEngine: remediationEngine,
		auditRepo:         auditRepo,
		threshold:         threshold,
		logger:            internal.DefaultLogger,
	}
}

// RunAudit computes every applicable fairness metric, evaluates
// remediation strategies, and persists the aggregate
func (s *AuditService) RunAudit(ctx context.Context, req AuditRequest) (*AuditResult, error) {
	startTime := time.Now()

	if core.ID(req.ModelID).IsEmpty() {
		return nil, fmt.Errorf("model ID is required")
	}
	if err := req.Samples.Validate(); err != nil {
		return nil, err
	}
	positiveLabel := fairness.DefaultPositiveLabel
	if req.PositiveLabel != nil {
		positiveLabel = *req.PositiveLabel
	}

	results, err := s.fairnessEngine.AllMetrics(ctx, req.Samples, positiveLabel)
	if err != nil {
		return nil, fmt.Errorf("metric computation failed: %w", err)
	}

	var remediations []remediation.RemediationResult
	if req.Strategies == nil || len(req.Strategies) > 0 {
		remediations, err = s.remediationEngine.AnalyzeAndRemediate(ctx, req.Samples, positiveLabel, req.Strategies)
		if err != nil {
			return nil, fmt.Errorf("remediation analysis failed: %w", err)
		}
	}

	audit := fairness.NewBiasAudit(req.ModelID, req.Samples, s.threshold, positiveLabel, results, remediations)
	audit.DatasetID = req.DatasetID

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to persist audit: %w", err)
	}

	worst, worstScore := audit.WorstMetric()
	s.logger.Info("[Audit] model=%s samples=%d groups=%d passed=%t worst=%s(%.3f)",
		req.ModelID, audit.SampleSize, audit.GroupCount, audit.OverallPassed, worst, worstScore)

	return &AuditResult{
		Audit:     audit,
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// GetAudit retrieves a persisted audit by ID
func (s *AuditService) GetAudit(ctx context.Context, id core.AuditID) (*fairness.BiasAudit, error) {
	return s.auditRepo.GetByID(ctx, id)
}

// ListAudits returns persisted audits matching the filters
func (s *AuditService) ListAudits(ctx context.Context, filters ports.AuditFilters) ([]*fairness.BiasAudit, error) {
	return s.auditRepo.List(ctx, filters)
}

// DeleteAudit removes a persisted audit
func (s *AuditService) DeleteAudit(ctx context.Context, id core.AuditID) error {
	return s.auditRepo.Delete(ctx, id)
}

// CountAuditsByModel returns how many audits a model has accumulated
func (s *AuditService) CountAuditsByModel(ctx context.Context, modelID core.ModelID) (int, error) {
	return s.auditRepo.CountByModel(ctx, modelID)
}
