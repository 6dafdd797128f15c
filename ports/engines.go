package ports

import (
	"context"

	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
)

// FairnessEngine computes group-fairness metrics from a sample set.
// Implementations are pure and safe for concurrent use.
type FairnessEngine interface {
	// DemographicParity compares positive-prediction rates across groups
	DemographicParity(ctx context.Context, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error)

	// EqualizedOdds compares TPR and FPR across groups; requires ground truth
	EqualizedOdds(ctx context.Context, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error)

	// EqualOpportunity compares TPR across groups; requires ground truth
	EqualOpportunity(ctx context.Context, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error)

	// PredictiveParity compares precision across groups; requires ground truth
	PredictiveParity(ctx context.Context, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error)

	// AllMetrics computes every applicable metric. Ground-truth-dependent
	// metrics are included only when the samples carry true labels.
	AllMetrics(ctx context.Context, samples fairness.Samples, positiveLabel float64) (map[fairness.MetricName]fairness.FairnessResult, error)
}

// RemediationEngine evaluates bias remediation strategies against a sample
// set and returns results ranked by estimated improvement.
type RemediationEngine interface {
	AnalyzeAndRemediate(ctx context.Context, samples fairness.Samples, positiveLabel float64,
		strategies []remediation.Strategy) ([]remediation.RemediationResult, error)
}
