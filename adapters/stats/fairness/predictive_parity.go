package fairness

import (
	"context"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
)

// PredictiveParityAnalyzer compares precision (positive predictive value)
// across groups.
type PredictiveParityAnalyzer struct{}

// NewPredictiveParityAnalyzer creates a predictive parity analyzer
func NewPredictiveParityAnalyzer() *PredictiveParityAnalyzer {
	return &PredictiveParityAnalyzer{}
}

// Name returns the metric name
func (a *PredictiveParityAnalyzer) Name() fairness.MetricName {
	return fairness.MetricPredictiveParity
}

// RequiresGroundTruth indicates this metric needs true labels
func (a *PredictiveParityAnalyzer) RequiresGroundTruth() bool {
	return true
}

// Analyze computes per-group precision and the min/max disparity ratio
func (a *PredictiveParityAnalyzer) Analyze(ctx context.Context, samples fairness.Samples, positiveLabel, threshold float64) (fairness.FairnessResult, error) {
	if err := samples.Validate(); err != nil {
		return fairness.FairnessResult{}, err
	}
	if !samples.HasGroundTruth() {
		return fairness.FairnessResult{}, core.ErrGroundTruthRequired
	}

	precisions := make(map[string]float64)
	for group, idx := range groupIndexes(samples.Groups) {
		precisions[group] = confusionFor(samples.Predictions, samples.GroundTruth, idx, positiveLabel).precision()
	}

	return newResult(a.Name(), precisions, disparityRatio(precisions), threshold, samples.Len()), nil
}
