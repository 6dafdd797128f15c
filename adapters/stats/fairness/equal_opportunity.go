package fairness

import (
	"context"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
)

// EqualOpportunityAnalyzer compares true-positive rates (recall for the
// positive class) across groups.
type EqualOpportunityAnalyzer struct{}

// NewEqualOpportunityAnalyzer creates an equal opportunity analyzer
func NewEqualOpportunityAnalyzer() *EqualOpportunityAnalyzer {
	return &EqualOpportunityAnalyzer{}
}

// Name returns the metric name
func (a *EqualOpportunityAnalyzer) Name() fairness.MetricName {
	return fairness.MetricEqualOpportunity
}

// RequiresGroundTruth indicates this metric needs true labels
func (a *EqualOpportunityAnalyzer) RequiresGroundTruth() bool {
	return true
}

// Analyze computes per-group TPR and the min/max disparity ratio
func (a *EqualOpportunityAnalyzer) Analyze(ctx context.Context, samples fairness.Samples, positiveLabel, threshold float64) (fairness.FairnessResult, error) {
	if err := samples.Validate(); err != nil {
		return fairness.FairnessResult{}, err
	}
	if !samples.HasGroundTruth() {
		return fairness.FairnessResult{}, core.ErrGroundTruthRequired
	}

	tprs := make(map[string]float64)
	for group, idx := range groupIndexes(samples.Groups) {
		tprs[group] = confusionFor(samples.Predictions, samples.GroundTruth, idx, positiveLabel).tpr()
	}

	return newResult(a.Name(), tprs, disparityRatio(tprs), threshold, samples.Len()), nil
}
