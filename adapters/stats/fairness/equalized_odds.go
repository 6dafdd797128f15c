package fairness

import (
	"context"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
)

// EqualizedOddsAnalyzer compares both true-positive and false-positive
// rates across groups. The overall score is the mean of the TPR disparity
// ratio and the FPR disparity ratio.
type EqualizedOddsAnalyzer struct{}

// NewEqualizedOddsAnalyzer creates an equalized odds analyzer
func NewEqualizedOddsAnalyzer() *EqualizedOddsAnalyzer {
	return &EqualizedOddsAnalyzer{}
}

// Name returns the metric name
func (a *EqualizedOddsAnalyzer) Name() fairness.MetricName {
	return fairness.MetricEqualizedOdds
}

// RequiresGroundTruth indicates this metric needs true labels
func (a *EqualizedOddsAnalyzer) RequiresGroundTruth() bool {
	return true
}

// Analyze computes per-group TPR and FPR, takes the min/max ratio of each,
// and averages the two ratios. Group scores report a combined TPR/FPR
// score, (tpr + (1 - fpr)) / 2, where higher means better treatment.
func (a *EqualizedOddsAnalyzer) Analyze(ctx context.Context, samples fairness.Samples, positiveLabel, threshold float64) (fairness.FairnessResult, error) {
	if err := samples.Validate(); err != nil {
		return fairness.FairnessResult{}, err
	}
	if !samples.HasGroundTruth() {
		return fairness.FairnessResult{}, core.ErrGroundTruthRequired
	}

	tprs := make(map[string]float64)
	fprs := make(map[string]float64)
	combined := make(map[string]float64)
	for group, idx := range groupIndexes(samples.Groups) {
		c := confusionFor(samples.Predictions, samples.GroundTruth, idx, positiveLabel)
		tprs[group] = c.tpr()
		fprs[group] = c.fpr()
		combined[group] = (c.tpr() + (1 - c.fpr())) / 2
	}

	overall := (disparityRatio(tprs) + disparityRatio(fprs)) / 2
	return newResult(a.Name(), combined, overall, threshold, samples.Len()), nil
}
