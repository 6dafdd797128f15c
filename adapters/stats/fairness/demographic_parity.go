package fairness

import (
	"context"

	"fairmind/domain/fairness"
)

// DemographicParityAnalyzer compares positive-prediction rates across
// protected groups. It is the only metric that works without ground truth.
type DemographicParityAnalyzer struct{}

// NewDemographicParityAnalyzer creates a demographic parity analyzer
func NewDemographicParityAnalyzer() *DemographicParityAnalyzer {
	return &DemographicParityAnalyzer{}
}

// Name returns the metric name
func (a *DemographicParityAnalyzer) Name() fairness.MetricName {
	return fairness.MetricDemographicParity
}

// RequiresGroundTruth indicates this metric works from predictions alone
func (a *DemographicParityAnalyzer) RequiresGroundTruth() bool {
	return false
}

// Analyze computes rate(g) = mean(predictions[group==g] == positiveLabel)
// per group and the min/max disparity ratio across groups.
func (a *DemographicParityAnalyzer) Analyze(ctx context.Context, samples fairness.Samples, positiveLabel, threshold float64) (fairness.FairnessResult, error) {
	if err := samples.Validate(); err != nil {
		return fairness.FairnessResult{}, err
	}

	rates := make(map[string]float64)
	for group, idx := range groupIndexes(samples.Groups) {
		rates[group] = positiveRate(samples.Predictions, idx, positiveLabel)
	}

	result := newResult(a.Name(), rates, disparityRatio(rates), threshold, samples.Len())
	result.Significance = demographicParitySignificance(samples, positiveLabel)
	return result, nil
}
