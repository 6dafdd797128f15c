package remediation

import (
	"context"
	"fmt"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
)

// Fixed relative improvement applied to predictive parity, capped at 1.0.
const calibrationPrecisionBoost = 1.20

// CalibrationAnalyzer projects the effect of per-group score calibration.
// This is placeholder-level: no calibration curve is fitted; the result
// carries a fixed projected improvement plus a code template for isotonic
// calibration. Excluded from the default strategy set.
type CalibrationAnalyzer struct{}

// NewCalibrationAnalyzer creates a calibration analyzer
func NewCalibrationAnalyzer() *CalibrationAnalyzer {
	return &CalibrationAnalyzer{}
}

// Strategy returns the strategy identifier
func (a *CalibrationAnalyzer) Strategy() remediation.Strategy {
	return remediation.StrategyCalibration
}

// RequiresGroundTruth indicates calibration needs true labels for the
// predictive parity baseline it projects from
func (a *CalibrationAnalyzer) RequiresGroundTruth() bool {
	return true
}

// Apply projects a fixed predictive parity improvement
func (a *CalibrationAnalyzer) Apply(ctx context.Context, in strategyInput) (remediation.RemediationResult, error) {
	if !in.samples.HasGroundTruth() {
		return remediation.RemediationResult{}, core.ErrGroundTruthRequired
	}

	improved := simulateImprovement(in.baseline, map[string]float64{
		string(fairness.MetricPredictiveParity): calibrationPrecisionBoost,
	})
	_, overall := calculateImprovement(in.baseline, improved)

	groups := len(groupCounts(in.samples.Groups))
	return remediation.RemediationResult{
		Strategy:              a.Strategy(),
		StrategyLabel:         a.Strategy().DisplayName(),
		Success:               true,
		OriginalMetrics:       in.baseline,
		ImprovedMetrics:       improved,
		ImprovementPercentage: overall,
		ImplementationCode:    calibrationCode(),
		Explanation: fmt.Sprintf(
			"Per-group calibration aligns predicted scores with observed outcome rates within each of the %d groups, equalizing precision. "+
				"Projected predictive parity improvement is roughly %d%% relative (capped estimate; no calibration curve is fitted here).",
			groups, int((calibrationPrecisionBoost-1)*100)),
		Warnings: []string{},
	}, nil
}

// calibrationCode renders a per-group isotonic calibration template
func calibrationCode() string {
	return `# Fit an isotonic calibrator per protected group
from sklearn.isotonic import IsotonicRegression

calibrators = {}
for group in set(protected_attribute):
    mask = [g == group for g in protected_attribute]
    iso = IsotonicRegression(out_of_bounds="clip")
    iso.fit(model_scores[mask], y_true[mask])
    calibrators[group] = iso

calibrated = [
    calibrators[group].predict([score])[0]
    for score, group in zip(model_scores, protected_attribute)
]
`
}
