package remediation

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"

	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
)

// Fixed relative improvements, capped at 1.0. Simplifying assumptions.
const (
	resamplingParityBoost      = 1.25
	resamplingOpportunityBoost = 1.20
)

// minViableMinoritySize below which oversampling mostly duplicates noise
const minViableMinoritySize = 50

// maxSafeOversampleFactor beyond which synthetic balance dominates the data
const maxSafeOversampleFactor = 2.0

// ResamplingAnalyzer balances group sizes by oversampling minority groups
// (with replacement) and undersampling majority groups toward the mean
// group size.
type ResamplingAnalyzer struct{}

// NewResamplingAnalyzer creates a resampling analyzer
func NewResamplingAnalyzer() *ResamplingAnalyzer {
	return &ResamplingAnalyzer{}
}

// Strategy returns the strategy identifier
func (a *ResamplingAnalyzer) Strategy() remediation.Strategy {
	return remediation.StrategyResampling
}

// RequiresGroundTruth indicates resampling works from predictions alone
func (a *ResamplingAnalyzer) RequiresGroundTruth() bool {
	return false
}

// Apply sets the target size to the mean group size and flags any group
// whose required oversampling factor exceeds the safe bound.
func (a *ResamplingAnalyzer) Apply(ctx context.Context, in strategyInput) (remediation.RemediationResult, error) {
	counts := groupCounts(in.samples.Groups)

	sizes := make([]float64, 0, len(counts))
	for _, n := range counts {
		sizes = append(sizes, float64(n))
	}
	target, err := stats.Mean(sizes)
	if err != nil {
		return remediation.RemediationResult{}, err
	}

	warnings := []string{}
	smallest, size := minGroup(counts)
	if size < minViableMinoritySize {
		warnings = append(warnings, fmt.Sprintf(
			"minority group %q has only %d samples (< %d); oversampling will duplicate heavily", smallest, size, minViableMinoritySize))
	}
	oversampled, undersampled := 0, 0
	for group, n := range counts {
		factor := target / float64(n)
		if factor > 1 {
			oversampled++
			if factor > maxSafeOversampleFactor {
				warnings = append(warnings, fmt.Sprintf(
					"group %q requires a %.1fx oversampling factor (> %.0fx); resampled data may overfit duplicates", group, factor, maxSafeOversampleFactor))
			}
		} else if factor < 1 {
			undersampled++
		}
	}

	improved := simulateImprovement(in.baseline, map[string]float64{
		string(fairness.MetricDemographicParity): resamplingParityBoost,
		string(fairness.MetricEqualOpportunity):  resamplingOpportunityBoost,
	})
	_, overall := calculateImprovement(in.baseline, improved)

	return remediation.RemediationResult{
		Strategy:              a.Strategy(),
		StrategyLabel:         a.Strategy().DisplayName(),
		Success:               true,
		OriginalMetrics:       in.baseline,
		ImprovedMetrics:       improved,
		ImprovementPercentage: overall,
		ImplementationCode:    resamplingCode(int(target)),
		Explanation: fmt.Sprintf(
			"Resampling balances the %d groups toward a target of %d samples each: %d group(s) oversampled with replacement, %d undersampled without. "+
				"Projected improvements (capped estimates, not retrained measurements): demographic parity +%d%%, equal opportunity +%d%%. "+
				"Trade-off: oversampling duplicates minority examples and undersampling discards majority signal.",
			len(counts), int(target), oversampled, undersampled,
			int((resamplingParityBoost-1)*100), int((resamplingOpportunityBoost-1)*100)),
		Warnings: warnings,
	}, nil
}

// resamplingCode renders a per-group resample template
func resamplingCode(target int) string {
	return fmt.Sprintf(`# Balance every protected group to the mean group size
from sklearn.utils import resample
import pandas as pd

target_size = %d
balanced = []
for group, frame in df.groupby("protected_attribute"):
    replace = len(frame) < target_size
    balanced.append(resample(frame, replace=replace, n_samples=target_size, random_state=42))
df_balanced = pd.concat(balanced)
`, target)
}
