package remediation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
)

// Fixed relative improvement applied to demographic parity, capped at 1.0.
// A simplifying assumption, not a measured retraining outcome.
const reweightingParityBoost = 1.20

// minStableGroupSize below which reweighting amplifies noise
const minStableGroupSize = 100

// ReweightingAnalyzer assigns inverse-frequency sample weights so every
// protected group carries equal total influence during training.
type ReweightingAnalyzer struct{}

// NewReweightingAnalyzer creates a reweighting analyzer
func NewReweightingAnalyzer() *ReweightingAnalyzer {
	return &ReweightingAnalyzer{}
}

// Strategy returns the strategy identifier
func (a *ReweightingAnalyzer) Strategy() remediation.Strategy {
	return remediation.StrategyReweighting
}

// RequiresGroundTruth indicates reweighting works from predictions alone
func (a *ReweightingAnalyzer) RequiresGroundTruth() bool {
	return false
}

// Apply computes weight(g) = total / (numGroups * count(g)) per group.
// The weighted counts sum back to N by construction, so no further
// normalization pass is needed.
func (a *ReweightingAnalyzer) Apply(ctx context.Context, in strategyInput) (remediation.RemediationResult, error) {
	counts := groupCounts(in.samples.Groups)
	total := float64(in.samples.Len())
	numGroups := float64(len(counts))

	weights := make(map[string]float64, len(counts))
	warnings := []string{}
	for group, count := range counts {
		weights[group] = total / (numGroups * float64(count))
	}
	smallest, size := minGroup(counts)
	if size < minStableGroupSize {
		warnings = append(warnings, fmt.Sprintf(
			"group %q has only %d samples (< %d); reweighted training may be unstable", smallest, size, minStableGroupSize))
	}

	improved := simulateImprovement(in.baseline, map[string]float64{
		string(fairness.MetricDemographicParity): reweightingParityBoost,
	})
	_, overall := calculateImprovement(in.baseline, improved)

	return remediation.RemediationResult{
		Strategy:              a.Strategy(),
		StrategyLabel:         a.Strategy().DisplayName(),
		Success:               true,
		OriginalMetrics:       in.baseline,
		ImprovedMetrics:       improved,
		ImprovementPercentage: overall,
		ImplementationCode:    reweightingCode(weights),
		Explanation: fmt.Sprintf(
			"Reweighting assigns each sample an inverse-frequency weight so all %d groups contribute equally to the training loss. "+
				"Estimated demographic parity improvement is roughly %d%% relative (capped at 1.0); this is a projection, not a retrained measurement. "+
				"Trade-off: large weights on small groups increase variance.",
			len(counts), int((reweightingParityBoost-1)*100)),
		Warnings:     warnings,
		GroupWeights: weights,
	}, nil
}

// reweightingCode renders a training-time weighting template for the
// caller's data science workflow.
func reweightingCode(weights map[string]float64) string {
	groups := make([]string, 0, len(weights))
	for g := range weights {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var b strings.Builder
	b.WriteString("# Inverse-frequency sample weights per protected group\n")
	b.WriteString("group_weights = {\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("    %q: %.4f,\n", g, weights[g]))
	}
	b.WriteString("}\n")
	b.WriteString("sample_weight = [group_weights[g] for g in protected_attribute]\n")
	b.WriteString("model.fit(X_train, y_train, sample_weight=sample_weight)\n")
	return b.String()
}
