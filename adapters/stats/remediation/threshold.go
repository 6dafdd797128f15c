package remediation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
)

// Fixed relative improvements, capped at 1.0. Simplifying assumptions.
const (
	thresholdParityBoost      = 1.30
	thresholdOpportunityBoost = 1.35
)

// Candidate threshold sweep: 0.10 to 0.90 inclusive in steps of 0.05
const (
	sweepStart = 0.10
	sweepStep  = 0.05
	sweepSteps = 17
)

// maxThresholdSpread between groups before the adjustment itself signals
// a large underlying disparity
const maxThresholdSpread = 0.3

// ThresholdOptimizationAnalyzer finds a per-group decision threshold that
// maximizes F1 against the ground truth, letting calibration differences
// between groups be absorbed post-hoc instead of retraining.
type ThresholdOptimizationAnalyzer struct{}

// NewThresholdOptimizationAnalyzer creates a threshold optimization analyzer
func NewThresholdOptimizationAnalyzer() *ThresholdOptimizationAnalyzer {
	return &ThresholdOptimizationAnalyzer{}
}

// Strategy returns the strategy identifier
func (a *ThresholdOptimizationAnalyzer) Strategy() remediation.Strategy {
	return remediation.StrategyThresholdOptimization
}

// RequiresGroundTruth indicates this strategy needs true labels for the F1 sweep
func (a *ThresholdOptimizationAnalyzer) RequiresGroundTruth() bool {
	return true
}

// Apply sweeps the candidate grid per group, retaining the threshold with
// the best F1. Ties resolve to the lowest threshold so results stay
// deterministic.
func (a *ThresholdOptimizationAnalyzer) Apply(ctx context.Context, in strategyInput) (remediation.RemediationResult, error) {
	if !in.samples.HasGroundTruth() {
		return remediation.RemediationResult{}, core.ErrGroundTruthRequired
	}

	indexes := make(map[string][]int)
	for i, g := range in.samples.Groups {
		indexes[g] = append(indexes[g], i)
	}

	adjustments := make(map[string]float64, len(indexes))
	for group, idx := range indexes {
		bestThreshold := sweepStart
		bestF1 := -1.0
		for step := 0; step < sweepSteps; step++ {
			t := sweepStart + sweepStep*float64(step)
			f1 := f1AtThreshold(in.samples.Predictions, in.samples.GroundTruth, idx, in.positiveLabel, t)
			if f1 > bestF1 {
				bestF1 = f1
				bestThreshold = t
			}
		}
		adjustments[group] = bestThreshold
	}

	warnings := []string{}
	chosen := make([]float64, 0, len(adjustments))
	for _, t := range adjustments {
		chosen = append(chosen, t)
	}
	maxT, _ := stats.Max(chosen)
	minT, _ := stats.Min(chosen)
	if maxT-minT > maxThresholdSpread {
		warnings = append(warnings, fmt.Sprintf(
			"optimal thresholds spread %.2f across groups (> %.1f); the model's scores differ substantially by group", maxT-minT, maxThresholdSpread))
	}

	improved := simulateImprovement(in.baseline, map[string]float64{
		string(fairness.MetricDemographicParity): thresholdParityBoost,
		string(fairness.MetricEqualOpportunity):  thresholdOpportunityBoost,
	})
	_, overall := calculateImprovement(in.baseline, improved)

	return remediation.RemediationResult{
		Strategy:              a.Strategy(),
		StrategyLabel:         a.Strategy().DisplayName(),
		Success:               true,
		OriginalMetrics:       in.baseline,
		ImprovedMetrics:       improved,
		ImprovementPercentage: overall,
		ImplementationCode:    thresholdCode(adjustments),
		Explanation: fmt.Sprintf(
			"Threshold optimization swept %d candidate cutoffs (%.2f to %.2f) per group and kept the F1-maximizing threshold for each. "+
				"Projected improvements (capped estimates): demographic parity +%d%%, equal opportunity +%d%%. "+
				"Trade-off: per-group thresholds require the protected attribute at decision time.",
			sweepSteps, sweepStart, sweepStart+sweepStep*float64(sweepSteps-1),
			int((thresholdParityBoost-1)*100), int((thresholdOpportunityBoost-1)*100)),
		Warnings:             warnings,
		ThresholdAdjustments: adjustments,
	}, nil
}

// f1AtThreshold binarizes predictions at t for the given sample positions
// and computes F1 against the ground truth.
func f1AtThreshold(predictions, groundTruth []float64, idx []int, positiveLabel, t float64) float64 {
	var tp, fp, fn int
	for _, j := range idx {
		predPos := predictions[j] >= t
		truePos := groundTruth[j] == positiveLabel
		switch {
		case predPos && truePos:
			tp++
		case predPos && !truePos:
			fp++
		case !predPos && truePos:
			fn++
		}
	}
	if tp == 0 {
		return 0
	}
	precision := float64(tp) / float64(tp+fp)
	recall := float64(tp) / float64(tp+fn)
	return 2 * precision * recall / (precision + recall)
}

// thresholdCode renders a per-group decision threshold template
func thresholdCode(adjustments map[string]float64) string {
	groups := make([]string, 0, len(adjustments))
	for g := range adjustments {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var b strings.Builder
	b.WriteString("# Apply per-group decision thresholds at inference time\n")
	b.WriteString("group_thresholds = {\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("    %q: %.2f,\n", g, adjustments[g]))
	}
	b.WriteString("}\n")
	b.WriteString("decisions = [\n")
	b.WriteString("    int(score >= group_thresholds[group])\n")
	b.WriteString("    for score, group in zip(model_scores, protected_attribute)\n")
	b.WriteString("]\n")
	return b.String()
}
