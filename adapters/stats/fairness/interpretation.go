package fairness

import (
	"fmt"

	"fairmind/domain/fairness"
)

// interpret generates the prose summary and escalating recommendations for
// a computed metric. Severity buckets: excellent (>=0.9), acceptable
// (>=0.8), concerning (>=0.7), critical (<0.7).
func interpret(metric fairness.MetricName, rates map[string]float64, score float64) (string, []string) {
	if len(rates) < 2 {
		return fmt.Sprintf("%s: only one protected group observed; disparity ratio is 1.0 by definition (nothing to compare).", metric.DisplayName()),
			[]string{"Collect data covering at least two protected groups to make disparity measurable."}
	}

	maxGroup, minGroup := extremeGroups(rates)
	gapPct := (1 - score) * 100

	var interpretation string
	switch fairness.BucketSeverity(score) {
	case fairness.SeverityExcellent:
		interpretation = fmt.Sprintf("%s ratio is %.3f: groups are treated near-equally (best group %q, worst group %q, gap %.1f%%).",
			metric.DisplayName(), score, maxGroup, minGroup, gapPct)
	case fairness.SeverityAcceptable:
		interpretation = fmt.Sprintf("%s ratio is %.3f: within the 80%% rule, but group %q trails group %q by %.1f%%.",
			metric.DisplayName(), score, minGroup, maxGroup, gapPct)
	case fairness.SeverityConcerning:
		interpretation = fmt.Sprintf("%s ratio is %.3f: group %q is disadvantaged relative to group %q by %.1f%%, below the 80%% rule.",
			metric.DisplayName(), score, minGroup, maxGroup, gapPct)
	default:
		interpretation = fmt.Sprintf("%s ratio is %.3f: group %q receives substantially worse outcomes than group %q (gap %.1f%%). This level of disparity is critical.",
			metric.DisplayName(), score, minGroup, maxGroup, gapPct)
	}

	return interpretation, recommendationsFor(metric, score, minGroup)
}

// recommendationsFor emits remediation hints that escalate with severity:
// <0.8 flags a possible regulatory violation, <0.9 suggests monitoring,
// otherwise a pass note.
func recommendationsFor(metric fairness.MetricName, score float64, minGroup string) []string {
	switch {
	case score < 0.8:
		recs := []string{
			fmt.Sprintf("Disparity ratio %.3f falls below the 80%% rule and may violate fair-lending or EEOC guidelines; escalate to compliance review.", score),
			fmt.Sprintf("Apply reweighting so group %q carries proportional influence during training.", minGroup),
			"Consider per-group decision thresholds (threshold optimization) before the next deployment.",
		}
		if metric == fairness.MetricPredictiveParity {
			recs = append(recs, "Calibrate predicted scores per group to align precision across groups.")
		}
		return recs
	case score < 0.9:
		return []string{
			fmt.Sprintf("Ratio %.3f is acceptable but trending toward disparity; monitor group %q on every retrain.", score, minGroup),
			"Schedule a follow-up audit after the next model update.",
		}
	default:
		return []string{
			fmt.Sprintf("Ratio %.3f indicates near-equal treatment; no remediation required.", score),
		}
	}
}
