package remediation

import (
	"github.com/montanaflynn/stats"
)

// simulateImprovement projects post-remediation scores by applying a fixed
// relative multiplier per metric, capped at 1.0. Only metrics present in
// the baseline are projected.
func simulateImprovement(baseline map[string]float64, boosts map[string]float64) map[string]float64 {
	improved := make(map[string]float64)
	for metric, boost := range boosts {
		original, ok := baseline[metric]
		if !ok {
			continue
		}
		projected := original * boost
		if projected > 1.0 {
			projected = 1.0
		}
		improved[metric] = projected
	}
	return improved
}

// calculateImprovement computes the percentage improvement per metric in
// improved, clamped non-negative, and the overall mean. A strategy is
// never reported as making things worse; a zero baseline contributes zero
// rather than dividing by zero.
func calculateImprovement(original, improved map[string]float64) (map[string]float64, float64) {
	perMetric := make(map[string]float64)
	values := make([]float64, 0, len(improved))
	for metric, after := range improved {
		before, ok := original[metric]
		pct := 0.0
		if ok && before > 0 {
			pct = (after - before) / before * 100
			if pct < 0 {
				pct = 0
			}
		}
		perMetric[metric] = pct
		values = append(values, pct)
	}

	if len(values) == 0 {
		return perMetric, 0
	}
	overall, err := stats.Mean(values)
	if err != nil {
		return perMetric, 0
	}
	return perMetric, overall
}

// groupCounts tallies sample counts per observed group
func groupCounts(groups []string) map[string]int {
	counts := make(map[string]int)
	for _, g := range groups {
		counts[g]++
	}
	return counts
}

// minGroup returns the smallest group and its size
func minGroup(counts map[string]int) (string, int) {
	first := true
	var name string
	var size int
	for g, n := range counts {
		if first || n < size || (n == size && g < name) {
			name, size = g, n
			first = false
		}
	}
	return name, size
}
