package fairness

import (
	"github.com/montanaflynn/stats"

	"fairmind/domain/fairness"
)

// groupIndexes maps each observed group label to the sample positions that
// belong to it. Every key is guaranteed a non-empty index slice.
func groupIndexes(groups []string) map[string][]int {
	idx := make(map[string][]int)
	for i, g := range groups {
		idx[g] = append(idx[g], i)
	}
	return idx
}

// positiveRate computes mean(predictions[idx] == positiveLabel)
func positiveRate(predictions []float64, idx []int, positiveLabel float64) float64 {
	indicator := make([]float64, len(idx))
	for i, j := range idx {
		if predictions[j] == positiveLabel {
			indicator[i] = 1
		}
	}
	rate, err := stats.Mean(indicator)
	if err != nil {
		return 0
	}
	return rate
}

// confusion holds per-group confusion-matrix counts for the positive label
type confusion struct {
	tp, fp, fn, tn int
}

// confusionFor tallies the confusion matrix restricted to the given sample
// positions, treating positiveLabel as the positive class.
func confusionFor(predictions, groundTruth []float64, idx []int, positiveLabel float64) confusion {
	var c confusion
	for _, j := range idx {
		predPos := predictions[j] == positiveLabel
		truePos := groundTruth[j] == positiveLabel
		switch {
		case predPos && truePos:
			c.tp++
		case predPos && !truePos:
			c.fp++
		case !predPos && truePos:
			c.fn++
		default:
			c.tn++
		}
	}
	return c
}

// tpr returns the true-positive rate, 0 when no positives exist
func (c confusion) tpr() float64 {
	if c.tp+c.fn == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fn)
}

// fpr returns the false-positive rate, 0 when no negatives exist
func (c confusion) fpr() float64 {
	if c.fp+c.tn == 0 {
		return 0
	}
	return float64(c.fp) / float64(c.fp+c.tn)
}

// precision returns positive predictive value, 0 when nothing was predicted positive
func (c confusion) precision() float64 {
	if c.tp+c.fp == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fp)
}

// f1 returns the F1 score, 0 when precision and recall are both 0
func (c confusion) f1() float64 {
	p := c.precision()
	r := c.tpr()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// disparityRatio returns min(rates)/max(rates) across groups.
// An all-zero rate set is perfect parity by the zero-safe convention:
// max == 0 yields 1.0, never a division error.
func disparityRatio(rates map[string]float64) float64 {
	if len(rates) == 0 {
		return 1.0
	}
	first := true
	var minRate, maxRate float64
	for _, r := range rates {
		if first {
			minRate, maxRate = r, r
			first = false
			continue
		}
		if r < minRate {
			minRate = r
		}
		if r > maxRate {
			maxRate = r
		}
	}
	if maxRate == 0 {
		return 1.0
	}
	return minRate / maxRate
}

// extremeGroups returns the group names holding the highest and lowest
// rates. Ties resolve to the lexicographically first name so output is
// deterministic across map iteration orders.
func extremeGroups(rates map[string]float64) (maxGroup, minGroup string) {
	first := true
	var minRate, maxRate float64
	for g, r := range rates {
		if first {
			maxGroup, minGroup = g, g
			minRate, maxRate = r, r
			first = false
			continue
		}
		if r > maxRate || (r == maxRate && g < maxGroup) {
			maxGroup, maxRate = g, r
		}
		if r < minRate || (r == minRate && g < minGroup) {
			minGroup, minRate = g, r
		}
	}
	return maxGroup, minGroup
}

// newResult assembles a FairnessResult from per-group rates using the
// shared disparity-ratio, severity, and interpretation rules.
func newResult(metric fairness.MetricName, rates map[string]float64, overallScore, threshold float64, sampleSize int) fairness.FairnessResult {
	interpretation, recommendations := interpret(metric, rates, overallScore)
	return fairness.FairnessResult{
		Metric:          metric,
		MetricLabel:     metric.DisplayName(),
		OverallScore:    overallScore,
		GroupScores:     rates,
		Disparity:       1 - overallScore,
		Passed:          overallScore >= threshold,
		Threshold:       threshold,
		Severity:        fairness.BucketSeverity(overallScore),
		Interpretation:  interpretation,
		Recommendations: recommendations,
		SampleSize:      sampleSize,
	}
}
