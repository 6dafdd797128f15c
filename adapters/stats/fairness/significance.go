package fairness

import (
	"gonum.org/v1/gonum/stat/distuv"

	"fairmind/domain/fairness"
)

// demographicParitySignificance runs a chi-square test of independence on
// the group x {positive, negative} contingency table. It is attached to
// demographic parity results as evidence; disparity pass/fail never
// depends on it.
func demographicParitySignificance(samples fairness.Samples, positiveLabel float64) *fairness.SignificanceEvidence {
	idx := groupIndexes(samples.Groups)
	if len(idx) < 2 {
		return nil
	}

	// Contingency counts per group: positives and negatives.
	type cell struct{ pos, neg float64 }
	cells := make([]cell, 0, len(idx))
	var totalPos, totalNeg float64
	for _, positions := range idx {
		var c cell
		for _, j := range positions {
			if samples.Predictions[j] == positiveLabel {
				c.pos++
			} else {
				c.neg++
			}
		}
		cells = append(cells, c)
		totalPos += c.pos
		totalNeg += c.neg
	}

	total := totalPos + totalNeg
	if totalPos == 0 || totalNeg == 0 {
		// Degenerate table: every prediction identical, no test possible.
		return nil
	}

	chiSq := 0.0
	for _, c := range cells {
		rowTotal := c.pos + c.neg
		expPos := rowTotal * totalPos / total
		expNeg := rowTotal * totalNeg / total
		if expPos > 0 {
			chiSq += (c.pos - expPos) * (c.pos - expPos) / expPos
		}
		if expNeg > 0 {
			chiSq += (c.neg - expNeg) * (c.neg - expNeg) / expNeg
		}
	}

	df := len(idx) - 1
	dist := distuv.ChiSquared{K: float64(df)}
	pValue := 1 - dist.CDF(chiSq)
	if pValue < 0 {
		pValue = 0
	}

	return &fairness.SignificanceEvidence{
		ChiSquare:         chiSq,
		DegreesOfFreedom:  df,
		PValue:            pValue,
		Significant:       pValue < 0.05,
		ContingencyGroups: len(idx),
	}
}
