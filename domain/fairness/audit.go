package fairness

import (
	"fairmind/domain/core"
	"fairmind/domain/remediation"
)

// BiasAudit aggregates a full audit run: every computed metric plus the
// ranked remediation plan, keyed by the model under audit. Audits are
// created once and never mutated.
type BiasAudit struct {
	ID            core.AuditID                    `json:"id"`
	ModelID       core.ModelID                    `json:"model_id"`
	DatasetID     core.DatasetID                  `json:"dataset_id,omitempty"`
	SampleSize    int                             `json:"sample_size"`
	GroupCount    int                             `json:"group_count"`
	Threshold     float64                         `json:"threshold"`
	PositiveLabel float64                         `json:"positive_label"`
	SampleHash    core.Hash                       `json:"sample_hash"`
	Results       map[MetricName]FairnessResult   `json:"results"`
	Remediations  []remediation.RemediationResult `json:"remediations"`
	OverallPassed bool                            `json:"overall_passed"`
	CreatedAt     core.Timestamp                  `json:"created_at"`
}

// NewBiasAudit assembles an audit aggregate from engine outputs.
// OverallPassed is true only when every computed metric passed.
func NewBiasAudit(modelID core.ModelID, samples Samples, threshold, positiveLabel float64,
	results map[MetricName]FairnessResult, remediations []remediation.RemediationResult) *BiasAudit {

	passed := len(results) > 0
	for _, r := range results {
		if !r.Passed {
			passed = false
		}
	}

	return &BiasAudit{
		ID:            core.AuditID(core.NewID()),
		ModelID:       modelID,
		SampleSize:    samples.Len(),
		GroupCount:    len(samples.DistinctGroups()),
		Threshold:     threshold,
		PositiveLabel: positiveLabel,
		SampleHash:    core.ComputeSampleHash(samples.Predictions, samples.GroundTruth, samples.Groups),
		Results:       results,
		Remediations:  remediations,
		OverallPassed: passed,
		CreatedAt:     core.Now(),
	}
}

// WorstMetric returns the metric with the lowest overall score, or "" when
// no metrics were computed.
func (a *BiasAudit) WorstMetric() (MetricName, float64) {
	worst := MetricName("")
	worstScore := 2.0
	for name, r := range a.Results {
		if r.OverallScore < worstScore {
			worst = name
			worstScore = r.OverallScore
		}
	}
	if worst == "" {
		return "", 0
	}
	return worst, worstScore
}
