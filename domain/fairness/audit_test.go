package fairness

import (
	"testing"

	"fairmind/domain/remediation"
)

func twoGroupSamples() Samples {
	return Samples{
		Predictions: []float64{1, 1, 0, 0},
		GroundTruth: []float64{1, 0, 1, 0},
		Groups:      []string{"A", "A", "B", "B"},
	}
}

// TestNewBiasAudit tests aggregate assembly
func TestNewBiasAudit(t *testing.T) {
	results := map[MetricName]FairnessResult{
		MetricDemographicParity: {Metric: MetricDemographicParity, OverallScore: 0.85, Passed: true},
		MetricEqualOpportunity:  {Metric: MetricEqualOpportunity, OverallScore: 0.95, Passed: true},
	}

	audit := NewBiasAudit("model-1", twoGroupSamples(), 0.8, 1.0, results, nil)

	if audit.ID.String() == "" {
		t.Error("expected a generated audit ID")
	}
	if audit.SampleSize != 4 {
		t.Errorf("expected sample size 4, got %d", audit.SampleSize)
	}
	if audit.GroupCount != 2 {
		t.Errorf("expected 2 groups, got %d", audit.GroupCount)
	}
	if audit.SampleHash.IsEmpty() {
		t.Error("expected a sample hash")
	}
	if !audit.OverallPassed {
		t.Error("expected overall pass when every metric passed")
	}
}

// TestNewBiasAuditFailsWhenAnyMetricFails tests the pass aggregation
func TestNewBiasAuditFailsWhenAnyMetricFails(t *testing.T) {
	results := map[MetricName]FairnessResult{
		MetricDemographicParity: {Metric: MetricDemographicParity, OverallScore: 0.95, Passed: true},
		MetricPredictiveParity:  {Metric: MetricPredictiveParity, OverallScore: 0.5, Passed: false},
	}

	audit := NewBiasAudit("model-1", twoGroupSamples(), 0.8, 1.0, results, nil)
	if audit.OverallPassed {
		t.Error("expected overall fail when any metric failed")
	}
}

// TestNewBiasAuditEmptyResults tests that no metrics means no pass
func TestNewBiasAuditEmptyResults(t *testing.T) {
	audit := NewBiasAudit("model-1", twoGroupSamples(), 0.8, 1.0,
		map[MetricName]FairnessResult{}, []remediation.RemediationResult{})
	if audit.OverallPassed {
		t.Error("an audit with no computed metrics must not pass")
	}
}

// TestWorstMetric tests lowest-score selection
func TestWorstMetric(t *testing.T) {
	audit := NewBiasAudit("model-1", twoGroupSamples(), 0.8, 1.0, map[MetricName]FairnessResult{
		MetricDemographicParity: {OverallScore: 0.85},
		MetricEqualizedOdds:     {OverallScore: 0.62},
		MetricEqualOpportunity:  {OverallScore: 0.91},
	}, nil)

	worst, score := audit.WorstMetric()
	if worst != MetricEqualizedOdds {
		t.Errorf("expected equalized_odds, got %s", worst)
	}
	if score != 0.62 {
		t.Errorf("expected 0.62, got %.2f", score)
	}

	empty := NewBiasAudit("model-1", twoGroupSamples(), 0.8, 1.0, map[MetricName]FairnessResult{}, nil)
	if worst, _ := empty.WorstMetric(); worst != "" {
		t.Errorf("expected empty metric name, got %s", worst)
	}
}
