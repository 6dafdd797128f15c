package fairness

import (
	"errors"
	"testing"

	"fairmind/domain/core"
)

// TestSamplesValidate tests the sample-set invariants
func TestSamplesValidate(t *testing.T) {
	tests := []struct {
		name    string
		samples Samples
		wantErr error
	}{
		{
			name:    "empty predictions",
			samples: Samples{},
			wantErr: core.ErrEmptyInput,
		},
		{
			name: "groups length mismatch",
			samples: Samples{
				Predictions: []float64{1, 0},
				Groups:      []string{"A"},
			},
			wantErr: core.ErrLengthMismatch,
		},
		{
			name: "ground truth length mismatch",
			samples: Samples{
				Predictions: []float64{1, 0},
				GroundTruth: []float64{1},
				Groups:      []string{"A", "B"},
			},
			wantErr: core.ErrLengthMismatch,
		},
		{
			name: "valid without ground truth",
			samples: Samples{
				Predictions: []float64{1, 0},
				Groups:      []string{"A", "B"},
			},
		},
		{
			name: "valid with ground truth",
			samples: Samples{
				Predictions: []float64{1, 0},
				GroundTruth: []float64{1, 1},
				Groups:      []string{"A", "B"},
			},
		},
	}

	for _, test := range tests {
		err := test.samples.Validate()
		if test.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
		if test.wantErr != nil && !errors.Is(err, test.wantErr) {
			t.Errorf("%s: expected %v, got %v", test.name, test.wantErr, err)
		}
	}
}

// TestHasGroundTruth tests that an empty but non-nil slice still counts
func TestHasGroundTruth(t *testing.T) {
	if (Samples{}).HasGroundTruth() {
		t.Error("nil ground truth should report false")
	}
	s := Samples{GroundTruth: []float64{}}
	if !s.HasGroundTruth() {
		t.Error("non-nil ground truth should report true")
	}
}

// TestDistinctGroups tests first-seen ordering
func TestDistinctGroups(t *testing.T) {
	s := Samples{Groups: []string{"B", "A", "B", "C", "A"}}
	got := s.DistinctGroups()
	want := []string{"B", "A", "C"}
	if len(got) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// TestBucketSeverity tests the severity boundaries
func TestBucketSeverity(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected Severity
	}{
		{1.0, SeverityExcellent},
		{0.9, SeverityExcellent},
		{0.89, SeverityAcceptable},
		{0.8, SeverityAcceptable},
		{0.79, SeverityConcerning},
		{0.7, SeverityConcerning},
		{0.69, SeverityCritical},
		{0.0, SeverityCritical},
	}

	for _, test := range tests {
		if got := BucketSeverity(test.ratio); got != test.expected {
			t.Errorf("BucketSeverity(%.2f): expected %s, got %s", test.ratio, test.expected, got)
		}
	}
}

// TestParseMetricName tests metric name parsing
func TestParseMetricName(t *testing.T) {
	for _, valid := range []string{"demographic_parity", "equalized_odds", "equal_opportunity", "predictive_parity"} {
		if _, err := ParseMetricName(valid); err != nil {
			t.Errorf("unexpected error for %s: %v", valid, err)
		}
	}
	if _, err := ParseMetricName("disparate_impact"); !errors.Is(err, core.ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}

// TestRequiresGroundTruth tests that only demographic parity works
// without true labels
func TestRequiresGroundTruth(t *testing.T) {
	if MetricDemographicParity.RequiresGroundTruth() {
		t.Error("demographic parity must not require ground truth")
	}
	for _, m := range []MetricName{MetricEqualizedOdds, MetricEqualOpportunity, MetricPredictiveParity} {
		if !m.RequiresGroundTruth() {
			t.Errorf("%s must require ground truth", m)
		}
	}
}

// TestValidateThreshold tests threshold bounds
func TestValidateThreshold(t *testing.T) {
	for _, valid := range []float64{0, 0.5, 0.8, 1.0} {
		if err := ValidateThreshold(valid); err != nil {
			t.Errorf("unexpected error for %.2f: %v", valid, err)
		}
	}
	for _, invalid := range []float64{-0.1, 1.01} {
		if err := ValidateThreshold(invalid); !errors.Is(err, core.ErrInvalidThreshold) {
			t.Errorf("expected ErrInvalidThreshold for %.2f, got %v", invalid, err)
		}
	}
}
