package fairness

import (
	"fairmind/domain/core"
)

// MetricName identifies a group-fairness metric
type MetricName string

const (
	MetricDemographicParity MetricName = "demographic_parity"
	MetricEqualizedOdds     MetricName = "equalized_odds"
	MetricEqualOpportunity  MetricName = "equal_opportunity"
	MetricPredictiveParity  MetricName = "predictive_parity"
)

// DisplayName returns the human-readable metric name used in reports
func (m MetricName) DisplayName() string {
	switch m {
	case MetricDemographicParity:
		return "Demographic Parity"
	case MetricEqualizedOdds:
		return "Equalized Odds"
	case MetricEqualOpportunity:
		return "Equal Opportunity"
	case MetricPredictiveParity:
		return "Predictive Parity"
	default:
		return string(m)
	}
}

// RequiresGroundTruth reports whether the metric needs true labels
func (m MetricName) RequiresGroundTruth() bool {
	return m != MetricDemographicParity
}

// ParseMetricName validates a metric name from the API surface
func ParseMetricName(s string) (MetricName, error) {
	switch MetricName(s) {
	case MetricDemographicParity, MetricEqualizedOdds, MetricEqualOpportunity, MetricPredictiveParity:
		return MetricName(s), nil
	}
	return "", core.ErrUnknownMetric
}

// DefaultThreshold is the minimum acceptable disparity ratio (the "80% rule")
const DefaultThreshold = 0.8

// DefaultPositiveLabel is the prediction value considered a positive outcome
const DefaultPositiveLabel = 1.0

// Severity buckets a disparity ratio for interpretation and recommendations
type Severity string

const (
	SeverityExcellent  Severity = "excellent"  // ratio >= 0.9
	SeverityAcceptable Severity = "acceptable" // ratio >= 0.8
	SeverityConcerning Severity = "concerning" // ratio >= 0.7
	SeverityCritical   Severity = "critical"   // ratio < 0.7
)

// BucketSeverity classifies a disparity ratio into a severity bucket
func BucketSeverity(ratio float64) Severity {
	switch {
	case ratio >= 0.9:
		return SeverityExcellent
	case ratio >= 0.8:
		return SeverityAcceptable
	case ratio >= 0.7:
		return SeverityConcerning
	default:
		return SeverityCritical
	}
}

// SignificanceEvidence carries an optional chi-square independence test
// between predictions and group membership. It is informational only and
// never gates pass/fail.
type SignificanceEvidence struct {
	ChiSquare         float64 `json:"chi_square"`
	DegreesOfFreedom  int     `json:"degrees_of_freedom"`
	PValue            float64 `json:"p_value"`
	Significant       bool    `json:"significant"` // p < 0.05
	ContingencyGroups int     `json:"contingency_groups"`
}

// FairnessResult is the immutable outcome of a single metric computation.
// OverallScore is the min/max disparity ratio across groups: 1.0 means
// perfectly equal treatment.
type FairnessResult struct {
	Metric          MetricName            `json:"metric"`
	MetricLabel     string                `json:"metric_label"`
	OverallScore    float64               `json:"overall_score"` // in [0,1]
	GroupScores     map[string]float64    `json:"group_scores"`  // group -> per-group rate
	Disparity       float64               `json:"disparity"`     // 1 - OverallScore
	Passed          bool                  `json:"passed"`
	Threshold       float64               `json:"threshold"`
	Severity        Severity              `json:"severity"`
	Interpretation  string                `json:"interpretation"`
	Recommendations []string              `json:"recommendations"`
	Significance    *SignificanceEvidence `json:"significance,omitempty"`
	SampleSize      int                   `json:"sample_size"`
}

// Samples is the conceptual sample set every metric operates on.
// GroundTruth may be nil; metrics that require it must reject its absence.
type Samples struct {
	Predictions []float64
	GroundTruth []float64 // nil when unavailable
	Groups      []string
}

// HasGroundTruth reports whether true labels were supplied
func (s Samples) HasGroundTruth() bool {
	return s.GroundTruth != nil
}

// Len returns the number of examples
func (s Samples) Len() int {
	return len(s.Predictions)
}

// Validate enforces the sample-set invariants: non-empty, equal lengths,
// ground truth (when present) aligned with predictions.
func (s Samples) Validate() error {
	if len(s.Predictions) == 0 {
		return core.ErrEmptyInput
	}
	if len(s.Groups) != len(s.Predictions) {
		return core.NewLengthMismatchError("protected_attribute", len(s.Groups), len(s.Predictions))
	}
	if s.GroundTruth != nil && len(s.GroundTruth) != len(s.Predictions) {
		return core.NewLengthMismatchError("ground_truth", len(s.GroundTruth), len(s.Predictions))
	}
	return nil
}

// DistinctGroups returns the observed group labels in first-seen order
func (s Samples) DistinctGroups() []string {
	seen := make(map[string]bool)
	order := make([]string, 0, 4)
	for _, g := range s.Groups {
		if !seen[g] {
			seen[g] = true
			order = append(order, g)
		}
	}
	return order
}

// ValidateThreshold checks a disparity threshold is in [0,1]
func ValidateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return core.ErrInvalidThreshold
	}
	return nil
}
