package testkit

import (
	"math/rand"

	"fairmind/domain/fairness"
)

// TestKit provides testing utilities and synthetic fixture data
type TestKit struct {
	rng *rand.Rand
}

// NewTestKit creates a test kit with a fixed seed so fixtures are
// reproducible across runs
func NewTestKit() *TestKit {
	return &TestKit{rng: rand.New(rand.NewSource(42))}
}

// NewTestKitWithSeed creates a test kit with a caller-chosen seed
func NewTestKitWithSeed(seed int64) *TestKit {
	return &TestKit{rng: rand.New(rand.NewSource(seed))}
}

// GroupSpec describes one protected group in a synthetic sample set
type GroupSpec struct {
	Name string
	// Size is the number of rows generated for the group
	Size int
	// PositiveRate is the probability a row gets a positive prediction
	PositiveRate float64
	// TruePositiveRate is the probability the ground truth is positive
	// given a positive prediction
	TruePositiveRate float64
}

// BiasedLendingSamples generates a synthetic loan-approval sample set
// with a privileged and an unprivileged group. The approval rate gap is
// controlled by disparity: 0 yields equal rates, 1 halves the
// unprivileged rate.
func (t *TestKit) BiasedLendingSamples(perGroup int, disparity float64) fairness.Samples {
	base := 0.6
	return t.Samples([]GroupSpec{
		{Name: "group_a", Size: perGroup, PositiveRate: base, TruePositiveRate: 0.8},
		{Name: "group_b", Size: perGroup, PositiveRate: base * (1 - disparity/2), TruePositiveRate: 0.8},
	})
}

// Samples generates a sample set from explicit group specs. Rows are
// emitted group by group so tests can reason about index ranges.
func (t *TestKit) Samples(specs []GroupSpec) fairness.Samples {
	var samples fairness.Samples
	for _, spec := range specs {
		for i := 0; i < spec.Size; i++ {
			pred := 0.0
			if t.rng.Float64() < spec.PositiveRate {
				pred = 1.0
			}
			truth := 0.0
			if pred == 1.0 {
				if t.rng.Float64() < spec.TruePositiveRate {
					truth = 1.0
				}
			} else {
				// Some denied applicants would have repaid
				if t.rng.Float64() < 0.2 {
					truth = 1.0
				}
			}
			samples.Predictions = append(samples.Predictions, pred)
			samples.GroundTruth = append(samples.GroundTruth, truth)
			samples.Groups = append(samples.Groups, spec.Name)
		}
	}
	return samples
}

// ExactSamples builds a sample set from parallel literals. Panics on
// length mismatch so a broken fixture fails loudly at construction.
func ExactSamples(predictions, groundTruth []float64, groups []string) fairness.Samples {
	if len(predictions) != len(groups) {
		panic("testkit: predictions and groups length mismatch")
	}
	if groundTruth != nil && len(groundTruth) != len(predictions) {
		panic("testkit: ground truth length mismatch")
	}
	return fairness.Samples{
		Predictions: predictions,
		GroundTruth: groundTruth,
		Groups:      groups,
	}
}
