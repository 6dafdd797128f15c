package fairness

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/ports"
)

// MetricAnalyzer defines the interface each fairness metric implements
type MetricAnalyzer interface {
	Name() fairness.MetricName
	RequiresGroundTruth() bool
	Analyze(ctx context.Context, samples fairness.Samples, positiveLabel, threshold float64) (fairness.FairnessResult, error)
}

// Calculator orchestrates the four group-fairness metrics. It is pure and
// stateless apart from the configured threshold, so a single instance is
// safe for concurrent handler use.
type Calculator struct {
	threshold float64
	analyzers []MetricAnalyzer
}

// NewCalculator creates a calculator with the given minimum acceptable
// disparity ratio. The threshold applies uniformly to every metric.
func NewCalculator(threshold float64) (*Calculator, error) {
	if err := fairness.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Calculator{
		threshold: threshold,
		analyzers: []MetricAnalyzer{
			NewDemographicParityAnalyzer(),
			NewEqualizedOddsAnalyzer(),
			NewEqualOpportunityAnalyzer(),
			NewPredictiveParityAnalyzer(),
		},
	}, nil
}

// NewDefaultCalculator creates a calculator with the 80% rule threshold
func NewDefaultCalculator() *Calculator {
	c, _ := NewCalculator(fairness.DefaultThreshold)
	return c
}

// Threshold returns the configured minimum acceptable disparity ratio
func (c *Calculator) Threshold() float64 {
	return c.threshold
}

// DemographicParity compares positive-prediction rates across groups
func (c *Calculator) DemographicParity(ctx context.Context, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error) {
	return c.analyze(ctx, fairness.MetricDemographicParity, samples, positiveLabel)
}

// EqualizedOdds compares TPR and FPR across groups; requires ground truth
func (c *Calculator) EqualizedOdds(ctx context.Context, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error) {
	return c.analyze(ctx, fairness.MetricEqualizedOdds, samples, positiveLabel)
}

// EqualOpportunity compares TPR across groups; requires ground truth
func (c *Calculator) EqualOpportunity(ctx context.Context, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error) {
	return c.analyze(ctx, fairness.MetricEqualOpportunity, samples, positiveLabel)
}

// PredictiveParity compares precision across groups; requires ground truth
func (c *Calculator) PredictiveParity(ctx context.Context, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error) {
	return c.analyze(ctx, fairness.MetricPredictiveParity, samples, positiveLabel)
}

// Metric computes a single metric by name
func (c *Calculator) Metric(ctx context.Context, name fairness.MetricName, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error) {
	return c.analyze(ctx, name, samples, positiveLabel)
}

// AllMetrics computes every applicable metric concurrently. Demographic
// parity is always included; ground-truth-dependent metrics only when the
// samples carry true labels. Any single metric failure fails the call;
// the caller never receives a partially ambiguous result set.
func (c *Calculator) AllMetrics(ctx context.Context, samples fairness.Samples, positiveLabel float64) (map[fairness.MetricName]fairness.FairnessResult, error) {
	if err := samples.Validate(); err != nil {
		return nil, err
	}

	results := make(map[fairness.MetricName]fairness.FairnessResult)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, analyzer := range c.analyzers {
		if analyzer.RequiresGroundTruth() && !samples.HasGroundTruth() {
			continue
		}
		analyzer := analyzer
		g.Go(func() error {
			result, err := analyzer.Analyze(gctx, samples, positiveLabel, c.threshold)
			if err != nil {
				return err
			}
			mu.Lock()
			results[analyzer.Name()] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// analyze dispatches to the named analyzer
func (c *Calculator) analyze(ctx context.Context, name fairness.MetricName, samples fairness.Samples, positiveLabel float64) (fairness.FairnessResult, error) {
	for _, analyzer := range c.analyzers {
		if analyzer.Name() == name {
			return analyzer.Analyze(ctx, samples, positiveLabel, c.threshold)
		}
	}
	return fairness.FairnessResult{}, core.ErrUnknownMetric
}

// Interface guard
var _ ports.FairnessEngine = (*Calculator)(nil)
