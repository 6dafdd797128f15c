package remediation

import (
	"context"
	"sort"

	fairnesscalc "fairmind/adapters/stats/fairness"
	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
	"fairmind/internal"
	"fairmind/ports"
)

// strategyInput is the shared input handed to every strategy analyzer
type strategyInput struct {
	samples       fairness.Samples
	positiveLabel float64
	threshold     float64
	baseline      map[string]float64 // metric name -> overall score
}

// strategyAnalyzer defines the interface each remediation strategy implements
type strategyAnalyzer interface {
	Strategy() remediation.Strategy
	RequiresGroundTruth() bool
	Apply(ctx context.Context, in strategyInput) (remediation.RemediationResult, error)
}

// Service evaluates remediation strategies against a sample set and ranks
// them by estimated improvement. Improvements are simulated projections
// with fixed multipliers, not retrain-and-remeasure outcomes; each result
// labels itself as an estimate.
type Service struct {
	fairnessThreshold float64
	calculator        *fairnesscalc.Calculator
	analyzers         map[remediation.Strategy]strategyAnalyzer
	logger            *internal.Logger
}

// NewService creates a remediation service. The threshold feeds display
// and warning text only; it never gates which strategies run.
func NewService(fairnessThreshold float64) (*Service, error) {
	if err := fairness.ValidateThreshold(fairnessThreshold); err != nil {
		return nil, err
	}
	calculator, err := fairnesscalc.NewCalculator(fairnessThreshold)
	if err != nil {
		return nil, err
	}
	return &Service{
		fairnessThreshold: fairnessThreshold,
		calculator:        calculator,
		analyzers: map[remediation.Strategy]strategyAnalyzer{
			remediation.StrategyReweighting:           NewReweightingAnalyzer(),
			remediation.StrategyResampling:            NewResamplingAnalyzer(),
			remediation.StrategyThresholdOptimization: NewThresholdOptimizationAnalyzer(),
			remediation.StrategyCalibration:           NewCalibrationAnalyzer(),
		},
		logger: internal.DefaultLogger,
	}, nil
}

// NewDefaultService creates a remediation service with the 80% rule threshold
func NewDefaultService() *Service {
	s, _ := NewService(fairness.DefaultThreshold)
	return s
}

// AnalyzeAndRemediate computes baseline metrics once, evaluates each
// requested strategy, and returns the successes sorted descending by
// improvement percentage. A failing strategy is logged and skipped; it
// never aborts its siblings. Unknown strategy values are rejected up
// front as a caller contract violation.
func (s *Service) AnalyzeAndRemediate(ctx context.Context, samples fairness.Samples, positiveLabel float64,
	strategies []remediation.Strategy) ([]remediation.RemediationResult, error) {

	if err := samples.Validate(); err != nil {
		return nil, err
	}
	if strategies == nil {
		strategies = remediation.DefaultStrategies()
	}
	for _, strategy := range strategies {
		if _, err := remediation.ParseStrategy(string(strategy)); err != nil {
			return nil, core.ErrUnknownStrategy
		}
	}

	baseline, err := s.baselineMetrics(ctx, samples, positiveLabel)
	if err != nil {
		return nil, err
	}

	in := strategyInput{
		samples:       samples,
		positiveLabel: positiveLabel,
		threshold:     s.fairnessThreshold,
		baseline:      baseline,
	}

	results := make([]remediation.RemediationResult, 0, len(strategies))
	for _, strategy := range strategies {
		analyzer, ok := s.analyzers[strategy]
		if !ok {
			// Declared but unimplemented (reject option, adversarial
			// debiasing): absent from the result list, not a crash.
			s.logger.Warn("[Remediation] strategy %s not implemented, skipping", strategy)
			continue
		}
		if analyzer.RequiresGroundTruth() && !samples.HasGroundTruth() {
			s.logger.Warn("[Remediation] strategy %s requires ground truth, skipping", strategy)
			continue
		}
		result, err := analyzer.Apply(ctx, in)
		if err != nil {
			s.logger.Warn("[Remediation] strategy %s failed: %v", strategy, err)
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ImprovementPercentage > results[j].ImprovementPercentage
	})
	return results, nil
}

// baselineMetrics computes the pre-remediation scores strategies project
// from: demographic parity always, the ground-truth metrics the
// strategies simulate (equal opportunity, predictive parity) when true
// labels are available.
func (s *Service) baselineMetrics(ctx context.Context, samples fairness.Samples, positiveLabel float64) (map[string]float64, error) {
	baseline := make(map[string]float64)

	dp, err := s.calculator.DemographicParity(ctx, samples, positiveLabel)
	if err != nil {
		return nil, err
	}
	baseline[string(fairness.MetricDemographicParity)] = dp.OverallScore

	if samples.HasGroundTruth() {
		eo, err := s.calculator.EqualOpportunity(ctx, samples, positiveLabel)
		if err != nil {
			return nil, err
		}
		baseline[string(fairness.MetricEqualOpportunity)] = eo.OverallScore

		pp, err := s.calculator.PredictiveParity(ctx, samples, positiveLabel)
		if err != nil {
			return nil, err
		}
		baseline[string(fairness.MetricPredictiveParity)] = pp.OverallScore
	}

	return baseline, nil
}

// Interface guard
var _ ports.RemediationEngine = (*Service)(nil)
