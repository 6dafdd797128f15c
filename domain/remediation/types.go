package remediation

import (
	"fairmind/domain/core"
)

// Strategy identifies a bias remediation technique
type Strategy string

const (
	StrategyReweighting           Strategy = "reweighting"
	StrategyResampling            Strategy = "resampling"
	StrategyThresholdOptimization Strategy = "threshold_optimization"
	StrategyCalibration           Strategy = "calibration"

	// Declared but not implemented. Requesting these yields no entry in
	// the result list rather than an error.
	StrategyRejectOption         Strategy = "reject_option"
	StrategyAdversarialDebiasing Strategy = "adversarial_debiasing"
)

// DisplayName returns the human-readable strategy name used in reports
func (s Strategy) DisplayName() string {
	switch s {
	case StrategyReweighting:
		return "Reweighting"
	case StrategyResampling:
		return "Resampling"
	case StrategyThresholdOptimization:
		return "Threshold Optimization"
	case StrategyCalibration:
		return "Calibration"
	case StrategyRejectOption:
		return "Reject Option"
	case StrategyAdversarialDebiasing:
		return "Adversarial Debiasing"
	default:
		return string(s)
	}
}

// ParseStrategy validates a strategy name from the API surface
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyReweighting, StrategyResampling, StrategyThresholdOptimization,
		StrategyCalibration, StrategyRejectOption, StrategyAdversarialDebiasing:
		return Strategy(s), nil
	}
	return "", core.ErrUnknownStrategy
}

// Implemented reports whether the strategy has a working analyzer
func (s Strategy) Implemented() bool {
	switch s {
	case StrategyReweighting, StrategyResampling, StrategyThresholdOptimization, StrategyCalibration:
		return true
	}
	return false
}

// DefaultStrategies is the set run when the caller does not request
// specific strategies. Calibration is implemented but opt-in.
func DefaultStrategies() []Strategy {
	return []Strategy{StrategyReweighting, StrategyResampling, StrategyThresholdOptimization}
}

// RemediationResult is the immutable outcome of evaluating one strategy.
// ImprovedMetrics is a simulated projection of the post-remediation metric
// values, not a retrained model's measurement.
type RemediationResult struct {
	Strategy              Strategy           `json:"strategy"`
	StrategyLabel         string             `json:"strategy_label"`
	Success               bool               `json:"success"`
	OriginalMetrics       map[string]float64 `json:"original_metrics"`
	ImprovedMetrics       map[string]float64 `json:"improved_metrics"`
	ImprovementPercentage float64            `json:"improvement_percentage"`
	ImplementationCode    string             `json:"implementation_code"`
	Explanation           string             `json:"explanation"`
	Warnings              []string           `json:"warnings"`
	GroupWeights          map[string]float64 `json:"group_weights,omitempty"`
	ThresholdAdjustments  map[string]float64 `json:"threshold_adjustments,omitempty"`
}
