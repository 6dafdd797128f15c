package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrAuditNotFound   = fmt.Errorf("%w: audit", ErrNotFound)
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrReportNotFound  = fmt.Errorf("%w: report", ErrNotFound)

	// Validation errors
	ErrLengthMismatch      = errors.New("input arrays must have the same length")
	ErrEmptyInput          = errors.New("input arrays must not be empty")
	ErrGroundTruthRequired = errors.New("ground truth is required for this metric")
	ErrInvalidThreshold    = errors.New("threshold must be between 0 and 1")
	ErrUnknownMetric       = errors.New("unknown fairness metric")
	ErrUnknownStrategy     = errors.New("unknown remediation strategy")

	// Strategy errors
	ErrStrategyNotImplemented = errors.New("remediation strategy not implemented")
	ErrInsufficientData       = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewLengthMismatchError(name string, got, want int) error {
	return fmt.Errorf("%w: %s has %d elements, expected %d", ErrLengthMismatch, name, got, want)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrGroundTruthRequired) ||
		errors.Is(err, ErrInvalidThreshold) ||
		errors.Is(err, ErrUnknownMetric) ||
		errors.Is(err, ErrUnknownStrategy)
}
