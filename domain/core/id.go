package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	AuditID   ID
	DatasetID ID
	ModelID   ID
	ReportID  ID
)

// String conversions for domain IDs
func (id AuditID) String() string   { return ID(id).String() }
func (id DatasetID) String() string { return ID(id).String() }
func (id ModelID) String() string   { return ID(id).String() }
func (id ReportID) String() string  { return ID(id).String() }

// ParseAuditID parses a string into AuditID
func ParseAuditID(s string) (AuditID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("audit ID cannot be empty")
	}
	return AuditID(s), nil
}

// ParseDatasetID parses a string into DatasetID
func ParseDatasetID(s string) (DatasetID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dataset ID cannot be empty")
	}
	return DatasetID(s), nil
}

// ParseModelID parses a string into ModelID
func ParseModelID(s string) (ModelID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("model ID cannot be empty")
	}
	return ModelID(s), nil
}
