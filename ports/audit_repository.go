package ports

import (
	"context"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
)

// AuditFilters narrows audit listings
type AuditFilters struct {
	ModelID *core.ModelID
	Passed  *bool
	Limit   int
	Offset  int
}

// AuditRepository persists bias audit aggregates
type AuditRepository interface {
	Create(ctx context.Context, audit *fairness.BiasAudit) error
	GetByID(ctx context.Context, id core.AuditID) (*fairness.BiasAudit, error)
	List(ctx context.Context, filters AuditFilters) ([]*fairness.BiasAudit, error)
	Delete(ctx context.Context, id core.AuditID) error
	CountByModel(ctx context.Context, modelID core.ModelID) (int, error)
}
