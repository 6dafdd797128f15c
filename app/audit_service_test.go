package app

import (
	"context"
	"testing"

	statsfairness "fairmind/adapters/stats/fairness"
	statsremediation "fairmind/adapters/stats/remediation"
	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
	"fairmind/internal/testkit"
	"fairmind/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryAuditRepository is an in-memory AuditRepository for service tests
type memoryAuditRepository struct {
	audits map[core.AuditID]*fairness.BiasAudit
}

func newMemoryAuditRepository() *memoryAuditRepository {
	return &memoryAuditRepository{audits: make(map[core.AuditID]*fairness.BiasAudit)}
}

func (r *memoryAuditRepository) Create(ctx context.Context, audit *fairness.BiasAudit) error {
	r.audits[audit.ID] = audit
	return nil
}

func (r *memoryAuditRepository) GetByID(ctx context.Context, id core.AuditID) (*fairness.BiasAudit, error) {
	audit, ok := r.audits[id]
	if !ok {
		return nil, core.ErrAuditNotFound
	}
	return audit, nil
}

func (r *memoryAuditRepository) List(ctx context.Context, filters ports.AuditFilters) ([]*fairness.BiasAudit, error) {
	var out []*fairness.BiasAudit
	for _, audit := range r.audits {
		if filters.ModelID != nil && audit.ModelID != *filters.ModelID {
			continue
		}
		if filters.Passed != nil && audit.OverallPassed != *filters.Passed {
			continue
		}
		out = append(out, audit)
	}
	return out, nil
}

func (r *memoryAuditRepository) Delete(ctx context.Context, id core.AuditID) error {
	if _, ok := r.audits[id]; !ok {
		return core.ErrAuditNotFound
	}
	delete(r.audits, id)
	return nil
}

func (r *memoryAuditRepository) CountByModel(ctx context.Context, modelID core.ModelID) (int, error) {
	count := 0
	for _, audit := range r.audits {
		if audit.ModelID == modelID {
			count++
		}
	}
	return count, nil
}

func newTestAuditService(t *testing.T) (*AuditService, *memoryAuditRepository) {
	t.Helper()
	repo := newMemoryAuditRepository()
	service := NewAuditService(
		statsfairness.NewDefaultCalculator(),
		statsremediation.NewDefaultService(),
		repo,
		fairness.DefaultThreshold,
	)
	return service, repo
}

func TestRunAuditEndToEnd(t *testing.T) {
	service, repo := newTestAuditService(t)
	samples := testkit.NewTestKit().BiasedLendingSamples(200, 0.8)

	result, err := service.RunAudit(context.Background(), AuditRequest{
		ModelID: core.ModelID("lending-v2"),
		Samples: samples,
	})
	require.NoError(t, err)

	audit := result.Audit
	assert.Equal(t, 400, audit.SampleSize)
	assert.Equal(t, 2, audit.GroupCount)
	assert.Len(t, audit.Results, 4)
	assert.NotEmpty(t, audit.Remediations)
	assert.False(t, audit.SampleHash.IsEmpty())

	// Persisted under its own ID
	stored, err := repo.GetByID(context.Background(), audit.ID)
	require.NoError(t, err)
	assert.Equal(t, audit.ID, stored.ID)
}

func TestRunAuditWithoutGroundTruth(t *testing.T) {
	service, _ := newTestAuditService(t)

	samples := testkit.NewTestKit().BiasedLendingSamples(100, 0.5)
	samples.GroundTruth = nil

	result, err := service.RunAudit(context.Background(), AuditRequest{
		ModelID: core.ModelID("lending-v2"),
		Samples: samples,
	})
	require.NoError(t, err)

	// Only demographic parity is computable without labels
	assert.Len(t, result.Audit.Results, 1)
	assert.Contains(t, result.Audit.Results, fairness.MetricDemographicParity)
}

func TestRunAuditZeroPositiveLabel(t *testing.T) {
	service, _ := newTestAuditService(t)

	// Label 0 marks the positive class here; group A predicts it for
	// half its members, group B never does.
	samples := fairness.Samples{
		Predictions: []float64{0, 1, 1, 1},
		Groups:      []string{"A", "A", "B", "B"},
	}
	zero := 0.0

	result, err := service.RunAudit(context.Background(), AuditRequest{
		ModelID:       core.ModelID("lending-v2"),
		Samples:       samples,
		PositiveLabel: &zero,
		Strategies:    []remediation.Strategy{},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Audit.PositiveLabel)
	dp := result.Audit.Results[fairness.MetricDemographicParity]
	assert.Equal(t, 0.0, dp.OverallScore)
	assert.InDelta(t, 0.5, dp.GroupScores["A"], 1e-9)
	assert.Equal(t, 0.0, dp.GroupScores["B"])
}

func TestRunAuditSkipsRemediationWhenRequested(t *testing.T) {
	service, _ := newTestAuditService(t)
	samples := testkit.NewTestKit().BiasedLendingSamples(100, 0.5)

	result, err := service.RunAudit(context.Background(), AuditRequest{
		ModelID:    core.ModelID("lending-v2"),
		Samples:    samples,
		Strategies: []remediation.Strategy{},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Audit.Remediations)
}

func TestRunAuditRequiresModelID(t *testing.T) {
	service, _ := newTestAuditService(t)

	_, err := service.RunAudit(context.Background(), AuditRequest{
		Samples: testkit.NewTestKit().BiasedLendingSamples(10, 0.5),
	})
	assert.Error(t, err)
}

func TestRunAuditRejectsInvalidSamples(t *testing.T) {
	service, _ := newTestAuditService(t)

	_, err := service.RunAudit(context.Background(), AuditRequest{
		ModelID: core.ModelID("lending-v2"),
		Samples: fairness.Samples{Predictions: []float64{1}, Groups: []string{}},
	})
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestDeleteAudit(t *testing.T) {
	service, _ := newTestAuditService(t)
	samples := testkit.NewTestKit().BiasedLendingSamples(50, 0.5)

	result, err := service.RunAudit(context.Background(), AuditRequest{
		ModelID: core.ModelID("lending-v2"),
		Samples: samples,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAudit(context.Background(), result.Audit.ID))
	_, err = service.GetAudit(context.Background(), result.Audit.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = service.DeleteAudit(context.Background(), core.AuditID("missing"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCountAuditsByModel(t *testing.T) {
	service, _ := newTestAuditService(t)
	samples := testkit.NewTestKit().BiasedLendingSamples(50, 0.5)

	for i := 0; i < 3; i++ {
		_, err := service.RunAudit(context.Background(), AuditRequest{
			ModelID: core.ModelID("lending-v2"),
			Samples: samples,
		})
		require.NoError(t, err)
	}

	count, err := service.CountAuditsByModel(context.Background(), core.ModelID("lending-v2"))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = service.CountAuditsByModel(context.Background(), core.ModelID("other"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
