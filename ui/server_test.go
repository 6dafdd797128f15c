package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fairmind/adapters/excel"
	statsfairness "fairmind/adapters/stats/fairness"
	statsremediation "fairmind/adapters/stats/remediation"
	"fairmind/app"
	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/ports"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories for handler tests

type memAuditRepo struct {
	audits map[core.AuditID]*fairness.BiasAudit
}

func (r *memAuditRepo) Create(ctx context.Context, audit *fairness.BiasAudit) error {
	r.audits[audit.ID] = audit
	return nil
}

func (r *memAuditRepo) GetByID(ctx context.Context, id core.AuditID) (*fairness.BiasAudit, error) {
	audit, ok := r.audits[id]
	if !ok {
		return nil, core.ErrAuditNotFound
	}
	return audit, nil
}

func (r *memAuditRepo) List(ctx context.Context, filters ports.AuditFilters) ([]*fairness.BiasAudit, error) {
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

func (r *memAuditRepo) Delete(ctx context.Context, id core.AuditID) error {
	if _, ok := r.audits[id]; !ok {
		return core.ErrAuditNotFound
	}
	delete(r.audits, id)
	return nil
}

func (r *memAuditRepo) CountByModel(ctx context.Context, modelID core.ModelID) (int, error) {
	count := 0
	for _, audit := range r.audits {
		if audit.ModelID == modelID {
			count++
		}
	}
	return count, nil
}

type memDatasetRepo struct {
	records map[core.DatasetID]*ports.DatasetRecord
}

func (r *memDatasetRepo) Create(ctx context.Context, record *ports.DatasetRecord) error {
	r.records[record.ID] = record
	return nil
}

func (r *memDatasetRepo) GetByID(ctx context.Context, id core.DatasetID) (*ports.DatasetRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, core.ErrDatasetNotFound
	}
	return record, nil
}

func (r *memDatasetRepo) List(ctx context.Context, limit, offset int) ([]*ports.DatasetRecord, error) {
	var out []*ports.DatasetRecord
	for _, record := range r.records {
		out = append(out, record)
	}
	return out, nil
}

func (r *memDatasetRepo) Delete(ctx context.Context, id core.DatasetID) error {
	if _, ok := r.records[id]; !ok {
		return core.ErrDatasetNotFound
	}
	delete(r.records, id)
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auditRepo := &memAuditRepo{audits: make(map[core.AuditID]*fairness.BiasAudit)}
	datasetRepo := &memDatasetRepo{records: make(map[core.DatasetID]*ports.DatasetRecord)}

	calculator := statsfairness.NewDefaultCalculator()
	remediationService := statsremediation.NewDefaultService()

	auditService := app.NewAuditService(calculator, remediationService, auditRepo, fairness.DefaultThreshold)
	datasetService := app.NewDatasetService(datasetRepo)
	reportService := app.NewReportService(auditRepo, excel.NewReportWriter(), "", "")

	return NewServer(auditService, datasetService, reportService, calculator, remediationService)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func biasedPayload() map[string]interface{} {
	return map[string]interface{}{
		"predictions":  []float64{1, 1, 1, 0, 1, 0, 0, 0},
		"ground_truth": []float64{1, 1, 0, 1, 1, 1, 0, 0},
		"groups":       []string{"A", "A", "A", "A", "B", "B", "B", "B"},
	}
}

func TestComputeMetricEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/metrics/demographic_parity", map[string]interface{}{
		"samples": biasedPayload(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result fairness.FairnessResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, fairness.MetricDemographicParity, result.Metric)
	assert.InDelta(t, 1.0/3.0, result.OverallScore, 1e-9)
	assert.False(t, result.Passed)
}

func TestComputeMetricAll(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/metrics/all", map[string]interface{}{
		"samples": biasedPayload(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results map[fairness.MetricName]fairness.FairnessResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 4)
}

func TestComputeMetricZeroPositiveLabel(t *testing.T) {
	s := newTestServer(t)

	// Label 0 is the positive class; it must not be coerced to the
	// default. Group A predicts 0 once, group B never.
	w := doJSON(t, s, http.MethodPost, "/api/v1/metrics/demographic_parity", map[string]interface{}{
		"positive_label": 0,
		"samples": map[string]interface{}{
			"predictions": []float64{0, 1, 1, 1},
			"groups":      []string{"A", "A", "B", "B"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result fairness.FairnessResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0.0, result.OverallScore)
	assert.InDelta(t, 0.5, result.GroupScores["A"], 1e-9)
	assert.Equal(t, 0.0, result.GroupScores["B"])
}

func TestComputeMetricUnknownName(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/metrics/disparate_impact", map[string]interface{}{
		"samples": biasedPayload(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComputeMetricGroundTruthRequired(t *testing.T) {
	s := newTestServer(t)

	payload := biasedPayload()
	delete(payload, "ground_truth")
	w := doJSON(t, s, http.MethodPost, "/api/v1/metrics/equalized_odds", map[string]interface{}{
		"samples": payload,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemediationEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/remediation", map[string]interface{}{
		"samples":    biasedPayload(),
		"strategies": []string{"reweighting", "resampling"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestRemediationUnknownStrategy(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/remediation", map[string]interface{}{
		"samples":    biasedPayload(),
		"strategies": []string{"prompt_engineering"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditLifecycle(t *testing.T) {
	s := newTestServer(t)

	// Create
	w := doJSON(t, s, http.MethodPost, "/api/v1/audits", map[string]interface{}{
		"model_id": "lending-v2",
		"samples":  biasedPayload(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Audit fairness.BiasAudit `json:"audit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.False(t, core.ID(created.Audit.ID).IsEmpty())
	assert.Len(t, created.Audit.Results, 4)
	assert.NotEmpty(t, created.Audit.Remediations)

	// Get
	w = doJSON(t, s, http.MethodGet, "/api/v1/audits/"+created.Audit.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// List with filter
	w = doJSON(t, s, http.MethodGet, "/api/v1/audits?model_id=lending-v2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)

	// Report
	w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/audits/%s/report", created.Audit.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Metric Results")

	// Delete, then 404
	w = doJSON(t, s, http.MethodDelete, "/api/v1/audits/"+created.Audit.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, s, http.MethodGet, "/api/v1/audits/"+created.Audit.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAuditValidation(t *testing.T) {
	s := newTestServer(t)

	// Missing model_id
	w := doJSON(t, s, http.MethodPost, "/api/v1/audits", map[string]interface{}{
		"samples": biasedPayload(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Mismatched arrays
	w = doJSON(t, s, http.MethodPost, "/api/v1/audits", map[string]interface{}{
		"model_id": "lending-v2",
		"samples": map[string]interface{}{
			"predictions": []float64{1, 0},
			"groups":      []string{"A"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditReportXlsx(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/audits", map[string]interface{}{
		"model_id": "lending-v2",
		"samples":  biasedPayload(),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Audit fairness.BiasAudit `json:"audit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/audits/%s/report?format=xlsx", created.Audit.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	// xlsx files are zip archives
	assert.Equal(t, "PK", w.Body.String()[:2])
}

func TestAuditReportXlsxUnknownAudit(t *testing.T) {
	s := newTestServer(t)

	// A failed render must surface as an error status, never as a 200
	// with attachment headers and a truncated body.
	missing := core.AuditID(core.NewID())
	w := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/audits/%s/report?format=xlsx", missing), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestDatasetLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/datasets", map[string]interface{}{
		"name":         "lending_2026_q2",
		"group_column": "applicant_group",
		"samples":      biasedPayload(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var record ports.DatasetRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, 8, record.RecordCount)
	assert.False(t, record.SampleHash.IsEmpty())

	w = doJSON(t, s, http.MethodGet, "/api/v1/datasets/"+record.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/datasets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/datasets/"+record.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, s, http.MethodGet, "/api/v1/datasets/"+record.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
