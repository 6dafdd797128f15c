package app

import (
	"bytes"
	"context"
	"testing"

	"fairmind/adapters/excel"
	"fairmind/domain/core"
	"fairmind/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(t *testing.T) (*ReportService, core.AuditID) {
	t.Helper()
	auditService, repo := newTestAuditService(t)

	result, err := auditService.RunAudit(context.Background(), AuditRequest{
		ModelID: core.ModelID("credit-model"),
		Samples: testkit.NewTestKit().BiasedLendingSamples(200, 0.9),
	})
	require.NoError(t, err)

	return NewReportService(repo, excel.NewReportWriter(), "", "Acme Bank"), result.Audit.ID
}

func TestGenerateReportMarkdown(t *testing.T) {
	service, auditID := newTestReportService(t)

	rep, err := service.GenerateReport(context.Background(), auditID)
	require.NoError(t, err)

	assert.Equal(t, auditID, rep.AuditID)
	assert.False(t, core.ID(rep.ID).IsEmpty())
	assert.Contains(t, rep.Title, "credit-model")

	md := rep.Markdown
	assert.Contains(t, md, "# Bias Audit Report: credit-model")
	assert.Contains(t, md, "Prepared for Acme Bank.")
	assert.Contains(t, md, "## Metric Results")
	assert.Contains(t, md, "Demographic Parity")
	assert.Contains(t, md, "## Remediation Plan")
	assert.Contains(t, md, "```python")
}

func TestGenerateReportUnknownAudit(t *testing.T) {
	service, _ := newTestReportService(t)

	_, err := service.GenerateReport(context.Background(), core.AuditID("missing"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGenerateHTML(t *testing.T) {
	service, auditID := newTestReportService(t)

	page, err := service.GenerateHTML(context.Background(), auditID)
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<html>")
	assert.Contains(t, html, "credit-model")
	assert.Contains(t, html, "<table>")
}

func TestWriteExcel(t *testing.T) {
	service, auditID := newTestReportService(t)

	var buf bytes.Buffer
	require.NoError(t, service.WriteExcel(context.Background(), auditID, &buf))
	assert.Greater(t, buf.Len(), 0)

	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}
