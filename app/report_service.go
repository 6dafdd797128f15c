package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/domain/report"
	"fairmind/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ReportService renders persisted audits into compliance reports.
// Markdown is the canonical form; HTML is derived from it and the
// workbook is rendered straight from the audit aggregate.
type ReportService struct {
	auditRepo    ports.AuditRepository
	excelWriter  ports.ReportWriter
	titlePrefix  string
	organization string
}

// NewReportService creates a report service
func NewReportService(auditRepo ports.AuditRepository, excelWriter ports.ReportWriter,
	titlePrefix, organization string) *ReportService {
	if titlePrefix == "" {
		titlePrefix = "Bias Audit Report"
	}
	return &ReportService{
		auditRepo:    auditRepo,
		excelWriter:  excelWriter,
		titlePrefix:  titlePrefix,
		organization: organization,
	}
}

// GenerateReport builds the markdown report for an audit
func (s *ReportService) GenerateReport(ctx context.Context, auditID core.AuditID) (*report.AuditReport, error) {
	audit, err := s.auditRepo.GetByID(ctx, auditID)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s: %s", s.titlePrefix, audit.ModelID)
	return &report.AuditReport{
		ID:          core.ReportID(core.NewID()),
		AuditID:     audit.ID,
		Title:       title,
		Markdown:    s.renderMarkdown(title, audit),
		GeneratedAt: core.Now(),
	}, nil
}

// GenerateHTML builds the report and renders it as a standalone HTML page
func (s *ReportService) GenerateHTML(ctx context.Context, auditID core.AuditID) ([]byte, error) {
	rep, err := s.GenerateReport(ctx, auditID)
	if err != nil {
		return nil, err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	doc := p.Parse([]byte(rep.Markdown))
	renderer := html.NewRenderer(html.RendererOptions{
		Title: rep.Title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer), nil
}

// WriteExcel renders the audit workbook onto w
func (s *ReportService) WriteExcel(ctx context.Context, auditID core.AuditID, w io.Writer) error {
	audit, err := s.auditRepo.GetByID(ctx, auditID)
	if err != nil {
		return err
	}
	return s.excelWriter.Write(w, audit)
}

func (s *ReportService) renderMarkdown(title string, audit *fairness.BiasAudit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	if s.organization != "" {
		fmt.Fprintf(&b, "Prepared for %s.\n\n", s.organization)
	}

	status := "PASSED"
	if !audit.OverallPassed {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "**Audit ID:** %s  \n", audit.ID)
	fmt.Fprintf(&b, "**Model:** %s  \n", audit.ModelID)
	fmt.Fprintf(&b, "**Generated:** %s  \n", audit.CreatedAt)
	fmt.Fprintf(&b, "**Samples:** %d across %d groups  \n", audit.SampleSize, audit.GroupCount)
	fmt.Fprintf(&b, "**Fairness threshold:** %.2f  \n", audit.Threshold)
	fmt.Fprintf(&b, "**Overall status:** %s\n\n", status)

	b.WriteString("## Metric Results\n\n")
	b.WriteString("| Metric | Score | Severity | Status |\n")
	b.WriteString("|--------|-------|----------|--------|\n")
	for _, name := range sortedMetricNames(audit.Results) {
		r := audit.Results[name]
		passed := "pass"
		if !r.Passed {
			passed = "fail"
		}
		fmt.Fprintf(&b, "| %s | %.3f | %s | %s |\n", r.MetricLabel, r.OverallScore, r.Severity, passed)
	}
	b.WriteString("\n")

	for _, name := range sortedMetricNames(audit.Results) {
		r := audit.Results[name]
		fmt.Fprintf(&b, "### %s\n\n", r.MetricLabel)
		fmt.Fprintf(&b, "%s\n\n", r.Interpretation)

		if len(r.GroupScores) > 0 {
			b.WriteString("| Group | Score |\n|-------|-------|\n")
			for _, group := range sortedGroups(r.GroupScores) {
				fmt.Fprintf(&b, "| %s | %.3f |\n", group, r.GroupScores[group])
			}
			b.WriteString("\n")
		}
		if r.Significance != nil {
			fmt.Fprintf(&b, "Chi-square %.3f with %d degrees of freedom (p = %.4f).\n\n",
				r.Significance.ChiSquare, r.Significance.DegreesOfFreedom, r.Significance.PValue)
		}
		if len(r.Recommendations) > 0 {
			b.WriteString("Recommendations:\n\n")
			for _, rec := range r.Recommendations {
				fmt.Fprintf(&b, "- %s\n", rec)
			}
			b.WriteString("\n")
		}
	}

	if len(audit.Remediations) > 0 {
		b.WriteString("## Remediation Plan\n\n")
		b.WriteString("Ranked by estimated improvement. Figures are projections, not retrained outcomes.\n\n")
		for i, rem := range audit.Remediations {
			fmt.Fprintf(&b, "### %d. %s (%.1f%% estimated improvement)\n\n", i+1, rem.StrategyLabel, rem.ImprovementPercentage)
			fmt.Fprintf(&b, "%s\n\n", rem.Explanation)
			for _, warning := range rem.Warnings {
				fmt.Fprintf(&b, "> Warning: %s\n\n", warning)
			}
			if rem.ImplementationCode != "" {
				fmt.Fprintf(&b, "```python\n%s```\n\n", rem.ImplementationCode)
			}
		}
	}

	return b.String()
}

func sortedMetricNames(results map[fairness.MetricName]fairness.FairnessResult) []fairness.MetricName {
	names := make([]fairness.MetricName, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func sortedGroups(scores map[string]float64) []string {
	groups := make([]string, 0, len(scores))
	for group := range scores {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}
