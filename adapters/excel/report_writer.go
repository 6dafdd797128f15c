package excel

import (
	"fmt"
	"io"
	"sort"

	"fairmind/domain/fairness"
	"fairmind/ports"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// ReportWriter renders a bias audit as an Excel workbook: a summary
// sheet plus one sheet per computed metric and one for the remediation
// plan.
type ReportWriter struct{}

// NewReportWriter creates an Excel report writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// ContentType returns the xlsx MIME type
func (w *ReportWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns the workbook file extension
func (w *ReportWriter) FileExtension() string {
	return "xlsx"
}

// Write renders the workbook onto out
func (w *ReportWriter) Write(out io.Writer, audit *fairness.BiasAudit) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)

	if err := w.writeSummary(f, audit); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}

	for _, name := range sortedMetrics(audit.Results) {
		if err := w.writeMetricSheet(f, audit.Results[name]); err != nil {
			return fmt.Errorf("failed to write sheet for %s: %w", name, err)
		}
	}

	if len(audit.Remediations) > 0 {
		if err := w.writeRemediationSheet(f, audit); err != nil {
			return fmt.Errorf("failed to write remediation sheet: %w", err)
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, audit *fairness.BiasAudit) error {
	status := "PASSED"
	if !audit.OverallPassed {
		status = "FAILED"
	}

	rows := [][]interface{}{
		{"Audit ID", audit.ID.String()},
		{"Model", audit.ModelID.String()},
		{"Generated", audit.CreatedAt.String()},
		{"Sample size", audit.SampleSize},
		{"Groups", audit.GroupCount},
		{"Fairness threshold", audit.Threshold},
		{"Overall status", status},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	header := []interface{}{"Metric", "Score", "Severity", "Passed"}
	start := len(rows) + 2
	cell, err := excelize.CoordinatesToCellName(1, start)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(summarySheet, cell, &header); err != nil {
		return err
	}

	for i, name := range sortedMetrics(audit.Results) {
		r := audit.Results[name]
		cell, err := excelize.CoordinatesToCellName(1, start+1+i)
		if err != nil {
			return err
		}
		row := []interface{}{r.MetricLabel, r.OverallScore, string(r.Severity), r.Passed}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(summarySheet, "A", "B", 28)
}

func (w *ReportWriter) writeMetricSheet(f *excelize.File, r fairness.FairnessResult) error {
	sheet := r.MetricLabel
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	head := [][]interface{}{
		{"Overall score", r.OverallScore},
		{"Threshold", r.Threshold},
		{"Severity", string(r.Severity)},
		{"Sample size", r.SampleSize},
		{"Interpretation", r.Interpretation},
	}
	for i, row := range head {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	rowIdx := len(head) + 2
	header := []interface{}{"Group", "Score"}
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return err
	}
	groups := make([]string, 0, len(r.GroupScores))
	for group := range r.GroupScores {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	for i, group := range groups {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1+i)
		if err != nil {
			return err
		}
		row := []interface{}{group, r.GroupScores[group]}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "A", 24)
}

func (w *ReportWriter) writeRemediationSheet(f *excelize.File, audit *fairness.BiasAudit) error {
	sheet := "Remediation Plan"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Rank", "Strategy", "Estimated improvement (%)", "Warnings", "Explanation"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, rem := range audit.Remediations {
		warnings := ""
		for j, warning := range rem.Warnings {
			if j > 0 {
				warnings += "; "
			}
			warnings += warning
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, rem.StrategyLabel, rem.ImprovementPercentage, warnings, rem.Explanation}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "B", "E", 36)
}

func sortedMetrics(results map[fairness.MetricName]fairness.FairnessResult) []fairness.MetricName {
	names := make([]fairness.MetricName, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Interface guard
var _ ports.ReportWriter = (*ReportWriter)(nil)
