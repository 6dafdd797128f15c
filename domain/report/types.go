package report

import (
	"fairmind/domain/core"
)

// Format selects the rendering of a generated audit report
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatExcel    Format = "xlsx"
)

// AuditReport is the renderable compliance document derived from an audit.
// Markdown holds the canonical text; renderers derive HTML or a workbook
// from the same audit aggregate.
type AuditReport struct {
	ID          core.ReportID  `json:"id"`
	AuditID     core.AuditID   `json:"audit_id"`
	Title       string         `json:"title"`
	Markdown    string         `json:"markdown"`
	GeneratedAt core.Timestamp `json:"generated_at"`
}
