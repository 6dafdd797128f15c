package ports

import (
	"io"

	"fairmind/domain/fairness"
)

// ReportWriter renders an audit into a binary report format (e.g. an
// Excel workbook) on the supplied writer.
type ReportWriter interface {
	Write(w io.Writer, audit *fairness.BiasAudit) error
	ContentType() string
	FileExtension() string
}
