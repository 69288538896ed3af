package ports

import (
	"context"
	"io"

	"biasaudit/internal/report"
)

// ReportExporterPort encodes a composed audit report into one output format
type ReportExporterPort interface {
	// Format is the short name used to select the exporter (e.g. "html")
	Format() string
	// Extension is the file extension without the dot
	Extension() string
	Export(ctx context.Context, w io.Writer, r *report.AuditReport) error
}
