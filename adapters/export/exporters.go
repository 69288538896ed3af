package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"biasaudit/domain/core"
	"biasaudit/domain/trial"
	"biasaudit/internal/chart"
	"biasaudit/internal/report"
)

// MarkdownExporter writes the composed Markdown document
type MarkdownExporter struct{}

func NewMarkdownExporter() *MarkdownExporter { return &MarkdownExporter{} }

func (e *MarkdownExporter) Format() string    { return "markdown" }
func (e *MarkdownExporter) Extension() string { return "md" }

func (e *MarkdownExporter) Export(ctx context.Context, w io.Writer, r *report.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(w, r.Markdown)
	return err
}

// HTMLExporter writes the complete HTML page rendered from the Markdown
type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter { return &HTMLExporter{} }

func (e *HTMLExporter) Format() string    { return "html" }
func (e *HTMLExporter) Extension() string { return "html" }

func (e *HTMLExporter) Export(ctx context.Context, w io.Writer, r *report.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := w.Write(r.HTML)
	return err
}

// JSONExporter writes the structured report: metrics, scorecard, per-persona
// breakdown, running accuracy and the trial history. Charts and the rendered
// documents are left out.
type JSONExporter struct {
	indent string
}

// NewJSONExporter creates a JSON exporter; an empty indent writes compact JSON
func NewJSONExporter(indent string) *JSONExporter {
	return &JSONExporter{indent: indent}
}

func (e *JSONExporter) Format() string    { return "json" }
func (e *JSONExporter) Extension() string { return "json" }

type jsonDocument struct {
	*report.AuditReport
	Trials []trial.Trial `json:"trials"`
}

func (e *JSONExporter) Export(ctx context.Context, w io.Writer, r *report.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	trials := r.Trials
	if trials == nil {
		trials = []trial.Trial{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", e.indent)
	return enc.Encode(jsonDocument{AuditReport: r, Trials: trials})
}

// Chart names accepted by NewSVGExporter
const (
	ChartDistribution = "score-distribution"
	ChartTrend        = "accuracy-trend"
)

// SVGExporter writes one report chart as a standalone SVG file
type SVGExporter struct {
	chart string
}

// NewSVGExporter creates an exporter for the named chart
func NewSVGExporter(chartName string) *SVGExporter {
	return &SVGExporter{chart: chartName}
}

func (e *SVGExporter) Format() string    { return "svg-" + e.chart }
func (e *SVGExporter) Extension() string { return "svg" }

// FileName keeps the chart name in the file so both charts fit in one directory
func (e *SVGExporter) FileName(base string) string {
	return base + "-" + e.chart + ".svg"
}

// Export fails with core.ErrInsufficientData when the report carries a
// notice instead of the chart.
func (e *SVGExporter) Export(ctx context.Context, w io.Writer, r *report.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var slot report.ChartSlot
	switch e.chart {
	case ChartDistribution:
		slot = r.DistributionChart
	case ChartTrend:
		slot = r.TrendChart
	default:
		return core.NewUnknownFormatError(e.Format())
	}

	if !slot.Rendered() {
		return fmt.Errorf("%w: %s", core.ErrInsufficientData, slot.Notice)
	}

	_, err := w.Write(chart.EncodeSVG(slot.Document))
	return err
}
