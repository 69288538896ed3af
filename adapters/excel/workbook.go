package excel

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"biasaudit/internal/report"

	"github.com/xuri/excelize/v2"
)

// WorkbookExporter writes an audit report as an xlsx workbook: the trial
// history, the metrics, the running accuracy with a line chart, and the
// per-persona breakdown.
type WorkbookExporter struct{}

// NewWorkbookExporter creates the xlsx exporter
func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

// Format returns the selector name
func (e *WorkbookExporter) Format() string { return "xlsx" }

// Extension returns the file extension
func (e *WorkbookExporter) Extension() string { return "xlsx" }

// Export builds the workbook in memory and streams it to w
func (e *WorkbookExporter) Export(ctx context.Context, w io.Writer, r *report.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[WorkbookExporter] Failed to close workbook: %v", err)
		}
	}()

	// The default sheet becomes the trial sheet so the reader finds it first
	if err := f.SetSheetName(f.GetSheetName(0), SheetTrials); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := writeTrials(f, r); err != nil {
		return err
	}

	for _, sheet := range []string{SheetMetrics, SheetAccuracy, SheetPersonas} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}
	if err := writeMetrics(f, r); err != nil {
		return err
	}
	if err := writeAccuracy(f, r); err != nil {
		return err
	}
	if err := writePersonas(f, r); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTrials(f *excelize.File, r *report.AuditReport) error {
	if err := setRow(f, SheetTrials, 1, toRow(TrialColumns)); err != nil {
		return err
	}

	for i, t := range r.Trials {
		row := []interface{}{
			t.SubjectID.String(),
			t.ScoreA,
			t.ScoreB,
			t.LabelA,
			t.LabelB,
			int(t.UserChoice),
			t.IsChoiceCorrect,
			t.Comment,
			t.RecordedAt.Time().UTC().Format(time.RFC3339),
		}
		if err := setRow(f, SheetTrials, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeMetrics(f *excelize.File, r *report.AuditReport) error {
	m := r.Metrics
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Trials", m.Total},
		{"Correct Identifications", m.Correct},
		{"User Accuracy", m.Accuracy},
		{"P-Value", m.PValue},
		{"Exact P-Value", m.ExactPValue},
		{"Significant", m.Significant},
		{"KL Divergence", cellFloat(m.KLDivergence)},
		{"JS Divergence", cellFloat(m.JSDivergence)},
		{"Earth Mover's Distance", cellFloat(m.EMD)},
		{"Risk Tier", m.RiskTier.String()},
		{"Fingerprint", r.Fingerprint.String()},
	}
	for i, row := range rows {
		if err := setRow(f, SheetMetrics, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeAccuracy(f *excelize.File, r *report.AuditReport) error {
	if err := setRow(f, SheetAccuracy, 1, []interface{}{"Trial", "Running Accuracy"}); err != nil {
		return err
	}
	for i, v := range r.RunningAccuracy {
		if err := setRow(f, SheetAccuracy, i+2, []interface{}{i + 1, v}); err != nil {
			return err
		}
	}

	// A trend needs at least two points, same as the report chart
	n := len(r.RunningAccuracy)
	if n < 2 {
		return nil
	}

	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$2:$%s$%d", SheetAccuracy, col, col, n+1)
	}
	err := f.AddChart(SheetAccuracy, "D2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", SheetAccuracy),
			Categories: ref("A"),
			Values:     ref("B"),
		}},
		Title:  []excelize.RichTextRun{{Text: r.TrendChart.Title}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
	if err != nil {
		return fmt.Errorf("failed to add accuracy chart: %w", err)
	}
	return nil
}

func writePersonas(f *excelize.File, r *report.AuditReport) error {
	header := []interface{}{"Persona", "Trials", "Correct", "Accuracy", "P-Value", "KL Divergence", "Risk Tier"}
	if err := setRow(f, SheetPersonas, 1, header); err != nil {
		return err
	}
	for i, p := range r.Personas {
		row := []interface{}{
			p.Persona,
			p.Metrics.Total,
			p.Metrics.Correct,
			p.Metrics.Accuracy,
			p.Metrics.PValue,
			cellFloat(p.Metrics.KLDivergence),
			p.Metrics.RiskTier.String(),
		}
		if err := setRow(f, SheetPersonas, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toRow(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// cellFloat leaves undefined metrics readable in the sheet
func cellFloat(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return v
}
