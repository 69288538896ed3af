package report

import (
	"biasaudit/domain/audit"
	"biasaudit/domain/core"
	"biasaudit/domain/trial"
	"biasaudit/internal/chart"
	"biasaudit/internal/divergence"
)

// Options tunes the composed document; zero values fall back to defaults
type Options struct {
	Title             string
	NullProbability   float64
	SignificanceAlpha float64
	IncludeHistory    bool
}

// DefaultOptions returns the settings the audit has always shipped with
func DefaultOptions() Options {
	return Options{
		Title:             "AI Fairness & Bias Audit Report",
		NullProbability:   divergence.DefaultNullProbability,
		SignificanceAlpha: 0.05,
		IncludeHistory:    true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.NullProbability <= 0 || o.NullProbability >= 1 {
		o.NullProbability = d.NullProbability
	}
	if o.SignificanceAlpha <= 0 || o.SignificanceAlpha >= 1 {
		o.SignificanceAlpha = d.SignificanceAlpha
	}
	return o
}

// ChartSlot holds either a rendered chart or the notice shown in its place
type ChartSlot struct {
	Title       string          `json:"title"`
	Caption     string          `json:"caption"`
	Alt         string          `json:"alt"`
	Document    *chart.Document `json:"-"`
	Notice      string          `json:"notice,omitempty"`
	NoticeColor string          `json:"-"`
}

// Rendered reports whether the slot carries a chart
func (s ChartSlot) Rendered() bool {
	return s.Document != nil
}

// Section is one narrative block of the document, body in Markdown
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// PersonaBreakdown is the metrics of the trials scored by one persona
type PersonaBreakdown struct {
	Persona string              `json:"persona"`
	Metrics audit.MetricsReport `json:"metrics"`
}

// AuditReport is the composed document. Everything except GeneratedAt is
// determined by the trial snapshot; Fingerprint hashes the timestamp-free
// body so equal snapshots can be recognized.
type AuditReport struct {
	Title             string              `json:"title"`
	GeneratedAt       core.Timestamp      `json:"generated_at"`
	Metrics           audit.MetricsReport `json:"metrics"`
	Scorecard         audit.RiskProfile   `json:"scorecard"`
	RunningAccuracy   []float64           `json:"running_accuracy"`
	DistributionChart ChartSlot           `json:"distribution_chart"`
	TrendChart        ChartSlot           `json:"trend_chart"`
	Personas          []PersonaBreakdown  `json:"personas"`
	Trials            []trial.Trial       `json:"-"`
	Sections          []Section           `json:"sections"`
	Markdown          string              `json:"-"`
	HTML              []byte              `json:"-"`
	Fingerprint       core.Hash           `json:"fingerprint"`
}

// Charts returns the rendered chart documents keyed by a file-friendly name
func (r *AuditReport) Charts() map[string]*chart.Document {
	out := make(map[string]*chart.Document)
	if r.DistributionChart.Rendered() {
		out["score-distribution"] = r.DistributionChart.Document
	}
	if r.TrendChart.Rendered() {
		out["accuracy-trend"] = r.TrendChart.Document
	}
	return out
}
