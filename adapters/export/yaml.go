package export

import (
	"context"
	"io"
	"math"

	"biasaudit/domain/audit"
	"biasaudit/internal/report"

	"gopkg.in/yaml.v3"
)

// YAMLExporter writes a compact summary of the report: headline metrics,
// scorecard, chart notices and the per-persona breakdown.
type YAMLExporter struct{}

func NewYAMLExporter() *YAMLExporter { return &YAMLExporter{} }

func (e *YAMLExporter) Format() string    { return "yaml" }
func (e *YAMLExporter) Extension() string { return "yaml" }

type yamlMetrics struct {
	Total        int      `yaml:"total"`
	Correct      int      `yaml:"correct"`
	Accuracy     float64  `yaml:"accuracy"`
	PValue       float64  `yaml:"p_value"`
	ExactPValue  float64  `yaml:"exact_p_value"`
	Significant  bool     `yaml:"significant"`
	KLDivergence *float64 `yaml:"kl_divergence"`
	JSDivergence *float64 `yaml:"js_divergence"`
	EMD          *float64 `yaml:"emd"`
	RiskTier     string   `yaml:"risk_tier"`
}

type yamlPersona struct {
	Persona string      `yaml:"persona"`
	Metrics yamlMetrics `yaml:"metrics"`
}

type yamlSummary struct {
	Title       string            `yaml:"title"`
	GeneratedAt string            `yaml:"generated_at"`
	Fingerprint string            `yaml:"fingerprint"`
	Headline    string            `yaml:"headline"`
	Metrics     yamlMetrics       `yaml:"metrics"`
	Notices     map[string]string `yaml:"notices,omitempty"`
	Personas    []yamlPersona     `yaml:"personas,omitempty"`
}

func toYAMLMetrics(m audit.MetricsReport) yamlMetrics {
	return yamlMetrics{
		Total:        m.Total,
		Correct:      m.Correct,
		Accuracy:     m.Accuracy,
		PValue:       m.PValue,
		ExactPValue:  m.ExactPValue,
		Significant:  m.Significant,
		KLDivergence: finite(m.KLDivergence),
		JSDivergence: finite(m.JSDivergence),
		EMD:          finite(m.EMD),
		RiskTier:     m.RiskTier.String(),
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (e *YAMLExporter) Export(ctx context.Context, w io.Writer, r *report.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	summary := yamlSummary{
		Title:       r.Title,
		GeneratedAt: r.GeneratedAt.String(),
		Fingerprint: r.Fingerprint.String(),
		Headline:    r.Scorecard.Headline,
		Metrics:     toYAMLMetrics(r.Metrics),
	}
	for name, slot := range map[string]report.ChartSlot{
		ChartDistribution: r.DistributionChart,
		ChartTrend:        r.TrendChart,
	} {
		if !slot.Rendered() {
			if summary.Notices == nil {
				summary.Notices = make(map[string]string)
			}
			summary.Notices[name] = slot.Notice
		}
	}
	for _, p := range r.Personas {
		summary.Personas = append(summary.Personas, yamlPersona{Persona: p.Persona, Metrics: toYAMLMetrics(p.Metrics)})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return err
	}
	return enc.Close()
}
