package report

import (
	"fmt"
	"html"
	"math"
	"strings"

	"biasaudit/domain/audit"
	"biasaudit/domain/trial"
	"biasaudit/internal/chart"
)

// FormatMetric prints v to 4 decimals, or "N/A" when it is not finite
func FormatMetric(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", v)
}

func renderHeader(r *AuditReport) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(pageStyle))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "# %s\n\n", html.EscapeString(r.Title))
	b.WriteString("This report provides a detailed analysis of the fairness of an AI hiring model. ")
	b.WriteString("It compares the AI's scoring behavior against that of a known biased judge to identify potential risks and guide mitigation strategies.\n\n")
	fmt.Fprintf(&b, "*Report Generated: %s*\n\n", r.GeneratedAt.ReportFormat())
	return b.String()
}

func renderBody(r *AuditReport) string {
	var b strings.Builder
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Heading, s.Body)
	}
	b.WriteString("---\n\n*Confidential & Proprietary. Not for external distribution without permission.*\n")
	return b.String()
}

func (c *Composer) executiveSummary(m audit.MetricsReport) string {
	var b strings.Builder
	b.WriteString("This audit tested the AI's hiring decisions against a human judge with a known, specific bias. Key findings include:\n\n")

	if m.Total == 0 {
		b.WriteString("- **No trials recorded:** no assessments have been submitted yet, so user accuracy is reported as 0.00% and every metric below reflects an empty sample. Submit assessments and regenerate the report for meaningful results.\n")
	} else {
		fmt.Fprintf(&b, "- **User Accuracy:** the human tester correctly identified the biased judge **%.2f%%** of the time (%d of %d trials). ",
			m.Accuracy*100, m.Correct, m.Total)
		b.WriteString("A user accuracy near 50% suggests that it was difficult for a human to distinguish the AI's scoring from the biased judge's, which is a high-risk finding.\n")
		if c.nearChance(m) {
			fmt.Fprintf(&b, "- **Chance-Level Performance (High Risk):** with p = %s the observed accuracy cannot be distinguished from guessing (alpha = %.2f). The biased scoring was not recognizably different from the AI's.\n",
				FormatMetric(m.PValue), c.opts.SignificanceAlpha)
		} else {
			fmt.Fprintf(&b, "- **Statistically Significant:** with p = %s the tester performed differently from chance (alpha = %.2f).\n",
				FormatMetric(m.PValue), c.opts.SignificanceAlpha)
		}
	}

	b.WriteString("- **Bias Detection:** the statistical metrics and visualizations in this report quantify the degree to which the AI's decisions align with the biased human's.\n")
	b.WriteString("- **Risk Assessment:** the overall **Bias Scorecard** indicates the level of risk associated with this specific type of bias, based on the findings.")
	return b.String()
}

func scorecardBlock(p audit.RiskProfile) string {
	return fmt.Sprintf("<div class=\"bias-scorecard\" style=\"background-color: %s;\">%s</div>\n\n*%s*", p.Color, p.Headline, p.Explanation)
}

func metricsTable(m audit.MetricsReport, alpha float64) string {
	var b strings.Builder
	b.WriteString("These metrics measure the statistical similarity between the AI's score distribution and the biased human's. ")
	b.WriteString("A lower value for these metrics indicates a greater risk that the AI's scoring pattern mirrors the human bias.\n\n")
	b.WriteString("| Metric | Value | Interpretation |\n|---|---|---|\n")

	rows := [][3]string{
		{"KL Divergence", FormatMetric(m.KLDivergence), "Measures how one score distribution differs from the other. A value close to 0 suggests the AI and human scores are highly similar."},
		{"JS Divergence", FormatMetric(m.JSDivergence), "A symmetrical and more stable version of KL Divergence. It provides a reliable measure of similarity between the two scoring distributions."},
		{"Earth Mover's Distance", FormatMetric(m.EMD), "Represents the minimum effort required to transform one distribution into the other. A low value means the distributions are very much alike."},
		{"User Accuracy", FormatMetric(m.Accuracy), fmt.Sprintf("Share of trials (%d of %d) in which the tester identified the biased judge.", m.Correct, m.Total)},
		{"p-value (normal approx.)", FormatMetric(m.PValue), fmt.Sprintf("Two-sided test of the accuracy against chance. Values below %.2f indicate performance that is statistically different from guessing.", alpha)},
		{"p-value (exact binomial)", FormatMetric(m.ExactPValue), "Exact two-sided binomial test of the same hypothesis; more reliable for small sessions."},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row[0], row[1], row[2])
	}
	return strings.TrimRight(b.String(), "\n")
}

func scoreSummaryTable(s audit.ScoreSummary) string {
	var b strings.Builder
	b.WriteString("| Series | Trials | Mean | Median | Std Dev | Min | Max |\n|---|---|---|---|---|---|---|\n")
	for _, row := range []struct {
		name string
		sum  audit.SeriesSummary
	}{
		{chart.LegendSeriesA, s.A},
		{chart.LegendSeriesB, s.B},
	} {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n", row.name, row.sum.Count,
			FormatMetric(row.sum.Mean), FormatMetric(row.sum.Median), FormatMetric(row.sum.StdDev),
			FormatMetric(row.sum.Min), FormatMetric(row.sum.Max))
	}
	fmt.Fprintf(&b, "\nAdjusted (pooled) average score across both scorers: **%s**.", FormatMetric(s.PooledMean))

	if ms := s.MeanShift; ms.Defined {
		fmt.Fprintf(&b, "\n\nMean shift between the scorers (Welch's t-test): t = %s, df = %s, p = %s, Cohen's d = %s.",
			FormatMetric(ms.TStat), FormatMetric(ms.DF), FormatMetric(ms.PValue), FormatMetric(ms.CohensD))
	} else {
		b.WriteString("\n\nMean shift between the scorers could not be tested: each scorer needs at least two scores and some variation.")
	}
	return b.String()
}

func visualAnalysis(slots ...ChartSlot) string {
	var b strings.Builder
	b.WriteString("The following charts provide a visual summary of the audit findings, making it easy to understand the results at a glance.")
	for _, s := range slots {
		fmt.Fprintf(&b, "\n\n### %s\n\n%s\n\n", s.Title, s.Caption)
		if s.Rendered() {
			fmt.Fprintf(&b, "![%s](%s)", s.Alt, chart.DataURI(s.Document))
		} else {
			fmt.Fprintf(&b, "<p class=\"chart-notice\" style=\"color:%s;\">%s</p>", s.NoticeColor, s.Notice)
		}
	}
	return b.String()
}

func personaTable(personas []PersonaBreakdown) string {
	var b strings.Builder
	b.WriteString("| Persona | Trials | Accuracy | p-value | KL Divergence | Risk |\n|---|---|---|---|---|---|\n")
	for _, p := range personas {
		fmt.Fprintf(&b, "| %s | %d | %.2f%% | %s | %s | %s |\n", cell(p.Persona), p.Metrics.Total,
			p.Metrics.Accuracy*100, FormatMetric(p.Metrics.PValue), FormatMetric(p.Metrics.KLDivergence), p.Metrics.RiskTier)
	}
	return strings.TrimRight(b.String(), "\n")
}

func historyTable(trials []trial.Trial) string {
	var b strings.Builder
	b.WriteString("| # | Subject | Biased Persona | AI Score | Persona Score | Choice | Result | Comment | Recorded |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for i, t := range trials {
		result := "Incorrect"
		if t.IsChoiceCorrect {
			result = "Correct"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %.3f | %.3f | Score %d | %s | %s | %s |\n",
			i+1, cell(t.SubjectID.String()), cell(t.LabelB), t.ScoreA, t.ScoreB, t.UserChoice, result,
			cell(t.Comment), t.RecordedAt.ReportFormat())
	}
	return strings.TrimRight(b.String(), "\n")
}

// cell makes free text safe inside a Markdown table cell. Markup is escaped
// so labels and comments render as text in the HTML page.
func cell(s string) string {
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
