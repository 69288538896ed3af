// Package report composes audit reports from a trial history: metrics,
// risk scorecard, charts and narrative, rendered to Markdown and HTML.
package report

import (
	"strings"
	"time"

	"biasaudit/domain/audit"
	"biasaudit/domain/core"
	"biasaudit/domain/trial"
	"biasaudit/internal/chart"
	"biasaudit/internal/divergence"
)

// Notices shown when a chart cannot be drawn
const (
	NoticeInsufficientVariance = "Score distribution could not be plotted due to a lack of variance in the data."
	NoticeTooFewTrials         = "More than one trial is needed to plot the user accuracy trend."
)

// Composer turns trial snapshots into audit reports. It holds no mutable
// state and is safe for concurrent use.
type Composer struct {
	opts Options
}

// NewComposer creates a composer
func NewComposer(opts Options) *Composer {
	return &Composer{opts: opts.withDefaults()}
}

// Options returns the effective options
func (c *Composer) Options() Options {
	return c.opts
}

// Metrics computes the metrics report of a trial snapshot. Total for every
// n >= 0: no trials yields accuracy 0 and p-value 1.
func (c *Composer) Metrics(trials []trial.Trial) audit.MetricsReport {
	n := len(trials)
	correct := 0
	for _, t := range trials {
		if t.IsChoiceCorrect {
			correct++
		}
	}

	accuracy := 0.0
	if n > 0 {
		accuracy = float64(correct) / float64(n)
	}

	a, b := trial.Series(trials)
	kl := divergence.KLDivergence(a, b)
	pValue := divergence.BinomialPValue(correct, n, c.opts.NullProbability)

	return audit.MetricsReport{
		Total:        n,
		Correct:      correct,
		Accuracy:     accuracy,
		PValue:       pValue,
		ExactPValue:  divergence.ExactBinomialPValue(correct, n, c.opts.NullProbability),
		Significant:  n > 0 && pValue < c.opts.SignificanceAlpha,
		KLDivergence: kl,
		JSDivergence: divergence.JSDivergence(a, b),
		EMD:          divergence.EarthMoversDistance(a, b),
		RiskTier:     audit.ClassifyRisk(kl),
		Scores:       divergence.CompareSeries(a, b),
	}
}

// Compose builds the full audit report. now only feeds the timestamp.
func (c *Composer) Compose(trials []trial.Trial, now time.Time) *AuditReport {
	snapshot := make([]trial.Trial, len(trials))
	copy(snapshot, trials)

	metrics := c.Metrics(snapshot)
	a, b := trial.Series(snapshot)
	running := divergence.RunningAccuracy(trial.Outcomes(snapshot))

	r := &AuditReport{
		Title:           c.opts.Title,
		GeneratedAt:     core.NewTimestamp(now),
		Metrics:         metrics,
		Scorecard:       audit.ProfileFor(metrics.RiskTier),
		RunningAccuracy: running,
		Trials:          snapshot,
	}

	r.DistributionChart = ChartSlot{
		Title:   "Score Distribution: AI vs. Biased Human",
		Caption: "This graph shows the frequency of scores at each level, highlighting similarities and differences between the AI and the biased judge.",
		Alt:     "Score Distribution Chart",
	}
	if divergence.Variance(a) > 0 || divergence.Variance(b) > 0 {
		r.DistributionChart.Document = chart.BuildDistributionChart(a, b)
	} else {
		r.DistributionChart.Notice = NoticeInsufficientVariance
		r.DistributionChart.NoticeColor = "#dc3545"
	}

	r.TrendChart = ChartSlot{
		Title:   "User's Ability to Spot Bias Over Time",
		Caption: "This chart tracks the user's accuracy in identifying the biased judge with each new trial. A flat or declining trend may suggest the bias is particularly hard to spot.",
		Alt:     "User Accuracy Trend Chart",
	}
	if len(running) > 1 {
		r.TrendChart.Document = chart.BuildTrendChart(running)
	} else {
		r.TrendChart.Notice = NoticeTooFewTrials
		r.TrendChart.NoticeColor = "#ffc107"
	}

	for _, g := range trial.GroupByPersona(snapshot) {
		r.Personas = append(r.Personas, PersonaBreakdown{Persona: g.Persona, Metrics: c.Metrics(g.Trials)})
	}

	r.Sections = c.sections(r)

	body := renderBody(r)
	r.Fingerprint = core.NewHash([]byte(body))
	r.Markdown = renderHeader(r) + body
	r.HTML = renderHTML(r.Markdown, r.Title)

	return r
}

// nearChance reports whether accuracy is statistically indistinguishable
// from guessing
func (c *Composer) nearChance(m audit.MetricsReport) bool {
	return m.Total > 0 && m.PValue >= c.opts.SignificanceAlpha
}

func (c *Composer) sections(r *AuditReport) []Section {
	sections := []Section{
		{Heading: "Executive Summary", Body: c.executiveSummary(r.Metrics)},
		{Heading: "Bias Scorecard", Body: scorecardBlock(r.Scorecard)},
		{Heading: "Quantitative Bias Metrics", Body: metricsTable(r.Metrics, c.opts.SignificanceAlpha)},
		{Heading: "Score Summary", Body: scoreSummaryTable(r.Metrics.Scores)},
		{Heading: "Visual Analysis", Body: visualAnalysis(r.DistributionChart, r.TrendChart)},
	}
	if len(r.Personas) > 0 {
		sections = append(sections, Section{Heading: "Per-Persona Breakdown", Body: personaTable(r.Personas)})
	}
	if c.opts.IncludeHistory && len(r.Trials) > 0 {
		sections = append(sections, Section{Heading: "Trial History", Body: historyTable(r.Trials)})
	}
	sections = append(sections, Section{Heading: "Alignment with Ethical & Regulatory Standards", Body: strings.TrimSpace(regulatoryAlignment)})
	return sections
}
