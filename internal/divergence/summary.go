package divergence

import (
	"biasaudit/domain/audit"

	"github.com/montanaflynn/stats"
)

// Variance returns the population variance of data, 0 for empty input
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	v, err := stats.PopulationVariance(data)
	if err != nil {
		return 0
	}
	return v
}

// Summarize computes descriptive statistics of one series. Empty input
// yields a zero summary.
func Summarize(data []float64) audit.SeriesSummary {
	if len(data) == 0 {
		return audit.SeriesSummary{}
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviationPopulation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	return audit.SeriesSummary{
		Count:  len(data),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}
}

// CompareSeries summarizes both series and their pooled mean
func CompareSeries(a, b []float64) audit.ScoreSummary {
	summary := audit.ScoreSummary{
		A: Summarize(a),
		B: Summarize(b),
	}

	pooled := make([]float64, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)
	if mean, err := stats.Mean(pooled); err == nil {
		summary.PooledMean = mean
	}
	summary.MeanShift = WelchTest(a, b)
	return summary
}
