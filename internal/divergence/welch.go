package divergence

import (
	"math"

	"biasaudit/domain/audit"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// WelchTest compares the means of two score series without assuming equal
// variances. Cohen's d uses the pooled sample standard deviation.
func WelchTest(a, b []float64) audit.MeanShift {
	undefined := audit.MeanShift{PValue: 1.0}

	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return undefined
	}

	mean1, _ := stats.Mean(a)
	mean2, _ := stats.Mean(b)
	var1, _ := stats.SampleVariance(a)
	var2, _ := stats.SampleVariance(b)

	se2 := var1/n1 + var2/n2
	if se2 <= 0 {
		return undefined
	}

	tStat := (mean1 - mean2) / math.Sqrt(se2)

	// Welch-Satterthwaite
	df := se2 * se2 / (math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := clampUnit(2 * t.Survival(math.Abs(tStat)))

	cohensD := 0.0
	if pooledSD := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2)); pooledSD > 0 {
		cohensD = (mean1 - mean2) / pooledSD
	}

	return audit.MeanShift{
		Defined: true,
		TStat:   tStat,
		DF:      df,
		PValue:  pValue,
		CohensD: cohensD,
	}
}
