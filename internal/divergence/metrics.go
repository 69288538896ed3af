package divergence

import "math"

// DefaultNullProbability is the chance-level success rate for a two-way choice
const DefaultNullProbability = 0.5

// BinomialPValue runs a two-sided normal-approximation z-test of
// successes/trials against nullProbability. With no trials there is no
// evidence against the null and the result is 1.
func BinomialPValue(successes, trials int, nullProbability float64) float64 {
	if trials == 0 {
		return 1.0
	}

	observed := float64(successes) / float64(trials)
	variance := nullProbability * (1 - nullProbability) / float64(trials)
	z := (observed - nullProbability) / math.Sqrt(variance)

	return clampUnit(2 * (1 - NormalCDF(math.Abs(z))))
}

// KLDivergence sums p[i]*ln(p[i]/q[i]) over the indices where both entries
// are strictly positive. Other indices are skipped, not clamped.
// Returns NaN when the lengths differ.
func KLDivergence(p, q []float64) float64 {
	if len(p) != len(q) {
		return math.NaN()
	}

	kl := 0.0
	for i := range p {
		if p[i] > 0 && q[i] > 0 {
			kl += p[i] * math.Log(p[i]/q[i])
		}
	}
	return kl
}

// JSDivergence is 0.5*KL(p,m) + 0.5*KL(q,m) with m the pointwise mean of p
// and q. Inherits the skip-on-nonpositive behavior of KLDivergence.
func JSDivergence(p, q []float64) float64 {
	if len(p) != len(q) {
		return math.NaN()
	}

	m := make([]float64, len(p))
	for i := range p {
		m[i] = (p[i] + q[i]) / 2
	}
	return 0.5*KLDivergence(p, m) + 0.5*KLDivergence(q, m)
}

// EarthMoversDistance is the mean absolute pointwise difference of two
// paired samples. Empty input yields 0; mismatched lengths yield NaN.
func EarthMoversDistance(p, q []float64) float64 {
	if len(p) != len(q) {
		return math.NaN()
	}
	if len(p) == 0 {
		return 0
	}

	distance := 0.0
	for i := range p {
		distance += math.Abs(p[i] - q[i])
	}
	return distance / float64(len(p))
}

// RunningAccuracy returns, for every prefix of outcomes, the share of
// correct outcomes in that prefix.
func RunningAccuracy(outcomes []bool) []float64 {
	acc := make([]float64, len(outcomes))
	correct := 0
	for i, ok := range outcomes {
		if ok {
			correct++
		}
		acc[i] = float64(correct) / float64(i+1)
	}
	return acc
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 1.0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
