package divergence

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// relative tolerance when comparing outcome probabilities to the observed one
const exactTolerance = 1 + 1e-7

// ExactBinomialPValue computes the two-sided exact binomial test: the total
// probability, under the null, of every outcome no more likely than the
// observed one. Reported next to the normal approximation, which is poor for
// small sessions.
func ExactBinomialPValue(successes, trials int, nullProbability float64) float64 {
	if trials <= 0 || successes < 0 || successes > trials {
		return 1.0
	}
	if nullProbability <= 0 || nullProbability >= 1 {
		return 1.0
	}

	dist := distuv.Binomial{N: float64(trials), P: nullProbability}
	observed := dist.Prob(float64(successes))

	p := 0.0
	for k := 0; k <= trials; k++ {
		if pk := dist.Prob(float64(k)); pk <= observed*exactTolerance {
			p += pk
		}
	}
	return clampUnit(p)
}
