package divergence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestBinomialPValue_NoData(t *testing.T) {
	assert.Equal(t, 1.0, BinomialPValue(0, 0, DefaultNullProbability))
}

func TestBinomialPValue_ChanceAndExtreme(t *testing.T) {
	atChance := BinomialPValue(50, 100, 0.5)
	assert.InDelta(t, 1.0, atChance, 1e-6)
	assert.LessOrEqual(t, atChance, 1.0)

	extreme := BinomialPValue(95, 100, 0.5)
	assert.Less(t, extreme, 0.001)
	assert.GreaterOrEqual(t, extreme, 0.0)

	// 60/100 gives z = 2, two-sided p ~ 0.0455
	assert.InDelta(t, 0.0455, BinomialPValue(60, 100, 0.5), 1e-3)

	// symmetric around the null
	assert.InDelta(t, BinomialPValue(40, 100, 0.5), BinomialPValue(60, 100, 0.5), 1e-12)
}

func TestBinomialPValue_AlwaysInUnitInterval(t *testing.T) {
	for n := 1; n <= 40; n++ {
		for k := 0; k <= n; k++ {
			p := BinomialPValue(k, n, 0.5)
			if p < 0 || p > 1 {
				t.Fatalf("p-value out of range for %d/%d: %v", k, n, p)
			}
		}
	}
}

func TestNormalCDF_MatchesReference(t *testing.T) {
	for x := -5.0; x <= 5.0; x += 0.25 {
		assert.InDelta(t, distuv.UnitNormal.CDF(x), NormalCDF(x), 2e-7, "x=%v", x)
	}
	assert.InDelta(t, -Erf(0.7), Erf(-0.7), 1e-15)
}

func TestKLDivergence(t *testing.T) {
	p := []float64{0.2, 0.5, 0.9, 0.35}
	assert.Equal(t, 0.0, KLDivergence(p, p))

	assert.True(t, math.IsNaN(KLDivergence([]float64{0.1, 0.2}, []float64{0.1})))

	// index 1 skipped because q is zero, index 2 skipped because p is negative
	got := KLDivergence([]float64{0.5, 0.4, -0.2}, []float64{0.25, 0, 0.3})
	assert.InDelta(t, 0.5*math.Log(2), got, 1e-12)

	assert.InDelta(t, 0.8*math.Log(0.8/0.4), KLDivergence([]float64{0.8}, []float64{0.4}), 1e-12)
	assert.Equal(t, 0.0, KLDivergence(nil, nil))
}

func TestJSDivergence_Symmetric(t *testing.T) {
	cases := [][2][]float64{
		{{0.3, 0.6, 0.9}, {0.5, 0.5, 0.2}},
		{{0.1}, {0.95}},
		{{0.4, 0, 0.7}, {0.2, 0.8, 0}},
		{{0.2, 0.2, 0.2, 0.2}, {0.9, 0.9, 0.9, 0.9}},
	}
	for _, c := range cases {
		assert.InDelta(t, JSDivergence(c[0], c[1]), JSDivergence(c[1], c[0]), 1e-12)
	}

	p := []float64{0.3, 0.6}
	assert.Equal(t, 0.0, JSDivergence(p, p))
	assert.True(t, math.IsNaN(JSDivergence([]float64{0.1}, []float64{})))
}

func TestEarthMoversDistance(t *testing.T) {
	p := []float64{0.2, 0.7, 0.5}
	q := []float64{0.4, 0.3, 0.5}

	assert.InDelta(t, 0.2, EarthMoversDistance(p, q), 1e-12)
	assert.Equal(t, EarthMoversDistance(p, q), EarthMoversDistance(q, p))
	assert.Equal(t, 0.0, EarthMoversDistance(p, p))

	assert.Equal(t, 0.0, EarthMoversDistance(nil, nil))
	assert.Equal(t, 0.0, EarthMoversDistance([]float64{}, []float64{}))
	assert.InDelta(t, 0.35, EarthMoversDistance([]float64{0.9}, []float64{0.55}), 1e-12)
	assert.True(t, math.IsNaN(EarthMoversDistance([]float64{1, 2}, []float64{1})))
}

func TestRunningAccuracy(t *testing.T) {
	got := RunningAccuracy([]bool{true, false, true})
	want := []float64{1.0, 0.5, 0.667}

	assert.Len(t, got, 3)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 5e-4)
	}

	assert.Empty(t, RunningAccuracy(nil))
}

func TestExactBinomialPValue(t *testing.T) {
	assert.Equal(t, 1.0, ExactBinomialPValue(0, 0, 0.5))
	assert.InDelta(t, 1.0, ExactBinomialPValue(5, 10, 0.5), 1e-9)

	// 9 of 10: P = 2 * (C(10,9)+C(10,10)) / 1024 = 22/1024
	assert.InDelta(t, 22.0/1024.0, ExactBinomialPValue(9, 10, 0.5), 1e-9)
	assert.InDelta(t, ExactBinomialPValue(1, 10, 0.5), ExactBinomialPValue(9, 10, 0.5), 1e-12)

	assert.Equal(t, 1.0, ExactBinomialPValue(11, 10, 0.5))
}
