package divergence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelchTest_Undefined(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
	}{
		{"empty", nil, nil},
		{"single score", []float64{0.5}, []float64{0.4, 0.6}},
		{"both constant", []float64{0.5, 0.5}, []float64{0.3, 0.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := WelchTest(tt.a, tt.b)
			assert.False(t, ms.Defined)
			assert.Equal(t, 1.0, ms.PValue)
			assert.Zero(t, ms.TStat)
		})
	}
}

func TestWelchTest_EqualMeans(t *testing.T) {
	ms := WelchTest([]float64{0.4, 0.6, 0.5}, []float64{0.6, 0.4, 0.5})
	assert.True(t, ms.Defined)
	assert.InDelta(t, 0.0, ms.TStat, 1e-12)
	assert.InDelta(t, 1.0, ms.PValue, 1e-9)
	assert.InDelta(t, 0.0, ms.CohensD, 1e-12)
}

func TestWelchTest_KnownValues(t *testing.T) {
	// means 2 and 5, sample variances 1 and 1, n=3 each:
	// t = -3/sqrt(2/3), df = 4, d = -3
	ms := WelchTest([]float64{1, 2, 3}, []float64{4, 5, 6})
	assert.True(t, ms.Defined)
	assert.InDelta(t, -3.674234614, ms.TStat, 1e-8)
	assert.InDelta(t, 4.0, ms.DF, 1e-12)
	assert.InDelta(t, -3.0, ms.CohensD, 1e-12)
	// two-sided p for |t|=3.674 on 4 df
	assert.InDelta(t, 0.0213, ms.PValue, 5e-4)
}

func TestWelchTest_Antisymmetric(t *testing.T) {
	a := []float64{0.2, 0.5, 0.9, 0.4}
	b := []float64{0.7, 0.8, 0.6}
	ab, ba := WelchTest(a, b), WelchTest(b, a)
	assert.InDelta(t, ab.TStat, -ba.TStat, 1e-12)
	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
	assert.InDelta(t, ab.DF, ba.DF, 1e-9)
}
