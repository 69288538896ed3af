package chart

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsByRole(doc *Document, role string) []Rect {
	var out []Rect
	for _, el := range doc.Elements {
		if r, ok := el.(Rect); ok && r.Role == role {
			out = append(out, r)
		}
	}
	return out
}

func TestBuildDistributionChart_Layout(t *testing.T) {
	doc := BuildDistributionChart([]float64{0.1, 0.2, 0.2, 0.9}, []float64{0.5, 0.5, 0.6, 0.95})

	assert.Equal(t, 800.0, doc.Width)
	assert.Equal(t, 400.0, doc.Height)
	assert.Len(t, barsByRole(doc, "bar-a"), Bins)
	assert.Len(t, barsByRole(doc, "bar-b"), Bins)
	assert.Len(t, barsByRole(doc, "legend"), 2)
	assert.Equal(t, 2, doc.Count(KindLine))

	texts := doc.Texts()
	assert.Contains(t, texts, "Score")
	assert.Contains(t, texts, "Density")
	assert.Contains(t, texts, LegendSeriesA)
	assert.Contains(t, texts, LegendSeriesB)

	for _, r := range barsByRole(doc, "bar-a") {
		assert.Equal(t, ColorSeriesA, r.Fill)
		assert.GreaterOrEqual(t, r.Y, 40.0)
		assert.LessOrEqual(t, r.Y+r.Height, 360.0+1e-9)
	}
}

func TestBuildDistributionChart_DensityScaling(t *testing.T) {
	// A: all mass in the first bin. B: split between first and last.
	doc := BuildDistributionChart([]float64{0, 0}, []float64{0, 1})
	barsA := barsByRole(doc, "bar-a")
	barsB := barsByRole(doc, "bar-b")

	assert.InDelta(t, 320, barsA[0].Height, 1e-9, "tallest density fills the plot")
	assert.InDelta(t, 160, barsB[0].Height, 1e-9)
	assert.InDelta(t, 160, barsB[Bins-1].Height, 1e-9, "maximum value lands in the last bin")
	assert.Greater(t, barsB[0].X, barsA[0].X, "series B is offset")
	assert.Less(t, barsB[0].Width, barsA[0].Width)
}

func TestBinIndex_ClampsMaximum(t *testing.T) {
	assert.Equal(t, 0, BinIndex(0.25, 0.25, 0.5))
	assert.Equal(t, Bins-1, BinIndex(0.75, 0.25, 0.5))
	assert.Equal(t, 10, BinIndex(0.5, 0, 1))
	assert.Equal(t, 0, BinIndex(-1, 0, 1))
}

func TestBuildDistributionChart_ConstantInput(t *testing.T) {
	doc := BuildDistributionChart([]float64{0.5, 0.5, 0.5}, []float64{0.5, 0.5, 0.5})
	require.NotNil(t, doc)

	barsA := barsByRole(doc, "bar-a")
	assert.InDelta(t, 320, barsA[0].Height, 1e-9)
	for _, r := range barsA[1:] {
		assert.Equal(t, 0.0, r.Height)
	}

	svg := EncodeSVG(doc)
	assert.NotContains(t, string(svg), "NaN")
	assert.NotContains(t, string(svg), "Inf")
	assertWellFormed(t, svg)
}

func TestBuildTrendChart(t *testing.T) {
	doc := BuildTrendChart([]float64{1, 0.5, 2.0 / 3.0})

	var poly Polyline
	var dashed int
	for _, el := range doc.Elements {
		switch e := el.(type) {
		case Polyline:
			poly = e
		case Line:
			if e.Dash != "" {
				dashed++
				assert.Equal(t, 200.0, e.Y1, "chance level sits mid-plot")
			}
		}
	}

	require.Len(t, poly.Points, 3)
	assert.Equal(t, Point{X: 40, Y: 40}, poly.Points[0])
	assert.Equal(t, Point{X: 400, Y: 200}, poly.Points[1])
	assert.Equal(t, 760.0, poly.Points[2].X)
	assert.Equal(t, 1, dashed)
	assert.Equal(t, 3, doc.Count(KindCircle))
	assert.Contains(t, doc.Texts(), "Trial Number")
	assert.Contains(t, doc.Texts(), "User Accuracy")
}

func TestBuildTrendChart_SinglePoint(t *testing.T) {
	doc := BuildTrendChart([]float64{1})
	assert.Equal(t, 1, doc.Count(KindCircle))
	assert.Equal(t, 1, doc.Count(KindPolyline))

	svg := EncodeSVG(doc)
	assert.Contains(t, string(svg), `points="40,40"`)
	assertWellFormed(t, svg)
}

func TestEncodeSVG_Deterministic(t *testing.T) {
	a := EncodeSVG(BuildDistributionChart([]float64{0.3, 0.7}, []float64{0.1, 0.4}))
	b := EncodeSVG(BuildDistributionChart([]float64{0.3, 0.7}, []float64{0.1, 0.4}))
	assert.Equal(t, a, b)

	assert.True(t, bytes.HasPrefix(a, []byte(`<?xml`)))
	assert.Contains(t, string(a), `fill-opacity="0.35"`)
	assertWellFormed(t, a)

	trend := EncodeSVG(BuildTrendChart([]float64{0, 1}))
	assert.Contains(t, string(trend), `stroke-dasharray="4 4"`)
	assert.Contains(t, string(trend), `transform="rotate(-90, 15, 200)"`)
}

func TestDataURI(t *testing.T) {
	doc := BuildTrendChart([]float64{0.5, 1})
	uri := DataURI(doc)

	const prefix = "data:image/svg+xml;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	assert.Equal(t, EncodeSVG(doc), decoded)
}

func TestEncodeSVG_EscapesText(t *testing.T) {
	doc := &Document{Width: 10, Height: 10, Label: "a<b", Elements: []Element{Text{Content: "x & y"}}}
	svg := string(EncodeSVG(doc))
	assert.Contains(t, svg, "a&lt;b")
	assert.Contains(t, svg, "x &amp; y")
}

func assertWellFormed(t *testing.T, svg []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			return
		}
	}
}
