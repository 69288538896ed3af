package chart

import "math"

// Bins is the fixed histogram resolution
const Bins = 20

const (
	ColorSeriesA = "#2F80ED"
	ColorSeriesB = "#EB5757"
	barOpacity   = 0.35
	swatchAlpha  = 0.6
)

// Legend labels for the two series
const (
	LegendSeriesA = "AI Model Score"
	LegendSeriesB = "Biased Human Score"
)

// BuildDistributionChart renders two overlapping density histograms over
// their shared value range. Series B bars are narrowed and shifted right so
// overlaps stay visible.
func BuildDistributionChart(seriesA, seriesB []float64) *Document {
	c := defaultCanvas

	min, max := sharedRange(seriesA, seriesB)
	span := max - min
	if span == 0 {
		span = 1
	}

	densA := binDensities(seriesA, min, span)
	densB := binDensities(seriesB, min, span)

	yMax := 0.0
	for i := 0; i < Bins; i++ {
		yMax = math.Max(yMax, math.Max(densA[i], densB[i]))
	}
	if yMax == 0 {
		yMax = 1
	}

	binWidth := c.plotWidth() / Bins
	doc := &Document{
		Width:      c.width,
		Height:     c.height,
		Label:      "Score Distribution",
		Background: "#ffffff",
	}
	doc.Elements = append(doc.Elements, c.axes("Score", "Density")...)

	for i, d := range densA {
		h := d / yMax * c.plotHeight()
		doc.Elements = append(doc.Elements, Rect{
			X:           c.padding + float64(i)*binWidth,
			Y:           c.baseline() - h,
			Width:       binWidth - 2,
			Height:      h,
			Fill:        ColorSeriesA,
			FillOpacity: barOpacity,
			Role:        "bar-a",
		})
	}
	for i, d := range densB {
		h := d / yMax * c.plotHeight()
		doc.Elements = append(doc.Elements, Rect{
			X:           c.padding + float64(i)*binWidth + binWidth*0.2,
			Y:           c.baseline() - h,
			Width:       (binWidth - 2) * 0.6,
			Height:      h,
			Fill:        ColorSeriesB,
			FillOpacity: barOpacity,
			Role:        "bar-b",
		})
	}

	legendX := c.width - c.padding - 200
	doc.Elements = append(doc.Elements,
		Rect{X: legendX, Y: c.padding - 25, Width: 12, Height: 12, Fill: ColorSeriesA, FillOpacity: swatchAlpha, Role: "legend"},
		Text{X: legendX + 20, Y: c.padding - 14, Content: LegendSeriesA, FontSize: labelSize, Fill: "#444"},
		Rect{X: legendX, Y: c.padding - 8, Width: 12, Height: 12, Fill: ColorSeriesB, FillOpacity: swatchAlpha, Role: "legend"},
		Text{X: legendX + 20, Y: c.padding + 3, Content: LegendSeriesB, FontSize: labelSize, Fill: "#444"},
	)

	return doc
}

// BinIndex places v into one of Bins buckets over [min, min+span]. The
// maximum lands in the last bucket.
func BinIndex(v, min, span float64) int {
	idx := int(math.Floor((v - min) / span * Bins))
	if idx >= Bins {
		idx = Bins - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func binDensities(data []float64, min, span float64) []float64 {
	counts := make([]float64, Bins)
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		counts[BinIndex(v, min, span)]++
	}

	total := float64(len(data))
	if total == 0 {
		total = 1
	}
	for i := range counts {
		counts[i] /= total
	}
	return counts
}

func sharedRange(a, b []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, series := range [][]float64{a, b} {
		for _, v := range series {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return 0, 0
	}
	return min, max
}
