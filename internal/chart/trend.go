package chart

import "math"

const (
	trendColor    = "#3498db"
	chanceColor   = "#bbb"
	chanceLevel   = 0.5
	markerRadius  = 3
	trendStroke   = 2
	chanceDashing = "4 4"
)

// BuildTrendChart plots running accuracy per trial as a polyline with a
// marker at every vertex and a dashed chance-level reference at 0.5.
// A single value produces a single point.
func BuildTrendChart(runningAccuracy []float64) *Document {
	c := defaultCanvas
	n := len(runningAccuracy)
	xStep := c.plotWidth() / math.Max(1, float64(n-1))

	yFor := func(v float64) float64 {
		return c.baseline() - v*c.plotHeight()
	}

	points := make([]Point, n)
	for i, v := range runningAccuracy {
		points[i] = Point{X: c.padding + float64(i)*xStep, Y: yFor(v)}
	}

	doc := &Document{
		Width:      c.width,
		Height:     c.height,
		Label:      "User Accuracy Trend",
		Background: "#ffffff",
	}

	axes := c.axes("Trial Number", "User Accuracy")
	doc.Elements = append(doc.Elements, axes[0], axes[1])

	chanceY := yFor(chanceLevel)
	doc.Elements = append(doc.Elements,
		Line{X1: c.padding, Y1: chanceY, X2: c.width - c.padding, Y2: chanceY, Stroke: chanceColor, StrokeWidth: 1, Dash: chanceDashing},
		Polyline{Points: points, Stroke: trendColor, StrokeWidth: trendStroke},
	)
	for _, p := range points {
		doc.Elements = append(doc.Elements, Circle{CX: p.X, CY: p.Y, R: markerRadius, Fill: trendColor})
	}
	doc.Elements = append(doc.Elements, axes[2], axes[3])

	return doc
}
