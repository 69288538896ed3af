// Package chart builds deterministic vector chart documents as a tree of
// drawable primitives. Encoders (SVG markup, data URIs) are derived from the
// same canonical Document.
package chart

// Kind tags a primitive
type Kind string

const (
	KindRect     Kind = "rect"
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindCircle   Kind = "circle"
	KindText     Kind = "text"
)

// Element is one drawable primitive
type Element interface {
	Kind() Kind
}

// Point is a canvas coordinate
type Point struct {
	X, Y float64
}

// Rect is a filled rectangle
type Rect struct {
	X, Y, Width, Height float64
	Fill                string
	FillOpacity         float64
	// Role distinguishes data bars from legend swatches and backgrounds
	Role string
}

// Line is a straight stroke; Dash holds an SVG dash pattern or is empty
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
	Dash           string
}

// Polyline is an open connected path
type Polyline struct {
	Points      []Point
	Stroke      string
	StrokeWidth float64
}

// Circle is a filled marker
type Circle struct {
	CX, CY, R float64
	Fill      string
}

// Text is a label; Rotate is in degrees around (X, Y)
type Text struct {
	X, Y     float64
	Content  string
	Anchor   string
	FontSize float64
	Fill     string
	Rotate   float64
}

func (Rect) Kind() Kind     { return KindRect }
func (Line) Kind() Kind     { return KindLine }
func (Polyline) Kind() Kind { return KindPolyline }
func (Circle) Kind() Kind   { return KindCircle }
func (Text) Kind() Kind     { return KindText }

// Document is an immutable chart: a fixed canvas and its primitives in
// paint order
type Document struct {
	Width      float64
	Height     float64
	Label      string
	Background string
	Elements   []Element
}

// Count returns how many primitives of the given kind the document holds
func (d *Document) Count(kind Kind) int {
	n := 0
	for _, el := range d.Elements {
		if el.Kind() == kind {
			n++
		}
	}
	return n
}

// Texts returns the content of every text label in paint order
func (d *Document) Texts() []string {
	var out []string
	for _, el := range d.Elements {
		if t, ok := el.(Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

// canvas is the shared 800x400 layout with 40px padding used by both charts
type canvas struct {
	width, height, padding float64
}

var defaultCanvas = canvas{width: 800, height: 400, padding: 40}

func (c canvas) plotWidth() float64  { return c.width - 2*c.padding }
func (c canvas) plotHeight() float64 { return c.height - 2*c.padding }
func (c canvas) baseline() float64   { return c.height - c.padding }

const (
	axisColor  = "#888"
	labelColor = "#666"
	labelSize  = 12
)

// axes returns the x and y axis strokes plus both axis labels
func (c canvas) axes(xLabel, yLabel string) []Element {
	return []Element{
		Line{X1: c.padding, Y1: c.baseline(), X2: c.width - c.padding, Y2: c.baseline(), Stroke: axisColor, StrokeWidth: 1},
		Line{X1: c.padding, Y1: c.padding, X2: c.padding, Y2: c.baseline(), Stroke: axisColor, StrokeWidth: 1},
		Text{X: c.width / 2, Y: c.height - 10, Content: xLabel, Anchor: "middle", FontSize: labelSize, Fill: labelColor},
		Text{X: 15, Y: c.height / 2, Content: yLabel, Anchor: "middle", FontSize: labelSize, Fill: labelColor, Rotate: -90},
	}
}
