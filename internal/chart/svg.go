package chart

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EncodeSVG writes the document as standalone SVG markup. Output depends
// only on the document, so equal documents encode to equal bytes.
func EncodeSVG(doc *Document) []byte {
	var b bytes.Buffer

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img" aria-label="%s">`,
		num(doc.Width), num(doc.Height), num(doc.Width), num(doc.Height), escape(doc.Label))
	b.WriteString("\n")

	if doc.Background != "" {
		fmt.Fprintf(&b, `<rect x="0" y="0" width="100%%" height="100%%" fill="%s"/>`+"\n", escape(doc.Background))
	}

	for _, el := range doc.Elements {
		writeElement(&b, el)
		b.WriteString("\n")
	}

	b.WriteString("</svg>\n")
	return b.Bytes()
}

// DataURI returns the SVG as an embeddable base64 image payload
func DataURI(doc *Document) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(EncodeSVG(doc))
}

func writeElement(b *bytes.Buffer, el Element) {
	switch e := el.(type) {
	case Rect:
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"`,
			num(e.X), num(e.Y), num(e.Width), num(e.Height), escape(e.Fill))
		if e.FillOpacity > 0 {
			fmt.Fprintf(b, ` fill-opacity="%s"`, num(e.FillOpacity))
		}
		b.WriteString("/>")
	case Line:
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"`,
			num(e.X1), num(e.Y1), num(e.X2), num(e.Y2), escape(e.Stroke), num(e.StrokeWidth))
		if e.Dash != "" {
			fmt.Fprintf(b, ` stroke-dasharray="%s"`, escape(e.Dash))
		}
		b.WriteString("/>")
	case Polyline:
		pts := make([]string, len(e.Points))
		for i, p := range e.Points {
			pts[i] = num(p.X) + "," + num(p.Y)
		}
		fmt.Fprintf(b, `<polyline fill="none" stroke="%s" stroke-width="%s" points="%s"/>`,
			escape(e.Stroke), num(e.StrokeWidth), strings.Join(pts, " "))
	case Circle:
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
			num(e.CX), num(e.CY), num(e.R), escape(e.Fill))
	case Text:
		fmt.Fprintf(b, `<text x="%s" y="%s"`, num(e.X), num(e.Y))
		if e.Rotate != 0 {
			fmt.Fprintf(b, ` transform="rotate(%s, %s, %s)"`, num(e.Rotate), num(e.X), num(e.Y))
		}
		if e.Anchor != "" {
			fmt.Fprintf(b, ` text-anchor="%s"`, escape(e.Anchor))
		}
		fmt.Fprintf(b, ` font-size="%s" fill="%s">%s</text>`, num(e.FontSize), escape(e.Fill), escape(e.Content))
	}
}

// num rounds to 3 decimals and drops trailing zeros
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
