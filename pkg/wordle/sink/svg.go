package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	fontFamily string
	regions    []wordle.Region
	fillings   bool
}

// WithBackground fills the canvas with color before drawing words.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithFontFamily sets the family used for records that carry none.
func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.fontFamily = family } }

// WithOutlines draws the boundary polygon of each region.
func WithOutlines(regions []wordle.Region) SVGOption {
	return func(r *svgRenderer) { r.regions = regions }
}

// WithoutFillings renders keywords only.
func WithoutFillings() SVGOption { return func(r *svgRenderer) { r.fillings = false } }

// RenderSVG draws the layout as a standalone SVG document.
func RenderSVG(l wordle.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: "sans-serif", fillings: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}
	for _, reg := range r.regions {
		renderOutline(&buf, reg)
	}

	buf.WriteString(`  <g class="keywords">` + "\n")
	for _, rec := range l.Keywords {
		r.renderText(&buf, rec)
	}
	buf.WriteString("  </g>\n")

	if r.fillings && len(l.Fillings) > 0 {
		buf.WriteString(`  <g class="fillings">` + "\n")
		for _, rec := range l.Fillings {
			r.renderText(&buf, rec)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderText(buf *bytes.Buffer, rec wordle.Record) {
	family := rec.FontFamily
	if family == "" {
		family = r.fontFamily
	}
	fmt.Fprintf(buf, `    <text transform="translate(%.2f %.2f) rotate(%.2f)" x="%.2f" y="%.2f" font-size="%.2f" font-family="%s" fill="%s"`,
		rec.TransX, rec.TransY, rec.Rotate*180/math.Pi, rec.FillX, rec.FillY, rec.FontSize,
		escapeXML(family), escapeXML(rec.Color))
	if rec.Alpha > 0 && rec.Alpha < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%.2f"`, rec.Alpha)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(rec.Name))
}

func renderOutline(buf *bytes.Buffer, reg wordle.Region) {
	if len(reg.Boundary) < 2 {
		return
	}
	fmt.Fprintf(buf, `  <polygon class="region" data-region="%d" fill="none" stroke="#cccccc" points="`, reg.ID)
	for i, p := range reg.Boundary {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.1f,%.1f", p.X, p.Y)
	}
	buf.WriteString(`"/>` + "\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
