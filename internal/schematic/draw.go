package schematic

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

const (
	colorStroke = "#374151"
	colorMuted  = "#6B7280"
	arrowSize   = 3.0
)

// svgWriter accumulates SVG elements
type svgWriter struct {
	b strings.Builder
}

// num prints canvas coordinates with at most two decimals
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func (w *svgWriter) printf(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *svgWriter) comment(text string) {
	w.printf("  <!-- %s -->", text)
}

func (w *svgWriter) line(x1, y1, x2, y2 float64, stroke string, width float64, extra string) {
	if extra != "" {
		extra = " " + extra
	}
	w.printf(`  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"%s/>`,
		num(x1), num(y1), num(x2), num(y2), stroke, num(width), extra)
}

func (w *svgWriter) rect(x, y, width, height float64, strokeWidth float64, extra string) {
	if extra != "" {
		extra = " " + extra
	}
	w.printf(`  <rect x="%s" y="%s" width="%s" height="%s"%s fill="none" stroke="%s" stroke-width="%s"/>`,
		num(x), num(y), num(width), num(height), extra, colorStroke, num(strokeWidth))
}

func (w *svgWriter) polygon(points [][2]float64, fill string, strokeWidth float64) {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, num(p[0])+","+num(p[1]))
	}

	if fill != "" {
		w.printf(`  <polygon points="%s" fill="%s"/>`, strings.Join(parts, " "), fill)
		return
	}
	w.printf(`  <polygon points="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
		strings.Join(parts, " "), colorStroke, num(strokeWidth))
}

func (w *svgWriter) circle(cx, cy, r float64) {
	w.printf(`  <circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="1"/>`,
		num(cx), num(cy), num(r), colorStroke)
}

func (w *svgWriter) text(x, y float64, anchor, class, content string) {
	w.printf(`  <text x="%s" y="%s" text-anchor="%s" class="%s">%s</text>`,
		num(x), num(y), anchor, class, html.EscapeString(content))
}

// dimensionLine draws a measured distance between (x1,y1) and (x2,y2):
// two extension lines, the dimension line itself shifted by offset, an
// arrowhead at each end and the label.
func (w *svgWriter) dimensionLine(x1, y1, x2, y2, offset float64, label string, horizontal bool) {
	if horizontal {
		lineY := y1 + offset
		midX := (x1 + x2) / 2

		w.line(x1, y1, x1, lineY+5, colorMuted, 0.5, "")
		w.line(x2, y1, x2, lineY+5, colorMuted, 0.5, "")
		w.line(x1, lineY, x2, lineY, colorStroke, 0.8, "")
		w.polygon([][2]float64{
			{x1, lineY}, {x1 + arrowSize, lineY - arrowSize/2}, {x1 + arrowSize, lineY + arrowSize/2},
		}, colorStroke, 0)
		w.polygon([][2]float64{
			{x2, lineY}, {x2 - arrowSize, lineY - arrowSize/2}, {x2 - arrowSize, lineY + arrowSize/2},
		}, colorStroke, 0)
		w.text(midX, lineY-8, "middle", "dimension-text", label)
		return
	}

	lineX := x1 + offset
	midY := (y1 + y2) / 2

	w.line(x1, y1, lineX+5, y1, colorMuted, 0.5, "")
	w.line(x1, y2, lineX+5, y2, colorMuted, 0.5, "")
	w.line(lineX, y1, lineX, y2, colorStroke, 0.8, "")
	w.polygon([][2]float64{
		{lineX, y1}, {lineX - arrowSize/2, y1 + arrowSize}, {lineX + arrowSize/2, y1 + arrowSize},
	}, colorStroke, 0)
	w.polygon([][2]float64{
		{lineX, y2}, {lineX - arrowSize/2, y2 - arrowSize}, {lineX + arrowSize/2, y2 - arrowSize},
	}, colorStroke, 0)
	w.text(lineX+12, midY+3, "start", "dimension-text", label)
}

func (w *svgWriter) String() string {
	return w.b.String()
}
