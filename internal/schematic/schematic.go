// Package schematic draws dimensioned SVG diagrams of batteries.
//
// Cylindrical cells are drawn in side view with their length horizontal;
// rectangular batteries are drawn as a cuboid with an oblique depth axis.
// The viewBox is computed from the bounds of everything drawn, so the
// diagram scales to its container without clipping dimension labels.
package schematic

import (
	"fmt"
	"strings"

	"github.com/terra-clan/battery-guide/internal/models"
)

// Config is the canvas the battery is laid out on
type Config struct {
	Width       float64
	Height      float64
	Padding     float64
	StrokeWidth float64
	FontSize    float64
}

// DefaultConfig is the canvas used by Generate
var DefaultConfig = Config{
	Width:       400,
	Height:      300,
	Padding:     40,
	StrokeWidth: 2,
	FontSize:    12,
}

// InsufficientData is the text shown instead of a drawing
const InsufficientData = "Insufficient dimension data"

const styleBlock = `  <style>
    .battery-schematic { width: 100%; height: auto; max-width: 400px; }
    .dimension-text { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', system-ui, sans-serif; font-size: 10px; font-weight: 500; fill: #374151; }
    .battery-label { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', system-ui, sans-serif; font-size: 14px; font-weight: 600; fill: #1F2937; }
    .terminal-label { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', system-ui, sans-serif; font-size: 11px; font-weight: 600; fill: #374151; }
  </style>
`

// CanGenerate reports whether the battery has enough dimensions to be drawn
func CanGenerate(b *models.BatterySpec) bool {
	if b == nil {
		return false
	}

	d := b.Dimensions
	if d.Shape == "rectangular" || (d.Width != 0 && d.Depth != 0 && d.Height.Present()) {
		return true
	}
	return d.Diameter.Present() && d.Height.Present()
}

// Generate draws the battery on the default canvas
func Generate(b *models.BatterySpec) string {
	return DefaultConfig.Generate(b)
}

// Generate returns a complete <svg> document. Batteries lacking a required
// dimension get a document holding only the InsufficientData notice.
func (c Config) Generate(b *models.BatterySpec) string {
	if b == nil {
		return c.placeholder()
	}

	var (
		bounds Bounds
		body   string
	)

	if b.Dimensions.IsRectangular() {
		l, ok := newCuboidLayout(b, c)
		if !ok {
			return c.placeholder()
		}
		bounds, body = l.bounds(), c.drawCuboid(b, l)
	} else {
		l, ok := newCylinderLayout(b.Dimensions, c)
		if !ok {
			return c.placeholder()
		}
		bounds, body = l.bounds(), c.drawCylinder(b, l)
	}

	return document(bounds.ViewBox(), body)
}

func (c Config) placeholder() string {
	var w svgWriter
	w.printf(`  <text x="50%%" y="50%%" text-anchor="middle">%s</text>`, InsufficientData)
	return document(Bounds{MaxX: c.Width, MaxY: c.Height}.ViewBox(), w.String())
}

func document(vb ViewBox, body string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg viewBox="%s" xmlns="http://www.w3.org/2000/svg" class="battery-schematic">`+"\n", vb)
	sb.WriteString(styleBlock)
	sb.WriteString(body)
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (c Config) drawCylinder(b *models.BatterySpec, l cylinderLayout) string {
	d := b.Dimensions
	var w svgWriter

	w.comment("Battery body")
	w.rect(l.x, l.y, l.w, l.h, c.StrokeWidth, `rx="2" ry="2"`)
	w.line(l.x+2, l.y, l.x+2, l.y+l.h, colorMuted, 0.5, `stroke-dasharray="2,2"`)
	w.line(l.x+l.w-2, l.y, l.x+l.w-2, l.y+l.h, colorMuted, 0.5, `stroke-dasharray="2,2"`)

	if d.PositiveTerminalMaxDiameter != 0 || d.NegativeTerminalMinDiameter != 0 {
		pos := d.PositiveTerminalMaxDiameter
		if pos == 0 {
			pos = defaultPositiveTerminal
		}
		neg := d.NegativeTerminalMinDiameter
		if neg == 0 {
			neg = defaultNegativeTerminal
		}
		posR := pos * l.scale / 2
		negR := neg * l.scale / 2
		cy := l.y + l.h/2

		w.comment("Terminals")
		w.circle(l.x+l.w, cy, posR)
		w.text(l.x+l.w, cy-posR-8, "middle", "terminal-label", "+")
		w.line(l.x, cy-negR, l.x, cy+negR, colorStroke, 3, "")
		w.text(l.x-15, cy+3, "middle", "terminal-label", "-")
	}

	w.comment("Dimensions")
	w.dimensionLine(l.x, l.y, l.x, l.y+l.h, -40, "Ø"+d.Diameter.String()+d.Unit, false)
	w.dimensionLine(l.x, l.y+l.h+10, l.x+l.w, l.y+l.h+10, 25, d.Height.String()+d.Unit, true)

	w.text(l.x+l.w/2, l.y+l.h/2, "middle", "battery-label", b.Type)
	return w.String()
}

func (c Config) drawCuboid(b *models.BatterySpec, l cuboidLayout) string {
	d := b.Dimensions
	var w svgWriter

	right := l.x + l.w
	bottom := l.y + l.h

	w.comment("Battery body")
	w.rect(l.x, l.y, l.w, l.h, c.StrokeWidth, "")
	w.polygon([][2]float64{
		{l.x, l.y}, {l.x + l.dx, l.y - l.dy}, {right + l.dx, l.y - l.dy}, {right, l.y},
	}, "", 1.5)
	w.polygon([][2]float64{
		{right, l.y}, {right + l.dx, l.y - l.dy}, {right + l.dx, bottom - l.dy}, {right, bottom},
	}, "", 1.5)
	w.line(l.x, bottom, l.x+l.dx, bottom-l.dy, colorMuted, 1, `stroke-dasharray="3,2"`)
	w.line(l.x+l.dx, l.y-l.dy, l.x+l.dx, bottom-l.dy, colorMuted, 1, `stroke-dasharray="3,2"`)

	if l.snap {
		spacingMM, spacingLabel := snapSpacing(b.Terminals)
		spacing := spacingMM * l.scale
		terminalY := l.y - 8
		centerX := l.x + l.w/2
		posX := centerX - spacing/2
		negX := centerX + spacing/2

		w.comment("Snap connector")
		w.rect(posX-3, terminalY, 6, 8, 1.5, "")
		w.text(posX, terminalY-8, "middle", "terminal-label", "+")
		w.rect(negX-4, terminalY, 8, 8, 1.5, "")
		w.text(negX, terminalY-8, "middle", "terminal-label", "-")
		w.dimensionLine(posX, terminalY-25, negX, terminalY-25, 0, spacingLabel, true)
	}

	w.comment("Dimensions")
	w.dimensionLine(l.x, bottom+10, right, bottom+10, 25, models.FormatNumber(d.Width)+d.Unit, true)
	w.dimensionLine(l.x, l.y, l.x, bottom, -40, d.Height.String()+d.Unit, false)
	w.dimensionLine(right+10, bottom, right+10, bottom-l.dy, 30, models.FormatNumber(d.Depth)+d.Unit, false)

	w.text(l.x+l.w/2, l.y+l.h/2, "middle", "battery-label", b.Type)
	return w.String()
}
