package schematic

import (
	"math"
	"strconv"
	"strings"

	"github.com/terra-clan/battery-guide/internal/models"
)

const (
	cylinderFill = 0.7
	cuboidFill   = 0.6

	// isometric projection of the depth axis
	depthSkewX = 0.3
	depthSkewY = 0.2

	defaultPositiveTerminal = 5.5 // mm
	defaultNegativeTerminal = 7.0 // mm
	defaultSnapSpacing      = 12.7
	snapConnector           = "snap connector"

	boundsPadding = 10
)

// Bounds is the box enclosing everything drawn, in canvas coordinates
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// ViewBox is the integer SVG viewBox derived from Bounds
type ViewBox struct {
	X, Y, Width, Height int
}

func (v ViewBox) String() string {
	return strconv.Itoa(v.X) + " " + strconv.Itoa(v.Y) + " " +
		strconv.Itoa(v.Width) + " " + strconv.Itoa(v.Height)
}

// ViewBox pads the bounds and rounds outwards so nothing is clipped
func (b Bounds) ViewBox() ViewBox {
	return ViewBox{
		X:      int(math.Floor(b.MinX - boundsPadding)),
		Y:      int(math.Floor(b.MinY - boundsPadding)),
		Width:  int(math.Ceil(b.MaxX - b.MinX + 2*boundsPadding)),
		Height: int(math.Ceil(b.MaxY - b.MinY + 2*boundsPadding)),
	}
}

// available returns the drawable area left once room for dimension lines is reserved
func (c Config) available() (float64, float64) {
	return c.Width - c.Padding*3, c.Height - c.Padding*3
}

// cylinderLayout is a side view: the battery's length runs horizontally and
// its diameter vertically.
type cylinderLayout struct {
	scale float64
	x, y  float64
	w, h  float64 // scaled length and diameter
}

func newCylinderLayout(d models.Dimensions, c Config) (cylinderLayout, bool) {
	diameter := d.Diameter.Nominal()
	length := d.Height.Nominal()
	if diameter == 0 || length == 0 {
		return cylinderLayout{}, false
	}

	availW, availH := c.available()
	scale := math.Min(availW/length, availH/diameter) * cylinderFill

	l := cylinderLayout{
		scale: scale,
		w:     length * scale,
		h:     diameter * scale,
	}
	l.x = (c.Width - l.w) / 2
	l.y = (c.Height - l.h) / 2
	return l, true
}

func (l cylinderLayout) bounds() Bounds {
	return Bounds{
		MinX: l.x - 60, // diameter dimension on the left
		MinY: l.y - 20,
		MaxX: l.x + l.w + 20,
		MaxY: l.y + l.h + 50, // length dimension below
	}
}

// cuboidLayout is a front view with the depth drawn as an oblique projection
type cuboidLayout struct {
	scale  float64
	x, y   float64
	w, h   float64
	dx, dy float64 // depth offsets
	snap   bool
}

func newCuboidLayout(b *models.BatterySpec, c Config) (cuboidLayout, bool) {
	d := b.Dimensions
	width := d.Width
	height := d.Height.Nominal()
	if width == 0 || height == 0 || d.Depth == 0 {
		return cuboidLayout{}, false
	}

	availW, availH := c.available()
	scale := math.Min(availW/width, availH/height) * cuboidFill

	l := cuboidLayout{
		scale: scale,
		w:     width * scale,
		h:     height * scale,
		snap:  hasSnapConnector(b),
	}
	l.x = (c.Width - l.w) / 2
	l.y = (c.Height - l.h) / 2

	depth := d.Depth * scale
	l.dx = depth * depthSkewX
	l.dy = depth * depthSkewY
	return l, true
}

func (l cuboidLayout) bounds() Bounds {
	terminalOffset := 0.0
	if l.snap {
		terminalOffset = 40
	}

	return Bounds{
		MinX: l.x - 60,
		MinY: l.y - l.dy - terminalOffset,
		MaxX: l.x + l.w + l.dx + 50,
		MaxY: l.y + l.h + 50,
	}
}

func hasSnapConnector(b *models.BatterySpec) bool {
	return b.Terminals != nil && b.Terminals.Type == snapConnector
}

// snapSpacing returns the terminal spacing in mm and its label, "12.7mm" by default
func snapSpacing(t *models.Terminals) (float64, string) {
	if t == nil || t.Spacing == "" {
		return defaultSnapSpacing, "12.7mm"
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(t.Spacing, "mm")), 64)
	if err != nil || v <= 0 {
		return defaultSnapSpacing, t.Spacing
	}
	return v, t.Spacing
}
