package models

import (
	"encoding/json"
	"strconv"
)

// MeasureKind tells how a dimension was specified
type MeasureKind int

const (
	MeasureNone MeasureKind = iota
	MeasureExact
	MeasureRange
)

// Measure is a dimension given either as one exact value or as a min/max range.
// Zero values are treated as absent, matching how the data files are authored.
type Measure struct {
	Kind  MeasureKind
	Value float64
	Min   float64
	Max   float64
}

// Exact returns an exact measure, or an absent one for zero
func Exact(v float64) Measure {
	if v == 0 {
		return Measure{}
	}
	return Measure{Kind: MeasureExact, Value: v}
}

// Range returns a min/max measure; both bounds are required
func Range(lo, hi float64) Measure {
	if lo == 0 || hi == 0 {
		return Measure{}
	}
	return Measure{Kind: MeasureRange, Min: lo, Max: hi}
}

// Present reports whether the measure carries a value
func (m Measure) Present() bool {
	return m.Kind != MeasureNone
}

// Nominal returns the exact value or the midpoint of the range, 0 when absent
func (m Measure) Nominal() float64 {
	switch m.Kind {
	case MeasureExact:
		return m.Value
	case MeasureRange:
		return (m.Min + m.Max) / 2
	default:
		return 0
	}
}

// String renders "8.3", "11.5-12" or "11.6" when min == max; "" when absent
func (m Measure) String() string {
	switch m.Kind {
	case MeasureExact:
		return FormatNumber(m.Value)
	case MeasureRange:
		if m.Min == m.Max {
			return FormatNumber(m.Min)
		}
		return FormatNumber(m.Min) + "-" + FormatNumber(m.Max)
	default:
		return ""
	}
}

// FormatNumber prints a number the shortest way that round-trips ("50", "8.3")
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Dimensions holds the physical size of a battery.
// Cylindrical cells use Diameter/Height, rectangular ones Width/Height/Depth.
type Dimensions struct {
	Diameter Measure
	Height   Measure
	Width    float64
	Depth    float64

	PositiveTerminalMinHeight   float64
	PositiveTerminalMaxDiameter float64
	NegativeTerminalMinDiameter float64

	Unit  string
	Shape string // "rectangular" or empty
	Notes string
}

// Dimension names accepted by GetDimension and HasDimension
const (
	DimDiameter = "diameter"
	DimHeight   = "height"
	DimWidth    = "width"
	DimDepth    = "depth"
)

// GetDimension returns the display text of a dimension: a single value or a
// "min-max" range. Unknown or absent dimensions yield "".
func (d Dimensions) GetDimension(name string) string {
	switch name {
	case DimDiameter:
		return d.Diameter.String()
	case DimHeight:
		return d.Height.String()
	case DimWidth:
		return Exact(d.Width).String()
	case DimDepth:
		return Exact(d.Depth).String()
	default:
		return ""
	}
}

// HasDimension reports whether the named dimension is present
func (d Dimensions) HasDimension(name string) bool {
	switch name {
	case DimDiameter:
		return d.Diameter.Present()
	case DimHeight:
		return d.Height.Present()
	case DimWidth:
		return d.Width != 0
	case DimDepth:
		return d.Depth != 0
	default:
		return false
	}
}

// IsRectangular reports whether the battery is drawn as a cuboid
func (d Dimensions) IsRectangular() bool {
	return d.Shape == "rectangular" || (d.Width != 0 && d.Depth != 0)
}

// dimensionsFile is the flat on-disk layout of Dimensions
type dimensionsFile struct {
	Diameter    float64 `json:"diameter,omitempty"`
	DiameterMin float64 `json:"diameter_min,omitempty"`
	DiameterMax float64 `json:"diameter_max,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	HeightMin   float64 `json:"height_min,omitempty"`
	HeightMax   float64 `json:"height_max,omitempty"`
	Depth       float64 `json:"depth,omitempty"`

	PositiveTerminalMinHeight   float64 `json:"positive_terminal_min_height,omitempty"`
	PositiveTerminalMaxDiameter float64 `json:"positive_terminal_max_diameter,omitempty"`
	NegativeTerminalMinDiameter float64 `json:"negative_terminal_min_diameter,omitempty"`

	Unit  string `json:"unit"`
	Shape string `json:"shape,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// measureFrom prefers the exact value over the range, as the data files do
func measureFrom(exact, lo, hi float64) Measure {
	if exact != 0 {
		return Exact(exact)
	}
	return Range(lo, hi)
}

// UnmarshalJSON reads the flat file layout into tagged measures
func (d *Dimensions) UnmarshalJSON(data []byte) error {
	var f dimensionsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	*d = Dimensions{
		Diameter:                    measureFrom(f.Diameter, f.DiameterMin, f.DiameterMax),
		Height:                      measureFrom(f.Height, f.HeightMin, f.HeightMax),
		Width:                       f.Width,
		Depth:                       f.Depth,
		PositiveTerminalMinHeight:   f.PositiveTerminalMinHeight,
		PositiveTerminalMaxDiameter: f.PositiveTerminalMaxDiameter,
		NegativeTerminalMinDiameter: f.NegativeTerminalMinDiameter,
		Unit:                        f.Unit,
		Shape:                       f.Shape,
		Notes:                       f.Notes,
	}
	return nil
}

// MarshalJSON writes the flat file layout
func (d Dimensions) MarshalJSON() ([]byte, error) {
	f := dimensionsFile{
		Width:                       d.Width,
		Depth:                       d.Depth,
		PositiveTerminalMinHeight:   d.PositiveTerminalMinHeight,
		PositiveTerminalMaxDiameter: d.PositiveTerminalMaxDiameter,
		NegativeTerminalMinDiameter: d.NegativeTerminalMinDiameter,
		Unit:                        d.Unit,
		Shape:                       d.Shape,
		Notes:                       d.Notes,
	}

	switch d.Diameter.Kind {
	case MeasureExact:
		f.Diameter = d.Diameter.Value
	case MeasureRange:
		f.DiameterMin, f.DiameterMax = d.Diameter.Min, d.Diameter.Max
	}

	switch d.Height.Kind {
	case MeasureExact:
		f.Height = d.Height.Value
	case MeasureRange:
		f.HeightMin, f.HeightMax = d.Height.Min, d.Height.Max
	}

	return json.Marshal(f)
}
