package models

import (
	"regexp"
	"slices"
	"strings"
)

// BatterySpec describes one battery type as stored in data/<category>/<type>.json
type BatterySpec struct {
	Type          string                   `json:"type"`
	Designation   string                   `json:"designation,omitempty"`
	IECCode       string                   `json:"iec_code,omitempty"`
	ANSICode      string                   `json:"ansi_code,omitempty"`
	CommonNames   []string                 `json:"common_names"`
	Chemistry     map[string]ChemistrySpec `json:"chemistry"`
	Dimensions    Dimensions               `json:"dimensions"`
	Weight        WeightSpec               `json:"weight"`
	Temperature   TemperatureRanges        `json:"temperature_range"`
	CommonDevices []string                 `json:"common_devices"`
	Notes         string                   `json:"notes"`

	// Optional fields present on some battery types only
	Protection       map[string]string `json:"protection,omitempty"`
	Terminals        *Terminals        `json:"terminals,omitempty"`
	ShelfLife        *ShelfLife        `json:"shelf_life,omitempty"`
	StorageRetention map[string]string `json:"storage_retention,omitempty"`
	Variants         map[string]string `json:"variants,omitempty"`
	SafetyNotes      []string          `json:"safety_notes,omitempty"`
	Manufacturers    []string          `json:"manufacturers,omitempty"`
	Sources          []Source          `json:"sources,omitempty"`
}

// ChemistrySpec is the voltage/capacity profile of one chemistry variant
type ChemistrySpec struct {
	VoltageNominal float64  `json:"voltage_nominal"`
	VoltageEnd     *float64 `json:"voltage_end,omitempty"`
	VoltageFresh   *float64 `json:"voltage_fresh,omitempty"`
	VoltageCharged *float64 `json:"voltage_charged,omitempty"`
	VoltageMin     *float64 `json:"voltage_min,omitempty"`

	CapacityTypical         NumberOrString `json:"capacity_typical,omitempty"`
	CapacityRange           NumberOrString `json:"capacity_range,omitempty"`
	CapacityAt25mA          NumberOrString `json:"capacity_at_25ma,omitempty"`
	CapacityAt500mA         NumberOrString `json:"capacity_at_500ma,omitempty"`
	CapacityEneloopStandard NumberOrString `json:"capacity_eneloop_standard,omitempty"`
	CapacityEneloopPro      NumberOrString `json:"capacity_eneloop_pro,omitempty"`
	CapacityUnit            string         `json:"capacity_unit"`
	MaxDischargeContinuous  NumberOrString `json:"max_discharge_continuous,omitempty"`
	MaxDischargePulse       NumberOrString `json:"max_discharge_pulse,omitempty"`
	DischargeRate           NumberOrString `json:"discharge_rate,omitempty"`
	DischargeUnit           string         `json:"discharge_unit,omitempty"`
	CycleLife               NumberOrString `json:"cycle_life,omitempty"`
	SelfDischarge           NumberOrString `json:"self_discharge,omitempty"`
}

// WeightSpec holds a weight per chemistry (e.g. "alkaline": "23") plus the unit.
// "unit" and "typical" are stored in the same flat map on disk.
type WeightSpec map[string]NumberOrString

// Unit returns the weight unit
func (w WeightSpec) Unit() string { return w["unit"].String() }

// Typical returns the typical weight, if any
func (w WeightSpec) Typical() string { return w["typical"].String() }

// TemperatureRange is an inclusive temperature window
type TemperatureRange struct {
	Min        float64  `json:"min"`
	Max        float64  `json:"max"`
	LithiumMin *float64 `json:"lithium_min,omitempty"`
	LithiumMax *float64 `json:"lithium_max,omitempty"`
	Unit       string   `json:"unit"`
}

// TemperatureRanges groups the operating and storage windows
type TemperatureRanges struct {
	Operating          *TemperatureRange `json:"operating,omitempty"`
	OperatingCharge    *TemperatureRange `json:"operating_charge,omitempty"`
	OperatingDischarge *TemperatureRange `json:"operating_discharge,omitempty"`
	Storage            *TemperatureRange `json:"storage,omitempty"`
}

// Terminals describes the contact layout, e.g. the 9V snap connector
type Terminals struct {
	Type     string `json:"type,omitempty"` // "snap connector"
	Spacing  string `json:"spacing,omitempty"`
	Positive string `json:"positive,omitempty"`
	Negative string `json:"negative,omitempty"`
}

// ShelfLife is the expected storage life
type ShelfLife struct {
	Years float64 `json:"years"`
	Notes string  `json:"notes,omitempty"`
}

// Source is a reference a battery's data was taken from
type Source struct {
	Name       string `json:"name"`
	URL        string `json:"url,omitempty"`
	AccessDate string `json:"access_date,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// NominalVoltages returns the sorted nominal voltages of all chemistry variants
func (b *BatterySpec) NominalVoltages() []float64 {
	result := make([]float64, 0, len(b.Chemistry))
	for _, chem := range b.Chemistry {
		result = append(result, chem.VoltageNominal)
	}
	slices.Sort(result)
	return result
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug returns the URL slug for a battery type: lowercased, with each run of
// non-alphanumeric characters collapsed to a hyphen ("CR-V3" -> "cr-v3").
func Slug(batteryType string) string {
	return nonAlnumRun.ReplaceAllString(strings.ToLower(batteryType), "-")
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// FileKey returns the data file name (without .json) a battery type is stored
// under: lowercased with every non-alphanumeric character removed.
func FileKey(batteryType string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(batteryType), "")
}
