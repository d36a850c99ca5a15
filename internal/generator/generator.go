// Package generator writes the seed battery table to the data directory as
// one JSON file per battery.
package generator

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/battery-guide/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// Section names of the seed table, in write order
const (
	SectionTraditional = "traditional"
	SectionLithiumIon  = "lithium_ion"
	SectionButtonCells = "button_cells"
)

var sectionOrder = []string{SectionTraditional, SectionLithiumIon, SectionButtonCells}

// SeedEntry is one row of the seed table
type SeedEntry struct {
	Type        string   `yaml:"type"`
	Designation string   `yaml:"designation"`
	IECCode     string   `yaml:"iec_code"`
	ANSICode    string   `yaml:"ansi_code"`
	Dimensions  SeedDims `yaml:"dimensions"`
	Devices     []string `yaml:"devices"`
	Notes       string   `yaml:"notes"`

	Voltage          float64 `yaml:"voltage"`
	VoltageNominal   float64 `yaml:"voltage_nominal"`
	VoltageMax       float64 `yaml:"voltage_max"`
	Capacity         string  `yaml:"capacity"`
	CapacityAlkaline string  `yaml:"capacity_alkaline"`
	CapacityRange    string  `yaml:"capacity_range"`
	Weight           string  `yaml:"weight"`
	WeightAlkaline   string  `yaml:"weight_alkaline"`
}

// SeedDims are the cylinder dimensions of a seed entry in millimetres
type SeedDims struct {
	Diameter float64 `yaml:"diameter"`
	Height   float64 `yaml:"height"`
}

// Seed is the parsed seed table keyed by section
type Seed map[string][]SeedEntry

// LoadSeed parses the embedded seed table
func LoadSeed() (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(seedYAML, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed table: %w", err)
	}
	return seed, nil
}

// Build converts a seed entry of the given section into a battery spec
func Build(section string, e SeedEntry) (*models.BatterySpec, error) {
	if e.Type == "" {
		return nil, fmt.Errorf("seed entry in %s has no type", section)
	}

	b := &models.BatterySpec{
		Type:        e.Type,
		Designation: e.Designation,
		IECCode:     e.IECCode,
		ANSICode:    e.ANSICode,
		CommonNames: []string{e.Type},
		Chemistry:   map[string]models.ChemistrySpec{},
		Dimensions: models.Dimensions{
			Diameter: models.Exact(e.Dimensions.Diameter),
			Height:   models.Exact(e.Dimensions.Height),
			Unit:     "mm",
		},
		Weight: models.WeightSpec{"unit": "g"},
		Temperature: models.TemperatureRanges{
			Operating: &models.TemperatureRange{Min: -20, Max: 60, Unit: "°C"},
			Storage:   &models.TemperatureRange{Min: -30, Max: 70, Unit: "°C"},
		},
		CommonDevices: e.Devices,
		Notes:         e.Notes,
	}
	if e.Designation != "" {
		b.CommonNames = append(b.CommonNames, e.Designation)
	}
	if b.Notes == "" {
		b.Notes = fmt.Sprintf("Standard %s battery specifications.", e.Type)
	}

	switch section {
	case SectionTraditional:
		b.Chemistry["alkaline"] = models.ChemistrySpec{
			VoltageNominal:  e.Voltage,
			VoltageEnd:      ptr(0.9),
			CapacityTypical: models.NumberOrString(e.CapacityAlkaline),
			CapacityUnit:    "mAh",
		}
		b.Weight["alkaline"] = models.NumberOrString(e.WeightAlkaline)
	case SectionLithiumIon:
		b.Chemistry["lithium_ion"] = models.ChemistrySpec{
			VoltageNominal: e.VoltageNominal,
			VoltageCharged: ptr(e.VoltageMax),
			VoltageMin:     ptr(2.5),
			CapacityRange:  models.NumberOrString(e.CapacityRange),
			CapacityUnit:   "mAh",
		}
		b.Weight["typical"] = models.NumberOrString(e.Weight)
	case SectionButtonCells:
		b.Chemistry["lithium_manganese_dioxide"] = models.ChemistrySpec{
			VoltageNominal:  e.Voltage,
			VoltageEnd:      ptr(2.0),
			CapacityTypical: models.NumberOrString(e.Capacity),
			CapacityUnit:    "mAh",
		}
		b.Weight["typical"] = models.NumberOrString(e.Weight)
	default:
		return nil, fmt.Errorf("unknown seed section %q", section)
	}

	return b, nil
}

// CategoryDir maps a seed section to its data directory name (lithium_ion -> lithium-ion)
func CategoryDir(section string) string {
	return strings.ReplaceAll(section, "_", "-")
}

// Generate writes every seed entry below dataDir and returns the written paths
func Generate(dataDir string) ([]string, error) {
	seed, err := LoadSeed()
	if err != nil {
		return nil, err
	}
	return Write(dataDir, seed)
}

// Write writes the given seed table below dataDir, overwriting existing files
func Write(dataDir string, seed Seed) ([]string, error) {
	var written []string

	for _, section := range sectionOrder {
		entries, ok := seed[section]
		if !ok {
			continue
		}

		dir := filepath.Join(dataDir, CategoryDir(section))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return written, fmt.Errorf("failed to create %s: %w", dir, err)
		}

		for _, e := range entries {
			b, err := Build(section, e)
			if err != nil {
				return written, err
			}

			data, err := json.MarshalIndent(b, "", "  ")
			if err != nil {
				return written, fmt.Errorf("failed to encode %s: %w", e.Type, err)
			}

			path := filepath.Join(dir, models.FileKey(e.Type)+".json")
			if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
				return written, fmt.Errorf("failed to write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}

	return written, nil
}

func ptr(v float64) *float64 { return &v }
