package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/terra-clan/battery-guide/internal/models"
)

// voltagePattern picks a voltage such as "3.7V", "1.5v" or "9 V" out of a query.
// It is not anchored, so "aa 1.2v nimh" matches on 1.2.
var voltagePattern = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*v`)

// Search loads every category and filters it with Search
func (l *Loader) Search(query string) []*models.BatterySpec {
	return Search(l.AllCategories(), query)
}

// Search returns the batteries matching query, in category order.
// A battery matches when the lowercased query is a substring of its type,
// designation, IEC/ANSI code, a common name or a common device, or when a
// voltage in the query equals the nominal voltage of one of its chemistries.
func Search(categories []models.BatteryCategory, query string) []*models.BatterySpec {
	term := strings.ToLower(query)
	voltage, hasVoltage := ParseVoltage(query)

	var result []*models.BatterySpec
	for _, category := range categories {
		for _, battery := range category.Batteries {
			if matchesText(battery, term) || (hasVoltage && matchesVoltage(battery, voltage)) {
				result = append(result, battery)
			}
		}
	}
	return result
}

// ParseVoltage extracts the first "<number>v" token of a query
func ParseVoltage(query string) (float64, bool) {
	m := voltagePattern.FindStringSubmatch(query)
	if m == nil {
		return 0, false
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

func matchesText(b *models.BatterySpec, term string) bool {
	for _, field := range []string{b.Type, b.Designation, b.IECCode, b.ANSICode} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return containsAny(b.CommonNames, term) || containsAny(b.CommonDevices, term)
}

func containsAny(values []string, term string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func matchesVoltage(b *models.BatterySpec, voltage float64) bool {
	for _, chem := range b.Chemistry {
		if chem.VoltageNominal == voltage {
			return true
		}
	}
	return false
}
