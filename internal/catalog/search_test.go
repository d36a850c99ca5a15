package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/battery-guide/internal/models"
)

func types(batteries []*models.BatterySpec) []string {
	result := make([]string, 0, len(batteries))
	for _, b := range batteries {
		result = append(result, b.Type)
	}
	return result
}

func TestSearchText(t *testing.T) {
	loader := newTestLoader(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"type substring any case", "aa", []string{"AA", "AAAA"}},
		{"designation", "lr61", []string{"9V", "AAAA"}},
		{"ansi code", "15a", []string{"AA"}},
		{"common name", "mignon", []string{"AA"}},
		{"common device", "laptop", []string{"18650"}},
		{"hyphenated type", "cr-v", []string{"CR-V3"}},
		{"no match", "zinc-air", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loader.Search(tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.want, types(got))
		})
	}
}

func TestSearchVoltage(t *testing.T) {
	loader := newTestLoader(t)

	assert.Equal(t, []string{"18650"}, types(loader.Search("3.7V")))
	assert.Equal(t, []string{"18650"}, types(loader.Search("3.7 v")))
	assert.Equal(t, []string{"9V"}, types(loader.Search("9v")))
	// AA has a NiMH variant at 1.2 V
	assert.Equal(t, []string{"AA"}, types(loader.Search("1.2V")))
	assert.Equal(t, []string{"AA", "AAAA"}, types(loader.Search("1.5V")))
}

func TestSearchKeepsCategoryOrder(t *testing.T) {
	loader := newTestLoader(t)

	got := types(loader.Search(""))
	assert.Equal(t, []string{"9V", "AA", "AAAA", "18650", "CR-V3"}, got)
}

func TestParseVoltage(t *testing.T) {
	v, ok := ParseVoltage("3.7V")
	require.True(t, ok)
	assert.Equal(t, 3.7, v)

	v, ok = ParseVoltage("need a 12 V cell")
	require.True(t, ok)
	assert.Equal(t, 12.0, v)

	_, ok = ParseVoltage("cr2032")
	assert.False(t, ok)
}
