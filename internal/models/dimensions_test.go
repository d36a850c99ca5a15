package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDimensions(t *testing.T, raw string) Dimensions {
	t.Helper()
	var d Dimensions
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	return d
}

func TestGetDimension(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		dim  string
		want string
	}{
		{"exact diameter", `{"diameter": 14.5, "height": 50.5, "unit": "mm"}`, DimDiameter, "14.5"},
		{"exact height", `{"diameter": 14.5, "height": 50, "unit": "mm"}`, DimHeight, "50"},
		{"diameter range", `{"diameter_min": 11.5, "diameter_max": 12, "height": 5.4, "unit": "mm"}`, DimDiameter, "11.5-12"},
		{"equal range collapses", `{"diameter_min": 11.6, "diameter_max": 11.6, "height": 5.4, "unit": "mm"}`, DimDiameter, "11.6"},
		{"height range", `{"diameter": 18, "height_min": 64.8, "height_max": 65.2, "unit": "mm"}`, DimHeight, "64.8-65.2"},
		{"exact wins over range", `{"diameter": 18, "diameter_min": 17, "diameter_max": 19, "height": 65, "unit": "mm"}`, DimDiameter, "18"},
		{"half range is absent", `{"diameter_min": 11.5, "height": 5.4, "unit": "mm"}`, DimDiameter, ""},
		{"width", `{"width": 26.5, "height": 48.5, "depth": 17.5, "unit": "mm"}`, DimWidth, "26.5"},
		{"depth", `{"width": 26.5, "height": 48.5, "depth": 17.5, "unit": "mm"}`, DimDepth, "17.5"},
		{"missing width", `{"diameter": 10, "height": 44, "unit": "mm"}`, DimWidth, ""},
		{"unknown name", `{"diameter": 10, "height": 44, "unit": "mm"}`, "volume", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decodeDimensions(t, tt.raw)
			assert.Equal(t, tt.want, d.GetDimension(tt.dim))
			assert.Equal(t, tt.want != "", d.HasDimension(tt.dim))
		})
	}
}

func TestMeasureNominal(t *testing.T) {
	assert.Equal(t, 0.0, Measure{}.Nominal())
	assert.Equal(t, 8.3, Exact(8.3).Nominal())
	assert.Equal(t, 11.75, Range(11.5, 12).Nominal())
	assert.False(t, Exact(0).Present())
	assert.False(t, Range(0, 12).Present())
}

func TestDimensionsJSONKeepsFlatLayout(t *testing.T) {
	d := Dimensions{
		Diameter: Range(11.5, 12),
		Height:   Exact(5.4),
		Unit:     "mm",
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, 11.5, flat["diameter_min"])
	assert.Equal(t, 12.0, flat["diameter_max"])
	assert.Equal(t, 5.4, flat["height"])
	assert.NotContains(t, flat, "diameter")
	assert.NotContains(t, flat, "width")
}

func TestIsRectangular(t *testing.T) {
	assert.True(t, Dimensions{Shape: "rectangular"}.IsRectangular())
	assert.True(t, Dimensions{Width: 26.5, Depth: 17.5}.IsRectangular())
	assert.False(t, Dimensions{Width: 26.5}.IsRectangular())
	assert.False(t, Dimensions{Diameter: Exact(14.5), Height: Exact(50.5)}.IsRectangular())
}

func TestSlugAndFileKey(t *testing.T) {
	assert.Equal(t, "aa", Slug("AA"))
	assert.Equal(t, "cr-v3", Slug("CR-V3"))
	assert.Equal(t, "cr-p2-", Slug("CR-P2 "))
	assert.Equal(t, "a76-lr44", Slug("A76 / LR44"))
	assert.Equal(t, "crv3", FileKey("CR-V3"))
	assert.Equal(t, "9v", FileKey("9V"))
}

func TestLookupCategory(t *testing.T) {
	c, ok := LookupCategory("hearing-aid")
	require.True(t, ok)
	assert.Equal(t, "Hearing Aid Batteries", c.Name)

	_, ok = LookupCategory("flux-capacitor")
	assert.False(t, ok)
	assert.Len(t, Categories, 5)
}
