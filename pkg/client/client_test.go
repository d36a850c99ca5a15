package client

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/battery-guide/internal/api"
	"github.com/terra-clan/battery-guide/internal/catalog"
	"github.com/terra-clan/battery-guide/internal/generator"
	"github.com/terra-clan/battery-guide/internal/sitemap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	dir := t.TempDir()
	_, err := generator.Generate(dir)
	require.NoError(t, err)

	nineVolt := `{
  "type": "9V",
  "common_names": ["9V", "PP3"],
  "chemistry": {"alkaline": {"voltage_nominal": 9, "capacity_unit": "mAh"}},
  "dimensions": {"width": 26.5, "height": 48.5, "depth": 17.5, "unit": "mm", "shape": "rectangular"},
  "weight": {"alkaline": "45", "unit": "g"},
  "temperature_range": {},
  "terminals": {"type": "snap connector", "spacing": "12.7mm"},
  "common_devices": ["Smoke detectors"],
  "notes": "",
  "sources": [{"name": "IEC", "url": "https://webstore.iec.ch/publication/1"}, {"name": "Forum", "url": "http://forum.example.net"}]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "traditional", "9v.json"), []byte(nineVolt), 0o644))

	server := api.NewServer(catalog.NewLoader(dir), sitemap.NewBuilder("https://batteries.guide"), nil, nil)
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	return NewClient(ts.URL + "/")
}

func TestHealthAndReady(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	status, err := c.Ready(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ready", status.Status)
}

func TestCategories(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 5)
	assert.Equal(t, "traditional", categories[0].Slug)
	assert.Equal(t, 5, categories[0].Count)
	assert.Equal(t, 0, categories[3].Count)

	category, err := c.GetCategory(ctx, "lithium-ion")
	require.NoError(t, err)
	assert.Equal(t, "Lithium-ion Batteries", category.Name)
	require.Len(t, category.Batteries, 4)
	assert.Equal(t, "10440", category.Batteries[0].Type)

	_, err = c.GetCategory(ctx, "zinc-air")
	assert.True(t, IsNotFound(err))
}

func TestGetBattery(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	battery, err := c.GetBattery(ctx, "traditional", "9v")
	require.NoError(t, err)
	assert.Equal(t, "9V", battery.Type)
	assert.True(t, battery.HasSchematic)
	assert.True(t, battery.Dimensions.IsRectangular())
	assert.Equal(t, "26.5", battery.DimensionLabels["width"])
	require.Len(t, battery.Sources, 1)
	assert.Equal(t, "IEC", battery.Sources[0].Name)

	_, err = c.GetBattery(ctx, "traditional", "aaaaa")
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestSchematic(t *testing.T) {
	c := newTestClient(t)

	svg, err := c.Schematic(context.Background(), "traditional", "9v")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.Contains(t, svg, ">12.7mm<")
}

func TestSearch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	result, err := c.Search(ctx, "3.7 V")
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, "3.7 V", result.Query)

	result, err = c.Search(ctx, "smoke")
	require.NoError(t, err)
	types := make([]string, 0, len(result.Results))
	for _, b := range result.Results {
		types = append(types, b.Type)
	}
	assert.Equal(t, []string{"9V", "CR123A"}, types)

	popular, err := c.Popular(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, popular)

	unanswered, err := c.Unanswered(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, unanswered)
}

func TestSitemap(t *testing.T) {
	c := newTestClient(t)

	body, err := c.Sitemap(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(body), "<loc>https://batteries.guide/traditional/9v</loc>")
	assert.Contains(t, string(body), "<loc>https://batteries.guide/button-cells/cr2016</loc>")
}
