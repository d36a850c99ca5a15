package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/battery-guide/internal/models"
)

func fixedClock() time.Time {
	// 23:30 in UTC-5 is already the next day in UTC
	return time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
}

func testCategories() []models.BatteryCategory {
	return []models.BatteryCategory{
		{Slug: "traditional", Batteries: []*models.BatterySpec{{Type: "AA"}, {Type: "9V"}}},
		{Slug: "camera", Batteries: []*models.BatterySpec{{Type: "CR-V3"}, {Type: "CR V3"}}},
		{Slug: "hearing-aid"},
	}
}

func parse(t *testing.T, data []byte) urlSet {
	t.Helper()
	var set urlSet
	require.NoError(t, xml.Unmarshal(data, &set))
	return set
}

func TestBuild(t *testing.T) {
	b := NewBuilder("https://batteries.guide/", WithClock(fixedClock))

	data, err := b.Build(testCategories())
	require.NoError(t, err)

	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<urlset"))
	assert.Contains(t, doc, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)

	set := parse(t, data)
	var locs []string
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
		assert.Equal(t, "2025-03-10", u.LastMod)
	}

	// "CR V3" collapses to the same slug as "CR-V3" and is listed once
	assert.Equal(t, []string{
		"https://batteries.guide",
		"https://batteries.guide/about",
		"https://batteries.guide/search",
		"https://batteries.guide/traditional",
		"https://batteries.guide/camera",
		"https://batteries.guide/hearing-aid",
		"https://batteries.guide/traditional/aa",
		"https://batteries.guide/traditional/9v",
		"https://batteries.guide/camera/cr-v3",
	}, locs)
}

func TestBuildPriorities(t *testing.T) {
	data, err := NewBuilder("https://example.org", WithClock(fixedClock)).Build(testCategories())
	require.NoError(t, err)

	byLoc := make(map[string]urlEntry)
	for _, u := range parse(t, data).URLs {
		byLoc[u.Loc] = u
	}

	assert.Equal(t, "1.0", byLoc["https://example.org"].Priority)
	assert.Equal(t, "monthly", byLoc["https://example.org/about"].ChangeFreq)
	assert.Equal(t, "0.9", byLoc["https://example.org/camera"].Priority)
	assert.Equal(t, "weekly", byLoc["https://example.org/camera"].ChangeFreq)
	assert.Equal(t, "0.8", byLoc["https://example.org/traditional/aa"].Priority)
	assert.Equal(t, "monthly", byLoc["https://example.org/traditional/aa"].ChangeFreq)
}

func TestBuildEmptyCatalog(t *testing.T) {
	data, err := NewBuilder("", WithClock(fixedClock)).Build(nil)
	require.NoError(t, err)

	set := parse(t, data)
	require.Len(t, set.URLs, len(StaticPages))
	assert.Equal(t, DefaultBaseURL, set.URLs[0].Loc)
}
