package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terra-clan/battery-guide/internal/models"
)

func TestIsTrusted(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.energizer.com/x", true},
		{"https://data.energizer.com/pdfs/e91.pdf", true},
		{"https://uk.energizer.com/batteries", true},
		{"https://EN.Wikipedia.org/wiki/AA_battery", true},
		{"http://www.iec.ch:8080/standards", true},
		{"https://evil-energizer.com/x", false},
		{"https://energizer.com.evil.net/x", false},
		{"https://example.com", false},
		{"not a url", false},
		{"", false},
		{"://missing-scheme", false},
		{"/relative/path", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTrusted(tt.url))
		})
	}
}

func TestFilterTrusted(t *testing.T) {
	in := []models.Source{
		{Name: "Energizer datasheet", URL: "https://data.energizer.com/pdfs/e91.pdf"},
		{Name: "Forum post", URL: "https://forum.example.net/thread/1"},
		{Name: "Manufacturer catalogue"},
		{Name: "Battery University", URL: "https://batteryuniversity.com/article/bu-301a"},
	}

	got := FilterTrusted(in)
	assert.Len(t, got, 2)
	assert.Equal(t, "Energizer datasheet", got[0].Name)
	assert.Equal(t, "Battery University", got[1].Name)

	assert.Empty(t, FilterTrusted(nil))
}
