package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/battery-guide/internal/models"
)

// The shipped data tree must load without a single file being skipped.
func TestShippedData(t *testing.T) {
	dir := filepath.Join("..", "..", "data")
	loader := NewLoader(dir)

	for _, category := range loader.AllCategories() {
		files, err := filepath.Glob(filepath.Join(dir, category.Slug, "*.json"))
		require.NoError(t, err)
		assert.Len(t, category.Batteries, len(files), category.Slug)

		for _, b := range category.Batteries {
			assert.NotEmpty(t, b.Chemistry, b.Type)
			assert.NotEmpty(t, b.Dimensions.Unit, b.Type)

			found, err := loader.FindBySlug(category.Slug, models.Slug(b.Type))
			require.NoError(t, err)
			require.NotNil(t, found, b.Type)
		}
	}

	_, err := os.Stat(filepath.Join(dir, "traditional", "9v.json"))
	assert.NoError(t, err)
}
