package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateSitemapSchematic(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BATTERY_DATA_DIR", dir)

	out, err := execute(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "traditional", "aaaa.json"))
	assert.Contains(t, out, "12 files")

	out, err = execute(t, "sitemap")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<loc>https://batteries.guide/lithium-ion/21700</loc>")

	svgPath := filepath.Join(t.TempDir(), "cr123a.svg")
	_, err = execute(t, "schematic", "button-cells", "CR123A", "--out", svgPath)
	require.NoError(t, err)
	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), ">CR123A</text>")

	_, err = execute(t, "schematic", "button-cells", "CR9999")
	assert.ErrorContains(t, err, "not found")

	_, err = execute(t, "schematic", "zinc-air", "675")
	assert.Error(t, err)
}

func TestGenerateDataDirFlag(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "generate", "--data-dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "lithium-ion", "10440.json"))
}

func TestExportRequiresDSN(t *testing.T) {
	_, err := execute(t, "export")
	assert.ErrorContains(t, err, "database.dsn")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "sitemap")
	assert.Error(t, err)
}
