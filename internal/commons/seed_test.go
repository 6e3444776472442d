package commons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}
	return path
}

func TestLoadCatalogSeed(t *testing.T) {
	path := writeSeedFile(t, `
rates:
  - name: Newspaper
    rate: 5.00
    unit: kg
    location: Chennai
  - name: Iron
    rate: 26.50
    unit: kg
    location: Chennai
`)

	rates, err := LoadCatalogSeed(path)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "Newspaper", rates[0].Name)
	assert.Equal(t, 5.0, rates[0].Rate)
	assert.Equal(t, "kg", rates[0].Unit)
	assert.Equal(t, "Chennai", rates[0].Location)
}

func TestLoadCatalogSeed_MissingName(t *testing.T) {
	path := writeSeedFile(t, `
rates:
  - rate: 5.00
    unit: kg
    location: Chennai
`)

	_, err := LoadCatalogSeed(path)
	assert.Error(t, err)
}

func TestLoadCatalogSeed_NegativeRate(t *testing.T) {
	path := writeSeedFile(t, `
rates:
  - name: Newspaper
    rate: -1.00
    unit: kg
    location: Chennai
`)

	_, err := LoadCatalogSeed(path)
	assert.Error(t, err)
}

func TestLoadCatalogSeed_FileMissing(t *testing.T) {
	_, err := LoadCatalogSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
