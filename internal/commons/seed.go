package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"trade2cart/internal/domain"
)

type catalogSeed struct {
	Rates []struct {
		Name     string  `yaml:"name"`
		Rate     float64 `yaml:"rate"`
		Unit     string  `yaml:"unit"`
		Location string  `yaml:"location"`
	} `yaml:"rates"`
}

// LoadCatalogSeed reads a YAML file of material rates used to bootstrap an
// empty catalog.
func LoadCatalogSeed(path string) ([]domain.MaterialRate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var seed catalogSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	rates := make([]domain.MaterialRate, 0, len(seed.Rates))
	for i, r := range seed.Rates {
		if r.Name == "" || r.Location == "" {
			return nil, fmt.Errorf("seed entry %d: name and location are required", i)
		}
		if r.Rate < 0 {
			return nil, fmt.Errorf("seed entry %d: rate must be non-negative", i)
		}
		rates = append(rates, domain.MaterialRate{
			Name:     r.Name,
			Rate:     r.Rate,
			Unit:     r.Unit,
			Location: r.Location,
		})
	}

	return rates, nil
}
