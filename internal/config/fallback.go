package config

import (
	"fmt"
	"os"

	"github.com/couchcryptid/weather-odds/internal/domain"
	"gopkg.in/yaml.v3"
)

type fallbackFile struct {
	Cities []struct {
		Name            string `yaml:"name"`
		domain.Location `yaml:",inline"`
	} `yaml:"cities"`
}

// LoadFallbackTable returns the built-in city table, or the table read from
// FALLBACK_CITIES_FILE when one is configured. A configured file replaces
// the built-in table entirely.
func (c *Config) LoadFallbackTable() (domain.FallbackTable, error) {
	if c.FallbackCitiesFile == "" {
		return domain.DefaultFallbackTable(), nil
	}
	return readFallbackFile(c.FallbackCitiesFile)
}

func readFallbackFile(path string) (domain.FallbackTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.FallbackTable{}, fmt.Errorf("failed to read fallback cities file %s: %w", path, err)
	}

	var f fallbackFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.FallbackTable{}, fmt.Errorf("failed to parse fallback cities: %w", err)
	}
	if len(f.Cities) == 0 {
		return domain.FallbackTable{}, fmt.Errorf("fallback cities file %s has no cities", path)
	}

	cities := make(map[string]domain.Location, len(f.Cities))
	for i, city := range f.Cities {
		if city.Name == "" {
			return domain.FallbackTable{}, fmt.Errorf("fallback city %d has no name", i)
		}
		if err := city.Location.Validate(); err != nil {
			return domain.FallbackTable{}, fmt.Errorf("fallback city %q: %w", city.Name, err)
		}
		if city.DisplayName == "" {
			city.DisplayName = city.Name
		}
		cities[city.Name] = city.Location
	}
	return domain.NewFallbackTable(cities), nil
}
