// Package config loads the almanac configuration: a default observer
// site, the delta-T correction and the service/log settings. A YAML
// file augments the built-in defaults; absent keys keep their default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration after defaults were augmented.
type Config struct {
	Site     Site    `yaml:"site"`
	DeltaT   float64 `yaml:"delta-t"`
	Listen   string  `yaml:"listen"`
	LogLevel string  `yaml:"log-level"`
}

// Site is the default observer location used when the CLI gives none.
type Site struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Zone      int     `yaml:"zone"`
}

// fileConfig mirrors Config with optional fields, so an explicit zero
// in the file (equator, Greenwich, UTC) is distinguishable from an
// absent key.
type fileConfig struct {
	Site struct {
		Name      *string  `yaml:"name"`
		Latitude  *float64 `yaml:"latitude"`
		Longitude *float64 `yaml:"longitude"`
		Zone      *int     `yaml:"zone"`
	} `yaml:"site"`
	DeltaT   *float64 `yaml:"delta-t"`
	Listen   *string  `yaml:"listen"`
	LogLevel *string  `yaml:"log-level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Site: Site{
			Name:      "Frankfurt",
			Latitude:  50.0,
			Longitude: 8.0,
			Zone:      1,
		},
		DeltaT:   65,
		Listen:   ":8391",
		LogLevel: "info",
	}
}

// ParseConfigAugmentDefaults parses YAML data and overlays it onto the
// defaults. Unknown keys are ignored; malformed YAML returns the
// defaults alongside the error.
func ParseConfigAugmentDefaults(yamlData []byte) (Config, error) {
	result := Default()

	parsed := fileConfig{}
	if err := yaml.Unmarshal(yamlData, &parsed); err != nil {
		return result, fmt.Errorf("error unmarshaling yaml (%w)", err)
	}

	if parsed.Site.Name != nil {
		result.Site.Name = *parsed.Site.Name
	}
	if parsed.Site.Latitude != nil {
		result.Site.Latitude = *parsed.Site.Latitude
	}
	if parsed.Site.Longitude != nil {
		result.Site.Longitude = *parsed.Site.Longitude
	}
	if parsed.Site.Zone != nil {
		result.Site.Zone = *parsed.Site.Zone
	}
	if parsed.DeltaT != nil {
		result.DeltaT = *parsed.DeltaT
	}
	if parsed.Listen != nil {
		result.Listen = *parsed.Listen
	}
	if parsed.LogLevel != nil {
		result.LogLevel = *parsed.LogLevel
	}

	return result, nil
}

// Load reads and parses the file at path. A missing file is not an
// error; the defaults apply unchanged.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("error reading config file (%w)", err)
	}
	return ParseConfigAugmentDefaults(data)
}
