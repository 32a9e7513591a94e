// Package config loads and validates run configuration from YAML, with a
// default Mars setup matching the Leighton & Murray runs.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/regolith-sim/regolith/internal/thermal"
)

const (
	DefaultDays         = 720
	DefaultStepsPerHour = 10
)

// Config is one run's full parameter set. StartTemperature at or below
// zero means derive the start temperature from the planet's mean
// insolation.
type Config struct {
	Planet           string       `yaml:"planet"`
	LatitudeDegrees  float64      `yaml:"latitude"`
	Layers           thermal.Spec `yaml:"layers"`
	CO2              bool         `yaml:"co2"`
	StartDay         int          `yaml:"start_day"`
	Days             int          `yaml:"days"`
	StepsPerHour     int          `yaml:"steps_per_hour"`
	StartTemperature float64      `yaml:"start_temperature"`
	Output           string       `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Planet:          "mars",
		LatitudeDegrees: 0,
		Layers: thermal.Spec{
			{Count: 9, Thickness: 0.015},
			{Count: 10, Thickness: 0.3},
		},
		CO2:              true,
		StartDay:         0,
		Days:             DefaultDays,
		StepsPerHour:     DefaultStepsPerHour,
		StartTemperature: -1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Latitude returns the configured latitude in radians.
func (c *Config) Latitude() float64 {
	return c.LatitudeDegrees * math.Pi / 180
}

func (c *Config) Validate() error {
	if c.Planet == "" {
		return fmt.Errorf("config: planet is required")
	}
	if c.LatitudeDegrees < -90 || c.LatitudeDegrees > 90 {
		return fmt.Errorf("config: latitude %v degrees outside [-90, 90]", c.LatitudeDegrees)
	}
	if err := c.Layers.Validate(); err != nil {
		return err
	}
	if c.StartDay < 0 {
		return fmt.Errorf("config: start day %d must not be negative", c.StartDay)
	}
	if c.Days <= 0 {
		return fmt.Errorf("config: days %d must be positive", c.Days)
	}
	if c.StepsPerHour <= 0 {
		return fmt.Errorf("config: steps per hour %d must be positive", c.StepsPerHour)
	}
	return nil
}
