package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nuosc/internal/oscillation"
)

// Slider domains of the interactive front ends.
const (
	MinEnergy   = 0.1
	MaxEnergy   = 10.0
	MinDistance = 1.0
	MaxDistance = 10000.0
	MinTheta    = 0.0
	MaxTheta    = 45.0

	DefaultEnergy   = 1.0
	DefaultDistance = 500.0
	DefaultTheta    = 33.0
	DefaultPoints   = 500
	DefaultBackend  = "ascii"
	DefaultAddr     = ":8080"
)

var (
	ErrEnergyRange   = errors.New("config: energy out of range")
	ErrDistanceRange = errors.New("config: distance out of range")
	ErrThetaRange    = errors.New("config: mixing angle out of range")
	ErrPoints        = errors.New("config: sweep needs at least 2 points")
	ErrSweepRange    = errors.New("config: invalid sweep range")
)

type Config struct {
	Energy        float64      `yaml:"energy"`
	Distance      float64      `yaml:"distance"`
	Theta12       float64      `yaml:"theta12"`
	Flavor        string       `yaml:"flavor"`
	Points        int          `yaml:"points"`
	DistanceRange RangeConfig  `yaml:"distance_range"`
	EnergyRange   RangeConfig  `yaml:"energy_range"`
	Backend       string       `yaml:"backend"`
	Server        ServerConfig `yaml:"server"`
}

type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Energy:        DefaultEnergy,
		Distance:      DefaultDistance,
		Theta12:       DefaultTheta,
		Flavor:        oscillation.Electron.String(),
		Points:        DefaultPoints,
		DistanceRange: RangeConfig{Min: MinDistance, Max: MaxDistance},
		EnergyRange:   RangeConfig{Min: MinEnergy, Max: MaxEnergy},
		Backend:       DefaultBackend,
		Server:        ServerConfig{Addr: DefaultAddr},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
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

// InitialFlavor parses the configured flavor name.
func (c *Config) InitialFlavor() (oscillation.Flavor, error) {
	return oscillation.ParseFlavor(c.Flavor)
}

// Validate rejects values outside the slider domains. The oscillation
// model itself accepts anything; this is the boundary check for front ends.
func (c *Config) Validate() error {
	if err := ValidatePoint(c.Energy, c.Distance, c.Theta12); err != nil {
		return err
	}
	if _, err := c.InitialFlavor(); err != nil {
		return err
	}
	if c.Points < 2 {
		return fmt.Errorf("%w: %d", ErrPoints, c.Points)
	}
	if !(c.DistanceRange.Min < c.DistanceRange.Max) {
		return fmt.Errorf("%w: distance [%g, %g]", ErrSweepRange, c.DistanceRange.Min, c.DistanceRange.Max)
	}
	if !(c.EnergyRange.Min > 0 && c.EnergyRange.Min < c.EnergyRange.Max) {
		return fmt.Errorf("%w: energy [%g, %g]", ErrSweepRange, c.EnergyRange.Min, c.EnergyRange.Max)
	}
	return nil
}

// ValidatePoint checks a single (E, L, θ) triple against the slider domains.
func ValidatePoint(energy, distance, theta float64) error {
	if !within(energy, MinEnergy, MaxEnergy) {
		return fmt.Errorf("%w: %g GeV not in [%g, %g]", ErrEnergyRange, energy, MinEnergy, MaxEnergy)
	}
	if !within(distance, MinDistance, MaxDistance) {
		return fmt.Errorf("%w: %g km not in [%g, %g]", ErrDistanceRange, distance, MinDistance, MaxDistance)
	}
	if !within(theta, MinTheta, MaxTheta) {
		return fmt.Errorf("%w: %g° not in [%g, %g]", ErrThetaRange, theta, MinTheta, MaxTheta)
	}
	return nil
}

// Clamp pulls the scalar inputs back into the slider domains.
func (c *Config) Clamp() {
	c.Energy = clamp(c.Energy, MinEnergy, MaxEnergy)
	c.Distance = clamp(c.Distance, MinDistance, MaxDistance)
	c.Theta12 = clamp(c.Theta12, MinTheta, MaxTheta)
	if c.Points < 2 {
		c.Points = 2
	}
}

func within(v, lo, hi float64) bool {
	// NaN fails both comparisons.
	return v >= lo && v <= hi
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
