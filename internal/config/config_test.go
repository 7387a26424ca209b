package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Energy != 1.0 || cfg.Distance != 500 || cfg.Theta12 != 33 {
		t.Errorf("unexpected defaults: E=%v L=%v θ=%v", cfg.Energy, cfg.Distance, cfg.Theta12)
	}
	if cfg.Points != 500 {
		t.Errorf("expected 500 points, got %d", cfg.Points)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nuosc.yaml")

	cfg := DefaultConfig()
	cfg.Energy = 2.5
	cfg.Flavor = "muon"
	cfg.Backend = "svg"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Energy != 2.5 {
		t.Errorf("expected energy 2.5, got %v", loaded.Energy)
	}
	if loaded.Backend != "svg" {
		t.Errorf("expected backend svg, got %s", loaded.Backend)
	}
	if loaded.DistanceRange.Max != MaxDistance {
		t.Errorf("expected distance range max %v, got %v", MaxDistance, loaded.DistanceRange.Max)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero energy", func(c *Config) { c.Energy = 0 }, ErrEnergyRange},
		{"nan energy", func(c *Config) { c.Energy = math.NaN() }, ErrEnergyRange},
		{"far distance", func(c *Config) { c.Distance = 20000 }, ErrDistanceRange},
		{"negative theta", func(c *Config) { c.Theta12 = -1 }, ErrThetaRange},
		{"one point", func(c *Config) { c.Points = 1 }, ErrPoints},
		{"inverted range", func(c *Config) { c.DistanceRange = RangeConfig{Min: 10, Max: 1} }, ErrSweepRange},
		{"zero energy range", func(c *Config) { c.EnergyRange.Min = 0 }, ErrSweepRange},
		{"NaN distance bound", func(c *Config) { c.DistanceRange.Max = math.NaN() }, ErrSweepRange},
		{"NaN energy bound", func(c *Config) { c.EnergyRange.Min = math.NaN() }, ErrSweepRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Flavor = "tau"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown flavor")
	}
}

func TestClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Energy = 0
	cfg.Distance = 1e6
	cfg.Theta12 = math.NaN()
	cfg.Points = 0
	cfg.Clamp()

	if cfg.Energy != MinEnergy || cfg.Distance != MaxDistance || cfg.Theta12 != MinTheta || cfg.Points != 2 {
		t.Errorf("clamp produced E=%v L=%v θ=%v n=%d", cfg.Energy, cfg.Distance, cfg.Theta12, cfg.Points)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("t2k")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Distance != 295 {
		t.Errorf("expected distance 295, got %v", cfg.Distance)
	}
	if cfg.Points != DefaultPoints {
		t.Errorf("preset should inherit default points, got %d", cfg.Points)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "default" {
		t.Errorf("expected sorted names, got %v", presets)
	}
}
