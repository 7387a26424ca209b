package config

import "sort"

// Presets are named experiment setups. Energies are in GeV, baselines in km.
var Presets = map[string]*Config{
	"default": {
		Energy: DefaultEnergy, Distance: DefaultDistance, Theta12: DefaultTheta, Flavor: "electron",
	},
	"kamland": {
		Energy: 0.1, Distance: 180, Theta12: 33.4, Flavor: "electron",
	},
	"t2k": {
		Energy: 0.6, Distance: 295, Theta12: 33.4, Flavor: "muon",
	},
	"dune": {
		Energy: 2.5, Distance: 1300, Theta12: 33.4, Flavor: "muon",
	},
	"maximal": {
		Energy: 1.0, Distance: 5000, Theta12: 45, Flavor: "electron",
	},
}

// GetPreset returns a full config with the preset's values applied over the
// defaults, or nil if the preset does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Energy = p.Energy
	cfg.Distance = p.Distance
	cfg.Theta12 = p.Theta12
	cfg.Flavor = p.Flavor
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
