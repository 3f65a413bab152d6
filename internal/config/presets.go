package config

import "sort"

var (
	budgetPairs = [][]int{{0, 1}, {0, 2}, {1, 2}}
	costPairs   = [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	fullGrid    = TemperatureConfig{Min: DefaultTMin, Max: DefaultTMax, Count: DefaultTCount}
	coarseGrid  = TemperatureConfig{Min: 1.5, Max: 4.5, Count: 7}
)

var Presets = map[string]map[string]*Config{
	"carbon_budget": {
		"default": {
			Model: "carbon_budget", Variant: "pink_normal", Samples: 1_000_000, Runs: 50,
			Temperatures: fullGrid, Pairs: budgetPairs,
		},
		"quick": {
			Model: "carbon_budget", Variant: "pink_normal", Samples: 20_000, Runs: 4,
			Temperatures: coarseGrid, Pairs: budgetPairs,
		},
		"collins": {
			Model: "carbon_budget", Variant: "collins_linear", Samples: 1_000_000, Runs: 50,
			Temperatures: fullGrid, Pairs: budgetPairs,
		},
	},
	"mitigation_cost": {
		"default": {
			Model: "mitigation_cost", Variant: "pink_normal", Samples: 1_000_000, Runs: 50,
			Temperatures: fullGrid, Pairs: costPairs, Triple: []int{0, 1, 2},
		},
		"quick": {
			Model: "mitigation_cost", Variant: "pink_normal", Samples: 20_000, Runs: 4,
			Temperatures: coarseGrid, Pairs: costPairs, Triple: []int{0, 1, 2},
		},
		"pert": {
			Model: "mitigation_cost", Variant: "pink_pert", Samples: 1_000_000, Runs: 50,
			Temperatures: fullGrid, Pairs: costPairs, Triple: []int{0, 1, 2},
		},
		"logprice": {
			Model: "mitigation_cost", Variant: "pink_pert_logprice", Samples: 1_000_000, Runs: 50,
			Temperatures: fullGrid, Pairs: costPairs, Triple: []int{0, 1, 2},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, name string) *Config {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
