package config

import "sort"

// Presets are named boundary scenarios for quick runs.
var Presets = map[string]*Config{
	"plates": {
		GridSize: 50, Method: DefaultMethod, Tolerance: 1e-5, MaxIterations: 10000,
		Boundary: BoundaryConfig{Left: 0, Right: 10},
	},
	"capacitor": {
		GridSize: 50, Method: DefaultMethod, Tolerance: 1e-5, MaxIterations: 10000,
		Boundary: BoundaryConfig{Left: -5, Right: 5},
	},
	"corner": {
		GridSize: 50, Method: DefaultMethod, Tolerance: 1e-5, MaxIterations: 10000,
		Boundary: BoundaryConfig{Top: 10},
	},
	"well": {
		GridSize: 40, Method: DefaultMethod, Tolerance: 1e-5, MaxIterations: 10000,
		Boundary: BoundaryConfig{Left: 10, Right: 10},
	},
	"box": {
		GridSize: 30, Method: DefaultMethod, Tolerance: 1e-6, MaxIterations: 20000,
		Boundary: BoundaryConfig{Left: 10, Right: 10, Top: 10, Bottom: 10},
	},
}

// GetPreset returns the named preset, or nil when it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
