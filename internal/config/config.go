package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avaldes/fieldsim/internal/laplace"
)

const (
	DefaultGridSize      = 50
	DefaultTolerance     = 1e-5
	DefaultMaxIterations = 10000
	DefaultMethod        = string(laplace.GaussSeidel)
)

// Config describes one solve: mesh size, update discipline, convergence
// parameters, and the four edge voltages.
type Config struct {
	GridSize      int            `yaml:"grid_size"`
	Method        string         `yaml:"method"`
	Tolerance     float64        `yaml:"tolerance"`
	MaxIterations int            `yaml:"max_iterations"`
	Boundary      BoundaryConfig `yaml:"boundary"`
}

// BoundaryConfig holds the edge voltages. Edges omitted from a config file
// default to 0 V.
type BoundaryConfig struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// Boundary converts to the solver's boundary type.
func (b BoundaryConfig) Boundary() laplace.Boundary {
	return laplace.Boundary{
		Left:   b.Left,
		Right:  b.Right,
		Top:    b.Top,
		Bottom: b.Bottom,
	}
}

func DefaultConfig() *Config {
	return &Config{
		GridSize:      DefaultGridSize,
		Method:        DefaultMethod,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Load reads a yaml config file over the defaults, so omitted keys keep
// their default values.
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
