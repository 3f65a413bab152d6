package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/sobolvd/internal/distributions"
	"github.com/san-kum/sobolvd/internal/sobol"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel   = "carbon_budget"
	DefaultVariant = "pink_normal"
	DefaultSamples = 1_000_000
	DefaultRuns    = 50
	DefaultTMin    = 1.0
	DefaultTMax    = 5.0
	DefaultTCount  = 50
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Model        string               `yaml:"model"`
	Variant      string               `yaml:"variant"`
	Samples      int                  `yaml:"samples"`
	Runs         int                  `yaml:"runs"`
	Seed         uint64               `yaml:"seed"`
	Workers      int                  `yaml:"workers"`
	Temperatures TemperatureConfig    `yaml:"temperatures"`
	Pairs        [][]int              `yaml:"pairs"`
	Triple       []int                `yaml:"triple,omitempty"`
	Parameters   []distributions.Spec `yaml:"parameters,omitempty"`
}

// TemperatureConfig is either an explicit list of values or an evenly
// spaced grid of Count points on [Min, Max].
type TemperatureConfig struct {
	Min    float64   `yaml:"min"`
	Max    float64   `yaml:"max"`
	Count  int       `yaml:"count"`
	Values []float64 `yaml:"values,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   DefaultModel,
		Variant: DefaultVariant,
		Samples: DefaultSamples,
		Runs:    DefaultRuns,
		Temperatures: TemperatureConfig{
			Min:   DefaultTMin,
			Max:   DefaultTMax,
			Count: DefaultTCount,
		},
		Pairs: [][]int{{0, 1}, {0, 2}, {1, 2}},
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

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidConfig, c.Samples)
	}
	if c.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidConfig, c.Runs)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if len(c.Temperatures.Values) == 0 {
		if c.Temperatures.Count < 1 {
			return fmt.Errorf("%w: temperature count must be at least 1", ErrInvalidConfig)
		}
		if c.Temperatures.Count > 1 && !(c.Temperatures.Min < c.Temperatures.Max) {
			return fmt.Errorf("%w: temperature range [%g, %g] is empty", ErrInvalidConfig, c.Temperatures.Min, c.Temperatures.Max)
		}
	}
	for i, p := range c.Pairs {
		if len(p) != 2 {
			return fmt.Errorf("%w: pair %d has %d indices", ErrInvalidConfig, i, len(p))
		}
	}
	if c.Triple != nil && len(c.Triple) != 3 {
		return fmt.Errorf("%w: triple has %d indices", ErrInvalidConfig, len(c.Triple))
	}
	for i, s := range c.Parameters {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: parameter %d: %v", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// Grid returns the temperatures to sweep.
func (c *Config) Grid() []float64 {
	tc := c.Temperatures
	if len(tc.Values) > 0 {
		return append([]float64(nil), tc.Values...)
	}
	if tc.Count == 1 {
		return []float64{tc.Min}
	}
	return floats.Span(make([]float64, tc.Count), tc.Min, tc.Max)
}

// Indices converts the configured pairs and triple. Call Validate first.
func (c *Config) Indices() sobol.Indices {
	idx := sobol.Indices{Pairs: make([]sobol.Pair, len(c.Pairs))}
	for i, p := range c.Pairs {
		idx.Pairs[i] = sobol.Pair{p[0], p[1]}
	}
	if len(c.Triple) == 3 {
		idx.Triple = &sobol.Triple{c.Triple[0], c.Triple[1], c.Triple[2]}
	}
	return idx
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Temperatures.Values = append([]float64(nil), c.Temperatures.Values...)
	out.Pairs = make([][]int, len(c.Pairs))
	for i, p := range c.Pairs {
		out.Pairs[i] = append([]int(nil), p...)
	}
	if c.Triple != nil {
		out.Triple = append([]int(nil), c.Triple...)
	}
	if c.Parameters != nil {
		out.Parameters = append([]distributions.Spec(nil), c.Parameters...)
	}
	return &out
}
