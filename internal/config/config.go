package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbprop/internal/bodies"
)

const (
	DefaultUnit = "seconds"
	DefaultBody = "earth"
)

// Config is a propagation scenario: one orbit around one central body,
// batched over requested elapsed times.
type Config struct {
	Body     string     `yaml:"body"`     // catalogue name; overridden by GM if set
	GM       float64    `yaml:"gm"`       // km^3/s^2, optional
	Position [3]float64 `yaml:"position"` // km
	Velocity [3]float64 `yaml:"velocity"` // km/s
	Unit     string     `yaml:"unit"`     // "seconds" or "days"
	Times    []float64  `yaml:"times"`    // explicit steps, in Unit
	Span     Span       `yaml:"span"`     // alternative to Times
	Parallel bool       `yaml:"parallel"`
}

// Span expands to evenly spaced time steps when Times is empty.
type Span struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

func DefaultConfig() *Config {
	return &Config{
		Body: DefaultBody,
		Unit: DefaultUnit,
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

// ResolveGM returns the gravitational parameter for the scenario:
// an explicit GM wins, otherwise the named body is looked up.
func (c *Config) ResolveGM() (float64, error) {
	if c.GM > 0 {
		return c.GM, nil
	}
	b, err := bodies.Get(c.Body)
	if err != nil {
		return 0, err
	}
	return b.GM, nil
}

// TimeSteps returns the requested elapsed times in the scenario's unit,
// expanding Span when no explicit list is given.
func (c *Config) TimeSteps() ([]float64, error) {
	if len(c.Times) > 0 {
		return c.Times, nil
	}
	if c.Span.Step <= 0 {
		return nil, fmt.Errorf("config: span.step must be positive, got %g", c.Span.Step)
	}
	if c.Span.Stop < c.Span.Start {
		return nil, fmt.Errorf("config: span.stop %g before span.start %g", c.Span.Stop, c.Span.Start)
	}

	var steps []float64
	for t := c.Span.Start; t <= c.Span.Stop+c.Span.Step/2; t += c.Span.Step {
		steps = append(steps, t)
	}
	return steps, nil
}
