package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hairsim/internal/hair"
)

const (
	DefaultDt         = 0.004
	DefaultSteps      = 2500
	DefaultMass       = 1.0
	DefaultRestLength = 0.1
	DefaultStiffness  = 400.0
	DefaultDamping    = 0.8
	DefaultGravityY   = -9.81
	DefaultFPS        = 30
)

type Config struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Points  int     `yaml:"points"`
	Spacing float64 `yaml:"spacing"`

	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	Mass       float64 `yaml:"mass"`
	RestLength float64 `yaml:"rest_length"`
	Stiffness  float64 `yaml:"stiffness"`
	Damping    float64 `yaml:"damping"`
	GravityY   float64 `yaml:"gravity_y"`

	Backend string     `yaml:"backend"`
	Sway    SwayConfig `yaml:"sway"`
}

type SwayConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:       4,
		Cols:       8,
		Points:     20,
		Spacing:    0.5,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		Mass:       DefaultMass,
		RestLength: DefaultRestLength,
		Stiffness:  DefaultStiffness,
		Damping:    DefaultDamping,
		GravityY:   DefaultGravityY,
		Backend:    "auto",
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

// Params assembles the global step parameters.
func (c *Config) Params() hair.Params {
	return hair.Params{
		Dt:         c.Dt,
		Mass:       c.Mass,
		RestLength: c.RestLength,
		Stiffness:  c.Stiffness,
		Damping:    c.Damping,
		Gravity:    hair.Vec3{Y: c.GravityY},
	}
}

// Validate checks the physical parameters and the strand shape before
// anything is dispatched.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	return (hair.Strand{Length: c.Points}).Validate()
}
