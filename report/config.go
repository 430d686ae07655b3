package report

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/qmc/sequence"
)

// ErrInvalidConfig is returned by Validate for an unusable configuration.
var ErrInvalidConfig = errors.New("invalid report config")

var configValidate = validator.New()

// Generator selects one generator construction of the grid.
type Generator struct {
	Kind        string `yaml:"kind" json:"kind" validate:"required"`
	Unit        bool   `yaml:"unit,omitempty" json:"unit,omitempty"`
	RandomStart bool   `yaml:"random_start,omitempty" json:"random_start,omitempty"`
	RandomShift bool   `yaml:"random_shift,omitempty" json:"random_shift,omitempty"`
}

// Name returns a short label such as "sobol-unit" or "halton-shift".
func (g Generator) Name() string {
	name := g.Kind
	if g.Unit {
		name += "-unit"
	}
	if g.RandomStart {
		name += "-start"
	}
	if g.RandomShift {
		name += "-shift"
	}
	return name
}

// Config describes a discrepancy comparison grid.
type Config struct {
	Generators []Generator `yaml:"generators" validate:"required,min=1,dive"`
	Dimensions []int       `yaml:"dimensions" validate:"required,min=1,dive,gt=0"`
	Seed       uint64      `yaml:"seed"`

	// Log2Points j evaluates 2^j - 1 points per cell, with a trace entry at
	// every 2^i - 1 for i = 1..j.
	Log2Points int `yaml:"log2_points" validate:"min=1,max=20"`

	// Concurrency bounds the cells evaluated at once; zero means one.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`

	// Codec names the codec used for structured output.
	Codec string `yaml:"codec" validate:"omitempty,oneof=json go-json"`
}

// DefaultConfig mirrors the classic generator comparison: every construction
// over dimensions 2 to 100 with 1023 points each.
func DefaultConfig() Config {
	return Config{
		Generators: []Generator{
			{Kind: "halton"},
			{Kind: "sobol"},
			{Kind: "sobol", Unit: true},
			{Kind: "uniform"},
		},
		Dimensions:  []int{2, 3, 5, 10, 15, 30, 50, 100},
		Seed:        123456,
		Log2Points:  10,
		Concurrency: 4,
		Codec:       "go-json",
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the grid bounds declared on Config and that every
// generator kind is known.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Param() != "" {
				return fmt.Errorf("%w: %s must satisfy %s=%s", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Param())
			}
			return fmt.Errorf("%w: %s must satisfy %s", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, g := range c.Generators {
		if _, err := sequence.ParseKind(g.Kind); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
