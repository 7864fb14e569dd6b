package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/markovsim/internal/markov"
)

const (
	DefaultDays     = 7
	DefaultMaxDays  = 100
	DefaultInitial  = "Soleado"
	DefaultPreset   = "default"
	DefaultLogLevel = "info"
)

type Config struct {
	InitialState string      `yaml:"initial_state" validate:"required,state"`
	Days         int         `yaml:"days" validate:"gte=0,ltefield=MaxDays"`
	MaxDays      int         `yaml:"max_days" validate:"gte=1,lte=10000"`
	Seed         int64       `yaml:"seed"`
	Preset       string      `yaml:"preset,omitempty"`
	Matrix       [][]float64 `yaml:"matrix,omitempty" validate:"omitempty,len=3,dive,len=3"`
	Log          LogConfig   `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		_, err := markov.ParseState(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(fmt.Sprintf("config: register state validation: %v", err))
	}
	return v
}

func DefaultConfig() *Config {
	return &Config{
		InitialState: DefaultInitial,
		Days:         DefaultDays,
		MaxDays:      DefaultMaxDays,
		Preset:       DefaultPreset,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: "text",
		},
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate checks field constraints only; the inline matrix is judged by
// markov.Validate in TransitionMatrix.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

func (c *Config) Initial() (markov.State, error) {
	return markov.ParseState(c.InitialState)
}

// TransitionMatrix resolves the matrix to start from. An inline matrix wins
// over a preset; with neither, the built-in default is used.
func (c *Config) TransitionMatrix() (markov.TransitionMatrix, error) {
	if len(c.Matrix) > 0 {
		return markov.Validate(c.Matrix)
	}
	if c.Preset != "" {
		m, ok := GetPreset(c.Preset)
		if !ok {
			return markov.TransitionMatrix{}, fmt.Errorf("unknown preset: %s (available: %v)", c.Preset, ListPresets())
		}
		return markov.ValidateMatrix(m)
	}
	return markov.DefaultTransitionMatrix(), nil
}
