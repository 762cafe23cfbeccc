package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/eca/internal/automaton"
)

const (
	DefaultRule        = 90
	DefaultCells       = 80
	DefaultSteps       = 24
	DefaultLive        = "#"
	DefaultDead        = "."
	DefaultProbability = 0.5
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Rule        int     `yaml:"rule"`
	Cells       int     `yaml:"cells"`
	Steps       int     `yaml:"steps"`
	Wrap        bool    `yaml:"wrap"`
	Start       string  `yaml:"start"`
	Probability float64 `yaml:"random"`
	Live        string  `yaml:"live"`
	Dead        string  `yaml:"dead"`
	Seed        int64   `yaml:"seed"`
	Workers     int     `yaml:"workers"`
	SkipToEnd   bool    `yaml:"skip_to_end"`
}

func DefaultConfig() *Config {
	return &Config{
		Rule:        DefaultRule,
		Cells:       DefaultCells,
		Steps:       DefaultSteps,
		Probability: DefaultProbability,
		Live:        DefaultLive,
		Dead:        DefaultDead,
		Workers:     1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks the ranges the engine and seeders rely on.
func (c *Config) Validate() error {
	if _, err := automaton.ParseRule(c.Rule); err != nil {
		return err
	}
	if c.Cells < 1 {
		return fmt.Errorf("%w: cells must be at least 1, got %d", ErrInvalidConfig, c.Cells)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("%w: random must be in [0, 1], got %g", ErrInvalidConfig, c.Probability)
	}
	if _, err := singleRune("live", c.Live); err != nil {
		return err
	}
	if _, err := singleRune("dead", c.Dead); err != nil {
		return err
	}
	if c.Live == c.Dead {
		return fmt.Errorf("%w: live and dead characters must differ", ErrInvalidConfig)
	}
	return nil
}

// Chars returns the live and dead runes. Call Validate first.
func (c *Config) Chars() (live, dead rune) {
	live, _ = utf8.DecodeRuneInString(c.Live)
	dead, _ = utf8.DecodeRuneInString(c.Dead)
	return live, dead
}

func singleRune(name, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidConfig, name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
