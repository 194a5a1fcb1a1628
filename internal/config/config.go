package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rlenv/internal/control"
	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/pendulum"
	"github.com/san-kum/rlenv/internal/pong"
)

const (
	DefaultEpisodes = 20
	DefaultMaxSteps = 1000
	DefaultTicks    = 3600
	DefaultKp       = 5.0
	DefaultKi       = 0.1
	DefaultKd       = 2.0
)

type Config struct {
	Pendulum pendulum.Config `yaml:"pendulum"`
	Pong     PongConfig      `yaml:"pong"`
	Episodes EpisodeConfig   `yaml:"episodes"`
}

type PongConfig struct {
	pong.Config `yaml:",inline"`
	Policy      string `yaml:"policy"`
	Ticks       int    `yaml:"ticks"`
	Seed        uint64 `yaml:"seed"`
}

type EpisodeConfig struct {
	Count            int            `yaml:"count"`
	MaxSteps         int            `yaml:"max_steps"`
	Seed             uint64         `yaml:"seed"`
	Controller       string         `yaml:"controller"`
	ControllerParams control.Params `yaml:"controller_params"`
}

func DefaultConfig() *Config {
	return &Config{
		Pendulum: pendulum.DefaultConfig(),
		Pong: PongConfig{
			Config: pong.DefaultConfig(),
			Ticks:  DefaultTicks,
		},
		Episodes: EpisodeConfig{
			Count:      DefaultEpisodes,
			MaxSteps:   DefaultMaxSteps,
			Controller: "pid",
			ControllerParams: control.Params{
				Kp: DefaultKp,
				Ki: DefaultKi,
				Kd: DefaultKd,
			},
		},
	}
}

// Load reads a YAML file on top of the defaults, so omitted keys keep
// their default values.
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

func (c *Config) Validate() error {
	if err := c.Pendulum.Validate(); err != nil {
		return fmt.Errorf("pendulum: %w", err)
	}
	if err := c.Pong.Validate(); err != nil {
		return fmt.Errorf("pong: %w", err)
	}
	if c.Episodes.Count <= 0 || c.Episodes.MaxSteps <= 0 {
		return fmt.Errorf("episodes: %w: count and max_steps must be positive", dynamo.ErrParameterBounds)
	}
	if _, err := control.ByName(c.Episodes.Controller, c.Episodes.ControllerParams); err != nil {
		return fmt.Errorf("episodes: %w", err)
	}
	return nil
}
