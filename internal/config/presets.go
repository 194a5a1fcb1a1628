package config

import (
	"math"
	"sort"
)

// Preset mutates a default configuration.
type Preset func(c *Config)

var Presets = map[string]map[string]Preset{
	"pendulum": {
		"classic": func(c *Config) {},
		"small": func(c *Config) {
			c.Pendulum.InitialTheta = 0.2
		},
		"inverted": func(c *Config) {
			c.Pendulum.InitialTheta = math.Pi - 0.05
		},
		"spinning": func(c *Config) {
			c.Pendulum.InitialTheta = 0.1
			c.Pendulum.InitialOmega = 8.0
		},
		"lowgravity": func(c *Config) {
			c.Pendulum.Gravity = 1.62
			c.Pendulum.Damping = 0.05
		},
		"undamped": func(c *Config) {
			c.Pendulum.Damping = 0
			c.Pendulum.Integrator = "rk4"
		},
	},
	"pong": {
		"classic": func(c *Config) {},
		"fast": func(c *Config) {
			c.Pong.BallSpeed = 8
			c.Pong.OpponentSpeed = 9
			c.Pong.PaddleSpeed = 9
		},
		"tiny": func(c *Config) {
			c.Pong.PaddleHeight = 60
			c.Pong.BallSize = 10
		},
	},
}

// GetPreset returns the defaults with the named preset applied, or nil if
// there is no such preset.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	apply, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
