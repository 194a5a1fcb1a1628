package pendulum

import (
	"fmt"
	"math"

	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/integrators"
)

const (
	DefaultGravity          = 9.8
	DefaultLength           = 1.0
	DefaultDt               = 0.02
	DefaultDamping          = 0.1
	DefaultTorqueBound      = 2.0
	DefaultSuccessThreshold = 50
	DefaultThetaTolerance   = 0.1
	DefaultBottomTolerance  = 0.1
	DefaultFailureReward    = -10000.0
)

// Config holds the immutable physical and episode parameters of an Env.
type Config struct {
	Gravity          float64 `yaml:"gravity"`
	Length           float64 `yaml:"length"`
	Dt               float64 `yaml:"dt"`
	Damping          float64 `yaml:"damping"`
	TorqueMin        float64 `yaml:"torque_min"`
	TorqueMax        float64 `yaml:"torque_max"`
	SuccessThreshold int     `yaml:"success_threshold"`
	ThetaTolerance   float64 `yaml:"theta_tolerance"`
	BottomTolerance  float64 `yaml:"bottom_tolerance"`
	FailureReward    float64 `yaml:"failure_reward"`
	InitialTheta     float64 `yaml:"initial_theta"`
	InitialOmega     float64 `yaml:"initial_omega"`
	Integrator       string  `yaml:"integrator"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:          DefaultGravity,
		Length:           DefaultLength,
		Dt:               DefaultDt,
		Damping:          DefaultDamping,
		TorqueMin:        -DefaultTorqueBound,
		TorqueMax:        DefaultTorqueBound,
		SuccessThreshold: DefaultSuccessThreshold,
		ThetaTolerance:   DefaultThetaTolerance,
		BottomTolerance:  DefaultBottomTolerance,
		FailureReward:    DefaultFailureReward,
		InitialTheta:     math.Pi / 4,
		Integrator:       "euler",
	}
}

// TorqueLimit is the largest torque magnitude the actuator can apply.
func (c Config) TorqueLimit() float64 {
	return math.Max(math.Abs(c.TorqueMin), math.Abs(c.TorqueMax))
}

func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Length > 0, fmt.Sprintf("length must be positive, got %g", c.Length)},
		{c.Dt > 0, fmt.Sprintf("dt must be positive, got %g", c.Dt)},
		{c.TorqueMin <= c.TorqueMax, fmt.Sprintf("torque interval [%g, %g] is empty", c.TorqueMin, c.TorqueMax)},
		{c.SuccessThreshold >= 0, fmt.Sprintf("success threshold must be non-negative, got %d", c.SuccessThreshold)},
		{c.ThetaTolerance >= 0, fmt.Sprintf("theta tolerance must be non-negative, got %g", c.ThetaTolerance)},
		{c.BottomTolerance >= 0, fmt.Sprintf("bottom tolerance must be non-negative, got %g", c.BottomTolerance)},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", dynamo.ErrParameterBounds, chk.msg)
		}
	}
	if !(dynamo.State{c.Gravity, c.Damping, c.FailureReward, c.InitialTheta, c.InitialOmega}).IsValid() {
		return fmt.Errorf("%w: pendulum parameters must be finite", dynamo.ErrParameterBounds)
	}
	if _, err := integrators.ByName(c.Integrator); err != nil {
		return err
	}
	return nil
}
