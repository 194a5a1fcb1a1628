// Package pendulum implements the damped inverted pendulum environment.
//
// The observation is (theta, theta_dot) with theta = 0 pointing straight up.
// Each Step applies a torque clipped to the configured interval, advances
// the dynamics by one explicit Euler step and scores the new angle. An
// episode ends when the pendulum stays within ThetaTolerance of upright for
// SuccessThreshold consecutive steps, or immediately when it swings within
// BottomTolerance of hanging straight down.
package pendulum

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/integrators"
	"github.com/san-kum/rlenv/internal/physics"
)

const (
	ObservationDims = 2
	ActionDims      = 1
)

type Env struct {
	cfg        Config
	dyn        *physics.DampedPendulum
	integrator dynamo.Integrator
	torque     r1.Interval
	start      distuv.Uniform
	obsSpace   dynamo.Box
	actSpace   dynamo.Box

	state        dynamo.State
	successSteps int
	steps        int
	lastTorque   float64
	lastReward   float64
	done         bool

	renderer Renderer
}

// New creates an environment in the configured initial state. A nil
// source seeds one from the clock.
func New(cfg Config, src rand.Source) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	inf := math.Inf(1)
	obsSpace, err := dynamo.NewBox([]float64{-inf, -inf}, []float64{inf, inf})
	if err != nil {
		return nil, err
	}
	torque := r1.Interval{Min: cfg.TorqueMin, Max: cfg.TorqueMax}
	actSpace, err := dynamo.NewBox([]float64{torque.Min}, []float64{torque.Max})
	if err != nil {
		return nil, err
	}

	return &Env{
		cfg: cfg,
		dyn: &physics.DampedPendulum{
			Length:  cfg.Length,
			Damping: cfg.Damping,
			Gravity: cfg.Gravity,
		},
		integrator: integ,
		torque:     torque,
		obsSpace:   obsSpace,
		actSpace:   actSpace,
		start:      distuv.Uniform{Min: -math.Pi, Max: math.Pi, Src: src},
		state:      dynamo.State{cfg.InitialTheta, cfg.InitialOmega},
	}, nil
}

func (e *Env) Config() Config { return e.cfg }

// System exposes the dynamics, e.g. for energy metrics.
func (e *Env) System() *physics.DampedPendulum { return e.dyn }

func (e *Env) ObservationSpace() dynamo.Box { return e.obsSpace }

func (e *Env) ActionSpace() dynamo.Box { return e.actSpace }

// Reset draws theta uniformly from [-π, π] and zeroes the velocity and
// the success streak.
func (e *Env) Reset() dynamo.State {
	e.state = dynamo.State{e.start.Rand(), 0}
	e.successSteps = 0
	e.steps = 0
	e.lastTorque = 0
	e.lastReward = 0
	e.done = false
	return e.state.Clone()
}

// SetState overrides the current state without touching the success streak.
func (e *Env) SetState(x dynamo.State) error {
	if len(x) != ObservationDims {
		return fmt.Errorf("%w: expected %d values, got %d", dynamo.ErrInvalidState, ObservationDims, len(x))
	}
	if !x.IsValid() || !e.obsSpace.Contains(x) {
		return fmt.Errorf("%w: %v outside %v", dynamo.ErrInvalidState, x, e.obsSpace)
	}
	e.state = x.Clone()
	return nil
}

func (e *Env) State() dynamo.State { return e.state.Clone() }

func (e *Env) SuccessSteps() int { return e.successSteps }

func (e *Env) Snapshot() Snapshot {
	return Snapshot{
		Theta:        e.state[0],
		ThetaDot:     e.state[1],
		Torque:       e.lastTorque,
		Reward:       e.lastReward,
		SuccessSteps: e.successSteps,
		Steps:        e.steps,
		Done:         e.done,
		Length:       e.cfg.Length,
	}
}

// Step applies one torque. Out-of-range actions are clipped; NaN is
// rejected with ErrInvalidArgument and leaves the state untouched.
func (e *Env) Step(action float64) (dynamo.Transition, error) {
	if math.IsNaN(action) {
		return dynamo.Transition{}, fmt.Errorf("%w: action is NaN", dynamo.ErrInvalidArgument)
	}
	torque := clip(action, e.torque)

	t := float64(e.steps) * e.cfg.Dt
	e.state = e.integrator.Step(e.dyn, e.state, dynamo.Control{torque}, t, e.cfg.Dt)
	e.steps++
	e.lastTorque = torque

	theta := e.state[0]
	reward := -math.Abs(theta)

	if math.Abs(theta) < e.cfg.ThetaTolerance {
		e.successSteps++
	} else {
		e.successSteps = 0
	}

	// swinging down ends the episode before the streak is considered
	if math.Abs(theta+math.Pi) < e.cfg.BottomTolerance {
		return e.finish(e.cfg.FailureReward, true), nil
	}

	return e.finish(reward, e.successSteps >= e.cfg.SuccessThreshold), nil
}

// StepControl adapts a controller output to Step.
func (e *Env) StepControl(u dynamo.Control) (dynamo.Transition, error) {
	if len(u) != ActionDims {
		return dynamo.Transition{}, fmt.Errorf("%w: expected %d control value, got %d", dynamo.ErrInvalidArgument, ActionDims, len(u))
	}
	return e.Step(u[0])
}

func (e *Env) finish(reward float64, done bool) dynamo.Transition {
	e.lastReward = reward
	e.done = done
	return dynamo.Transition{
		Observation: e.state.Clone(),
		Reward:      reward,
		Done:        done,
		Info:        map[string]any{},
	}
}

func clip(v float64, iv r1.Interval) float64 {
	return math.Max(iv.Min, math.Min(iv.Max, v))
}
