package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// DampedPendulum is a massless-rod pendulum with viscous damping and an
// applied torque. Angle 0 is the upright position, ±π hangs down.
//
//	theta_ddot = -(g/l) sin(theta) - damping*theta_dot + torque/l²
type DampedPendulum struct {
	Length  float64
	Damping float64
	Gravity float64
}

func NewDampedPendulum() *DampedPendulum {
	return &DampedPendulum{
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.8,
	}
}

func (p *DampedPendulum) StateDim() int {
	return 2
}

func (p *DampedPendulum) ControlDim() int {
	return 1
}

// Acceleration returns theta_ddot for the given state and torque.
func (p *DampedPendulum) Acceleration(theta, omega, torque float64) float64 {
	return -(p.Gravity/p.Length)*math.Sin(theta) - p.Damping*omega + torque/(p.Length*p.Length)
}

func (p *DampedPendulum) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	torque := 0.0
	if len(u) > 0 {
		torque = u[0]
	}
	return dynamo.State{x[1], p.Acceleration(x[0], x[1], torque)}
}

// Energy is the mechanical energy per unit mass, zero when hanging at rest.
func (p *DampedPendulum) Energy(x dynamo.State) float64 {
	v := p.Length * x[1]
	ke := 0.5 * v * v
	pe := p.Gravity * p.Length * (1.0 + math.Cos(x[0]))
	return ke + pe
}

func (p *DampedPendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *DampedPendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		if value <= 0 {
			return fmt.Errorf("%w: length must be positive, got %g", dynamo.ErrParameterBounds, value)
		}
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
