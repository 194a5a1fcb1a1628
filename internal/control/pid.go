package control

import (
	"fmt"
	"math"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// PID regulates the pendulum angle towards Target. The derivative term
// uses the measured angular velocity instead of differencing the error.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	integral float64
	prevT    float64
	started  bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
	}
}

func (p *PID) Compute(x dynamo.State, t float64) dynamo.Control {
	if len(x) < 2 {
		return dynamo.Control{0}
	}

	err := WrapAngle(p.Target - x[0])
	if p.started && t > p.prevT {
		p.integral += err * (t - p.prevT)
	}
	p.prevT = t
	p.started = true

	return dynamo.Control{p.Kp*err + p.Ki*p.integral - p.Kd*x[1]}
}

// Reset clears the integral between episodes.
func (p *PID) Reset() {
	p.integral = 0
	p.prevT = 0
	p.started = false
}

func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     p.Kp,
		"Ki":     p.Ki,
		"Kd":     p.Kd,
		"Target": p.Target,
	}
}

func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// WrapAngle maps an angle onto (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
