package control

import (
	"fmt"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// Params are the tunables shared by the named controllers.
type Params struct {
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	Target float64 `yaml:"target"`
}

var Names = []string{"none", "pid", "lqr"}

func ByName(name string, p Params) (dynamo.Controller, error) {
	switch name {
	case "", "none":
		return NewNone(), nil
	case "pid":
		return NewPID(p.Kp, p.Ki, p.Kd, p.Target), nil
	case "lqr":
		return NewLQR(pendulumGains, dynamo.State{p.Target, 0}), nil
	default:
		return nil, fmt.Errorf("%w: unknown controller %q", dynamo.ErrParameterBounds, name)
	}
}
