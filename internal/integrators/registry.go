package integrators

import (
	"fmt"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// Names lists the integrators accepted by ByName.
var Names = []string{"euler", "rk4"}

func ByName(name string) (dynamo.Integrator, error) {
	switch name {
	case "", "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("%w: unknown integrator %q", dynamo.ErrParameterBounds, name)
	}
}
