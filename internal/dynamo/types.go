package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

// Resetter is implemented by controllers that carry state between steps.
type Resetter interface {
	Reset()
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Transition is the outcome of a single environment step.
type Transition struct {
	Observation State
	Reward      float64
	Done        bool
	Info        map[string]any
}

// Box is a bounded continuous space. Infinite bounds mean the
// dimension is unrestricted.
type Box struct {
	Low  []float64
	High []float64
}

func NewBox(low, high []float64) (Box, error) {
	if len(low) != len(high) {
		return Box{}, fmt.Errorf("%w: box bounds have %d and %d dims", ErrDimensionMismatch, len(low), len(high))
	}
	for i := range low {
		if low[i] > high[i] {
			return Box{}, fmt.Errorf("%w: box dim %d has low %g > high %g", ErrParameterBounds, i, low[i], high[i])
		}
	}
	return Box{Low: append([]float64(nil), low...), High: append([]float64(nil), high...)}, nil
}

func (b Box) Dim() int { return len(b.Low) }

// Contains reports whether x has the box's dimension and every component
// lies within the bounds. NaN is never contained.
func (b Box) Contains(x []float64) bool {
	if len(x) != len(b.Low) {
		return false
	}
	for i, v := range x {
		if math.IsNaN(v) || v < b.Low[i] || v > b.High[i] {
			return false
		}
	}
	return true
}

func (b Box) String() string {
	return fmt.Sprintf("Box(low=%v, high=%v)", b.Low, b.High)
}
