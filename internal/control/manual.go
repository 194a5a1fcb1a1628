package control

import (
	"math"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// Manual holds a torque set by the user, e.g. from arrow keys. The torque
// decays towards zero each step unless it is nudged again.
type Manual struct {
	Torque float64
	Limit  float64
	Decay  float64
}

func NewManual(limit float64) *Manual {
	return &Manual{Limit: limit, Decay: 0.8}
}

// Nudge adds delta to the held torque, saturating at ±Limit.
func (m *Manual) Nudge(delta float64) {
	m.Torque = math.Max(-m.Limit, math.Min(m.Limit, m.Torque+delta))
}

func (m *Manual) Release() { m.Torque = 0 }

func (m *Manual) Compute(x dynamo.State, t float64) dynamo.Control {
	u := dynamo.Control{m.Torque}
	m.Torque *= m.Decay
	if math.Abs(m.Torque) < 1e-3 {
		m.Torque = 0
	}
	return u
}
