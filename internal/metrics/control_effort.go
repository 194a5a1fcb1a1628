package metrics

import (
	"math"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// ControlEffort is the mean requested torque magnitude as a fraction of
// the actuator bound, so 1 means the controller sat on the limit for the
// whole episode. Requests beyond the bound count as the bound because the
// environment clips them. A non-positive Limit reports raw mean |τ|.
type ControlEffort struct {
	Limit float64

	total float64
	steps int
}

func NewControlEffort(limit float64) *ControlEffort {
	return &ControlEffort{Limit: limit}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	c.steps++
	if len(u) == 0 {
		return
	}
	tau := math.Abs(u[0])
	if c.Limit > 0 {
		tau = math.Min(tau, c.Limit)
	}
	c.total += tau
}

func (c *ControlEffort) Value() float64 {
	if c.steps == 0 {
		return 0
	}
	mean := c.total / float64(c.steps)
	if c.Limit > 0 {
		return mean / c.Limit
	}
	return mean
}

func (c *ControlEffort) Reset() {
	c.total, c.steps = 0, 0
}
