package sim

import "github.com/san-kum/rlenv/internal/dynamo"

// Environment is the agent-facing surface the runner drives.
type Environment interface {
	Reset() dynamo.State
	StepControl(u dynamo.Control) (dynamo.Transition, error)
}

// Episode is the trajectory and outcome of one run from Reset to done or
// the step limit.
type Episode struct {
	Seed       uint64
	Return     float64
	Steps      int
	Terminated bool
	Truncated  bool
	States     []dynamo.State
	Controls   []dynamo.Control
	Rewards    []float64
	Metrics    map[string]float64
}

// FinalReward is the reward of the last step, zero for an empty episode.
func (e *Episode) FinalReward() float64 {
	if len(e.Rewards) == 0 {
		return 0
	}
	return e.Rewards[len(e.Rewards)-1]
}
