package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// Runner plays episodes of an Environment under a Controller. A Runner
// owns its metrics and must not be shared between goroutines.
type Runner struct {
	dt        float64
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	logger    *log.Logger
}

// NewRunner creates a runner; dt is only used to timestamp controller calls.
func NewRunner(dt float64) *Runner {
	return &Runner{
		dt:        dt,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		logger:    log.New(io.Discard),
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

func (r *Runner) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Run resets env and steps it until the episode is done, maxSteps is
// reached or ctx is cancelled. On cancellation the partial episode is
// returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context, env Environment, ctrl dynamo.Controller, maxSteps int) (*Episode, error) {
	if maxSteps <= 0 {
		return nil, fmt.Errorf("%w: max steps must be positive, got %d", dynamo.ErrParameterBounds, maxSteps)
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	if rs, ok := ctrl.(dynamo.Resetter); ok {
		rs.Reset()
	}

	ep := &Episode{
		States:   make([]dynamo.State, 0, maxSteps+1),
		Controls: make([]dynamo.Control, 0, maxSteps),
		Rewards:  make([]float64, 0, maxSteps),
		Metrics:  make(map[string]float64),
	}

	x := env.Reset()
	ep.States = append(ep.States, x.Clone())

	for i := 0; i < maxSteps; i++ {
		select {
		case <-ctx.Done():
			r.collect(ep)
			return ep, ctx.Err()
		default:
		}

		t := float64(i) * r.dt
		u := ctrl.Compute(x, t)

		for _, m := range r.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(x, u, t)
		}

		tr, err := env.StepControl(u)
		if err != nil {
			r.collect(ep)
			return ep, &dynamo.StepError{Step: i, State: x.Clone(), Wrapped: err}
		}

		x = tr.Observation
		ep.Steps++
		ep.Return += tr.Reward
		ep.States = append(ep.States, x.Clone())
		ep.Controls = append(ep.Controls, u)
		ep.Rewards = append(ep.Rewards, tr.Reward)

		if tr.Done {
			ep.Terminated = true
			break
		}
	}
	ep.Truncated = !ep.Terminated

	r.collect(ep)
	r.logger.Debug("episode finished", "steps", ep.Steps, "return", ep.Return, "terminated", ep.Terminated)
	return ep, nil
}

func (r *Runner) collect(ep *Episode) {
	for _, m := range r.metrics {
		ep.Metrics[m.Name()] = m.Value()
	}
}
