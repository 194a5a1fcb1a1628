package sim

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// Trial is everything one episode of an ensemble needs. Nothing in a Trial
// may be shared with another Trial.
type Trial struct {
	Env        Environment
	Controller dynamo.Controller
	Metrics    []dynamo.Metric
}

// Factory builds an independent Trial for a seed.
type Factory func(seed uint64) (Trial, error)

// Ensemble runs seeded episodes in parallel, one environment per goroutine.
type Ensemble struct {
	factory  Factory
	dt       float64
	maxSteps int
	workers  int
	logger   *log.Logger
	onDone   func(done, total int)
}

func NewEnsemble(factory Factory, dt float64, maxSteps int) *Ensemble {
	return &Ensemble{
		factory:  factory,
		dt:       dt,
		maxSteps: maxSteps,
		workers:  runtime.GOMAXPROCS(0),
		logger:   log.New(io.Discard),
	}
}

func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

func (e *Ensemble) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// OnProgress registers a callback invoked after each finished episode.
// Calls are serialized.
func (e *Ensemble) OnProgress(fn func(done, total int)) { e.onDone = fn }

// Run plays n episodes with seeds seedStart..seedStart+n-1. Results are
// ordered by seed. The first error cancels the remaining episodes.
func (e *Ensemble) Run(ctx context.Context, n int, seedStart uint64) ([]*Episode, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: episode count must be positive, got %d", dynamo.ErrParameterBounds, n)
	}

	results := make([]*Episode, n)
	progress := make(chan struct{}, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	reported := make(chan struct{})
	go func() {
		defer close(reported)
		done := 0
		for range progress {
			done++
			if e.onDone != nil {
				e.onDone(done, n)
			}
		}
	}()

	for i := 0; i < n; i++ {
		seed := seedStart + uint64(i)
		idx := i
		g.Go(func() error {
			trial, err := e.factory(seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			r := NewRunner(e.dt)
			for _, m := range trial.Metrics {
				r.AddMetric(m)
			}
			ep, err := r.Run(gctx, trial.Env, trial.Controller, e.maxSteps)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			ep.Seed = seed
			results[idx] = ep
			progress <- struct{}{}
			return nil
		})
	}

	err := g.Wait()
	close(progress)
	<-reported
	if err != nil {
		return nil, err
	}
	e.logger.Info("ensemble finished", "episodes", n, "seed_start", seedStart)
	return results, nil
}

// Summary aggregates returns and lengths over an ensemble.
type Summary struct {
	Episodes    int
	MeanReturn  float64
	StdReturn   float64
	BestReturn  float64
	WorstReturn float64
	MeanSteps   float64
	Terminated  int
}

func Summarize(eps []*Episode) Summary {
	if len(eps) == 0 {
		return Summary{}
	}
	returns := make([]float64, len(eps))
	steps := make([]float64, len(eps))
	s := Summary{Episodes: len(eps)}
	for i, ep := range eps {
		returns[i] = ep.Return
		steps[i] = float64(ep.Steps)
		if ep.Terminated {
			s.Terminated++
		}
	}
	s.MeanReturn, s.StdReturn = stat.MeanStdDev(returns, nil)
	if len(eps) == 1 {
		s.StdReturn = 0
	}
	s.BestReturn = floats.Max(returns)
	s.WorstReturn = floats.Min(returns)
	s.MeanSteps = stat.Mean(steps, nil)
	return s
}
