package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/gosuri/uilive"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/san-kum/rlenv/internal/control"
	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/metrics"
	"github.com/san-kum/rlenv/internal/pendulum"
	"github.com/san-kum/rlenv/internal/sim"
	"github.com/san-kum/rlenv/internal/viz"
)

var (
	episodeCount int
	workers      int
)

func newEpisodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "run seeded pendulum episodes in parallel and summarize the returns",
		RunE:  runEpisodes,
	}
	cmd.Flags().IntVarP(&episodeCount, "count", "n", 0, "number of episodes (0 uses episodes.count)")
	cmd.Flags().IntVar(&maxSteps, "steps", 0, "step limit per episode (0 uses episodes.max_steps)")
	cmd.Flags().StringVar(&controllerName, "controller", "", "none, pid or lqr (empty uses episodes.controller)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 uses GOMAXPROCS)")
	cmd.Flags().Float64Var(&kp, "kp", 0, "pid kp (0 keeps the configured value)")
	cmd.Flags().Float64Var(&ki, "ki", 0, "pid ki (0 keeps the configured value)")
	cmd.Flags().Float64Var(&kd, "kd", 0, "pid kd (0 keeps the configured value)")
	return cmd
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("pendulum")
	if err != nil {
		return err
	}
	ec := cfg.Episodes
	if episodeCount > 0 {
		ec.Count = episodeCount
	}
	if maxSteps > 0 {
		ec.MaxSteps = maxSteps
	}
	if controllerName != "" {
		ec.Controller = controllerName
	}
	params := controllerParams(ec.ControllerParams)
	if _, err := control.ByName(ec.Controller, params); err != nil {
		return err
	}

	ens := sim.NewEnsemble(pendulumTrials(cfg.Pendulum, ec.Controller, params), cfg.Pendulum.Dt, ec.MaxSteps)
	ens.SetWorkers(workers)
	ens.SetLogger(logger)

	out := uilive.New()
	out.Start()
	ens.OnProgress(func(done, total int) {
		fmt.Fprintf(out, "episodes %s %d/%d\n", viz.ProgressBar(float64(done)/float64(total), 30), done, total)
	})

	start := time.Now()
	eps, err := ens.Run(cmd.Context(), ec.Count, resolveSeed(seed, ec.Seed))
	out.Stop()
	if err != nil {
		return err
	}
	logger.Info("episodes finished", "count", len(eps), "controller", ec.Controller, "elapsed", time.Since(start).Round(time.Millisecond))

	returns := make([]float64, len(eps))
	for i, ep := range eps {
		returns[i] = ep.Return
	}
	if len(returns) > 1 {
		fmt.Println(asciigraph.Plot(returns, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("return per episode")))
	}

	s := sim.Summarize(eps)
	fmt.Printf("\ncontroller   %s\n", ec.Controller)
	fmt.Printf("episodes     %d (%d terminated)\n", s.Episodes, s.Terminated)
	fmt.Printf("return       %.2f ± %.2f  [%.2f, %.2f]\n", s.MeanReturn, s.StdReturn, s.WorstReturn, s.BestReturn)
	fmt.Printf("mean steps   %.1f\n", s.MeanSteps)

	names := make([]string, 0, len(eps[0].Metrics))
	for name := range eps[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var sum float64
		for _, ep := range eps {
			sum += ep.Metrics[name]
		}
		fmt.Printf("%-12s %.4f\n", name, sum/float64(len(eps)))
	}
	return nil
}

// pendulumTrials builds one independent environment, controller and metric
// set per seed. The seed alone decides the environment's random source.
func pendulumTrials(cfg pendulum.Config, controller string, params control.Params) sim.Factory {
	return func(s uint64) (sim.Trial, error) {
		env, err := pendulum.New(cfg, rand.NewSource(s))
		if err != nil {
			return sim.Trial{}, err
		}
		ctrl, err := control.ByName(controller, params)
		if err != nil {
			return sim.Trial{}, err
		}
		return sim.Trial{
			Env:        env,
			Controller: ctrl,
			Metrics: []dynamo.Metric{
				metrics.NewControlEffort(cfg.TorqueLimit()),
				metrics.NewUpright(cfg.ThetaTolerance),
			},
		}, nil
	}
}
