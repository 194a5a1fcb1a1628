package main

import (
	"context"
	"fmt"

	"github.com/gosuri/uilive"
	"github.com/spf13/cobra"

	"github.com/san-kum/rlenv/internal/optim"
	"github.com/san-kum/rlenv/internal/sim"
)

var (
	kpMax, kdMax float64
	gridPoints   int
)

func newTuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search pid gains for the best mean pendulum return",
		RunE:  runTune,
	}
	cmd.Flags().Float64Var(&kpMax, "kp-max", 20, "largest kp on the grid")
	cmd.Flags().Float64Var(&kdMax, "kd-max", 6, "largest kd on the grid")
	cmd.Flags().IntVar(&gridPoints, "points", 5, "grid points per gain")
	cmd.Flags().IntVarP(&episodeCount, "count", "n", 0, "episodes per grid point (0 uses episodes.count)")
	cmd.Flags().IntVar(&maxSteps, "steps", 0, "step limit per episode (0 uses episodes.max_steps)")
	return cmd
}

func runTune(cmd *cobra.Command, args []string) error {
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
	seedStart := resolveSeed(seed, ec.Seed)

	grid, err := optim.NewGridSearch(
		[]string{"kp", "kd"},
		[][]float64{optim.Linspace(0, kpMax, gridPoints), optim.Linspace(0, kdMax, gridPoints)},
	)
	if err != nil {
		return err
	}

	out := uilive.New()
	out.Start()
	evaluated := 0

	// every grid point sees the same seeds, so only the gains differ
	objective := func(ctx context.Context, p map[string]float64) (float64, error) {
		params := ec.ControllerParams
		params.Kp, params.Kd = p["kp"], p["kd"]
		ens := sim.NewEnsemble(pendulumTrials(cfg.Pendulum, "pid", params), cfg.Pendulum.Dt, ec.MaxSteps)
		eps, err := ens.Run(ctx, ec.Count, seedStart)
		if err != nil {
			return 0, err
		}
		s := sim.Summarize(eps)
		evaluated++
		fmt.Fprintf(out, "grid %d/%d  kp %.2f kd %.2f  mean return %.2f\n", evaluated, grid.Size(), params.Kp, params.Kd, s.MeanReturn)
		return s.MeanReturn, nil
	}

	best, score, err := grid.Search(cmd.Context(), objective)
	out.Stop()
	if err != nil {
		return err
	}
	logger.Info("tuning finished", "points", grid.Size(), "episodes_per_point", ec.Count, "seed_start", seedStart)
	fmt.Printf("best kp %.3f kd %.3f (ki %.3f) mean return %.2f\n", best["kp"], best["kd"], ec.ControllerParams.Ki, score)
	return nil
}
