package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
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
	controllerName string
	integratorName string
	kp, ki, kd     float64
	headless       bool
	maxSteps       int
	fps            int
)

func newPendulumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pendulum",
		Short: "run the damped pendulum interactively or headless",
		RunE:  runPendulum,
	}
	cmd.Flags().StringVar(&controllerName, "controller", "", "none, pid or lqr (empty steers with the arrow keys)")
	cmd.Flags().StringVar(&integratorName, "integrator", "", "override the configured integrator")
	cmd.Flags().Float64Var(&kp, "kp", 0, "pid kp (0 keeps the configured value)")
	cmd.Flags().Float64Var(&ki, "ki", 0, "pid ki (0 keeps the configured value)")
	cmd.Flags().Float64Var(&kd, "kd", 0, "pid kd (0 keeps the configured value)")
	cmd.Flags().BoolVar(&headless, "headless", false, "stream frames to stdout instead of the TUI")
	cmd.Flags().IntVar(&maxSteps, "steps", 0, "headless step limit (0 uses episodes.max_steps)")
	cmd.Flags().IntVar(&fps, "fps", 50, "headless frame rate")
	return cmd
}

func controllerParams(p control.Params) control.Params {
	if kp != 0 {
		p.Kp = kp
	}
	if ki != 0 {
		p.Ki = ki
	}
	if kd != 0 {
		p.Kd = kd
	}
	return p
}

func runPendulum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("pendulum")
	if err != nil {
		return err
	}
	if integratorName != "" {
		cfg.Pendulum.Integrator = integratorName
	}
	env, err := pendulum.New(cfg.Pendulum, rand.NewSource(resolveSeed(seed, cfg.Episodes.Seed)))
	if err != nil {
		return err
	}
	defer env.Close()

	var ctrl dynamo.Controller
	if controllerName != "" {
		ctrl, err = control.ByName(controllerName, controllerParams(cfg.Episodes.ControllerParams))
		if err != nil {
			return err
		}
	}

	if !headless {
		_, err := tea.NewProgram(viz.NewPendulumModel(env, ctrl), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	}

	if ctrl == nil {
		ctrl = control.NewNone()
	}
	steps := maxSteps
	if steps <= 0 {
		steps = cfg.Episodes.MaxSteps
	}

	out := uilive.New()
	out.Start()
	defer out.Stop()
	env.AttachRenderer(viz.NewFrameRenderer(out, 60, 20))

	runner := sim.NewRunner(cfg.Pendulum.Dt)
	runner.SetLogger(logger)
	runner.AddMetric(metrics.NewEnergy(env.System()))
	runner.AddMetric(metrics.NewControlEffort(cfg.Pendulum.TorqueLimit()))
	runner.AddMetric(metrics.NewUpright(cfg.Pendulum.ThetaTolerance))
	runner.AddObserver(&frameObserver{env: env, frame: time.Second / time.Duration(max(fps, 1))})

	ep, err := runner.Run(cmd.Context(), env, ctrl, steps)
	if err != nil {
		return err
	}
	if _, err := env.Render(pendulum.ModeHuman); err != nil {
		return err
	}
	fmt.Fprintf(out.Bypass(), "\nreturn %.2f over %d steps (terminated=%v)\n", ep.Return, ep.Steps, ep.Terminated)
	for name, v := range ep.Metrics {
		fmt.Fprintf(out.Bypass(), "  %-14s %.4f\n", name, v)
	}
	return nil
}

// frameObserver redraws the environment once per step at a fixed rate.
type frameObserver struct {
	env   *pendulum.Env
	frame time.Duration
}

func (o *frameObserver) OnStep(x dynamo.State, u dynamo.Control, t float64) {
	if _, err := o.env.Render(pendulum.ModeHuman); err != nil {
		logger.Warn("render failed", "err", err)
	}
	time.Sleep(o.frame)
}
