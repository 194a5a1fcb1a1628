package main

import (
	"context"
	"testing"

	"github.com/san-kum/rlenv/internal/control"
	"github.com/san-kum/rlenv/internal/pendulum"
	"github.com/san-kum/rlenv/internal/sim"
)

func TestResolveSeed(t *testing.T) {
	tests := []struct {
		name             string
		flag, configured uint64
		want             uint64
	}{
		{"flag wins", 5, 9, 5},
		{"config when no flag", 0, 9, 9},
		{"flag without config", 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSeed(tt.flag, tt.configured); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
	if resolveSeed(0, 0) == 0 {
		t.Error("clock fallback must not be zero")
	}
}

func TestPendulumTrialsDistinctPerSeed(t *testing.T) {
	factory := pendulumTrials(pendulum.DefaultConfig(), "pid", control.Params{Kp: 5, Kd: 2})

	starts := make(map[float64]uint64)
	for s := uint64(5); s < 10; s++ {
		trial, err := factory(s)
		if err != nil {
			t.Fatal(err)
		}
		theta := trial.Env.Reset()[0]
		if prev, dup := starts[theta]; dup {
			t.Errorf("seeds %d and %d reset to the same angle %f", prev, s, theta)
		}
		starts[theta] = s
	}

	a, _ := factory(7)
	b, _ := factory(7)
	if a.Env.Reset()[0] != b.Env.Reset()[0] {
		t.Error("the same seed must reproduce the same start")
	}
	if a.Controller == b.Controller {
		t.Error("trials must not share a controller")
	}
}

func TestPendulumTrialsEnsembleEpisodesDiffer(t *testing.T) {
	cfg := pendulum.DefaultConfig()
	ens := sim.NewEnsemble(pendulumTrials(cfg, "none", control.Params{}), cfg.Dt, 20)

	eps, err := ens.Run(context.Background(), 4, resolveSeed(5, 0))
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(eps); i++ {
		if eps[i].States[0][0] == eps[0].States[0][0] {
			t.Errorf("episode %d started from the same angle as episode 0", i)
		}
	}
	for _, ep := range eps {
		if _, ok := ep.Metrics["control_effort"]; !ok {
			t.Error("missing control effort metric")
		}
	}
}

func TestPendulumTrialsUnknownController(t *testing.T) {
	if _, err := pendulumTrials(pendulum.DefaultConfig(), "bangbang", control.Params{})(1); err == nil {
		t.Error("expected unknown controller error")
	}
}
