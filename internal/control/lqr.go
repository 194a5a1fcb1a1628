package control

import "github.com/san-kum/rlenv/internal/dynamo"

// LQR applies u = -K (x - target) with the angle error wrapped to (-π, π].
type LQR struct {
	K      []float64
	Target dynamo.State
}

func NewLQR(k []float64, target dynamo.State) *LQR {
	return &LQR{K: k, Target: target}
}

// pendulumGains were tuned for the default damped pendulum (g=9.8, l=1).
var pendulumGains = []float64{8.0, 3.0}

func NewPendulumLQR() *LQR {
	return NewLQR(pendulumGains, dynamo.State{0, 0})
}

func (l *LQR) Compute(x dynamo.State, t float64) dynamo.Control {
	u := 0.0
	for j := range x {
		if j >= len(l.K) {
			break
		}
		target := 0.0
		if j < len(l.Target) {
			target = l.Target[j]
		}
		e := x[j] - target
		if j == 0 {
			e = WrapAngle(e)
		}
		u -= l.K[j] * e
	}
	return dynamo.Control{u}
}
