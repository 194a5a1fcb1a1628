package integrators

import "github.com/san-kum/rlenv/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta scheme. The control is held
// constant across the four stages (zero-order hold).
type RK4 struct {
	stage dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

// offset writes x + h*k into the reusable stage buffer.
func (r *RK4) offset(x, k dynamo.State, h float64) dynamo.State {
	if len(r.stage) != len(x) {
		r.stage = make(dynamo.State, len(x))
	}
	for i := range x {
		r.stage[i] = x[i] + h*k[i]
	}
	return r.stage
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	half := dt / 2

	k1 := dyn.Derive(x, u, t).Clone()
	k2 := dyn.Derive(r.offset(x, k1, half), u, t+half).Clone()
	k3 := dyn.Derive(r.offset(x, k2, half), u, t+half).Clone()
	k4 := dyn.Derive(r.offset(x, k3, dt), u, t+dt)

	next := make(dynamo.State, len(x))
	for i := range x {
		next[i] = x[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return next
}
