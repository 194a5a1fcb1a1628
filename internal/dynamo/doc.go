// Package dynamo provides the shared vocabulary of the simulators.
//
// The package defines the fundamental interfaces and types used by the
// pendulum environment, the controllers that drive it and the episode runner:
//
//   - [State]: vector representing system state (also the observation)
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepping scheme for a [System]
//   - [Controller]: feedback policy producing a [Control]
//   - [Transition]: result of one environment step
//   - [Box]: bounded continuous space for observations and actions
//
// # Example
//
//	env, _ := pendulum.New(pendulum.DefaultConfig(), rand.NewSource(1))
//	obs := env.Reset()
//	tr, err := env.Step(0.5)
//
// # Thread Safety
//
// Environments are NOT thread-safe. For parallel episodes use one
// environment per goroutine, see sim.Ensemble.
package dynamo
