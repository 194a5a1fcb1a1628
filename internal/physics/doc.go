// Package physics provides the continuous-time models the environments
// integrate.
//
// [DampedPendulum] implements [dynamo.System], [dynamo.Hamiltonian] and
// [dynamo.Configurable]:
//
//	theta_ddot = -(g/l) sin(theta) - c theta_dot + tau/l²
//
// Pair it with an integrator from package integrators; the pendulum
// environment uses explicit Euler.
package physics
