// Package control provides feedback controllers that drive the pendulum
// environment.
//
// Controllers implement the [dynamo.Controller] interface and return a
// one-element torque vector computed from the observation:
//
//   - [PID]: Proportional-Integral-Derivative on the wrapped angle
//   - [LQR]: linear state feedback
//   - [Manual]: torque set from keyboard input
//   - [None]: zero torque
//
// # Usage
//
//	pid := control.NewPID(10, 0.1, 2, 0) // Kp, Ki, Kd, target angle
//	ep, err := runner.Run(ctx, env, pid, 500)
//
// PID implements [dynamo.Configurable]; the pendulum TUI retunes its gains
// while an episode runs.
package control
