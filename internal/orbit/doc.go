// Package orbit provides the core value types shared across the
// propagation library:
//
//   - [Vec3]: 3-component Cartesian vector algebra
//   - [StateVector]: position/velocity of a single body
//   - [StepResult], [Result]: batch propagation output with per-step
//     diagnostics
//   - [TimeUnit]: the two accepted time units (seconds, days)
//
// Units are kilometers, seconds and km^3/s^2 throughout. The package has
// no behavior beyond vector algebra and validation; the solvers live in
// internal/kepler and internal/elements.
package orbit
