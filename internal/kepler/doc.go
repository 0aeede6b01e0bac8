// Package kepler propagates a two-body orbit analytically using
// Shepperd's universal-variable state-transition formulation.
//
// Given a Cartesian state and the central body's gravitational
// parameter, [Propagator.Propagate] computes the state at each requested
// elapsed time without converting through classical orbital elements.
// The solve per step is a Halley root-find on the universal anomaly,
// with a Gauss continued fraction evaluating the hypergeometric series
// and a period-wrap correction keeping multi-revolution requests cheap.
//
// Steps the iteration cannot solve safely (more than 25 outer iterations,
// or the series parameter q reaching 1) degrade transparently to the
// classical element conversion in internal/elements. The per-step
// Status and Diagnostics record which path ran and how hard it worked.
//
// # Thread Safety
//
// A Propagator is immutable after construction and safe for concurrent
// use. Within one call the per-step loop is embarrassingly parallel;
// SetParallel enables chunked workers over the time batch.
package kepler
