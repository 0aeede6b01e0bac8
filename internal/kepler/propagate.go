package kepler

import (
	"fmt"

	"github.com/san-kum/orbprop/internal/elements"
	"github.com/san-kum/orbprop/internal/orbit"
)

// Fallback rescues a time step the universal-variable iteration could
// not solve safely. It is slower but has no iteration ceiling.
type Fallback interface {
	Propagate(st orbit.StateVector, mu, dt float64) (orbit.StateVector, error)
}

// Propagator solves the two-body problem analytically for one orbit,
// batched over elapsed times. Instances are safe for concurrent use:
// all per-call state lives on the stack of Propagate.
type Propagator struct {
	mu       float64
	fallback Fallback
	parallel bool
}

// New returns a Propagator for a central body with standard
// gravitational parameter mu (km^3/s^2). The classical element
// conversion is installed as the fallback path.
func New(mu float64) (*Propagator, error) {
	if mu <= 0 {
		return nil, fmt.Errorf("%w: got %g", orbit.ErrNonPositiveGM, mu)
	}
	return &Propagator{mu: mu, fallback: elements.Converter{}}, nil
}

// SetFallback replaces the rescue path. Used by tests; nil disables the
// fallback so unsafe steps surface their error.
func (p *Propagator) SetFallback(fb Fallback) { p.fallback = fb }

// SetParallel toggles chunked parallel execution of the per-step loop.
// Steps are independent and write disjoint output slots, so no locking
// is involved either way.
func (p *Propagator) SetParallel(on bool) { p.parallel = on }

// Mu returns the gravitational parameter the propagator was built with.
func (p *Propagator) Mu() float64 { return p.mu }

// Propagate computes the Cartesian state at each requested elapsed time.
// Times are interpreted in unit; internally everything runs in seconds.
// The result has exactly one row per requested time, in input order.
// Unsafe iterations degrade to the fallback path per step and are
// reported through the step's Status, never as a batch error.
func (p *Propagator) Propagate(st orbit.StateVector, times []float64, unit orbit.TimeUnit) (*orbit.Result, error) {
	if len(times) == 0 {
		return nil, orbit.ErrNoTimeSteps
	}
	if !st.IsValid() {
		return nil, orbit.ErrInvalidState
	}
	factor, err := unit.Factor()
	if err != nil {
		return nil, err
	}

	dts := make([]float64, len(times))
	for i, t := range times {
		dts[i] = t * factor
	}

	et := newEnergyTerms(st, p.mu, dts)

	result := &orbit.Result{Steps: make([]orbit.StepResult, len(dts))}

	run := func(start, end int) {
		for i := start; i < end; i++ {
			result.Steps[i] = p.step(st, et, i, dts[i])
		}
	}

	if p.parallel {
		parallelFor(len(dts), minParallelSteps, run)
	} else {
		run(0, len(dts))
	}

	for i := range result.Steps {
		if result.Steps[i].Status == orbit.StatusFallback {
			result.FallbackCount++
		}
	}

	return result, nil
}

func (p *Propagator) step(st orbit.StateVector, et *energyTerms, idx int, dt float64) orbit.StepResult {
	out := orbit.StepResult{Time: dt, Status: orbit.StatusConverged}

	// Exact short-circuit, not an approximation: zero elapsed time
	// returns the input state with zero iterations and zero error.
	if dt == 0 {
		out.State = st
		return out
	}

	res := et.solveUniversal(dt, et.deltaU[idx])
	if res.unsafe {
		out.Status = orbit.StatusFallback
		out.Diag = orbit.Diagnostics{OuterIters: res.outer, InnerIters: res.inner}
		if p.fallback == nil {
			out.Err = &orbit.StepError{Index: idx, Time: dt,
				Wrapped: fmt.Errorf("universal iteration unsafe after %d iterations and no fallback installed", res.outer)}
			return out
		}
		rescued, err := p.fallback.Propagate(st, p.mu, dt)
		if err != nil {
			out.Err = &orbit.StepError{Index: idx, Time: dt, Wrapped: err}
			return out
		}
		out.State = rescued
		return out
	}

	out.State = et.reconstruct(st, res)
	out.Diag = orbit.Diagnostics{OuterIters: res.outer, InnerIters: res.inner, TimeError: res.tErr}
	return out
}

// PropagateVectors is the flat-slice adapter over Propagate for callers
// holding raw components. Each of pos and vel must have exactly 3
// entries: a longer multiple of 3 is a multi-orbit batch, which is
// rejected (call once per orbit instead).
func (p *Propagator) PropagateVectors(pos, vel []float64, times []float64, unit orbit.TimeUnit) (*orbit.Result, error) {
	if len(pos) != 3 || len(vel) != 3 {
		if len(pos) > 3 && len(pos)%3 == 0 && len(vel) == len(pos) {
			return nil, fmt.Errorf("%w: got %d orbits", orbit.ErrMultiBody, len(pos)/3)
		}
		return nil, fmt.Errorf("%w: got %d position and %d velocity components",
			orbit.ErrBadDimension, len(pos), len(vel))
	}
	st := orbit.StateVector{
		R: orbit.Vec3{pos[0], pos[1], pos[2]},
		V: orbit.Vec3{vel[0], vel[1], vel[2]},
	}
	return p.Propagate(st, times, unit)
}
