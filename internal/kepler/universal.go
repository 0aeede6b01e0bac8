package kepler

import (
	"math"

	"github.com/san-kum/orbprop/internal/orbit"
)

const (
	// timeTolerance is the convergence threshold on the elapsed-time
	// residual. It is an absolute tolerance in seconds; the driver
	// converts all requested times to seconds before solving.
	timeTolerance = 1.0

	// maxOuterIters bounds the Halley iteration. Exceeding it marks the
	// step unsafe and hands it to the classical fallback.
	maxOuterIters = 25
)

// energyTerms holds the per-call quantities shared read-only by every
// time step: initial radius, radial velocity dot product, the energy
// term beta = 2*mu/r0 - v0^2, and (for bound orbits) the orbital period
// together with the per-step period-wrap corrections.
type energyTerms struct {
	mu     float64
	r0     float64
	nu0    float64 // r0 . v0
	beta   float64
	period float64   // 0 for unbound orbits
	deltaU []float64 // per-step wrap correction, same order as the request
}

// newEnergyTerms derives the shared terms for one propagation call.
// dts are the requested elapsed times in seconds.
func newEnergyTerms(st orbit.StateVector, mu float64, dts []float64) *energyTerms {
	et := &energyTerms{
		mu:     mu,
		r0:     st.R.Norm(),
		nu0:    st.R.Dot(st.V),
		deltaU: make([]float64, len(dts)),
	}
	et.beta = 2*mu/et.r0 - st.V.Dot(st.V)

	// The universal Kepler function is multivalued across revolutions
	// of a bound orbit. Shift each step by whole-period increments so
	// the iterator never has to walk hundreds of revolutions.
	if et.beta > 0 {
		et.period = 2 * math.Pi * mu * math.Pow(et.beta, -1.5)
		for i, dt := range dts {
			n := math.Floor((dt + et.period/2 - 2*et.nu0/et.beta) / et.period)
			et.deltaU[i] = 2 * math.Pi * n * math.Pow(et.beta, -2.5)
		}
	}

	return et
}

// iterResult carries the converged universal-variable quantities needed
// by the Lagrange reconstruction, plus the diagnostics.
type iterResult struct {
	u      float64
	r      float64 // projected radius at the converged anomaly
	u1, u2 float64 // Stumpff-like U1, U2
	outer  int
	inner  int // cumulative continued-fraction iterations
	tErr   float64
	unsafe bool
}

// solveUniversal runs the Halley iteration for a single time step.
// dt is in seconds, deltaU is the step's period-wrap correction.
//
// The residual starts at -dt so the body always executes at least once
// for |dt| above the tolerance. If it never executes, u stays 0 and the
// result reconstructs the identity (U1 = U2 = 0, r = r0).
func (et *energyTerms) solveUniversal(dt, deltaU float64) iterResult {
	res := iterResult{r: et.r0}

	u := 0.0
	deltaT := -dt

	for math.Abs(deltaT) > timeTolerance {
		res.outer++
		q := et.beta * u * u / (1 + et.beta*u*u)

		// q >= 1 means the universal series has broken down; the
		// iteration can overshoot into that regime even though the
		// converged q stays below 0.5.
		if res.outer > maxOuterIters || q >= 1 {
			res.unsafe = true
			return res
		}

		g, n, ok := gaussCF(q)
		res.inner += n
		if !ok {
			res.unsafe = true
			return res
		}

		u0w2 := 1 - 2*q
		u1w2 := 2 * (1 - q) * u
		bigU := 16.0/15.0*math.Pow(u1w2, 5)*g + deltaU

		u0 := 2*u0w2*u0w2 - 1
		u1 := 2 * u0w2 * u1w2
		u2 := 2 * u1w2 * u1w2
		u3 := et.beta*bigU + u1*u2/3

		r := et.r0*u0 + et.nu0*u1 + et.mu*u2
		t := et.r0*u1 + et.nu0*u2 + et.mu*u3

		deltaT = t - dt

		// Halley step. The extra deltaT*beta*u term carries the
		// second-order curvature; the plain Newton denominator is
		// 4*(1-q)*r.
		u -= deltaT / ((1 - q) * (4*r + deltaT*et.beta*u))

		res.r = r
		res.u1 = u1
		res.u2 = u2
	}

	res.u = u
	res.tErr = math.Abs(deltaT)
	return res
}

// reconstruct builds the new Cartesian state from the converged
// universal-variable quantities via the Lagrange coefficients. It must
// use the iterator's own U1, U2 and projected radius so the output stays
// consistent with the converged internal state.
func (et *energyTerms) reconstruct(st orbit.StateVector, res iterResult) orbit.StateVector {
	f := 1 - et.mu/et.r0*res.u2
	g := et.r0*res.u1 + et.nu0*res.u2
	bigF := -et.mu * res.u1 / (res.r * et.r0)
	bigG := 1 - et.mu/res.r*res.u2

	return orbit.StateVector{
		R: st.R.Scale(f).Add(st.V.Scale(g)),
		V: st.R.Scale(bigF).Add(st.V.Scale(bigG)),
	}
}
