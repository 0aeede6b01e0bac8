package kepler

import "math"

const (
	// cfTolerance is the convergence threshold on successive partial
	// sums of the continued fraction.
	cfTolerance = 1e-14

	// cfMaxIters bounds the continued fraction when q approaches 1 and
	// the series stops converging. The caller treats exhaustion as an
	// unsafe iteration, not an error.
	cfMaxIters = 1000
)

// gaussCF evaluates the Gauss-form generalized continued fraction for the
// hypergeometric series of the universal Kepler formulation, with the
// Shepperd parameterization a=5, b=0, c=5/2. The contract is 0 <= q < 1;
// the caller rejects q >= 1 before calling.
//
// Returns the converged value, the number of iterations performed, and
// whether convergence was reached within cfMaxIters.
func gaussCF(q float64) (float64, int, bool) {
	// Seed terms for a=5, b=0, c=5/2:
	// k = 1-2(a-b), l = 2(c-1), d = 4c(c-1), n = 4b(c-a).
	k := -9.0
	l := 3.0
	d := 15.0
	n := 0.0

	a := 1.0
	b := 1.0
	g := 1.0
	gPrev := 2.0

	iters := 0
	for math.Abs(g-gPrev) > cfTolerance {
		if iters >= cfMaxIters {
			return g, iters, false
		}
		k = -k
		l += 2
		d += 4 * l
		n += (1 + k) * l
		a = d / (d - n*a*q)
		b = (a - 1) * b
		gPrev = g
		g += b
		iters++
	}

	return g, iters, true
}
