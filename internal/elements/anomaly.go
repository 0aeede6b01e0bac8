package elements

import (
	"fmt"
	"math"
)

const (
	keplerTolerance = 1e-12
	keplerMaxIters  = 60
)

// eccentricFromMean solves Kepler's equation E - e*sin(E) = M for the
// eccentric anomaly with Newton iteration.
func eccentricFromMean(mean, e float64) (float64, error) {
	if e == 0 {
		return normalizeAngle(mean), nil
	}

	m := normalizeAngle(mean)
	ecc := keplerInitialGuess(m, e)
	for i := 0; i < keplerMaxIters; i++ {
		f := ecc - e*math.Sin(ecc) - m
		fp := 1 - e*math.Cos(ecc)
		delta := f / fp
		ecc -= delta

		if math.Abs(delta) < keplerTolerance {
			return normalizeAngle(ecc), nil
		}
	}
	return 0, fmt.Errorf("%w: M=%g e=%g", ErrKeplerNoConverge, mean, e)
}

// hyperbolicFromMean solves the hyperbolic Kepler equation
// e*sinh(H) - H = M for the hyperbolic anomaly.
func hyperbolicFromMean(mean, e float64) (float64, error) {
	hyp := math.Asinh(mean / e)
	for i := 0; i < keplerMaxIters; i++ {
		f := e*math.Sinh(hyp) - hyp - mean
		fp := e*math.Cosh(hyp) - 1
		delta := f / fp
		hyp -= delta

		if math.Abs(delta) < keplerTolerance {
			return hyp, nil
		}
	}
	return 0, fmt.Errorf("%w: M=%g e=%g (hyperbolic)", ErrKeplerNoConverge, mean, e)
}

// meanFromTrue converts a true anomaly to mean anomaly via the
// eccentric (or hyperbolic) anomaly.
func meanFromTrue(nu, e float64) (float64, error) {
	switch {
	case e < 1e-10:
		return normalizeAngle(nu), nil
	case e < 1:
		ecc := 2 * math.Atan(math.Sqrt((1-e)/(1+e))*math.Tan(nu/2))
		return normalizeAngle(ecc - e*math.Sin(ecc)), nil
	default:
		tanHalf := math.Sqrt((e-1)/(e+1)) * math.Tan(nu/2)
		if math.Abs(tanHalf) >= 1 {
			return 0, fmt.Errorf("%w: true anomaly %g beyond asymptote", ErrDegenerate, nu)
		}
		hyp := 2 * math.Atanh(tanHalf)
		return e*math.Sinh(hyp) - hyp, nil
	}
}

func normalizeAngle(angle float64) float64 {
	wrapped := math.Mod(angle, twoPi)
	if wrapped < 0 {
		wrapped += twoPi
	}
	return wrapped
}

func keplerInitialGuess(mean, e float64) float64 {
	if e < 0.8 {
		return mean
	}
	if mean < math.Pi {
		return mean + e/2
	}
	return mean - e/2
}

func clamp(x float64) float64 {
	return math.Min(1, math.Max(-1, x))
}
