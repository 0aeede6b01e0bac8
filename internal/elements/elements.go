package elements

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/orbprop/internal/orbit"
)

const twoPi = 2 * math.Pi

var (
	// ErrDegenerate indicates a state too close to parabolic or
	// rectilinear for the classical element set to represent.
	ErrDegenerate = errors.New("elements: degenerate orbit (near-parabolic or zero angular momentum)")

	// ErrKeplerNoConverge indicates the Kepler equation solve failed.
	ErrKeplerNoConverge = errors.New("elements: Kepler equation did not converge")
)

// Set is the classical Keplerian element set with a mean anomaly.
// Angles are radians; SemiMajorAxis is km (negative for hyperbolic).
type Set struct {
	SemiMajorAxis float64
	Eccentricity  float64
	Inclination   float64
	RAAN          float64 // right ascension of ascending node
	ArgPeriapsis  float64
	MeanAnomaly   float64
	Mu            float64 // km^3/s^2
}

// MeanMotion returns sqrt(mu/|a|^3) in rad/s.
func (s Set) MeanMotion() float64 {
	a := math.Abs(s.SemiMajorAxis)
	return math.Sqrt(s.Mu / (a * a * a))
}

// Period returns the orbital period in seconds, or 0 for unbound orbits.
func (s Set) Period() float64 {
	if s.SemiMajorAxis <= 0 {
		return 0
	}
	return twoPi / s.MeanMotion()
}

// Periapsis returns the periapsis distance in km.
func (s Set) Periapsis() float64 {
	return math.Abs(s.SemiMajorAxis) * math.Abs(1-s.Eccentricity)
}

// Apoapsis returns the apoapsis distance in km, or 0 for unbound orbits.
func (s Set) Apoapsis() float64 {
	if s.SemiMajorAxis <= 0 {
		return 0
	}
	return s.SemiMajorAxis * (1 + s.Eccentricity)
}

// Propagate advances the mean anomaly by dt seconds. Elliptical mean
// anomaly is wrapped into [0, 2pi); the hyperbolic one grows without
// bound and is left as-is.
func (s Set) Propagate(dt float64) Set {
	out := s
	out.MeanAnomaly = s.MeanAnomaly + s.MeanMotion()*dt
	if s.Eccentricity < 1 {
		out.MeanAnomaly = normalizeAngle(out.MeanAnomaly)
	}
	return out
}

// FromCartesian converts a Cartesian state to classical elements.
func FromCartesian(st orbit.StateVector, mu float64) (Set, error) {
	r := st.R.Norm()
	v2 := st.V.Dot(st.V)
	rdotv := st.R.Dot(st.V)

	h := st.R.Cross(st.V)
	hMag := h.Norm()
	if hMag < 1e-12 || r < 1e-12 {
		return Set{}, ErrDegenerate
	}

	// Eccentricity vector points at periapsis.
	eVec := st.R.Scale(v2 - mu/r).Sub(st.V.Scale(rdotv)).Scale(1 / mu)
	e := eVec.Norm()

	xi := v2/2 - mu/r
	if math.Abs(xi) < 1e-12 || math.Abs(e-1) < 1e-9 {
		return Set{}, fmt.Errorf("%w: e=%g", ErrDegenerate, e)
	}
	a := -mu / (2 * xi)

	inc := math.Acos(clamp(h[2] / hMag))

	// Node vector along the line of nodes.
	node := orbit.Vec3{0, 0, 1}.Cross(h)
	nMag := node.Norm()

	raan := 0.0
	if nMag > 1e-10 {
		raan = math.Atan2(node[1], node[0])
		if raan < 0 {
			raan += twoPi
		}
	}

	argp := 0.0
	switch {
	case nMag > 1e-10 && e > 1e-10:
		argp = math.Acos(clamp(node.Dot(eVec) / (nMag * e)))
		if eVec[2] < 0 {
			argp = twoPi - argp
		}
	case e > 1e-10:
		// Equatorial: measure from the x axis.
		argp = math.Atan2(eVec[1], eVec[0])
		if argp < 0 {
			argp += twoPi
		}
	}

	var nu float64
	if e > 1e-10 {
		nu = math.Acos(clamp(st.R.Dot(eVec) / (r * e)))
		if rdotv < 0 {
			nu = twoPi - nu
		}
	} else if nMag > 1e-10 {
		nu = math.Acos(clamp(st.R.Dot(node) / (r * nMag)))
		if st.R[2] < 0 {
			nu = twoPi - nu
		}
	} else {
		nu = math.Atan2(st.R[1], st.R[0])
		if nu < 0 {
			nu += twoPi
		}
	}

	m, err := meanFromTrue(nu, e)
	if err != nil {
		return Set{}, err
	}

	return Set{
		SemiMajorAxis: a,
		Eccentricity:  e,
		Inclination:   inc,
		RAAN:          raan,
		ArgPeriapsis:  argp,
		MeanAnomaly:   m,
		Mu:            mu,
	}, nil
}

// Cartesian converts the element set back to a Cartesian state.
func (s Set) Cartesian() (orbit.StateVector, error) {
	a := s.SemiMajorAxis
	e := s.Eccentricity
	if math.Abs(e-1) < 1e-9 {
		return orbit.StateVector{}, fmt.Errorf("%w: e=%g", ErrDegenerate, e)
	}

	// Perifocal position and velocity.
	var x, y, vx, vy float64
	if e < 1 {
		ecc, err := eccentricFromMean(s.MeanAnomaly, e)
		if err != nil {
			return orbit.StateVector{}, err
		}
		sinE, cosE := math.Sin(ecc), math.Cos(ecc)
		r := a * (1 - e*cosE)
		x = a * (cosE - e)
		y = a * math.Sqrt(1-e*e) * sinE
		vx = -math.Sqrt(s.Mu*a) * sinE / r
		vy = math.Sqrt(s.Mu*a*(1-e*e)) * cosE / r
	} else {
		hyp, err := hyperbolicFromMean(s.MeanAnomaly, e)
		if err != nil {
			return orbit.StateVector{}, err
		}
		sinH, cosH := math.Sinh(hyp), math.Cosh(hyp)
		r := a * (1 - e*cosH) // a < 0, r > 0
		x = a * (cosH - e)
		y = -a * math.Sqrt(e*e-1) * sinH
		vx = -math.Sqrt(-s.Mu*a) * sinH / r
		vy = math.Sqrt(-s.Mu*a) * math.Sqrt(e*e-1) * cosH / r
	}

	sinO, cosO := math.Sincos(s.RAAN)
	sinI, cosI := math.Sincos(s.Inclination)
	sinW, cosW := math.Sincos(s.ArgPeriapsis)

	r11 := cosO*cosW - sinO*sinW*cosI
	r12 := -cosO*sinW - sinO*cosW*cosI
	r21 := sinO*cosW + cosO*sinW*cosI
	r22 := -sinO*sinW + cosO*cosW*cosI
	r31 := sinW * sinI
	r32 := cosW * sinI

	return orbit.StateVector{
		R: orbit.Vec3{r11*x + r12*y, r21*x + r22*y, r31*x + r32*y},
		V: orbit.Vec3{r11*vx + r12*vy, r21*vx + r22*vy, r31*vx + r32*vy},
	}, nil
}

// Converter is the classical-element propagation path: convert to
// elements, advance the mean anomaly, convert back. It has no iteration
// ceiling and serves as the rescue for steps the universal-variable
// solver marks unsafe.
type Converter struct{}

func (Converter) Propagate(st orbit.StateVector, mu, dt float64) (orbit.StateVector, error) {
	set, err := FromCartesian(st, mu)
	if err != nil {
		return orbit.StateVector{}, err
	}
	return set.Propagate(dt).Cartesian()
}
