package orbit

import (
	"fmt"
	"math"
	"strings"
)

// Vec3 is a Cartesian vector. Positions are kilometers, velocities km/s.
type Vec3 [3]float64

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{v[0] * factor, v[1] * factor, v[2] * factor}
}

func (v Vec3) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// StateVector is the Cartesian state of a single body: one position, one
// velocity. Exactly one orbit per value.
type StateVector struct {
	R Vec3 // position, km
	V Vec3 // velocity, km/s
}

func (s StateVector) IsValid() bool {
	return s.R.IsValid() && s.V.IsValid()
}

// Radius returns the distance from the central body.
func (s StateVector) Radius() float64 { return s.R.Norm() }

// Speed returns the velocity magnitude.
func (s StateVector) Speed() float64 { return s.V.Norm() }

// Energy returns the specific orbital energy v^2/2 - mu/r.
func (s StateVector) Energy(mu float64) float64 {
	return s.V.Dot(s.V)/2 - mu/s.R.Norm()
}

// AngularMomentum returns the specific angular momentum r x v.
func (s StateVector) AngularMomentum() Vec3 {
	return s.R.Cross(s.V)
}

// TimeUnit selects the unit of the requested time steps.
type TimeUnit string

const (
	Seconds TimeUnit = "seconds"
	Days    TimeUnit = "days"

	SecondsPerDay = 86400.0
)

// ParseTimeUnit normalizes a unit label. Only seconds and days are
// recognized; anything else is rejected.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(s) {
	case "s", "sec", "seconds":
		return Seconds, nil
	case "d", "day", "days":
		return Days, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeUnit, s)
	}
}

// Factor returns the multiplier converting this unit to seconds.
func (u TimeUnit) Factor() (float64, error) {
	switch u {
	case Seconds:
		return 1, nil
	case Days:
		return SecondsPerDay, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeUnit, string(u))
	}
}

// Status records which propagation path produced a step result.
type Status int

const (
	// StatusConverged means the universal-variable iteration converged.
	StatusConverged Status = iota
	// StatusFallback means the step was rescued by the classical
	// element conversion path.
	StatusFallback
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "ok"
	case StatusFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Diagnostics carries per-step iteration counts and the final time
// residual of the universal-variable solve. InnerIters is the cumulative
// continued-fraction count across all outer iterations.
type Diagnostics struct {
	OuterIters int
	InnerIters int
	TimeError  float64 // seconds
}

// StepResult is the outcome of propagating by a single requested time.
type StepResult struct {
	Time   float64 // requested elapsed time, seconds
	State  StateVector
	Status Status
	Diag   Diagnostics
	Err    error // non-nil only if the fallback path itself failed
}

// Result is the batch output, one StepResult per requested time, in
// input order.
type Result struct {
	Steps         []StepResult
	FallbackCount int
}
