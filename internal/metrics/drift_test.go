package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbprop/internal/orbit"
)

const earthMu = 398600.4418

func TestEnergyDriftOnInvariantOrbit(t *testing.T) {
	m := NewEnergyDrift(earthMu)

	// States on the same circular orbit: drift must stay at roundoff.
	radius := 7000.0
	vc := math.Sqrt(earthMu / radius)
	for _, theta := range []float64{0, 0.5, 1.5, 3, 5} {
		sin, cos := math.Sincos(theta)
		m.Observe(orbit.StateVector{
			R: orbit.Vec3{radius * cos, radius * sin, 0},
			V: orbit.Vec3{-vc * sin, vc * cos, 0},
		})
	}

	if m.Value() > 1e-12 {
		t.Errorf("drift on invariant orbit: %g", m.Value())
	}
}

func TestEnergyDriftDetectsChange(t *testing.T) {
	m := NewEnergyDrift(earthMu)

	st := orbit.StateVector{R: orbit.Vec3{7000, 0, 0}, V: orbit.Vec3{0, 7.5, 0}}
	m.Observe(st)

	// Bump the speed by 1%: energy changes, drift must register.
	st.V = st.V.Scale(1.01)
	m.Observe(st)

	if m.Value() < 1e-3 {
		t.Errorf("drift after velocity bump: %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("Value after Reset: %g", m.Value())
	}
}

func TestMomentumDriftDirectionSensitive(t *testing.T) {
	m := NewMomentumDrift()

	st := orbit.StateVector{R: orbit.Vec3{7000, 0, 0}, V: orbit.Vec3{0, 7.5, 0}}
	m.Observe(st)
	if m.Value() != 0 {
		t.Fatalf("drift after first sample: %g", m.Value())
	}

	// Same magnitude, tilted plane: the vector drift must catch it.
	tilted := orbit.StateVector{R: orbit.Vec3{7000, 0, 0}, V: orbit.Vec3{0, 7.5 * math.Cos(0.1), 7.5 * math.Sin(0.1)}}
	m.Observe(tilted)

	if m.Value() < 0.05 {
		t.Errorf("drift after plane tilt: %g", m.Value())
	}
}

func TestObserveResultSkipsFailedSteps(t *testing.T) {
	good := orbit.StateVector{R: orbit.Vec3{7000, 0, 0}, V: orbit.Vec3{0, 7.5, 0}}
	bad := orbit.StateVector{R: orbit.Vec3{7000, 0, 0}, V: orbit.Vec3{0, 75, 0}}

	res := &orbit.Result{
		Steps: []orbit.StepResult{
			{State: good},
			{State: bad, Err: errors.New("step failed")},
			{State: good},
		},
	}

	m := NewEnergyDrift(earthMu)
	ObserveResult(res, m)

	if m.Value() > 1e-12 {
		t.Errorf("failed step leaked into metric: drift %g", m.Value())
	}
}
