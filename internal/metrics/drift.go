// Package metrics measures how well a propagated trajectory preserves
// the two-body invariants. Every successfully converged step must keep
// specific energy and angular momentum; drift here means solver trouble,
// not physics.
package metrics

import (
	"math"

	"github.com/san-kum/orbprop/internal/orbit"
)

// Metric accumulates a scalar over a sequence of propagated states.
type Metric interface {
	Name() string
	Observe(st orbit.StateVector)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative drift of the specific orbital
// energy v^2/2 - mu/r against the first observed state.
type EnergyDrift struct {
	mu       float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(mu float64) *EnergyDrift {
	return &EnergyDrift{mu: mu}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(st orbit.StateVector) {
	energy := st.Energy(e.mu)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum relative drift of the specific
// angular momentum vector r x v, covering both magnitude and direction
// (planar orbit invariant).
type MomentumDrift struct {
	initial  orbit.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(st orbit.StateVector) {
	h := st.AngularMomentum()

	if m.samples == 0 {
		m.initial = h
	}
	m.samples++

	norm := m.initial.Norm()
	if norm != 0 {
		drift := h.Sub(m.initial).Norm() / norm
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = orbit.Vec3{}
	m.maxDrift = 0
	m.samples = 0
}

// ObserveResult runs every metric over the steps of a batch result,
// skipping steps that failed outright.
func ObserveResult(res *orbit.Result, ms ...Metric) {
	for _, step := range res.Steps {
		if step.Err != nil {
			continue
		}
		for _, m := range ms {
			m.Observe(step.State)
		}
	}
}
