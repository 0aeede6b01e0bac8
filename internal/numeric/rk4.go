// Package numeric integrates the two-body ODE numerically. It exists as
// an independent cross-check of the analytic propagator, not as a
// production path: the analytic solve is roughly an order of magnitude
// cheaper and has no truncation error.
package numeric

import "github.com/san-kum/orbprop/internal/orbit"

// System is a first-order ODE dX/dt = f(X, t) over a flat state vector.
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// RK4 is the classical fixed-step fourth-order Runge-Kutta integrator.
// Scratch buffers are reused across steps, so an RK4 value is not safe
// for concurrent use.
type RK4 struct {
	k1, k2, k3, k4 State
	scratch        State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(State, n)
		r.k2 = make(State, n)
		r.k3 = make(State, n)
		r.k4 = make(State, n)
		r.scratch = make(State, n)
	}
}

func (r *RK4) Step(sys System, x State, t, dt float64) State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt/2*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, t+dt/2))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt/2*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, t+dt/2))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	result := make(State, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt/6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return result
}

// Integrate steps sys from x0 at t=0 to t=tEnd with fixed step dt,
// shrinking the final step to land on tEnd exactly.
func (r *RK4) Integrate(sys System, x0 State, tEnd, dt float64) State {
	x := x0.Clone()
	if tEnd < 0 {
		dt = -dt
	}
	t := 0.0
	for {
		remaining := tEnd - t
		if (dt > 0 && remaining <= 0) || (dt < 0 && remaining >= 0) {
			return x
		}
		step := dt
		if (dt > 0 && remaining < dt) || (dt < 0 && remaining > dt) {
			step = remaining
		}
		x = r.Step(sys, x, t, step)
		t += step
	}
}

// FromOrbit flattens a state vector to [x y z vx vy vz].
func FromOrbit(st orbit.StateVector) State {
	return State{st.R[0], st.R[1], st.R[2], st.V[0], st.V[1], st.V[2]}
}

// ToOrbit is the inverse of FromOrbit.
func ToOrbit(x State) orbit.StateVector {
	return orbit.StateVector{
		R: orbit.Vec3{x[0], x[1], x[2]},
		V: orbit.Vec3{x[3], x[4], x[5]},
	}
}
