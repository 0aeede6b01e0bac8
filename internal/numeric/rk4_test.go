package numeric

import (
	"math"
	"testing"

	"github.com/san-kum/orbprop/internal/orbit"
)

const earthMu = 398600.4418

// oscillator is x'' = -x, period 2pi, with the known solution
// x(t) = cos(t) from x(0)=1, x'(0)=0.
type oscillator struct{}

func (oscillator) Dim() int { return 2 }

func (oscillator) Derive(x State, t float64) State {
	return State{x[1], -x[0]}
}

func TestRK4Oscillator(t *testing.T) {
	r := NewRK4()
	x := r.Integrate(oscillator{}, State{1, 0}, math.Pi, 0.001)

	if math.Abs(x[0]-(-1)) > 1e-9 {
		t.Errorf("x(pi): want -1, got %g", x[0])
	}
	if math.Abs(x[1]) > 1e-9 {
		t.Errorf("x'(pi): want 0, got %g", x[1])
	}
}

func TestIntegrateBackwards(t *testing.T) {
	r := NewRK4()
	x := r.Integrate(oscillator{}, State{1, 0}, -math.Pi/2, 0.001)

	if math.Abs(x[0]) > 1e-9 {
		t.Errorf("x(-pi/2): want 0, got %g", x[0])
	}
	if math.Abs(x[1]-1) > 1e-9 {
		t.Errorf("x'(-pi/2): want 1, got %g", x[1])
	}
}

func TestIntegratePartialFinalStep(t *testing.T) {
	// tEnd not a multiple of dt: the last step must shrink to land
	// exactly, not overshoot.
	r := NewRK4()
	x := r.Integrate(oscillator{}, State{1, 0}, 1.2345, 0.1)

	if math.Abs(x[0]-math.Cos(1.2345)) > 1e-5 {
		t.Errorf("x(1.2345): want %g, got %g", math.Cos(1.2345), x[0])
	}
}

func TestTwoBodyCircularOrbit(t *testing.T) {
	radius := 7000.0
	vc := math.Sqrt(earthMu / radius)
	period := 2 * math.Pi * math.Sqrt(radius*radius*radius/earthMu)

	st := orbit.StateVector{
		R: orbit.Vec3{radius, 0, 0},
		V: orbit.Vec3{0, vc, 0},
	}

	sys := &TwoBody{Mu: earthMu}
	r := NewRK4()
	out := ToOrbit(r.Integrate(sys, FromOrbit(st), period, 1.0))

	if d := out.R.Sub(st.R).Norm() / radius; d > 1e-6 {
		t.Errorf("after one period: position off by %g relative", d)
	}
	if math.Abs(out.Radius()-radius)/radius > 1e-8 {
		t.Errorf("radius drift: %g", out.Radius()-radius)
	}
}

func TestTwoBodyEnergyConservation(t *testing.T) {
	st := orbit.StateVector{
		R: orbit.Vec3{8000, 1000, -500},
		V: orbit.Vec3{-1, 7, 0.5},
	}

	sys := &TwoBody{Mu: earthMu}
	e0 := sys.Energy(FromOrbit(st))
	if want := st.Energy(earthMu); math.Abs(e0-want) > 1e-12 {
		t.Fatalf("Energy disagrees with state vector: %g vs %g", e0, want)
	}

	r := NewRK4()
	x := FromOrbit(st)
	for i := 0; i < 1000; i++ {
		x = r.Step(sys, x, 0, 5.0)
	}
	if drift := math.Abs(sys.Energy(x)-e0) / math.Abs(e0); drift > 1e-8 {
		t.Errorf("energy drift after 1000 steps: %g", drift)
	}
}
