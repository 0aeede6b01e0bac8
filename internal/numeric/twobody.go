package numeric

import "math"

// TwoBody is the unperturbed two-body ODE in Cartesian coordinates.
// State layout: [x, y, z, vx, vy, vz].
type TwoBody struct {
	Mu float64 // km^3/s^2
}

func (tb *TwoBody) Dim() int { return 6 }

func (tb *TwoBody) Derive(x State, _ float64) State {
	r2 := x[0]*x[0] + x[1]*x[1] + x[2]*x[2]
	r := math.Sqrt(r2)
	a := -tb.Mu / (r2 * r)

	return State{
		x[3], x[4], x[5],
		a * x[0], a * x[1], a * x[2],
	}
}

// Energy returns the specific orbital energy of a flat state.
func (tb *TwoBody) Energy(x State) float64 {
	v2 := x[3]*x[3] + x[4]*x[4] + x[5]*x[5]
	r := math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
	return v2/2 - tb.Mu/r
}
