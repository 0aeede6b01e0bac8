package viz

import (
	"math"

	"github.com/san-kum/orbprop/internal/orbit"
)

// Track renders a propagated trajectory onto a braille canvas, projected
// onto the plane of the orbit's two largest position components. The
// central body sits at the focus, drawn to scale when its radius is
// visible at the chosen zoom.
type Track struct {
	canvas     *Canvas
	bodyRadius float64 // km, 0 to skip the disc
}

func NewTrack(w, h int, bodyRadius float64) *Track {
	return &Track{
		canvas:     NewCanvas(w, h),
		bodyRadius: bodyRadius,
	}
}

// Render draws the trajectory and returns the canvas text. The extra
// highlight index marks the current state with a short cross, or pass -1.
func (t *Track) Render(states []orbit.StateVector, highlight int) string {
	t.canvas.Clear()
	if len(states) == 0 {
		return t.canvas.String()
	}

	ax0, ax1 := dominantAxes(states)

	// Scale to fit with the focus at the canvas center.
	maxAbs := t.bodyRadius
	for _, st := range states {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(st.R[ax0]), math.Abs(st.R[ax1])))
	}
	if maxAbs == 0 {
		return t.canvas.String()
	}

	pw := t.canvas.Width * 2
	ph := t.canvas.Height * 4
	cx, cy := pw/2, ph/2
	scale := float64(minInt(pw, ph)) / 2.2 / maxAbs

	px := func(st orbit.StateVector) (int, int) {
		// Terminal rows grow downward, flip y.
		return cx + int(st.R[ax0]*scale), cy - int(st.R[ax1]*scale)
	}

	if t.bodyRadius > 0 {
		t.canvas.DrawCircle(cx, cy, int(t.bodyRadius*scale))
	}

	prevX, prevY := px(states[0])
	t.canvas.Set(prevX, prevY)
	for _, st := range states[1:] {
		x, y := px(st)
		t.canvas.DrawLine(prevX, prevY, x, y)
		prevX, prevY = x, y
	}

	if highlight >= 0 && highlight < len(states) {
		hx, hy := px(states[highlight])
		t.canvas.Set(hx-1, hy)
		t.canvas.Set(hx+1, hy)
		t.canvas.Set(hx, hy-1)
		t.canvas.Set(hx, hy+1)
	}

	return t.canvas.String()
}

// dominantAxes picks the two coordinate axes with the largest position
// spread, so near-planar orbits render edge-on rather than as a line.
func dominantAxes(states []orbit.StateVector) (int, int) {
	var spread [3]float64
	for axis := 0; axis < 3; axis++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, st := range states {
			lo = math.Min(lo, st.R[axis])
			hi = math.Max(hi, st.R[axis])
		}
		spread[axis] = hi - lo
	}

	first, second := 0, 1
	for axis := 1; axis < 3; axis++ {
		if spread[axis] > spread[first] {
			first = axis
		}
	}
	second = (first + 1) % 3
	for axis := 0; axis < 3; axis++ {
		if axis != first && spread[axis] > spread[second] {
			second = axis
		}
	}
	if first > second {
		first, second = second, first
	}
	return first, second
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
