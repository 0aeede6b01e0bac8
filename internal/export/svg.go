// Package export writes propagated trajectories to standalone SVG files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orbprop/internal/orbit"
)

const (
	svgWidth        = 600
	svgHeight       = 600
	plotMargin      = 40
	backgroundColor = "#0a0a14"
	trackColor      = "#00ccff"
	bodyColor       = "#ffaa00"
	markerColor     = "#ff4466"
	trackWidth      = "1.5"
)

// TrajectorySVG renders the orbit track projected on the x-y plane with
// the central body at the focus. bodyRadius draws the body disc to scale
// (pass 0 to draw a small fixed marker instead).
func TrajectorySVG(states []orbit.StateVector, bodyRadius float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, svgWidth, svgHeight, svgWidth, svgHeight, backgroundColor))

	if len(states) < 2 {
		b.WriteString(`<text x="40" y="40" fill="white">not enough states for a track</text></svg>`)
		return b.String()
	}

	maxAbs := bodyRadius
	for _, st := range states {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(st.R[0]), math.Abs(st.R[1])))
	}
	scale := (float64(svgWidth)/2 - plotMargin) / maxAbs
	cx, cy := float64(svgWidth)/2, float64(svgHeight)/2

	px := func(st orbit.StateVector) (float64, float64) {
		return cx + st.R[0]*scale, cy - st.R[1]*scale
	}

	// Central body.
	r := bodyRadius * scale
	if r < 2 {
		r = 2
	}
	b.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, r, bodyColor))

	// Track as a single polyline path.
	b.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%s" d="`, trackColor, trackWidth))
	for i, st := range states {
		x, y := px(st)
		if i == 0 {
			b.WriteString(fmt.Sprintf("M%.1f %.1f", x, y))
		} else {
			b.WriteString(fmt.Sprintf(" L%.1f %.1f", x, y))
		}
	}
	b.WriteString("\"/>\n")

	// Mark the initial state.
	x0, y0 := px(states[0])
	b.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x0, y0, markerColor))

	b.WriteString("</svg>\n")
	return b.String()
}
