package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbprop/internal/orbit"
)

const (
	liveCanvasWidth  = 60
	liveCanvasHeight = 22
	radiusHistory    = 120
)

type TickMsg time.Time

// Model animates a propagated batch result step by step.
type Model struct {
	bodyName string
	mu       float64
	steps    []orbit.StepResult
	states   []orbit.StateVector
	track    *Track

	idx     int
	running bool
	fps     int
	radii   []float64
}

func NewModel(bodyName string, bodyRadius, mu float64, result *orbit.Result, fps int) Model {
	states := make([]orbit.StateVector, len(result.Steps))
	for i, s := range result.Steps {
		states[i] = s.State
	}
	return Model{
		bodyName: bodyName,
		mu:       mu,
		steps:    result.Steps,
		states:   states,
		track:    NewTrack(liveCanvasWidth, liveCanvasHeight, bodyRadius),
		running:  true,
		fps:      fps,
	}
}

func (m Model) Init() tea.Cmd {
	return tick(m.fps)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.idx = 0
			m.radii = m.radii[:0]
		}
		return m, nil

	case TickMsg:
		if m.running && len(m.steps) > 0 {
			m.idx = (m.idx + 1) % len(m.steps)
			m.radii = append(m.radii, m.states[m.idx].Radius())
			if len(m.radii) > radiusHistory {
				m.radii = m.radii[1:]
			}
		}
		return m, tick(m.fps)
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.steps) == 0 {
		return "no steps to display\n"
	}

	step := m.steps[m.idx]
	st := step.State

	canvas := CanvasStyle.Render(m.track.Render(m.states, m.idx))

	status := StatusOk.Render("converged")
	if step.Status == orbit.StatusFallback {
		status = StatusFallback.Render("fallback")
	}

	stats := HeaderStyle.Render(fmt.Sprintf("orbit around %s", m.bodyName)) + "\n" +
		statRow("t", fmt.Sprintf("%.0f s", step.Time)) +
		statRow("radius", fmt.Sprintf("%.1f km", st.Radius())) +
		statRow("speed", fmt.Sprintf("%.4f km/s", st.Speed())) +
		statRow("energy", fmt.Sprintf("%.6g km²/s²", st.Energy(m.mu))) +
		statRow("status", status) +
		statRow("iterations", fmt.Sprintf("%d / %d cf", step.Diag.OuterIters, step.Diag.InnerIters)) +
		statRow("step", fmt.Sprintf("%d of %d", m.idx+1, len(m.steps)))

	view := lipgloss.JoinHorizontal(lipgloss.Top, canvas, StatsStyle.Render(stats))

	if len(m.radii) >= 2 {
		graph := asciigraph.Plot(m.radii,
			asciigraph.Height(6),
			asciigraph.Width(liveCanvasWidth+30),
			asciigraph.Caption("radius (km)"))
		view += "\n" + GraphStyle.Render(graph)
	}

	view += "\n" + HelpStyle.Render("space pause · r restart · q quit")
	return view
}

func statRow(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value) + "\n"
}

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Run starts the live view and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
