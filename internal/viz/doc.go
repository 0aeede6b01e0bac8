// Package viz renders propagated trajectories in the terminal: a
// braille-dot canvas for the orbit track, lipgloss styles for the stats
// panel, and a bubbletea model for the live animated view.
package viz
