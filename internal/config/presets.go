package config

// Presets are ready-made scenarios for the CLI. Velocities are rough
// circular or mission-typical values, not mission-exact.
var Presets = map[string]*Config{
	"leo": {
		Body: "earth", Unit: "seconds",
		Position: [3]float64{6778.137, 0, 0},
		Velocity: [3]float64{0, 7.6686, 0},
		Span:     Span{Start: 0, Stop: 5400, Step: 60},
	},
	"geo": {
		Body: "earth", Unit: "seconds",
		Position: [3]float64{42164, 0, 0},
		Velocity: [3]float64{0, 3.0747, 0},
		Span:     Span{Start: 0, Stop: 86164, Step: 600},
	},
	"molniya": {
		Body: "earth", Unit: "seconds",
		Position: [3]float64{6928.137, 0, 0},
		Velocity: [3]float64{0, 5.847, 7.806},
		Span:     Span{Start: 0, Stop: 43082, Step: 300},
	},
	"heliocentric": {
		Body: "sun", Unit: "days",
		Position: [3]float64{150e6, 0, -2e3},
		Velocity: [3]float64{1.2, 29.4, 0.01},
		Span:     Span{Start: 0, Stop: 365.25, Step: 1},
	},
	"flyby": {
		// Hyperbolic Earth departure.
		Body: "earth", Unit: "seconds",
		Position: [3]float64{6678.137, 0, 0},
		Velocity: [3]float64{0, 12.5, 0},
		Span:     Span{Start: 0, Stop: 86400, Step: 600},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
