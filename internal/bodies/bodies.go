// Package bodies is the catalogue of central bodies the CLI can
// propagate around. GM values are km^3/s^2, radii km (DE astronomical
// constants, truncated to the precision the solver cares about).
package bodies

import (
	"fmt"
	"sort"
	"strings"
)

type Body struct {
	Name   string
	GM     float64 // km^3/s^2
	Radius float64 // km, equatorial
}

var catalogue = map[string]Body{
	"sun":     {Name: "Sun", GM: 1.32712440018e11, Radius: 696000},
	"mercury": {Name: "Mercury", GM: 2.2031868551e4, Radius: 2439.7},
	"venus":   {Name: "Venus", GM: 3.24858592e5, Radius: 6051.8},
	"earth":   {Name: "Earth", GM: 3.986004418e5, Radius: 6378.137},
	"moon":    {Name: "Moon", GM: 4.9028000661e3, Radius: 1737.4},
	"mars":    {Name: "Mars", GM: 4.282837e4, Radius: 3396.2},
	"jupiter": {Name: "Jupiter", GM: 1.26686534e8, Radius: 71492},
	"saturn":  {Name: "Saturn", GM: 3.7931187e7, Radius: 60268},
	"uranus":  {Name: "Uranus", GM: 5.793939e6, Radius: 25559},
	"neptune": {Name: "Neptune", GM: 6.836529e6, Radius: 24764},
}

// Get looks up a body by name, case-insensitive.
func Get(name string) (Body, error) {
	b, ok := catalogue[strings.ToLower(name)]
	if !ok {
		return Body{}, fmt.Errorf("unknown body: %s (available: %v)", name, Names())
	}
	return b, nil
}

// Names returns the catalogue keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
