package bodies

import (
	"sort"
	"testing"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name   string
		wantGM float64
	}{
		{"earth", 3.986004418e5},
		{"Earth", 3.986004418e5},
		{"SUN", 1.32712440018e11},
		{"moon", 4.9028000661e3},
	}

	for _, tt := range tests {
		b, err := Get(tt.name)
		if err != nil {
			t.Errorf("Get(%q): %v", tt.name, err)
			continue
		}
		if b.GM != tt.wantGM {
			t.Errorf("Get(%q): want GM %g, got %g", tt.name, tt.wantGM, b.GM)
		}
		if b.Radius <= 0 {
			t.Errorf("Get(%q): non-positive radius %g", tt.name, b.Radius)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("planet-x"); err == nil {
		t.Error("expected error for unknown body")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(catalogue) {
		t.Fatalf("want %d names, got %d", len(catalogue), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	for _, name := range names {
		if _, err := Get(name); err != nil {
			t.Errorf("Get(%q) from Names: %v", name, err)
		}
	}
}
