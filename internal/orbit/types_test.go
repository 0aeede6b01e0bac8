package orbit

import (
	"math"
	"testing"
)

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot: want 12, got %g", got)
	}
	if got := a.Cross(b); got != (Vec3{27, 6, -13}) {
		t.Errorf("Cross: want {27 6 -13}, got %v", got)
	}
	if got := a.Add(b); got != (Vec3{5, -3, 9}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 7, -3}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale: got %v", got)
	}
	if got := (Vec3{3, 4, 0}).Norm(); got != 5 {
		t.Errorf("Norm: want 5, got %g", got)
	}
}

func TestVec3IsValid(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec3{math.NaN(), 0, 0}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vec3{0, math.Inf(1), 0}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}

func TestStateVectorDerived(t *testing.T) {
	st := StateVector{
		R: Vec3{7000, 0, 0},
		V: Vec3{0, 7.5, 0},
	}

	if got := st.Radius(); got != 7000 {
		t.Errorf("Radius: got %g", got)
	}
	if got := st.Speed(); got != 7.5 {
		t.Errorf("Speed: got %g", got)
	}

	mu := 398600.4418
	wantE := 7.5*7.5/2 - mu/7000
	if got := st.Energy(mu); math.Abs(got-wantE) > 1e-12 {
		t.Errorf("Energy: want %g, got %g", wantE, got)
	}
	if got := st.AngularMomentum(); got != (Vec3{0, 0, 52500}) {
		t.Errorf("AngularMomentum: got %v", got)
	}
}

func TestParseTimeUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeUnit
		wantErr bool
	}{
		{"seconds", Seconds, false},
		{"s", Seconds, false},
		{"sec", Seconds, false},
		{"days", Days, false},
		{"d", Days, false},
		{"day", Days, false},
		{"DAYS", Days, false},
		{"", "", true},
		{"hours", "", true},
		{"fortnights", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTimeUnit(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeUnit(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeUnit(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeUnit(%q): want %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestTimeUnitFactor(t *testing.T) {
	if got, err := Seconds.Factor(); err != nil || got != 1 {
		t.Errorf("Seconds.Factor: got %g, %v", got, err)
	}
	if got, err := Days.Factor(); err != nil || got != 86400 {
		t.Errorf("Days.Factor: got %g, %v", got, err)
	}
	if _, err := TimeUnit("weeks").Factor(); err == nil {
		t.Error("Factor on unknown unit: expected error")
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusConverged.String(); got != "ok" {
		t.Errorf("StatusConverged: got %q", got)
	}
	if got := StatusFallback.String(); got != "fallback" {
		t.Errorf("StatusFallback: got %q", got)
	}
}
