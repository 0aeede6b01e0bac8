package kepler

import (
	"math"
	"testing"
)

func TestGaussCFAtZero(t *testing.T) {
	g, iters, ok := gaussCF(0)
	if !ok {
		t.Fatal("expected convergence at q=0")
	}
	if math.Abs(g-1) > 1e-14 {
		t.Errorf("expected G(0)=1, got %g", g)
	}
	if iters == 0 {
		t.Error("expected at least one iteration")
	}
}

func TestGaussCFConverges(t *testing.T) {
	tests := []struct {
		name string
		q    float64
	}{
		{"tiny", 1e-10},
		{"small", 0.1},
		{"quarter", 0.25},
		{"nominal ceiling", 0.5},
		{"large", 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, iters, ok := gaussCF(tt.q)
			if !ok {
				t.Fatalf("q=%g did not converge in %d iterations", tt.q, iters)
			}
			if math.IsNaN(g) || math.IsInf(g, 0) {
				t.Fatalf("q=%g produced invalid value %g", tt.q, g)
			}
			if g < 1 {
				t.Errorf("q=%g: expected G >= 1, got %g", tt.q, g)
			}
		})
	}
}

func TestGaussCFMonotoneInQ(t *testing.T) {
	prev := 0.0
	for _, q := range []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5} {
		g, _, ok := gaussCF(q)
		if !ok {
			t.Fatalf("q=%g did not converge", q)
		}
		if g < prev {
			t.Errorf("G not monotone: G(%g)=%g < previous %g", q, g, prev)
		}
		prev = g
	}
}

func TestGaussCFIterationsGrowWithQ(t *testing.T) {
	_, fewIters, _ := gaussCF(0.01)
	_, manyIters, _ := gaussCF(0.9)
	if manyIters <= fewIters {
		t.Errorf("expected more iterations at q=0.9 (%d) than q=0.01 (%d)", manyIters, fewIters)
	}
}

func BenchmarkGaussCF(b *testing.B) {
	for i := 0; i < b.N; i++ {
		gaussCF(0.3)
	}
}
