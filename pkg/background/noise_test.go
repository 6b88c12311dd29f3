package background

import (
	"math"
	"testing"
)

func TestValueNoiseRangeAndPurity(t *testing.T) {
	for i := range 500 {
		x := float64(i)*0.731 - 90
		y := float64(i)*1.37 + 12.5
		v := ValueNoise(x, y)
		if v < 0 || v > 1 || math.IsNaN(v) {
			t.Fatalf("ValueNoise(%v, %v) = %v out of [0,1]", x, y, v)
		}
		if again := ValueNoise(x, y); again != v {
			t.Fatalf("ValueNoise not pure at (%v, %v): %v != %v", x, y, v, again)
		}
	}
}

func TestValueNoiseMatchesLattice(t *testing.T) {
	// At integer points interpolation weights are zero.
	for _, p := range [][2]int64{{0, 0}, {3, -7}, {-12, 40}} {
		if got, want := ValueNoise(float64(p[0]), float64(p[1])), hash(p[0], p[1]); got != want {
			t.Errorf("ValueNoise(%v) = %v, want lattice value %v", p, got, want)
		}
	}
}

func TestValueNoiseContinuous(t *testing.T) {
	const eps = 1e-6
	for _, x := range []float64{0.999999, 2.5, -1.000001} {
		a := ValueNoise(x, 0.3)
		b := ValueNoise(x+eps, 0.3)
		if math.Abs(a-b) > 1e-3 {
			t.Errorf("discontinuity at x=%v: %v vs %v", x, a, b)
		}
	}
}

func TestFBMRange(t *testing.T) {
	upper := 1 - math.Pow(0.5, Octaves)
	for i := range 300 {
		x, y := float64(i)*0.173, float64(i)*-0.291
		v := FBM(x, y, Octaves)
		if v < 0 || v > upper+1e-12 {
			t.Fatalf("FBM(%v, %v) = %v out of [0, %v]", x, y, v, upper)
		}
	}
	if FBM(1, 2, 0) != 0 {
		t.Error("FBM with zero octaves should be 0")
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct{ e0, e1, x, want float64 }{
		{0, 1, -1, 0},
		{0, 1, 2, 1},
		{0, 1, 0.5, 0.5},
		{1, 1, 0.5, 0},
		{1, 1, 1, 1},
	}
	for _, tt := range tests {
		if got := smoothstep(tt.e0, tt.e1, tt.x); got != tt.want {
			t.Errorf("smoothstep(%v, %v, %v) = %v, want %v", tt.e0, tt.e1, tt.x, got, tt.want)
		}
	}
}
