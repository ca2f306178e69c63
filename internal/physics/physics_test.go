package physics

import (
	"math"
	"testing"
)

func TestDistanceTo(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 6, Z: 3}
	if got := a.DistanceTo(b); got != 5 {
		t.Fatalf("DistanceTo = %v, want 5", got)
	}
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Fatalf("Distance = %v, want 5", got)
	}
}

func TestWithinIsStrict(t *testing.T) {
	origin := Vec3{}
	if origin.Within(Vec3{X: 2}, 2) {
		t.Fatal("a point exactly at the threshold must not count as within")
	}
	if !origin.Within(Vec3{X: 1.999}, 2) {
		t.Fatal("a point just inside the threshold must count as within")
	}
}

func TestClampAndLerp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, -1, 1, 1},
		{-5, -1, 1, -1},
		{0.5, -1, 1, 0.5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Lerp(0, 10, 0.1); got != 1 {
		t.Fatalf("Lerp = %v, want 1", got)
	}
}

func TestPolar(t *testing.T) {
	x, y := Polar(math.Pi/2, 3)
	if math.Abs(x) > 1e-12 || math.Abs(y-3) > 1e-12 {
		t.Fatalf("Polar(pi/2, 3) = (%v, %v), want (0, 3)", x, y)
	}
}
