package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi float64
		want          float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -2, 0, 1, 0},
		{"above", 3, 0, 1, 1},
		{"swapped bounds", 3, 1, 0, 1},
		{"at edge", 1, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Error("values within eps reported unequal")
	}
	if NearlyEqual(1.0, 1.1, 1e-12) {
		t.Error("distant values reported equal")
	}
	// Relative comparison for large magnitudes.
	if !NearlyEqual(1e12, 1e12+1, 1e-9) {
		t.Error("relatively close large values reported unequal")
	}
	// Non-positive eps falls back to the default.
	if !NearlyEqual(2.0, 2.0, 0) {
		t.Error("identical values unequal with default eps")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-31); got != 0 {
		t.Errorf("FlushDenormals(1e-31) = %v, want 0", got)
	}
	if got := FlushDenormals(-1e-31); got != 0 {
		t.Errorf("FlushDenormals(-1e-31) = %v, want 0", got)
	}
	if got := FlushDenormals(1e-20); got != 1e-20 {
		t.Errorf("FlushDenormals(1e-20) = %v, want unchanged", got)
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(1); got != 0 {
		t.Errorf("LinearToDB(1) = %v, want 0", got)
	}
	if got := LinearToDB(10); math.Abs(got-20) > 1e-12 {
		t.Errorf("LinearToDB(10) = %v, want 20", got)
	}
	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Errorf("LinearToDB(0) = %v, want -Inf", got)
	}
	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Errorf("LinearToDB(-1) = %v, want NaN", got)
	}
}

func TestLinearPowerToDB(t *testing.T) {
	if got := LinearPowerToDB(10); math.Abs(got-10) > 1e-12 {
		t.Errorf("LinearPowerToDB(10) = %v, want 10", got)
	}
	if got := LinearPowerToDB(0); !math.IsInf(got, -1) {
		t.Errorf("LinearPowerToDB(0) = %v, want -Inf", got)
	}
	if got := LinearPowerToDB(-0.5); !math.IsNaN(got) {
		t.Errorf("LinearPowerToDB(-0.5) = %v, want NaN", got)
	}
}
