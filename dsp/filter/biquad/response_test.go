package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponse_PassthroughIsUnity(t *testing.T) {
	c := Passthrough()
	for _, f := range []float64{0, 100, 1000, 10000, 23999} {
		h := c.Response(f, 48000)
		if math.Abs(cmplx.Abs(h)-1) > 1e-12 {
			t.Errorf("|H(%v)| = %v, want 1", f, cmplx.Abs(h))
		}
	}
}

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	c := simpleLowpass()
	for _, f := range []float64{10, 100, 1000, 5000, 20000} {
		want := cmplx.Abs(c.Response(f, 48000))
		got := math.Sqrt(c.MagnitudeSquared(f, 48000))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("f=%v: closed form %v, response %v", f, got, want)
		}
	}
}

func TestChainResponse_IsSectionProduct(t *testing.T) {
	coeffs := twoSections()
	chain := NewChain(coeffs)

	f := 1234.0
	sr := 48000.0
	want := coeffs[0].Response(f, sr) * coeffs[1].Response(f, sr)
	got := chain.Response(f, sr)
	if cmplx.Abs(got-want) > 1e-12 {
		t.Fatalf("chain response %v, want %v", got, want)
	}
}

func TestImpulseResponse_PreservesState(t *testing.T) {
	chain := NewChain(twoSections())
	chain.ProcessSample(1)
	chain.ProcessSample(0.5)

	before := chain.State()
	ir := chain.ImpulseResponse(16)
	after := chain.State()

	if len(ir) != 16 {
		t.Fatalf("len(ir) = %d, want 16", len(ir))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("section %d state disturbed: %v -> %v", i, before[i], after[i])
		}
	}
}

func TestIsStable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{"passthrough", Passthrough(), true},
		{"lowpass", simpleLowpass(), true},
		{"pole on unit circle", Coefficients{B0: 1, A1: -2, A2: 1}, false},
		{"pole outside", Coefficients{B0: 1, A1: 0, A2: 1.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsStable(); got != tt.want {
				t.Errorf("IsStable() = %v, want %v (poles %v)", got, tt.want, tt.c.Poles())
			}
		})
	}
}

func TestPolesZeros_Quadratic(t *testing.T) {
	// (1 - 0.5 z^-1)(1 - 0.25 z^-1) = 1 - 0.75 z^-1 + 0.125 z^-2
	c := Coefficients{B0: 1, A1: -0.75, A2: 0.125}
	poles := c.Poles()

	got := []float64{real(poles[0]), real(poles[1])}
	if got[0] < got[1] {
		got[0], got[1] = got[1], got[0]
	}
	if math.Abs(got[0]-0.5) > 1e-12 || math.Abs(got[1]-0.25) > 1e-12 {
		t.Fatalf("poles = %v, want 0.5 and 0.25", poles)
	}
}
