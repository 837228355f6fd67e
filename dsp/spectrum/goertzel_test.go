package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-notch/internal/testutil"
)

func TestNewGoertzel_Validation(t *testing.T) {
	tests := []struct {
		name             string
		freq, sampleRate float64
	}{
		{"zero sample rate", 1000, 0},
		{"negative sample rate", 1000, -48000},
		{"negative frequency", -1, 48000},
		{"above nyquist", 30000, 48000},
		{"nan frequency", math.NaN(), 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGoertzel(tt.freq, tt.sampleRate); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestToneMagnitude_MatchesAmplitude(t *testing.T) {
	// 100 full cycles, so the tone aligns with the block.
	sig := testutil.DeterministicSine(1000, 48000, 0.5, 4800)

	mag, err := ToneMagnitude(sig, 1000, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mag-0.5) > 0.02 {
		t.Fatalf("tone magnitude = %v, want ~0.5", mag)
	}
}

func TestToneMagnitude_RejectsOffFrequency(t *testing.T) {
	sig := testutil.DeterministicSine(1000, 48000, 1.0, 4800)

	mag, err := ToneMagnitude(sig, 3000, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if mag > 0.05 {
		t.Fatalf("off-frequency magnitude = %v, want < 0.05", mag)
	}
}

func TestGoertzel_BlockMatchesSample(t *testing.T) {
	sig := testutil.DeterministicNoise(7, 1.0, 256)

	g1, err := NewGoertzel(440, 48000)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range sig {
		g1.ProcessSample(x)
	}

	g2, err := NewGoertzel(440, 48000)
	if err != nil {
		t.Fatal(err)
	}
	g2.ProcessBlock(sig)

	if math.Abs(g1.Power()-g2.Power()) > 1e-9 {
		t.Fatalf("power mismatch: sample %v, block %v", g1.Power(), g2.Power())
	}
}

func TestGoertzel_Reset(t *testing.T) {
	g, err := NewGoertzel(440, 48000)
	if err != nil {
		t.Fatal(err)
	}
	g.ProcessBlock(testutil.DeterministicSine(440, 48000, 1, 480))
	if g.Power() == 0 {
		t.Fatal("power unexpectedly zero after processing")
	}

	g.Reset()
	if g.Power() != 0 {
		t.Fatalf("power after reset = %v, want 0", g.Power())
	}
}

func BenchmarkGoertzel_ProcessBlock(b *testing.B) {
	g, err := NewGoertzel(1000, 48000)
	if err != nil {
		b.Fatal(err)
	}
	sig := testutil.DeterministicSine(1000, 48000, 1, 1024)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		g.ProcessBlock(sig)
	}
}
