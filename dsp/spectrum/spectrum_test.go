package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-notch/internal/testutil"
)

func TestAnalyze_PeakAtToneBin(t *testing.T) {
	sr := 48000.0
	sig := testutil.DeterministicSine(1500, sr, 1.0, 4096)

	bins, err := Analyze(sig)
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != 4096 {
		t.Fatalf("len(bins) = %d, want 4096", len(bins))
	}

	mags := Magnitude(bins)

	peak := 0
	for i := 1; i < len(mags)/2; i++ {
		if mags[i] > mags[peak] {
			peak = i
		}
	}

	want := BinIndex(1500, sr, len(bins))
	if peak != want {
		t.Fatalf("peak at bin %d (%.1f Hz), want bin %d",
			peak, BinFreq(peak, len(bins), sr), want)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	if _, err := Analyze(nil); err == nil {
		t.Fatal("expected error for empty signal")
	}
}

func TestMagnitudePowerConsistent(t *testing.T) {
	sig := testutil.DeterministicNoise(3, 1.0, 512)

	bins, err := Analyze(sig)
	if err != nil {
		t.Fatal(err)
	}

	mags := Magnitude(bins)
	pows := Power(bins)
	if len(mags) != len(pows) {
		t.Fatalf("length mismatch: %d vs %d", len(mags), len(pows))
	}
	for i := range mags {
		if math.Abs(pows[i]-mags[i]*mags[i]) > 1e-6*(1+pows[i]) {
			t.Fatalf("bin %d: power %v, magnitude^2 %v", i, pows[i], mags[i]*mags[i])
		}
	}
}

func TestBinIndexFreqRoundTrip(t *testing.T) {
	sr := 48000.0
	fftSize := 8192

	for _, f := range []float64{0, 60, 1000, 12000, 23999} {
		bin := BinIndex(f, sr, fftSize)
		back := BinFreq(bin, fftSize, sr)
		if math.Abs(back-f) > sr/float64(fftSize) {
			t.Errorf("f=%v: bin %d maps back to %v", f, bin, back)
		}
	}
}
