package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Analyze computes the complex spectrum of a real signal, zero-padded to the
// next power of two.
func Analyze(signal []float64) ([]complex128, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("spectrum: empty signal")
	}

	fftSize := nextPow2(len(signal))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, x := range signal {
		in[i] = complex(x, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT: %w", err)
	}

	return out, nil
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// The square roots are computed with SIMD kernels where available.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Power(out, re, im)
	return out
}

// BinIndex returns the spectrum bin closest to freqHz for the given FFT size
// and sample rate.
func BinIndex(freqHz, sampleRate float64, fftSize int) int {
	if sampleRate <= 0 || fftSize <= 0 {
		return 0
	}

	bin := int(math.Round(freqHz / sampleRate * float64(fftSize)))
	if bin < 0 {
		bin = 0
	}
	if bin > fftSize/2 {
		bin = fftSize / 2
	}
	return bin
}

// BinFreq returns the center frequency in Hz of the given spectrum bin.
func BinFreq(bin, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(fftSize)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
