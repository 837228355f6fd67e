// Command notchinfo prints the design and measured response of a
// Butterworth bandstop filter.
//
// Usage:
//
//	notchinfo [flags]
//
// Examples:
//
//	notchinfo
//	notchinfo -rate 30000 -low 59 -high 61
//	notchinfo -rate 48000 -low 990 -high 1010 -order 8 -points 31
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-notch/dsp/core"
	"github.com/cwbudde/algo-notch/dsp/filter/notch"
	"github.com/cwbudde/algo-notch/dsp/spectrum"
	"github.com/cwbudde/algo-notch/dsp/stream"
)

func main() {
	rate := flag.Float64("rate", 30000, "sample rate in Hz")
	low := flag.Float64("low", stream.DefaultLowCutHz, "lower band edge in Hz")
	high := flag.Float64("high", stream.DefaultHighCutHz, "upper band edge in Hz")
	order := flag.Int("order", 4, "bandstop prototype order (even)")
	points := flag.Int("points", 25, "number of rows in the response sweep")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notchinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints coefficients, the designed magnitude response and the\n")
		fmt.Fprintf(os.Stderr, "measured stop-band attenuation of a Butterworth bandstop filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *low >= *high {
		fmt.Fprintf(os.Stderr, "error: low edge %g Hz must be below high edge %g Hz\n", *low, *high)
		os.Exit(1)
	}

	center := (*low + *high) / 2
	bandwidth := *high - *low

	f := notch.New(notch.WithOrder(*order))
	if err := f.Configure(*rate, center, bandwidth); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bandstop %g..%g Hz (center %g Hz, width %g Hz)\n", *low, *high, center, bandwidth)
	fmt.Printf("Sample rate %g Hz, order %d, %d biquad sections\n\n", *rate, f.Order(), f.NumSections())

	printCoefficients(f)
	fmt.Println()
	printResponse(f, *low, *high, *rate, *points)
	fmt.Println()
	printMeasured(f, center, *rate)
}

func printCoefficients(f *notch.Filter) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Section\tB0\tB1\tB2\tA1\tA2\n")
	fmt.Fprintf(tw, "-------\t--\t--\t--\t--\t--\n")
	for i, c := range f.Coefficients() {
		fmt.Fprintf(tw, "%d\t%+.8f\t%+.8f\t%+.8f\t%+.8f\t%+.8f\n", i, c.B0, c.B1, c.B2, c.A1, c.A2)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// printResponse sweeps the designed magnitude response over a log-spaced
// grid spanning two decades around the stop band, capped at Nyquist.
func printResponse(f *notch.Filter, low, high, rate float64, points int) {
	points = int(core.Clamp(float64(points), 5, 200))

	fmin := math.Max(low/10, 0.1)
	fmax := math.Min(high*10, rate/2*0.99)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tMagnitude [dB]\n")
	fmt.Fprintf(tw, "--------------\t--------------\n")
	ratio := fmax / fmin
	for i := 0; i < points; i++ {
		freq := fmin * math.Pow(ratio, float64(i)/float64(points-1))
		fmt.Fprintf(tw, "%.2f\t%.2f\n", freq, f.MagnitudeDB(freq))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// printMeasured pushes a tone at the notch center through the filter and
// reports the residual level once the transient has decayed.
func printMeasured(f *notch.Filter, center, rate float64) {
	n := int(2 * rate)
	sig := make([]float64, n)
	w := 2 * math.Pi * center / rate
	for i := range sig {
		sig[i] = math.Sin(w * float64(i))
	}
	f.ProcessBlock(sig)

	mag, err := spectrum.ToneMagnitude(sig[n/2:], center, rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Measured %g Hz tone after 1 s settling: %.2f dB\n", center, core.LinearToDB(mag))
}
