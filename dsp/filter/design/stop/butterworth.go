package stop

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-notch/dsp/filter/biquad"
)

// Butterworth designs a Butterworth bandstop cascade.
//
// centerHz is the notch center frequency and bandwidthHz the stop band width,
// so the -3 dB edges sit at centerHz +/- bandwidthHz/2. order is the analog
// prototype order and must be a positive even integer; the band transformation
// doubles the pole count, so the result has exactly order biquad sections.
//
// Each section is normalized to unity DC gain. Because the pole quadratics
// all share the constant term W0^2, the per-section normalizations cancel and
// the full cascade has unity gain at both DC and Nyquist.
func Butterworth(sampleRate, centerHz, bandwidthHz float64, order int) ([]biquad.Coefficients, error) {
	w1, w2, err := stopParams(sampleRate, centerHz, bandwidthHz, order)
	if err != nil {
		return nil, err
	}

	// Prewarped band edges and derived transform constants.
	w0sq := w1 * w2
	bw := w2 - w1

	sections := make([]biquad.Coefficients, 0, order)

	for k := 1; k <= order/2; k++ {
		// Upper-half-plane Butterworth prototype pole.
		theta := math.Pi/2 + math.Pi*float64(2*k-1)/(2*float64(order))
		p := cmplx.Exp(complex(0, theta))

		// Lowpass-to-bandstop transformation: a prototype pole p maps to
		// the roots of s^2 - (BW/p)s + W0^2 = 0. Each root, paired with
		// its conjugate (contributed by the conjugate prototype pole),
		// forms one second-order analog section.
		q := complex(bw, 0) / p
		disc := cmplx.Sqrt(q*q - complex(4*w0sq, 0))

		for _, s := range [2]complex128{(q + disc) / 2, (q - disc) / 2} {
			sections = append(sections, bandstopSection(s, w0sq))
		}
	}

	return sections, nil
}

// bandstopSection converts one analog pole (with implicit conjugate) and the
// shared zero pair at +/- j*W0 into a digital biquad via the bilinear
// transform s = (1 - z^-1)/(1 + z^-1).
func bandstopSection(s complex128, w0sq float64) biquad.Coefficients {
	d1 := -2 * real(s)
	d0 := real(s)*real(s) + imag(s)*imag(s)

	a0 := 1 + d1 + d0
	a1 := 2 * (d0 - 1)
	a2 := 1 - d1 + d0

	n0 := 1 + w0sq
	n1 := 2 * (w0sq - 1)
	n2 := 1 + w0sq

	// Scale the numerator for unity gain at z=1 (DC).
	g := d0 / w0sq

	return biquad.Coefficients{
		B0: g * n0 / a0,
		B1: g * n1 / a0,
		B2: g * n2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
