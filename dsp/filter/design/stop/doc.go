// Package stop designs Butterworth bandstop (notch) filter cascades.
//
// The design path is the classical one: an analog Butterworth lowpass
// prototype of the requested order, the lowpass-to-bandstop frequency
// transformation with prewarped edge frequencies, and a bilinear transform
// of each resulting second-order analog section into a digital biquad.
// The output is a slice of [biquad.Coefficients] ready for [biquad.NewChain].
//
// A bandstop of prototype order N has 2N digital poles and therefore N
// biquad sections; the stop band zeros all sit on the unit circle at the
// (warped) center frequency, which is what produces the notch.
package stop
