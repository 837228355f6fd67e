// Package spectrum provides the frequency-domain measurement helpers used to
// verify notch filter behavior.
//
// [Goertzel] evaluates a single DFT bin incrementally, which is the cheap way
// to measure residual tone level after filtering. [Analyze] computes a full
// complex spectrum via FFT for broadband inspection, with [Magnitude] and
// [Power] extracting per-bin levels.
package spectrum
