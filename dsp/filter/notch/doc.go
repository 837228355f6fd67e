// Package notch provides a single-channel streaming bandstop (notch) filter.
//
// A [Filter] wraps a Butterworth bandstop cascade (see dsp/filter/design/stop)
// behind the two operations a streaming engine needs: configure for a sample
// rate and notch band, and process sample blocks in place. Parameter changes
// via [Filter.Retarget] are coefficient-only — delay-line state is preserved
// and the transition is smoothed by linear per-sample interpolation of the
// coefficient sets, which avoids the step discontinuity a hard coefficient
// swap would inject into the output.
//
// One Filter serves exactly one channel. Multi-channel and multi-stream
// orchestration lives in dsp/stream.
package notch
