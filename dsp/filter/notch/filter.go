package notch

import (
	"errors"
	"sync/atomic"

	"github.com/cwbudde/algo-notch/dsp/filter/biquad"
	"github.com/cwbudde/algo-notch/dsp/filter/design/stop"
)

const (
	defaultOrder            = 4
	defaultSmoothingSamples = 64
)

// ErrNotConfigured is returned by Retarget when Configure has not been
// called yet.
var ErrNotConfigured = errors.New("notch: filter not configured")

// tuning is a fully designed coefficient set staged for pickup by the
// processing context.
type tuning struct {
	coeffs []biquad.Coefficients
}

// Filter is a single-channel Butterworth bandstop filter with private state.
//
// Configure performs a full design with fresh delay-line state. Retarget
// recomputes coefficients for a new center/bandwidth without reallocating;
// the transition is smoothed by linear per-sample interpolation of the
// coefficient sets (see ProcessBlock). A Filter is owned by exactly one
// channel slot and must not be shared.
//
// Concurrency: ProcessBlock may run on a real-time thread while Retarget is
// called from a control thread. Retarget publishes the new design through an
// atomic pointer; ProcessBlock adopts it as a whole unit at block start, so
// the processing context never observes a torn coefficient set. All other
// methods belong to the control context.
type Filter struct {
	order  int
	smooth int

	sampleRate float64
	center     float64
	bandwidth  float64
	configured bool

	sections []biquad.Section
	cur      []biquad.Coefficients // coefficients currently in the sections
	tgt      []biquad.Coefficients // design the sections are converging to
	step     []biquad.Coefficients // per-sample increment during a ramp
	ramp     int                   // samples left in the current transition

	pending atomic.Pointer[tuning]
}

type filterConfig struct {
	order  int
	smooth int
}

// Option configures a Filter.
type Option func(*filterConfig)

// WithOrder sets the bandstop prototype order.
// Must be a positive even integer; defaults to 4.
func WithOrder(n int) Option {
	return func(cfg *filterConfig) {
		if n > 0 && n%2 == 0 {
			cfg.order = n
		}
	}
}

// WithSmoothingSamples sets the length of the coefficient interpolation ramp
// applied after a Retarget, in samples. Zero disables smoothing (retunes
// take effect at the next block boundary in one step). Defaults to 64.
func WithSmoothingSamples(n int) Option {
	return func(cfg *filterConfig) {
		if n >= 0 {
			cfg.smooth = n
		}
	}
}

// New creates an unconfigured Filter. Configure must be called before
// processing.
func New(opts ...Option) *Filter {
	cfg := filterConfig{
		order:  defaultOrder,
		smooth: defaultSmoothingSamples,
	}
	for _, o := range opts {
		o(&cfg)
	}

	return &Filter{
		order:  cfg.order,
		smooth: cfg.smooth,
	}
}

// Configure designs the bandstop for the given sample rate, center frequency
// and bandwidth (all Hz) and resets the delay-line state. It is meant for
// initial setup and full rebuilds; it must not race with ProcessBlock.
func (f *Filter) Configure(sampleRate, centerHz, bandwidthHz float64) error {
	coeffs, err := stop.Butterworth(sampleRate, centerHz, bandwidthHz, f.order)
	if err != nil {
		return err
	}

	if len(f.sections) != len(coeffs) {
		f.sections = make([]biquad.Section, len(coeffs))
		f.cur = make([]biquad.Coefficients, len(coeffs))
		f.tgt = make([]biquad.Coefficients, len(coeffs))
		f.step = make([]biquad.Coefficients, len(coeffs))
	}

	for i := range coeffs {
		f.sections[i] = biquad.Section{Coefficients: coeffs[i]}
		f.cur[i] = coeffs[i]
		f.tgt[i] = coeffs[i]
		f.step[i] = biquad.Coefficients{}
	}

	f.ramp = 0
	f.pending.Store(nil)

	f.sampleRate = sampleRate
	f.center = centerHz
	f.bandwidth = bandwidthHz
	f.configured = true

	return nil
}

// Retarget designs coefficients for a new center frequency and bandwidth at
// the current sample rate and stages them for the processing context. The
// delay-line state is preserved; the coefficient change is smoothed over the
// configured ramp length once ProcessBlock picks it up.
func (f *Filter) Retarget(centerHz, bandwidthHz float64) error {
	if !f.configured {
		return ErrNotConfigured
	}

	coeffs, err := stop.Butterworth(f.sampleRate, centerHz, bandwidthHz, f.order)
	if err != nil {
		return err
	}

	f.center = centerHz
	f.bandwidth = bandwidthHz
	f.pending.Store(&tuning{coeffs: coeffs})

	return nil
}

// ProcessBlock filters buf in place. Allocation-free; bounded by
// O(len(buf) * order).
//
// A staged Retarget is adopted once at block start. While a transition ramp
// is active the section coefficients advance linearly each sample toward the
// target; after the ramp the exact target design is snapped in to cancel
// accumulated rounding.
func (f *Filter) ProcessBlock(buf []float64) {
	if p := f.pending.Swap(nil); p != nil {
		f.beginRamp(p.coeffs)
	}

	i := 0
	if f.ramp > 0 {
		n := len(buf)
		for ; i < n && f.ramp > 0; i++ {
			x := buf[i]
			for j := range f.sections {
				f.cur[j].B0 += f.step[j].B0
				f.cur[j].B1 += f.step[j].B1
				f.cur[j].B2 += f.step[j].B2
				f.cur[j].A1 += f.step[j].A1
				f.cur[j].A2 += f.step[j].A2
				f.sections[j].Coefficients = f.cur[j]
				x = f.sections[j].ProcessSample(x)
			}
			buf[i] = x
			f.ramp--
		}

		if f.ramp == 0 {
			f.snapToTarget()
		}
	}

	for j := range f.sections {
		f.sections[j].ProcessBlock(buf[i:])
	}
}

// beginRamp installs a new target coefficient set and derives the per-sample
// interpolation steps. With smoothing disabled the target is applied in one
// step, keeping the delay-line state.
func (f *Filter) beginRamp(coeffs []biquad.Coefficients) {
	copy(f.tgt, coeffs)

	if f.smooth == 0 {
		f.snapToTarget()
		return
	}

	k := float64(f.smooth)
	for j := range f.tgt {
		f.step[j] = biquad.Coefficients{
			B0: (f.tgt[j].B0 - f.cur[j].B0) / k,
			B1: (f.tgt[j].B1 - f.cur[j].B1) / k,
			B2: (f.tgt[j].B2 - f.cur[j].B2) / k,
			A1: (f.tgt[j].A1 - f.cur[j].A1) / k,
			A2: (f.tgt[j].A2 - f.cur[j].A2) / k,
		}
	}
	f.ramp = f.smooth
}

func (f *Filter) snapToTarget() {
	for j := range f.tgt {
		f.cur[j] = f.tgt[j]
		f.sections[j].Coefficients = f.tgt[j]
	}
	f.ramp = 0
}

// Reset clears the delay-line state of every section.
func (f *Filter) Reset() {
	for i := range f.sections {
		f.sections[i].Reset()
	}
}

// Order returns the bandstop prototype order.
func (f *Filter) Order() int { return f.order }

// NumSections returns the number of biquad sections.
func (f *Filter) NumSections() int { return len(f.sections) }

// SampleRate returns the configured sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CenterFreq returns the most recently requested center frequency in Hz.
func (f *Filter) CenterFreq() float64 { return f.center }

// Bandwidth returns the most recently requested stop band width in Hz.
func (f *Filter) Bandwidth() float64 { return f.bandwidth }

// Coefficients returns a copy of the coefficients currently installed in the
// sections. Control context only.
func (f *Filter) Coefficients() []biquad.Coefficients {
	out := make([]biquad.Coefficients, len(f.cur))
	copy(out, f.cur)
	return out
}

// MagnitudeDB returns the magnitude response of the target design in dB at
// the given frequency.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	db := 0.0
	for j := range f.tgt {
		db += f.tgt[j].MagnitudeDB(freqHz, f.sampleRate)
	}
	return db
}
