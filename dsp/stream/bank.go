package stream

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-notch/dsp/filter/notch"
)

// ErrInvalidConfig is returned when a stream descriptor or cutoff pair
// cannot produce a working filter bank.
var ErrInvalidConfig = errors.New("stream: invalid configuration")

// Bank holds one notch filter per channel of a stream, all tuned to the
// same cutoff pair. Filters keep independent delay-line state, so channels
// never leak into each other.
//
// Bank methods belong to the control context; the per-channel filters are
// safe to process concurrently with Update (see notch.Filter).
type Bank struct {
	sampleRate float64
	lowCut     float64
	highCut    float64
	order      int
	smooth     int
	filters    []*notch.Filter
}

// BankOption configures a Bank.
type BankOption func(*Bank)

// WithFilterOrder sets the bandstop prototype order for every filter in the
// bank. Must be a positive even integer; defaults to 4.
func WithFilterOrder(n int) BankOption {
	return func(b *Bank) {
		if n > 0 && n%2 == 0 {
			b.order = n
		}
	}
}

// WithSmoothingSamples sets the coefficient interpolation ramp applied when
// the bank is retuned, in samples. Zero disables smoothing. Defaults to 64.
func WithSmoothingSamples(n int) BankOption {
	return func(b *Bank) {
		if n >= 0 {
			b.smooth = n
		}
	}
}

// NewBank creates a bank of channelCount filters tuned to the given cutoff
// pair.
func NewBank(channelCount int, sampleRate, lowCut, highCut float64, opts ...BankOption) (*Bank, error) {
	b := &Bank{
		order:  4,
		smooth: 64,
	}
	for _, o := range opts {
		o(b)
	}
	if err := b.Create(channelCount, sampleRate, lowCut, highCut); err != nil {
		return nil, err
	}
	return b, nil
}

// Create discards any existing filters and builds channelCount fresh ones,
// each fully designed for the cutoff pair with cleared state. On error the
// bank keeps its previous filters.
func (b *Bank) Create(channelCount int, sampleRate, lowCut, highCut float64) error {
	if channelCount <= 0 {
		return fmt.Errorf("%w: channel count %d", ErrInvalidConfig, channelCount)
	}
	if err := validateCutoffs(lowCut, highCut, sampleRate); err != nil {
		return err
	}

	center, bandwidth := designParams(lowCut, highCut)
	filters := make([]*notch.Filter, channelCount)
	for i := range filters {
		f := notch.New(notch.WithOrder(b.order), notch.WithSmoothingSamples(b.smooth))
		if err := f.Configure(sampleRate, center, bandwidth); err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
		filters[i] = f
	}

	b.filters = filters
	b.sampleRate = sampleRate
	b.lowCut = lowCut
	b.highCut = highCut
	return nil
}

// Update retunes every filter in the bank to the new cutoff pair without
// reallocating or clearing delay-line state. The retune is staged per filter
// and adopted at each filter's next block boundary: each filter swaps its
// coefficient set as one unit (never torn), but a block already in flight
// when Update runs may see some channels on the new design and some on the
// old for that one block. From the following block on, all channels run the
// new design.
func (b *Bank) Update(lowCut, highCut float64) error {
	if err := validateCutoffs(lowCut, highCut, b.sampleRate); err != nil {
		return err
	}

	center, bandwidth := designParams(lowCut, highCut)
	for i, f := range b.filters {
		if err := f.Retarget(center, bandwidth); err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
	}

	b.lowCut = lowCut
	b.highCut = highCut
	return nil
}

// Reset clears the delay-line state of every filter.
func (b *Bank) Reset() {
	for _, f := range b.filters {
		f.Reset()
	}
}

// NumFilters returns the number of per-channel filters.
func (b *Bank) NumFilters() int { return len(b.filters) }

// Filter returns the filter owned by the given stream-local channel.
func (b *Bank) Filter(channel int) *notch.Filter { return b.filters[channel] }

// SampleRate returns the sample rate the bank was built for, in Hz.
func (b *Bank) SampleRate() float64 { return b.sampleRate }

// LowCut returns the current lower band edge in Hz.
func (b *Bank) LowCut() float64 { return b.lowCut }

// HighCut returns the current upper band edge in Hz.
func (b *Bank) HighCut() float64 { return b.highCut }

// validateCutoffs checks ordering, the absolute cutoff range and the Nyquist
// bound shared by Create, Update and ProposeCutoffChange.
func validateCutoffs(lowCut, highCut, sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v Hz", ErrInvalidConfig, sampleRate)
	}
	if lowCut >= highCut {
		return fmt.Errorf("%w: low cut %v Hz must be below high cut %v Hz",
			ErrInvalidConfig, lowCut, highCut)
	}
	if lowCut < MinCutoffHz || highCut > MaxCutoffHz {
		return fmt.Errorf("%w: cutoffs %v..%v Hz outside %v..%v Hz",
			ErrInvalidConfig, lowCut, highCut, MinCutoffHz, MaxCutoffHz)
	}
	if highCut >= sampleRate/2 {
		return fmt.Errorf("%w: high cut %v Hz at or above Nyquist (%v Hz)",
			ErrInvalidConfig, highCut, sampleRate/2)
	}
	return nil
}
