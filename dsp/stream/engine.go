package stream

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Engine owns the filter banks for a set of streams and applies them to
// interleaved-by-channel sample blocks.
//
// Control operations (Reconcile, ProposeCutoffChange, SetStreamEnabled,
// SetChannelSelection) are serialized by a mutex and publish state through an
// atomic pointer; ProcessBlock takes a single atomic load and never blocks,
// so it is safe to call from a real-time thread concurrently with any
// control operation.
type Engine struct {
	mapper ChannelMap
	order  int
	smooth int

	mu    sync.Mutex // serializes control operations
	state atomic.Pointer[engineState]
}

// engineState is an immutable snapshot. Control operations replace the whole
// snapshot; they never mutate a published one.
type engineState struct {
	streams map[StreamID]*streamState
}

type streamState struct {
	desc Stream
	bank *Bank
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithBankOrder sets the bandstop prototype order used for every bank the
// engine builds. Must be a positive even integer; defaults to 4.
func WithBankOrder(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 && n%2 == 0 {
			e.order = n
		}
	}
}

// WithBankSmoothing sets the coefficient ramp length, in samples, applied
// when a bank is retuned. Zero disables smoothing. Defaults to 64.
func WithBankSmoothing(n int) EngineOption {
	return func(e *Engine) {
		if n >= 0 {
			e.smooth = n
		}
	}
}

// New creates an engine with no streams. mapper translates stream-local
// channel indices to global block indices; nil means identity.
func New(mapper ChannelMap, opts ...EngineOption) *Engine {
	if mapper == nil {
		mapper = func(_ StreamID, local int) int { return local }
	}

	e := &Engine{
		mapper: mapper,
		order:  4,
		smooth: 64,
	}
	for _, o := range opts {
		o(e)
	}

	e.state.Store(&engineState{streams: map[StreamID]*streamState{}})
	return e
}

// Reconcile rebuilds the engine against the given stream set. Every listed
// stream gets a freshly created bank, regardless of whether its parameters
// changed; streams absent from the list are dropped. The new state is
// published atomically once all banks are built.
//
// A descriptor that cannot produce a bank is excluded from the new state and
// reported in the joined error; the remaining streams are still installed.
// Zero cutoffs select the defaults, a nil channel list selects all channels.
func (e *Engine) Reconcile(streams []Stream) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := make(map[StreamID]*streamState, len(streams))
	var errs []error
	for _, s := range streams {
		desc := normalizeDescriptor(s)
		if _, dup := next[desc.ID]; dup {
			errs = append(errs, fmt.Errorf("stream %d: %w: duplicate id", desc.ID, ErrInvalidConfig))
			continue
		}

		bank := &Bank{order: e.order, smooth: e.smooth}
		if err := bank.Create(desc.ChannelCount, desc.SampleRate, desc.LowCut, desc.HighCut); err != nil {
			errs = append(errs, fmt.Errorf("stream %d: %w", desc.ID, err))
			continue
		}
		next[desc.ID] = &streamState{desc: desc, bank: bank}
	}

	e.state.Store(&engineState{streams: next})
	return errors.Join(errs...)
}

// normalizeDescriptor applies defaults and detaches the descriptor from
// caller-owned memory.
func normalizeDescriptor(s Stream) Stream {
	desc := s
	if desc.LowCut == 0 && desc.HighCut == 0 {
		desc.LowCut = DefaultLowCutHz
		desc.HighCut = DefaultHighCutHz
	}
	if desc.Channels == nil {
		desc.Channels = make([]int, desc.ChannelCount)
		for i := range desc.Channels {
			desc.Channels[i] = i
		}
	} else {
		desc.Channels = append([]int(nil), desc.Channels...)
	}
	return desc
}

// ProposeCutoffChange validates a single band-edge edit against the stream's
// current parameters and, if valid, retunes the stream's bank. It reports
// whether the edit was accepted; a rejected edit leaves the engine and every
// filter untouched, so the caller can revert its UI to the previous value.
func (e *Engine) ProposeCutoffChange(id StreamID, field CutoffField, value float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state.Load()
	ss, ok := st.streams[id]
	if !ok {
		return false
	}

	lowCut, highCut := ss.desc.LowCut, ss.desc.HighCut
	switch field {
	case LowCut:
		lowCut = value
	case HighCut:
		highCut = value
	default:
		return false
	}
	if validateCutoffs(lowCut, highCut, ss.desc.SampleRate) != nil {
		return false
	}

	if err := ss.bank.Update(lowCut, highCut); err != nil {
		return false
	}

	desc := ss.desc
	desc.LowCut = lowCut
	desc.HighCut = highCut
	e.replaceStream(st, id, &streamState{desc: desc, bank: ss.bank})
	return true
}

// SetStreamEnabled toggles filtering for a stream without rebuilding or
// retuning its bank. Filter state is preserved across the toggle. It reports
// whether the stream exists.
func (e *Engine) SetStreamEnabled(id StreamID, enabled bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state.Load()
	ss, ok := st.streams[id]
	if !ok {
		return false
	}
	if ss.desc.Enabled == enabled {
		return true
	}

	desc := ss.desc
	desc.Enabled = enabled
	e.replaceStream(st, id, &streamState{desc: desc, bank: ss.bank})
	return true
}

// SetChannelSelection replaces the set of stream-local channels the stream
// filters. Indices outside the stream's channel range are rejected. Channels
// deselected keep their filters and state; reselecting one resumes from that
// state. It reports whether the selection was accepted.
func (e *Engine) SetChannelSelection(id StreamID, channels []int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state.Load()
	ss, ok := st.streams[id]
	if !ok {
		return false
	}
	for _, ch := range channels {
		if ch < 0 || ch >= ss.desc.ChannelCount {
			return false
		}
	}

	desc := ss.desc
	desc.Channels = append([]int(nil), channels...)
	e.replaceStream(st, id, &streamState{desc: desc, bank: ss.bank})
	return true
}

// replaceStream publishes a snapshot identical to st except for the given
// stream. Caller holds e.mu.
func (e *Engine) replaceStream(st *engineState, id StreamID, ss *streamState) {
	next := make(map[StreamID]*streamState, len(st.streams))
	for k, v := range st.streams {
		next[k] = v
	}
	next[id] = ss
	e.state.Store(&engineState{streams: next})
}

// ProcessBlock filters the first numSamples of every selected channel of
// every enabled stream, in place. block is indexed by global channel; the
// engine's ChannelMap resolves each stream-local selection entry to its
// global row. Channels not selected, channels of disabled streams and rows
// outside the block are left untouched.
//
// Allocation-free and lock-free: safe on a real-time thread.
func (e *Engine) ProcessBlock(block [][]float64, numSamples int) {
	if numSamples <= 0 {
		return
	}
	st := e.state.Load()

	for _, ss := range st.streams {
		if !ss.desc.Enabled {
			continue
		}
		for _, local := range ss.desc.Channels {
			if local < 0 || local >= ss.bank.NumFilters() {
				continue
			}
			global := e.mapper(ss.desc.ID, local)
			if global < 0 || global >= len(block) {
				continue
			}
			buf := block[global]
			if numSamples < len(buf) {
				buf = buf[:numSamples]
			}
			ss.bank.filters[local].ProcessBlock(buf)
		}
	}
}

// Stream returns a copy of the current descriptor for id.
func (e *Engine) Stream(id StreamID) (Stream, bool) {
	ss, ok := e.state.Load().streams[id]
	if !ok {
		return Stream{}, false
	}
	desc := ss.desc
	desc.Channels = append([]int(nil), ss.desc.Channels...)
	return desc, true
}

// Streams returns copies of all current descriptors, ordered by ID.
func (e *Engine) Streams() []Stream {
	st := e.state.Load()
	out := make([]Stream, 0, len(st.streams))
	for _, ss := range st.streams {
		desc := ss.desc
		desc.Channels = append([]int(nil), ss.desc.Channels...)
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Bank returns the live bank for id, or nil if the stream does not exist.
// Intended for inspection; mutations must go through the engine.
func (e *Engine) Bank(id StreamID) *Bank {
	ss, ok := e.state.Load().streams[id]
	if !ok {
		return nil
	}
	return ss.bank
}
