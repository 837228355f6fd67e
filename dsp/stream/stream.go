package stream

// StreamID identifies one logical data stream within an engine.
type StreamID uint16

// CutoffField selects which band edge a proposed parameter change targets.
type CutoffField int

const (
	// LowCut is the lower edge of the stop band.
	LowCut CutoffField = iota
	// HighCut is the upper edge of the stop band.
	HighCut
)

func (f CutoffField) String() string {
	switch f {
	case LowCut:
		return "low cut"
	case HighCut:
		return "high cut"
	default:
		return "unknown"
	}
}

// Cutoff limits in Hz. Both band edges must lie inside
// [MinCutoffHz, MaxCutoffHz] regardless of the stream sample rate; the upper
// edge must additionally stay below Nyquist.
const (
	MinCutoffHz = 0.1
	MaxCutoffHz = 15000.0
)

// Default band edges, bracketing 60 Hz power-line interference.
const (
	DefaultLowCutHz  = 59.0
	DefaultHighCutHz = 61.0
)

// Stream describes one group of channels sharing a sample rate.
//
// Channels lists the stream-local channel indices selected for filtering;
// nil means all channels, an empty non-nil slice means none. LowCut and
// HighCut both zero select the defaults.
type Stream struct {
	ID           StreamID
	SampleRate   float64
	ChannelCount int
	Enabled      bool
	Channels     []int
	LowCut       float64
	HighCut      float64
}

// ChannelMap resolves a stream-local channel index to a global index into
// the block buffer handed to Engine.ProcessBlock.
type ChannelMap func(id StreamID, local int) int

// center and width of the stop band implied by a cutoff pair.
func designParams(lowCut, highCut float64) (center, bandwidth float64) {
	return (lowCut + highCut) / 2, highCut - lowCut
}
