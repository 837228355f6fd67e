package stop

import (
	"errors"
	"math"
)

var ErrInvalidParams = errors.New("stop: invalid parameters")

// stopParams validates bandstop design parameters and returns the prewarped
// band edge frequencies (rad/s, bilinear-normalized).
func stopParams(sampleRate, centerHz, bandwidthHz float64, order int) (float64, float64, error) {
	if sampleRate <= 0 || centerHz <= 0 || bandwidthHz <= 0 {
		return 0, 0, ErrInvalidParams
	}

	if order < 2 || order%2 != 0 {
		return 0, 0, ErrInvalidParams
	}

	fl := centerHz - bandwidthHz*0.5
	fh := centerHz + bandwidthHz*0.5

	if fl <= 0 || fh >= sampleRate*0.5 {
		return 0, 0, ErrInvalidParams
	}

	w1 := math.Tan(math.Pi * fl / sampleRate)
	w2 := math.Tan(math.Pi * fh / sampleRate)

	if !(w1 > 0 && w2 > w1) || math.IsInf(w2, 0) || math.IsNaN(w2) {
		return 0, 0, ErrInvalidParams
	}

	return w1, w2, nil
}
