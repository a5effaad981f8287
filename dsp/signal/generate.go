// Package signal provides deterministic test-signal sources for driving the
// effects engine: a phase-continuous oscillator and seeded white noise.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

// Oscillator produces a sine that stays phase-continuous across successive
// fills, so block-based rendering has no seams at buffer boundaries.
type Oscillator struct {
	step      float64
	amplitude float64
	phase     float64
}

// NewOscillator creates a sine source at the given rate and frequency.
// The frequency must lie below Nyquist.
func NewOscillator(sampleRate, freqHz, amplitude float64) (*Oscillator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("oscillator sample rate must be > 0: %f", sampleRate)
	}

	if freqHz <= 0 || freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("oscillator frequency must be in (0, %f): %f", sampleRate/2, freqHz)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("oscillator amplitude must be >= 0: %f", amplitude)
	}

	return &Oscillator{
		step:      2 * math.Pi * freqHz / sampleRate,
		amplitude: amplitude,
	}, nil
}

// Fill writes one mono sample per slot, advancing the phase.
func (o *Oscillator) Fill(buf []float64) {
	for i := range buf {
		buf[i] = o.amplitude * math.Sin(o.phase)
		o.advance()
	}
}

// FillInterleaved writes one frame per channels slots, duplicating the same
// sample across all channels of a frame.
func (o *Oscillator) FillInterleaved(buf []float64, channels int) {
	if channels <= 0 {
		return
	}

	frames := len(buf) / channels
	for i := 0; i < frames; i++ {
		s := o.amplitude * math.Sin(o.phase)
		o.advance()

		for ch := 0; ch < channels; ch++ {
			buf[i*channels+ch] = s
		}
	}
}

// Reset rewinds the phase to zero.
func (o *Oscillator) Reset() {
	o.phase = 0
}

func (o *Oscillator) advance() {
	o.phase += o.step
	if o.phase > 2*math.Pi {
		o.phase -= 2 * math.Pi
	}
}

// Noise is a seeded white noise source in [-amplitude, amplitude]. The same
// seed reproduces the same stream.
type Noise struct {
	rng       *rand.Rand
	amplitude float64
}

// NewNoise creates a deterministic noise source.
func NewNoise(amplitude float64, seed int64) (*Noise, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	return &Noise{
		rng:       rand.New(rand.NewSource(seed)),
		amplitude: amplitude,
	}, nil
}

// Fill writes one mono sample per slot.
func (n *Noise) Fill(buf []float64) {
	for i := range buf {
		buf[i] = (n.rng.Float64()*2 - 1) * n.amplitude
	}
}

// FillInterleaved writes one frame per channels slots with the same sample
// on every channel, keeping the frame fully correlated like the oscillator.
func (n *Noise) FillInterleaved(buf []float64, channels int) {
	if channels <= 0 {
		return
	}

	frames := len(buf) / channels
	for i := 0; i < frames; i++ {
		s := (n.rng.Float64()*2 - 1) * n.amplitude

		for ch := 0; ch < channels; ch++ {
			buf[i*channels+ch] = s
		}
	}
}

// Normalize scales data in place to the target peak amplitude. Silent input
// stays silent.
func Normalize(data []float64, targetPeak float64) error {
	if targetPeak < 0 {
		return fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := vecmath.MaxAbs(data)
	if maxAbs == 0 {
		return nil
	}

	vecmath.ScaleBlockInPlace(data, targetPeak/maxAbs)

	return nil
}
