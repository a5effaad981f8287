package engine

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/euphoriae/audiofx/dsp/core"
)

const (
	// Treble boost high-pass coefficients, linear in the knob like the
	// bass stage's low-pass.
	trebleAlphaBase  = 0.2
	trebleAlphaRange = 0.2
	trebleBoostRange = 1.2

	// Clarity presence extraction: one-pole high-pass around 4 kHz.
	clarityAlpha = 0.4
	clarityMix   = 0.5

	// Spectrum extension harmonic generator.
	harmonicAlpha = 0.3
	harmonicMix   = 0.3
)

// applyBassBoost adds a low-passed copy of the signal back at a
// strength-dependent gain, with a per-sample tanh soft clip to control
// overshoot. One-pole state per channel, stereo pair at most.
func (e *Engine) applyBassBoost(buf []float64, frames, channels int) {
	strength := e.params.bassBoost.load()
	if strength < strengthEpsilon {
		return
	}

	alpha := 0.15 + strength*0.15
	boost := strength * 1.5

	chs := channels
	if chs > maxChannels {
		chs = maxChannels
	}

	for i := range frames {
		for ch := range chs {
			idx := i*channels + ch
			sample := buf[idx]

			e.state.bassLP[ch] += alpha * (sample - e.state.bassLP[ch])

			buf[idx] = mathTanh(sample + e.state.bassLP[ch]*boost)
		}
	}
}

// applyTrebleBoost mirrors the bass stage with a one-pole high-pass:
// the residual above the low-pass is mixed back in.
func (e *Engine) applyTrebleBoost(buf []float64, frames, channels int) {
	strength := e.params.trebleBoost.load()
	if strength < strengthEpsilon {
		return
	}

	alpha := trebleAlphaBase + strength*trebleAlphaRange
	boost := strength * trebleBoostRange

	chs := channels
	if chs > maxChannels {
		chs = maxChannels
	}

	for i := range frames {
		for ch := range chs {
			idx := i*channels + ch
			sample := buf[idx]

			e.state.trebleLP[ch] += alpha * (sample - e.state.trebleLP[ch])
			high := sample - e.state.trebleLP[ch]

			buf[idx] = sample + high*boost
		}
	}
}

// applyEqualizer applies the simplified 10-band behavior: a single overall
// gain from the band average, only when at least one band magnitude
// exceeds 0.1 dB. This averaging is deliberate and kept for compatibility;
// it is not a parametric multi-band filter.
func (e *Engine) applyEqualizer(buf []float64) {
	active := false
	total := 0.0

	for b := range e.params.equalizerBands {
		g := e.params.equalizerBands[b].load()
		total += g

		if math.Abs(g) > 0.1 {
			active = true
		}
	}

	if !active {
		return
	}

	vecmath.ScaleBlockInPlace(buf, core.DBToLinear(total/NumEqualizerBands))
}

// applyClarity extracts a presence band with a one-pole high-pass and adds
// it back proportionally to the knob.
func (e *Engine) applyClarity(buf []float64, frames, channels int) {
	strength := e.params.clarity.load()
	if strength < strengthEpsilon {
		return
	}

	gain := strength * clarityMix

	chs := channels
	if chs > maxChannels {
		chs = maxChannels
	}

	for i := range frames {
		for ch := range chs {
			idx := i*channels + ch
			sample := buf[idx]

			e.state.clarityLP[ch] += clarityAlpha * (sample - e.state.clarityLP[ch])
			presence := sample - e.state.clarityLP[ch]

			buf[idx] = sample + presence*gain
		}
	}
}

// applyTubeWarmth waveshapes each sample with an asymmetric tanh transfer,
// driving positive and negative excursions differently. The shaped signal
// is normalized by its drive factor so the dry/wet blend does not jump in
// level as the knob moves.
func (e *Engine) applyTubeWarmth(buf []float64) {
	warmth := e.params.tubeWarmth.load()
	if warmth < strengthEpsilon {
		return
	}

	drivePos := 1 + 2*warmth
	driveNeg := 1 + 1.2*warmth
	dry := 1 - warmth

	for i := range buf {
		x := buf[i]

		var shaped float64
		if x >= 0 {
			shaped = mathTanh(x*drivePos) / drivePos
		} else {
			shaped = mathTanh(x*driveNeg) / driveNeg
		}

		buf[i] = x*dry + shaped*warmth
	}
}

// applySpectrumExtension synthesizes harmonics by full-wave rectification,
// high-pass filters the result, and mixes it back at low level for
// perceived brightness without broadband noise.
func (e *Engine) applySpectrumExtension(buf []float64, frames, channels int) {
	strength := e.params.spectrumExtension.load()
	if strength < strengthEpsilon {
		return
	}

	gain := strength * harmonicMix

	chs := channels
	if chs > maxChannels {
		chs = maxChannels
	}

	for i := range frames {
		for ch := range chs {
			idx := i*channels + ch
			sample := buf[idx]
			rect := math.Abs(sample)

			e.state.harmonicLP[ch] += harmonicAlpha * (rect - e.state.harmonicLP[ch])
			harmonic := rect - e.state.harmonicLP[ch]

			buf[idx] = sample + harmonic*gain
		}
	}
}
