package engine

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/euphoriae/audiofx/dsp/core"
)

const (
	// Volume leveler: smoothed buffer RMS pulled toward a fixed target,
	// with the correction clamped before blending by the knob.
	levelerTargetRMS = 0.3
	levelerSmoothing = 0.99
	minLevelerGain   = 0.1
	maxLevelerGain   = 4.0

	// Loudness makeup tops out at +6 dB.
	maxLoudnessGainDB = 6.0
)

// applyVolumeLeveler tracks a 99%/1% exponentially smoothed RMS across
// buffers and applies a gain toward the target, scaled by the knob.
func (e *Engine) applyVolumeLeveler(buf []float64) {
	strength := e.params.volumeLeveler.load()
	if strength < strengthEpsilon {
		return
	}

	rms := math.Sqrt(vecmath.DotProduct(buf, buf) / float64(len(buf)))

	s := &e.state
	s.levelerRMS = s.levelerRMS*levelerSmoothing + rms*(1-levelerSmoothing)

	// A near-silent history divides toward +Inf; the clamp bounds it.
	gain := core.Clamp(levelerTargetRMS/s.levelerRMS, minLevelerGain, maxLevelerGain)

	vecmath.ScaleBlockInPlace(buf, 1+(gain-1)*strength)
}

// applyCompressor runs a per-frame peak detector through an attack/release
// envelope follower and applies the gain reduction uniformly to all
// channels of the frame, so the stereo image does not shift.
func (e *Engine) applyCompressor(buf []float64, frames, channels int) {
	strength := e.params.compressorStrength.load()
	if strength < strengthEpsilon {
		return
	}

	threshold := core.DBToLinear(e.params.compThresholdDB.load())
	ratio := e.params.compRatio.load()
	attackCoeff := mathExp(-1 / (e.params.compAttackSec.load() * SampleRate))
	releaseCoeff := mathExp(-1 / (e.params.compReleaseSec.load() * SampleRate))
	exponent := 1/ratio - 1

	env := e.state.compEnvelope

	for i := range frames {
		base := i * channels

		peak := 0.0

		for ch := range channels {
			if a := math.Abs(buf[base+ch]); a > peak {
				peak = a
			}
		}

		if peak > env {
			env = attackCoeff*env + (1-attackCoeff)*peak
		} else {
			env = releaseCoeff*env + (1-releaseCoeff)*peak
		}

		if env > threshold {
			gain := math.Pow(env/threshold, exponent)

			for ch := range channels {
				buf[base+ch] *= gain
			}
		}
	}

	e.state.compEnvelope = env
}

// applyLoudnessGain restores level after compression, up to +6 dB linear
// in the knob.
func (e *Engine) applyLoudnessGain(buf []float64) {
	amount := e.params.loudnessGain.load()
	if amount < strengthEpsilon {
		return
	}

	vecmath.ScaleBlockInPlace(buf, core.DBToLinear(amount*maxLoudnessGainDB))
}

// applyLimiter soft-limits every sample against the ceiling: samples inside
// the ceiling pass untouched, samples beyond it are folded back through
// ceiling*tanh(x/ceiling).
func (e *Engine) applyLimiter(buf []float64) {
	ceiling := e.params.limiterCeiling.load()

	for i := range buf {
		if math.Abs(buf[i]) > ceiling {
			buf[i] = ceiling * mathTanh(buf[i]/ceiling)
		}
	}
}

// applyMasterVolume scales the whole buffer, skipping the pass entirely at
// unity.
func (e *Engine) applyMasterVolume(buf []float64) {
	volume := e.params.volume.load()
	if math.Abs(volume-1) <= 0.001 {
		return
	}

	vecmath.ScaleBlockInPlace(buf, volume)
}
