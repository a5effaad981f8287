package engine

import "github.com/euphoriae/audiofx/dsp/core"

const (
	reverbCombCount    = 4
	reverbAllpassCount = 2

	// Buffer capacities exceed the largest delay any preset requests;
	// verified by test, not at runtime.
	reverbCombCapacity    = 4096
	reverbAllpassCapacity = 1024

	reverbAllpassFeedback = 0.5
)

// reverbPreset fixes the comb delays/decays and allpass delays for one
// room. Delays are in samples at the 48 kHz internal rate; larger rooms use
// longer delays and slower decays.
type reverbPreset struct {
	name      string
	combDelay [reverbCombCount]int
	combDecay [reverbCombCount]float64
	apDelay   [reverbAllpassCount]int
}

// reverbPresets holds the 7 presets; preset 0 is off and never applied.
var reverbPresets = [NumReverbPresets]reverbPreset{
	1: {
		name:      "small room",
		combDelay: [4]int{1116, 1188, 1277, 1356},
		combDecay: [4]float64{0.74, 0.75, 0.76, 0.77},
		apDelay:   [2]int{225, 556},
	},
	2: {
		name:      "medium room",
		combDelay: [4]int{1422, 1491, 1557, 1617},
		combDecay: [4]float64{0.79, 0.80, 0.81, 0.82},
		apDelay:   [2]int{225, 556},
	},
	3: {
		name:      "large room",
		combDelay: [4]int{1617, 1755, 1847, 1933},
		combDecay: [4]float64{0.84, 0.85, 0.85, 0.86},
		apDelay:   [2]int{341, 556},
	},
	4: {
		name:      "hall",
		combDelay: [4]int{2053, 2205, 2310, 2428},
		combDecay: [4]float64{0.87, 0.88, 0.88, 0.89},
		apDelay:   [2]int{341, 556},
	},
	5: {
		name:      "cathedral",
		combDelay: [4]int{2800, 2950, 3100, 3250},
		combDecay: [4]float64{0.91, 0.92, 0.92, 0.93},
		apDelay:   [2]int{441, 556},
	},
	6: {
		name:      "plate",
		combDelay: [4]int{1422, 1491, 1557, 1617},
		combDecay: [4]float64{0.89, 0.90, 0.90, 0.91},
		apDelay:   [2]int{225, 341},
	},
}

// ReverbPresetName returns a human-readable name for a preset, "off" for
// preset 0, and an empty string for out-of-range values.
func ReverbPresetName(preset int) string {
	if preset == 0 {
		return "off"
	}

	if preset < 0 || preset >= NumReverbPresets {
		return ""
	}

	return reverbPresets[preset].name
}

// reverbComb is an input-driven feedback comb filter over a fixed-capacity
// ring buffer. Only the first length samples are active; changing presets
// rescopes the cursor without clearing state.
type reverbComb struct {
	buffer []float64
	length int
	decay  float64
	index  int
}

func (c *reverbComb) process(input float64) float64 {
	out := c.buffer[c.index]
	c.buffer[c.index] = core.FlushDenormals(input + out*c.decay)

	c.index++
	if c.index >= c.length {
		c.index = 0
	}

	return out
}

// reverbAllpass is a Schroeder allpass diffuser with fixed feedback.
type reverbAllpass struct {
	buffer []float64
	length int
	index  int
}

func (a *reverbAllpass) process(input float64) float64 {
	bufOut := a.buffer[a.index]
	out := bufOut - input
	a.buffer[a.index] = core.FlushDenormals(input + bufOut*reverbAllpassFeedback)

	a.index++
	if a.index >= a.length {
		a.index = 0
	}

	return out
}

// applyReverbPreset rescopes the comb and allpass lengths for the preset.
// Buffers are deliberately not cleared: a mid-stream reset would be an
// audible discontinuity.
func (s *processingState) applyReverbPreset(preset int) {
	p := &reverbPresets[preset]

	for i := range s.combs {
		c := &s.combs[i]
		c.length = p.combDelay[i]
		c.decay = p.combDecay[i]

		if c.index >= c.length {
			c.index %= c.length
		}
	}

	for i := range s.allpasses {
		a := &s.allpasses[i]
		a.length = p.apDelay[i]

		if a.index >= a.length {
			a.index %= a.length
		}
	}

	s.reverbActivePreset = preset
}

// applyReverb runs the Schroeder network (4 parallel combs averaged, then
// 2 series allpasses) on a mono downmix of each frame and blends the wet
// output identically into every channel. Preset 0 or a near-zero wet mix
// skips entirely; the state buffers are neither read nor advanced.
func (e *Engine) applyReverb(buf []float64, frames, channels int) {
	preset := int(e.params.reverbPreset.Load())
	wet := e.params.reverbWet.load()

	if preset <= 0 || preset >= NumReverbPresets || wet < strengthEpsilon {
		return
	}

	if preset != e.state.reverbActivePreset {
		e.state.applyReverbPreset(preset)
	}

	dry := 1 - wet*0.5
	invChannels := 1 / float64(channels)

	for i := range frames {
		base := i * channels

		mono := 0.0
		for ch := range channels {
			mono += buf[base+ch]
		}
		mono *= invChannels

		acc := 0.0
		for c := range e.state.combs {
			acc += e.state.combs[c].process(mono)
		}
		acc *= 1.0 / reverbCombCount

		for a := range e.state.allpasses {
			acc = e.state.allpasses[a].process(acc)
		}

		wetOut := acc * wet
		for ch := range channels {
			buf[base+ch] = buf[base+ch]*dry + wetOut
		}
	}
}
