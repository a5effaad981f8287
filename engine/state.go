package engine

import "github.com/euphoriae/audiofx/dsp/delay"

const (
	// surroundDelayCapacity covers the largest room delay (30 ms at 48 kHz,
	// scaled by the longest headphone delay profile) with headroom.
	surroundDelayCapacity = 2048

	// timeStretchCapacity sizes the delay line reserved for the tempo/pitch
	// path. The controls exist; the processing algorithm does not yet.
	timeStretchCapacity = 8192
)

// processingState is the continuous per-channel signal state. It is created
// zero-initialized at engine construction and never reset afterwards:
// lifetime equals engine lifetime, and only the render call touches it.
type processingState struct {
	bassLP     [maxChannels]float64
	trebleLP   [maxChannels]float64
	clarityLP  [maxChannels]float64
	harmonicLP [maxChannels]float64
	headLP     [maxChannels]float64

	compEnvelope float64
	levelerRMS   float64

	surround [maxChannels]*delay.Line

	combs              [reverbCombCount]reverbComb
	allpasses          [reverbAllpassCount]reverbAllpass
	reverbActivePreset int

	timeStretch *delay.Line
}

func (s *processingState) init() {
	for ch := range s.surround {
		s.surround[ch] = newLine(surroundDelayCapacity)
	}

	for i := range s.combs {
		s.combs[i].buffer = make([]float64, reverbCombCapacity)
		s.combs[i].length = reverbCombCapacity
	}

	for i := range s.allpasses {
		s.allpasses[i].buffer = make([]float64, reverbAllpassCapacity)
		s.allpasses[i].length = reverbAllpassCapacity
	}

	s.timeStretch = newLine(timeStretchCapacity)
}

func newLine(size int) *delay.Line {
	l, err := delay.New(size)
	if err != nil {
		// Sizes are package constants validated by tests.
		panic(err)
	}

	return l
}
