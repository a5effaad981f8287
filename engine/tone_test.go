package engine

import (
	"math"
	"math/cmplx"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const toneFFTSize = 4096

// binMagnitude returns the FFT magnitude of one bin of a mono buffer.
func binMagnitude(t *testing.T, samples []float64, bin int) float64 {
	t.Helper()

	plan, err := algofft.NewPlan64(len(samples))
	if err != nil {
		t.Fatalf("NewPlan64: %v", err)
	}

	in := make([]complex128, len(samples))
	out := make([]complex128, len(samples))

	for i, s := range samples {
		in[i] = complex(s, 0)
	}

	if err := plan.Forward(out, in); err != nil {
		t.Fatalf("Forward: %v", err)
	}

	return cmplx.Abs(out[bin])
}

// binSine fills a mono buffer with a sine landing exactly on an FFT bin.
func binSine(n, bin int, amp float64) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = amp * math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(n))
	}

	return buf
}

// --- bass boost ---

func TestBassBoostRaisesLowFrequencyEnergy(t *testing.T) {
	const bin = 8 // 93.75 Hz at 48 kHz / 4096

	dry := binSine(toneFFTSize, bin, 0.3)
	wet := binSine(toneFFTSize, bin, 0.3)

	e := New()
	e.SetBassBoost(1)
	e.ProcessAudio(wet, toneFFTSize, 1)

	dryMag := binMagnitude(t, dry, bin)
	wetMag := binMagnitude(t, wet, bin)

	if wetMag < dryMag*1.2 {
		t.Fatalf("low bin magnitude: dry %v wet %v, want at least 1.2x", dryMag, wetMag)
	}
}

func TestBassBoostOutputBounded(t *testing.T) {
	wet := binSine(toneFFTSize, 8, 0.9)

	e := New()
	e.SetBassBoost(1)
	e.ProcessAudio(wet, toneFFTSize, 1)

	for i, s := range wet {
		if s > 1 || s < -1 {
			t.Fatalf("sample %d outside [-1, 1]: %v", i, s)
		}
	}
}

// --- treble boost ---

func TestTrebleBoostRaisesHighFrequencyEnergy(t *testing.T) {
	const bin = 1800 // ~21.1 kHz

	dry := binSine(toneFFTSize, bin, 0.3)
	wet := binSine(toneFFTSize, bin, 0.3)

	e := New()
	e.SetTrebleBoost(1)
	e.ProcessAudio(wet, toneFFTSize, 1)

	dryMag := binMagnitude(t, dry, bin)
	wetMag := binMagnitude(t, wet, bin)

	if wetMag < dryMag*1.2 {
		t.Fatalf("high bin magnitude: dry %v wet %v, want at least 1.2x", dryMag, wetMag)
	}
}

func TestTrebleBoostLeavesLowFrequencyMostlyAlone(t *testing.T) {
	const bin = 8

	dry := binSine(toneFFTSize, bin, 0.3)
	wet := binSine(toneFFTSize, bin, 0.3)

	e := New()
	e.SetTrebleBoost(1)
	e.ProcessAudio(wet, toneFFTSize, 1)

	dryMag := binMagnitude(t, dry, bin)
	wetMag := binMagnitude(t, wet, bin)

	ratio := wetMag / dryMag
	if ratio < 0.9 || ratio > 1.2 {
		t.Fatalf("low bin ratio under treble boost: got %v, want near 1", ratio)
	}
}

// --- clarity ---

func TestClarityBoostsPresenceBand(t *testing.T) {
	const bin = 400 // ~4.7 kHz

	dry := binSine(toneFFTSize, bin, 0.3)
	wet := binSine(toneFFTSize, bin, 0.3)

	e := New()
	e.SetClarity(1)
	e.ProcessAudio(wet, toneFFTSize, 1)

	dryMag := binMagnitude(t, dry, bin)
	wetMag := binMagnitude(t, wet, bin)

	if wetMag <= dryMag {
		t.Fatalf("presence bin magnitude: dry %v wet %v, want boost", dryMag, wetMag)
	}
}

// --- tube warmth ---

func TestTubeWarmthIsAsymmetric(t *testing.T) {
	pos := make([]float64, 16)
	neg := make([]float64, 16)

	for i := range pos {
		pos[i] = 0.5
		neg[i] = -0.5
	}

	e := New()
	e.SetTubeWarmth(1)
	e.ProcessAudio(pos, 16, 1)

	e2 := New()
	e2.SetTubeWarmth(1)
	e2.ProcessAudio(neg, 16, 1)

	if math.Abs(pos[0]) == math.Abs(neg[0]) {
		t.Fatalf("transfer is symmetric: +0.5 -> %v, -0.5 -> %v", pos[0], neg[0])
	}

	// The positive excursion is driven harder, so it compresses more.
	if math.Abs(pos[0]) >= math.Abs(neg[0]) {
		t.Fatalf("positive side should compress more: %v vs %v", pos[0], neg[0])
	}
}

func TestTubeWarmthReducesPeaks(t *testing.T) {
	buf := binSine(512, 4, 0.9)

	e := New()
	e.SetTubeWarmth(1)
	e.ProcessAudio(buf, 512, 1)

	peak := 0.0
	for _, s := range buf {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	if peak >= 0.9 {
		t.Fatalf("peak after saturation: got %v, want < 0.9", peak)
	}
}

// --- spectrum extension ---

func TestSpectrumExtensionAddsSecondHarmonic(t *testing.T) {
	const bin = 200 // ~2.3 kHz fundamental, harmonic content at 2x

	dry := binSine(toneFFTSize, bin, 0.5)
	wet := binSine(toneFFTSize, bin, 0.5)

	e := New()
	e.SetSpectrumExtension(1)
	e.ProcessAudio(wet, toneFFTSize, 1)

	dryMag := binMagnitude(t, dry, 2*bin)
	wetMag := binMagnitude(t, wet, 2*bin)

	// Full-wave rectification generates even harmonics that the dry sine
	// does not have.
	if wetMag < dryMag+5 {
		t.Fatalf("2nd harmonic magnitude: dry %v wet %v, want clear increase", dryMag, wetMag)
	}
}

// --- stage state persistence ---

func TestToneFilterStateCarriesAcrossBuffers(t *testing.T) {
	whole := binSine(toneFFTSize, 8, 0.3)

	split := make([]float64, toneFFTSize)
	copy(split, whole)

	e1 := New()
	e1.SetBassBoost(0.7)
	e1.ProcessAudio(whole, toneFFTSize, 1)

	e2 := New()
	e2.SetBassBoost(0.7)
	e2.ProcessAudio(split[:toneFFTSize/2], toneFFTSize/2, 1)
	e2.ProcessAudio(split[toneFFTSize/2:], toneFFTSize/2, 1)

	// Splitting the render into two calls must not change the output:
	// the one-pole state persists on the engine.
	for i := range whole {
		if math.Abs(whole[i]-split[i]) > 1e-12 {
			t.Fatalf("sample %d: whole %v split %v", i, whole[i], split[i])
		}
	}
}
