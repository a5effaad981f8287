package engine

import (
	"math"
	"sync/atomic"

	"github.com/euphoriae/audiofx/dsp/core"
)

// NumEqualizerBands is the number of graphic equalizer bands.
const NumEqualizerBands = 10

// Parameter ranges. Setters clamp silently into these ranges; out-of-range
// input is never rejected.
const (
	minVolume = 0.0
	maxVolume = 2.0

	minEqualizerGainDB = -12.0
	maxEqualizerGainDB = 12.0

	minLimiterCeiling = 0.5
	maxLimiterCeiling = 1.0

	minStereoBalance = -1.0
	maxStereoBalance = 1.0

	minTempo = 0.5
	maxTempo = 2.0

	minPitchSemitones = -12.0
	maxPitchSemitones = 12.0

	// Derived compressor maps: a single 0..1 strength spreads linearly
	// over threshold -20..-10 dB and ratio 1..8.
	compressorThresholdLowDB  = -20.0
	compressorThresholdHighDB = -10.0
	compressorRatioLow        = 1.0
	compressorRatioHigh       = 8.0

	defaultCompressorThresholdDB = -20.0
	defaultCompressorRatio       = 4.0
	defaultCompressorAttackSec   = 0.010
	defaultCompressorReleaseSec  = 0.100
)

// SurroundMode selects a macro preset that overwrites the dependent
// surround knobs.
type SurroundMode int32

const (
	SurroundModeOff SurroundMode = iota
	SurroundModeMusic
	SurroundModeMovie
	SurroundModeGame
	SurroundModePodcast

	numSurroundModes = 5
)

// HeadphoneType selects one of the fixed headphone voicing presets used by
// the headphone-surround crossfeed.
type HeadphoneType int32

const (
	HeadphoneTypeGeneric HeadphoneType = iota
	HeadphoneTypeInEar
	HeadphoneTypeOnEar
	HeadphoneTypeOverEar
	HeadphoneTypeStudio

	numHeadphoneTypes = 5
)

// NumReverbPresets counts the reverb presets including preset 0 (off).
const NumReverbPresets = 7

// surroundModePreset is the knob tuple a surround mode macro writes.
type surroundModePreset struct {
	surround3D    float64
	roomSize      float64
	surroundLevel float64
}

// surroundModePresets maps SurroundMode to its knob tuple
// (Off/Music/Movie/Game/Podcast). Mode Game additionally forces
// headphone surround on.
var surroundModePresets = [numSurroundModes]surroundModePreset{
	SurroundModeOff:     {surround3D: 0.0, roomSize: 0.0, surroundLevel: 0.0},
	SurroundModeMusic:   {surround3D: 0.5, roomSize: 0.4, surroundLevel: 0.5},
	SurroundModeMovie:   {surround3D: 0.7, roomSize: 0.7, surroundLevel: 0.6},
	SurroundModeGame:    {surround3D: 0.8, roomSize: 0.6, surroundLevel: 0.7},
	SurroundModePodcast: {surround3D: 0.3, roomSize: 0.2, surroundLevel: 0.4},
}

// floatParam is a single independently settable knob. Reads and writes are
// atomic per knob; no consistency is provided across knobs, so a render
// call may observe a torn mix of values written moments earlier.
type floatParam struct {
	bits atomic.Uint64
}

func (p *floatParam) store(v float64) {
	p.bits.Store(math.Float64bits(v))
}

func (p *floatParam) load() float64 {
	return math.Float64frombits(p.bits.Load())
}

// parameters holds every knob as an independent atomic cell. There is no
// lock anywhere; the render path only ever loads.
type parameters struct {
	volume            floatParam
	bassBoost         floatParam
	trebleBoost       floatParam
	equalizerBands    [NumEqualizerBands]floatParam
	clarity           floatParam
	tubeWarmth        floatParam
	spectrumExtension floatParam

	compressorStrength floatParam
	dynamicRange       floatParam
	compThresholdDB    floatParam
	compRatio          floatParam
	compAttackSec      floatParam
	compReleaseSec     floatParam
	loudnessGain       floatParam
	limiterCeiling     floatParam
	volumeLeveler      floatParam

	reverbPreset atomic.Int32
	reverbWet    floatParam

	virtualizer       floatParam
	surround3D        floatParam
	roomSize          floatParam
	surroundLevel     floatParam
	surroundMode      atomic.Int32
	headphoneSurround atomic.Bool
	headphoneType     atomic.Int32
	stereoBalance     floatParam
	channelSeparation floatParam

	tempo         floatParam
	pitchSemitone floatParam
}

// init stores the documented defaults. Knobs not listed default to zero.
func (p *parameters) init() {
	p.volume.store(1.0)
	p.limiterCeiling.store(1.0)
	p.channelSeparation.store(0.5)
	p.roomSize.store(0.5)
	p.surroundLevel.store(0.5)
	p.compThresholdDB.store(defaultCompressorThresholdDB)
	p.compRatio.store(defaultCompressorRatio)
	p.compAttackSec.store(defaultCompressorAttackSec)
	p.compReleaseSec.store(defaultCompressorReleaseSec)
	p.tempo.store(1.0)
}

// SetVolume sets master volume, clamped to [0, 2].
func (e *Engine) SetVolume(volume float64) {
	e.params.volume.store(core.Clamp(volume, minVolume, maxVolume))
}

// Volume returns the master volume.
func (e *Engine) Volume() float64 { return e.params.volume.load() }

// SetBassBoost sets bass boost strength, clamped to [0, 1].
func (e *Engine) SetBassBoost(strength float64) {
	e.params.bassBoost.store(clampUnit(strength))
}

// BassBoost returns the bass boost strength.
func (e *Engine) BassBoost() float64 { return e.params.bassBoost.load() }

// SetTrebleBoost sets treble boost strength, clamped to [0, 1].
func (e *Engine) SetTrebleBoost(strength float64) {
	e.params.trebleBoost.store(clampUnit(strength))
}

// TrebleBoost returns the treble boost strength.
func (e *Engine) TrebleBoost() float64 { return e.params.trebleBoost.load() }

// SetEqualizerBand sets one band's gain in dB, clamped to [-12, 12].
// Out-of-range band indices are ignored.
func (e *Engine) SetEqualizerBand(band int, gainDB float64) {
	if band < 0 || band >= NumEqualizerBands {
		return
	}

	e.params.equalizerBands[band].store(core.Clamp(gainDB, minEqualizerGainDB, maxEqualizerGainDB))
}

// EqualizerBand returns one band's gain in dB, or 0 for an invalid index.
func (e *Engine) EqualizerBand(band int) float64 {
	if band < 0 || band >= NumEqualizerBands {
		return 0
	}

	return e.params.equalizerBands[band].load()
}

// SetClarity sets the presence boost level, clamped to [0, 1].
func (e *Engine) SetClarity(level float64) {
	e.params.clarity.store(clampUnit(level))
}

// Clarity returns the presence boost level.
func (e *Engine) Clarity() float64 { return e.params.clarity.load() }

// SetTubeWarmth sets the saturation amount, clamped to [0, 1].
func (e *Engine) SetTubeWarmth(warmth float64) {
	e.params.tubeWarmth.store(clampUnit(warmth))
}

// TubeWarmth returns the saturation amount.
func (e *Engine) TubeWarmth() float64 { return e.params.tubeWarmth.load() }

// SetSpectrumExtension sets the harmonic synthesis level, clamped to [0, 1].
func (e *Engine) SetSpectrumExtension(level float64) {
	e.params.spectrumExtension.store(clampUnit(level))
}

// SpectrumExtension returns the harmonic synthesis level.
func (e *Engine) SpectrumExtension() float64 { return e.params.spectrumExtension.load() }

// SetCompressorStrength is a derived setter: a single 0..1 strength
// recomputes threshold (-20..-10 dB) and ratio (1..8) through fixed linear
// maps. Attack and release are left untouched.
func (e *Engine) SetCompressorStrength(strength float64) {
	strength = clampUnit(strength)
	e.params.compressorStrength.store(strength)
	e.params.compThresholdDB.store(compressorThresholdLowDB +
		strength*(compressorThresholdHighDB-compressorThresholdLowDB))
	e.params.compRatio.store(compressorRatioLow +
		strength*(compressorRatioHigh-compressorRatioLow))
}

// CompressorStrength returns the compressor strength.
func (e *Engine) CompressorStrength() float64 { return e.params.compressorStrength.load() }

// SetDynamicRange is a derived setter sharing the compressor's threshold and
// ratio maps. Unlike SetCompressorStrength it also restores the default
// attack and release times.
func (e *Engine) SetDynamicRange(amount float64) {
	amount = clampUnit(amount)
	e.params.dynamicRange.store(amount)
	e.params.compressorStrength.store(amount)
	e.params.compThresholdDB.store(compressorThresholdLowDB +
		amount*(compressorThresholdHighDB-compressorThresholdLowDB))
	e.params.compRatio.store(compressorRatioLow +
		amount*(compressorRatioHigh-compressorRatioLow))
	e.params.compAttackSec.store(defaultCompressorAttackSec)
	e.params.compReleaseSec.store(defaultCompressorReleaseSec)
}

// DynamicRange returns the dynamic range amount.
func (e *Engine) DynamicRange() float64 { return e.params.dynamicRange.load() }

// SetLoudnessGain sets post-compressor makeup, clamped to [0, 1]
// (0 = none, 1 = +6 dB).
func (e *Engine) SetLoudnessGain(gain float64) {
	e.params.loudnessGain.store(clampUnit(gain))
}

// LoudnessGain returns the loudness makeup amount.
func (e *Engine) LoudnessGain() float64 { return e.params.loudnessGain.load() }

// SetLimiter sets the soft ceiling, clamped to [0.5, 1].
func (e *Engine) SetLimiter(ceiling float64) {
	e.params.limiterCeiling.store(core.Clamp(ceiling, minLimiterCeiling, maxLimiterCeiling))
}

// LimiterCeiling returns the limiter ceiling.
func (e *Engine) LimiterCeiling() float64 { return e.params.limiterCeiling.load() }

// SetVolumeLeveler sets the automatic gain strength, clamped to [0, 1].
func (e *Engine) SetVolumeLeveler(level float64) {
	e.params.volumeLeveler.store(clampUnit(level))
}

// VolumeLeveler returns the automatic gain strength.
func (e *Engine) VolumeLeveler() float64 { return e.params.volumeLeveler.load() }

// SetReverb selects a preset (0 = off, 1..6 = rooms and plate) and the wet
// mix. The preset is clamped to {0..6}, the wet mix to [0, 1].
func (e *Engine) SetReverb(preset int, wetMix float64) {
	if preset < 0 {
		preset = 0
	}

	if preset >= NumReverbPresets {
		preset = NumReverbPresets - 1
	}

	e.params.reverbPreset.Store(int32(preset))
	e.params.reverbWet.store(clampUnit(wetMix))
}

// ReverbPreset returns the active reverb preset.
func (e *Engine) ReverbPreset() int { return int(e.params.reverbPreset.Load()) }

// ReverbWet returns the reverb wet mix.
func (e *Engine) ReverbWet() float64 { return e.params.reverbWet.load() }

// SetVirtualizer sets stereo widening strength, clamped to [0, 1].
func (e *Engine) SetVirtualizer(strength float64) {
	e.params.virtualizer.store(clampUnit(strength))
}

// Virtualizer returns the stereo widening strength.
func (e *Engine) Virtualizer() float64 { return e.params.virtualizer.load() }

// SetSurround3D sets the 3D surround depth, clamped to [0, 1].
func (e *Engine) SetSurround3D(depth float64) {
	e.params.surround3D.store(clampUnit(depth))
}

// Surround3D returns the 3D surround depth.
func (e *Engine) Surround3D() float64 { return e.params.surround3D.load() }

// SetRoomSize sets the surround room size, clamped to [0, 1].
func (e *Engine) SetRoomSize(size float64) {
	e.params.roomSize.store(clampUnit(size))
}

// RoomSize returns the surround room size.
func (e *Engine) RoomSize() float64 { return e.params.roomSize.load() }

// SetSurroundLevel sets the surround crossfeed level, clamped to [0, 1].
func (e *Engine) SetSurroundLevel(level float64) {
	e.params.surroundLevel.store(clampUnit(level))
}

// SurroundLevel returns the surround crossfeed level.
func (e *Engine) SurroundLevel() float64 { return e.params.surroundLevel.load() }

// SetSurroundMode applies a macro preset: it overwrites surround3D,
// roomSize and surroundLevel with the mode's tuple, and mode Game forces
// headphone surround on. The writes are ordinary field stores, so later
// individual setters override them freely. Out-of-range modes clamp to the
// nearest valid mode.
func (e *Engine) SetSurroundMode(mode SurroundMode) {
	if mode < 0 {
		mode = 0
	}

	if mode >= numSurroundModes {
		mode = numSurroundModes - 1
	}

	preset := surroundModePresets[mode]

	e.params.surroundMode.Store(int32(mode))
	e.params.surround3D.store(preset.surround3D)
	e.params.roomSize.store(preset.roomSize)
	e.params.surroundLevel.store(preset.surroundLevel)

	if mode == SurroundModeGame {
		e.params.headphoneSurround.Store(true)
	}
}

// SurroundMode returns the last macro mode applied.
func (e *Engine) SurroundMode() SurroundMode {
	return SurroundMode(e.params.surroundMode.Load())
}

// SetHeadphoneSurround toggles the headphone crossfeed path.
func (e *Engine) SetHeadphoneSurround(enabled bool) {
	e.params.headphoneSurround.Store(enabled)
}

// HeadphoneSurround reports whether the headphone crossfeed path is enabled.
func (e *Engine) HeadphoneSurround() bool { return e.params.headphoneSurround.Load() }

// SetHeadphoneType selects a headphone voicing preset. Out-of-range values
// clamp to the nearest preset.
func (e *Engine) SetHeadphoneType(t HeadphoneType) {
	if t < 0 {
		t = 0
	}

	if t >= numHeadphoneTypes {
		t = numHeadphoneTypes - 1
	}

	e.params.headphoneType.Store(int32(t))
}

// HeadphoneType returns the active headphone voicing preset.
func (e *Engine) HeadphoneType() HeadphoneType {
	return HeadphoneType(e.params.headphoneType.Load())
}

// SetStereoBalance sets the left/right balance, clamped to [-1, 1].
func (e *Engine) SetStereoBalance(balance float64) {
	e.params.stereoBalance.store(core.Clamp(balance, minStereoBalance, maxStereoBalance))
}

// StereoBalance returns the left/right balance.
func (e *Engine) StereoBalance() float64 { return e.params.stereoBalance.load() }

// SetChannelSeparation sets the stereo separation, clamped to [0, 1]
// (0 = mono, 0.5 = normal, 1 = wide).
func (e *Engine) SetChannelSeparation(separation float64) {
	e.params.channelSeparation.store(clampUnit(separation))
}

// ChannelSeparation returns the stereo separation.
func (e *Engine) ChannelSeparation() float64 { return e.params.channelSeparation.load() }

// SetTempo stores the playback tempo factor, clamped to [0.5, 2].
// The time-stretch processing path is not implemented; the value is held
// for the control surface only.
func (e *Engine) SetTempo(tempo float64) {
	e.params.tempo.store(core.Clamp(tempo, minTempo, maxTempo))
}

// Tempo returns the stored tempo factor.
func (e *Engine) Tempo() float64 { return e.params.tempo.load() }

// SetPitch stores the pitch shift in semitones, clamped to [-12, 12].
// Like tempo, the processing path is not implemented.
func (e *Engine) SetPitch(semitones float64) {
	e.params.pitchSemitone.store(core.Clamp(semitones, minPitchSemitones, maxPitchSemitones))
}

// Pitch returns the stored pitch shift in semitones.
func (e *Engine) Pitch() float64 { return e.params.pitchSemitone.load() }

func clampUnit(v float64) float64 {
	return core.Clamp(v, 0, 1)
}
