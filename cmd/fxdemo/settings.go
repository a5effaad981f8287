package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/euphoriae/audiofx/engine"
)

// settings mirrors the engine's control surface for YAML preset files.
// Every field is a pointer so that only keys actually present in the file
// reach a setter; unlisted knobs keep the engine's defaults, or whatever a
// surround mode macro wrote. Out-of-range values are clamped by the
// engine's setters, never rejected.
type settings struct {
	Volume            *float64  `yaml:"volume"`
	BassBoost         *float64  `yaml:"bassBoost"`
	TrebleBoost       *float64  `yaml:"trebleBoost"`
	Equalizer         []float64 `yaml:"equalizer"`
	Clarity           *float64  `yaml:"clarity"`
	TubeWarmth        *float64  `yaml:"tubeWarmth"`
	SpectrumExtension *float64  `yaml:"spectrumExtension"`

	CompressorStrength *float64 `yaml:"compressorStrength"`
	LoudnessGain       *float64 `yaml:"loudnessGain"`
	LimiterCeiling     *float64 `yaml:"limiterCeiling"`
	VolumeLeveler      *float64 `yaml:"volumeLeveler"`

	ReverbPreset *int     `yaml:"reverbPreset"`
	ReverbWet    *float64 `yaml:"reverbWet"`

	Virtualizer       *float64 `yaml:"virtualizer"`
	SurroundMode      *int     `yaml:"surroundMode"`
	Surround3D        *float64 `yaml:"surround3D"`
	RoomSize          *float64 `yaml:"roomSize"`
	SurroundLevel     *float64 `yaml:"surroundLevel"`
	HeadphoneSurround *bool    `yaml:"headphoneSurround"`
	HeadphoneType     *int     `yaml:"headphoneType"`
	StereoBalance     *float64 `yaml:"stereoBalance"`
	ChannelSeparation *float64 `yaml:"channelSeparation"`
}

func loadSettings(path string) (settings, error) {
	var s settings

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}

	return s, nil
}

// apply routes the present settings to the engine's setters. The surround
// mode macro is applied first so a knob named explicitly in the file still
// wins over the macro's tuple.
func (s settings) apply(e *engine.Engine) {
	if s.SurroundMode != nil {
		e.SetSurroundMode(engine.SurroundMode(*s.SurroundMode))
	}

	if s.Volume != nil {
		e.SetVolume(*s.Volume)
	}

	if s.BassBoost != nil {
		e.SetBassBoost(*s.BassBoost)
	}

	if s.TrebleBoost != nil {
		e.SetTrebleBoost(*s.TrebleBoost)
	}

	for band, gainDB := range s.Equalizer {
		e.SetEqualizerBand(band, gainDB)
	}

	if s.Clarity != nil {
		e.SetClarity(*s.Clarity)
	}

	if s.TubeWarmth != nil {
		e.SetTubeWarmth(*s.TubeWarmth)
	}

	if s.SpectrumExtension != nil {
		e.SetSpectrumExtension(*s.SpectrumExtension)
	}

	if s.CompressorStrength != nil {
		e.SetCompressorStrength(*s.CompressorStrength)
	}

	if s.LoudnessGain != nil {
		e.SetLoudnessGain(*s.LoudnessGain)
	}

	if s.LimiterCeiling != nil {
		e.SetLimiter(*s.LimiterCeiling)
	}

	if s.VolumeLeveler != nil {
		e.SetVolumeLeveler(*s.VolumeLeveler)
	}

	if s.ReverbPreset != nil || s.ReverbWet != nil {
		preset := e.ReverbPreset()
		if s.ReverbPreset != nil {
			preset = *s.ReverbPreset
		}

		wet := e.ReverbWet()
		if s.ReverbWet != nil {
			wet = *s.ReverbWet
		}

		e.SetReverb(preset, wet)
	}

	if s.Virtualizer != nil {
		e.SetVirtualizer(*s.Virtualizer)
	}

	if s.Surround3D != nil {
		e.SetSurround3D(*s.Surround3D)
	}

	if s.RoomSize != nil {
		e.SetRoomSize(*s.RoomSize)
	}

	if s.SurroundLevel != nil {
		e.SetSurroundLevel(*s.SurroundLevel)
	}

	if s.HeadphoneSurround != nil {
		e.SetHeadphoneSurround(*s.HeadphoneSurround)
	}

	if s.HeadphoneType != nil {
		e.SetHeadphoneType(engine.HeadphoneType(*s.HeadphoneType))
	}

	if s.StereoBalance != nil {
		e.SetStereoBalance(*s.StereoBalance)
	}

	if s.ChannelSeparation != nil {
		e.SetChannelSeparation(*s.ChannelSeparation)
	}
}
