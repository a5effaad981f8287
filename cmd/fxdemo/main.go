// Command fxdemo renders a test signal through the effects engine and plays
// it on the default audio device. It stands in for the platform binding
// layer: it owns the buffers, picks the render geometry, converts between
// the engine's float64 samples and the device's float32 frames, and routes
// settings to the engine's setters.
package main

import (
	"encoding/binary"
	"flag"
	"log"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/euphoriae/audiofx/dsp/core"
	"github.com/euphoriae/audiofx/dsp/signal"
	"github.com/euphoriae/audiofx/engine"
)

const demoChannels = 2

// source is any generator that fills an interleaved frame buffer.
type source interface {
	FillInterleaved(buf []float64, channels int)
}

// renderer pulls frames from the source, runs them through the engine one
// device request at a time, and encodes float32 LE frames for oto.
type renderer struct {
	eng *engine.Engine
	src source
	buf []float64
}

func (r *renderer) Read(p []byte) (int, error) {
	const bytesPerFrame = 4 * demoChannels

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	r.buf = core.EnsureLen(r.buf, frames*demoChannels)
	r.src.FillInterleaved(r.buf, demoChannels)

	r.eng.ProcessAudio(r.buf, int32(frames), demoChannels)

	for i, sample := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(float32(sample)))
	}

	return frames * bytesPerFrame, nil
}

func main() {
	log.SetFlags(0)

	settingsPath := flag.String("settings", "", "YAML settings file (see example-settings.yaml)")
	sourceName := flag.String("source", "sine", "test signal: sine or noise")
	freq := flag.Float64("freq", 440, "sine frequency in Hz")
	amplitude := flag.Float64("amp", 0.5, "test signal amplitude")
	seconds := flag.Float64("seconds", 5, "playback duration")
	frames := flag.Int("frames", 1024, "render block size in frames")
	flag.Parse()

	cfg := core.ApplyRenderOptions(
		core.WithRenderSampleRate(engine.SampleRate),
		core.WithFrameCount(*frames),
	)

	var src source

	switch *sourceName {
	case "sine":
		osc, err := signal.NewOscillator(float64(cfg.SampleRate), *freq, *amplitude)
		if err != nil {
			log.Fatal(err)
		}

		src = osc
	case "noise":
		noise, err := signal.NewNoise(*amplitude, 1)
		if err != nil {
			log.Fatal(err)
		}

		src = noise
	default:
		log.Fatalf("unknown source %q", *sourceName)
	}

	eng := engine.New()

	if *settingsPath != "" {
		s, err := loadSettings(*settingsPath)
		if err != nil {
			log.Fatal(err)
		}

		s.apply(eng)
		log.Printf("settings loaded from %s (reverb: %s)",
			*settingsPath, engine.ReverbPresetName(eng.ReverbPreset()))
	}

	bufferDuration := time.Duration(float64(cfg.FrameCount) / float64(cfg.SampleRate) * float64(time.Second))

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: demoChannels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferDuration,
	})
	if err != nil {
		log.Fatalf("audio context: %v", err)
	}
	<-ready

	player := ctx.NewPlayer(&renderer{eng: eng, src: src})
	defer player.Close()

	log.Printf("playing %s for %.1fs", *sourceName, *seconds)
	player.Play()

	time.Sleep(time.Duration(*seconds * float64(time.Second)))
}
