package core

// RenderConfig defines the host-side rendering geometry used by callers
// that drive the engine (buffer sizes, output rate).
type RenderConfig struct {
	SampleRate int
	FrameCount int
}

// RenderOption mutates a RenderConfig.
type RenderOption func(*RenderConfig)

// DefaultRenderConfig returns the geometry of a typical real-time render
// callback: 48 kHz, 1024 frames per buffer.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SampleRate: 48000,
		FrameCount: 1024,
	}
}

// WithRenderSampleRate sets the host output sample rate.
func WithRenderSampleRate(sampleRate int) RenderOption {
	return func(cfg *RenderConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameCount sets the per-buffer frame count.
func WithFrameCount(frames int) RenderOption {
	return func(cfg *RenderConfig) {
		if frames > 0 {
			cfg.FrameCount = frames
		}
	}
}

// ApplyRenderOptions applies zero or more options to the default config.
func ApplyRenderOptions(opts ...RenderOption) RenderConfig {
	cfg := DefaultRenderConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
