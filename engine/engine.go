package engine

// SampleRate is the fixed internal sample-rate assumption, in Hz. Envelope
// coefficients and delay lengths are derived from it; the host pipeline is
// expected to render at this rate.
const SampleRate = 48000

// strengthEpsilon is the threshold below which a stage skips its own work.
// A disabled effect costs a parameter read, not a buffer pass.
const strengthEpsilon = 0.01

// maxChannels bounds the channel-stateful stages. Buffers with more
// channels are processed, but recursive per-channel state tracks at most a
// stereo pair, matching the stereo-only spatial stages.
const maxChannels = 2

// Engine is the effects processor. Construct with New; the zero value is
// not usable because the delay-line state is unallocated.
type Engine struct {
	params parameters
	state  processingState
}

// New returns an engine with default parameters and zero-initialized
// processing state. All delay buffers are allocated here; the render path
// never allocates.
func New() *Engine {
	e := &Engine{}
	e.params.init()
	e.state.init()

	return e
}

// ProcessAudio runs the full effects chain over an interleaved buffer of
// numFrames frames by channelCount channels, mutating it in place. A nil
// buffer, a non-positive frame or channel count, or a buffer shorter than
// numFrames*channelCount samples is a benign no-op.
//
// ProcessAudio must not be called concurrently with itself. Parameter
// setters may run concurrently with it from any thread.
func (e *Engine) ProcessAudio(buffer []float64, numFrames, channelCount int32) {
	if buffer == nil || numFrames <= 0 || channelCount <= 0 {
		return
	}

	frames := int(numFrames)
	channels := int(channelCount)

	total := frames * channels
	if len(buffer) < total {
		return
	}

	buf := buffer[:total]

	// Leveling and tone shaping run before dynamics so the compressor and
	// limiter react to the musically shaped signal; spatial stages run
	// after reverb so the tail is itself spatialized; the hard clip is
	// always last regardless of upstream gain stacking.
	e.applyVolumeLeveler(buf)
	e.applyBassBoost(buf, frames, channels)
	e.applyTrebleBoost(buf, frames, channels)
	e.applyEqualizer(buf)
	e.applyClarity(buf, frames, channels)
	e.applyTubeWarmth(buf)
	e.applySpectrumExtension(buf, frames, channels)
	e.applyCompressor(buf, frames, channels)
	e.applyLoudnessGain(buf)
	e.applyReverb(buf, frames, channels)

	if channels == 2 {
		e.applyVirtualizer(buf, frames)
		e.applySurround3D(buf, frames)
		e.applyChannelSeparation(buf, frames)
		e.applyStereoBalance(buf, frames)
	}

	e.applyLimiter(buf)
	e.applyMasterVolume(buf)
	hardClip(buf)
}

// hardClip bounds every sample to [-1, 1]. It runs unconditionally as a
// safety net independent of the limiter.
func hardClip(buf []float64) {
	for i := range buf {
		if buf[i] > 1 {
			buf[i] = 1
		} else if buf[i] < -1 {
			buf[i] = -1
		}
	}
}
