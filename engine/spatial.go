package engine

import "math"

const (
	// Room-size-dependent delay range for the 3D surround stage.
	minRoomDelayMs = 0.5
	maxRoomDelayMs = 30.0

	// Interaural time difference, ~0.3 ms at 48 kHz.
	itdDelaySamples = 14

	// crossfeedScale keeps the summed crossfeed below unity at full depth.
	crossfeedScale = 0.5

	// headEmphasisAlpha splits the headphone output into bass/treble bands
	// for the per-type emphasis.
	headEmphasisAlpha = 0.2
)

// headphoneProfile is one of the fixed headphone voicings: crossfeed scale,
// room delay multiplier, and bass/treble emphasis constants.
type headphoneProfile struct {
	crossfeed      float64
	delayScale     float64
	bassEmphasis   float64
	trebleEmphasis float64
}

var headphoneProfiles = [numHeadphoneTypes]headphoneProfile{
	HeadphoneTypeGeneric: {crossfeed: 0.5, delayScale: 1.0, bassEmphasis: 0.10, trebleEmphasis: 0.10},
	HeadphoneTypeInEar:   {crossfeed: 0.6, delayScale: 0.9, bassEmphasis: 0.15, trebleEmphasis: 0.05},
	HeadphoneTypeOnEar:   {crossfeed: 0.5, delayScale: 1.0, bassEmphasis: 0.12, trebleEmphasis: 0.08},
	HeadphoneTypeOverEar: {crossfeed: 0.4, delayScale: 1.1, bassEmphasis: 0.20, trebleEmphasis: 0.05},
	HeadphoneTypeStudio:  {crossfeed: 0.3, delayScale: 1.2, bassEmphasis: 0.05, trebleEmphasis: 0.15},
}

// applyVirtualizer widens the stereo image by subtracting a weighted copy
// of the opposite channel from each side.
func (e *Engine) applyVirtualizer(buf []float64, frames int) {
	strength := e.params.virtualizer.load()
	if strength < strengthEpsilon {
		return
	}

	crossMix := strength * 0.4
	directGain := 1 + strength*0.2

	for i := range frames {
		idx := i * 2
		left := buf[idx]
		right := buf[idx+1]

		buf[idx] = left*directGain - right*crossMix
		buf[idx+1] = right*directGain - left*crossMix
	}
}

// applySurround3D cross-feeds a room-size-dependent delayed copy of the
// opposite channel into each side (Haas effect). With headphone surround
// enabled it adds a short ITD crossfeed and the headphone type's
// bass/treble emphasis.
func (e *Engine) applySurround3D(buf []float64, frames int) {
	depth := e.params.surround3D.load()
	if depth < strengthEpsilon {
		return
	}

	roomSize := e.params.roomSize.load()
	level := e.params.surroundLevel.load()
	headphone := e.params.headphoneSurround.Load()
	profile := headphoneProfiles[HeadphoneType(e.params.headphoneType.Load())]

	delayMs := minRoomDelayMs + roomSize*(maxRoomDelayMs-minRoomDelayMs)
	if headphone {
		delayMs *= profile.delayScale
	}

	delaySamples := int(delayMs * 0.001 * SampleRate)
	if delaySamples < 1 {
		delaySamples = 1
	}

	if delaySamples >= surroundDelayCapacity {
		delaySamples = surroundDelayCapacity - 1
	}

	crossGain := depth * level * crossfeedScale
	itdGain := crossGain * profile.crossfeed

	left := e.state.surround[0]
	right := e.state.surround[1]

	for i := range frames {
		idx := i * 2
		l := buf[idx]
		r := buf[idx+1]

		left.Write(l)
		right.Write(r)

		outL := l + right.Read(delaySamples)*crossGain
		outR := r + left.Read(delaySamples)*crossGain

		if headphone {
			outL += right.Read(itdDelaySamples) * itdGain
			outR += left.Read(itdDelaySamples) * itdGain

			e.state.headLP[0] += headEmphasisAlpha * (outL - e.state.headLP[0])
			lowL := e.state.headLP[0]
			outL += lowL*profile.bassEmphasis + (outL-lowL)*profile.trebleEmphasis

			e.state.headLP[1] += headEmphasisAlpha * (outR - e.state.headLP[1])
			lowR := e.state.headLP[1]
			outR += lowR*profile.bassEmphasis + (outR-lowR)*profile.trebleEmphasis
		}

		buf[idx] = outL
		buf[idx+1] = outR
	}
}

// applyChannelSeparation blends between a mono sum and a widened image
// through mid/side scaling: 0 collapses to mono, 0.5 is unity, 1 doubles
// the side signal.
func (e *Engine) applyChannelSeparation(buf []float64, frames int) {
	separation := e.params.channelSeparation.load()
	if math.Abs(separation-0.5) < strengthEpsilon {
		return
	}

	sideGain := separation * 2

	for i := range frames {
		idx := i * 2
		mid := (buf[idx] + buf[idx+1]) * 0.5
		side := (buf[idx] - buf[idx+1]) * 0.5

		buf[idx] = mid + side*sideGain
		buf[idx+1] = mid - side*sideGain
	}
}

// applyStereoBalance attenuates the quieter side linearly; the louder side
// is never boosted. This simplified law is kept as-is for compatibility
// (it is not an equal-power pan).
func (e *Engine) applyStereoBalance(buf []float64, frames int) {
	balance := e.params.stereoBalance.load()
	if math.Abs(balance) < strengthEpsilon {
		return
	}

	leftGain := 1.0
	rightGain := 1.0

	if balance > 0 {
		leftGain = 1 - balance
	} else {
		rightGain = 1 + balance
	}

	for i := range frames {
		idx := i * 2
		buf[idx] *= leftGain
		buf[idx+1] *= rightGain
	}
}
