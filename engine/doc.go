// Package engine implements a real-time audio effects chain operating on
// interleaved sample buffers in place.
//
// A host media pipeline calls ProcessAudio once per render callback; any
// number of control threads adjust parameters concurrently through the
// setters. Every knob is an independent atomic cell, so the render path
// never locks, blocks, or allocates. No consistency is guaranteed across
// distinct knobs within one buffer; per-knob freshness is.
//
// Filter and delay-line state persists for the lifetime of the engine and
// is owned exclusively by the render call. It is never reset mid-stream,
// which would produce an audible discontinuity.
package engine
