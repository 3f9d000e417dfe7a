// Package dsp provides digital signal processing utilities for audio
package dsp

// Common audio constants. No other package in this module imports them.
const (
	MinDB     = -200.0 // Minimum dB value (effectively silence)
	UnityGain = 1.0     // Unity gain (0 dB)

	Mono   = 1
	Stereo = 2

	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0
	SampleRate96k  = 96000.0

	MinBufferSize     = 32
	DefaultBufferSize = 512
	MaxBufferSize     = 8192

	MinMix  = 0.0 // Dry
	MaxMix  = 1.0 // Wet
	HalfMix = 0.5

	Epsilon = 1e-6
)
