package dsp

import "testing"

func TestMixRange(t *testing.T) {
	if MinMix >= MaxMix {
		t.Errorf("Mix: min (%f) >= max (%f)", MinMix, MaxMix)
	}
	if HalfMix <= MinMix || HalfMix >= MaxMix {
		t.Errorf("HalfMix %f out of (%f, %f)", HalfMix, MinMix, MaxMix)
	}
}

func TestChannelConstants(t *testing.T) {
	if Mono != 1 {
		t.Errorf("Mono should be 1, got %d", Mono)
	}
	if Stereo != 2 {
		t.Errorf("Stereo should be 2, got %d", Stereo)
	}
}

func TestSampleRates(t *testing.T) {
	rates := []float64{SampleRate44k1, SampleRate48k, SampleRate96k}
	expected := []float64{44100.0, 48000.0, 96000.0}

	for i, rate := range rates {
		if rate != expected[i] {
			t.Errorf("sample rate %d: expected %f, got %f", i, expected[i], rate)
		}
	}
}

func TestBufferSizeRange(t *testing.T) {
	if MinBufferSize >= DefaultBufferSize || DefaultBufferSize >= MaxBufferSize {
		t.Errorf("buffer size bounds out of order: %d, %d, %d", MinBufferSize, DefaultBufferSize, MaxBufferSize)
	}
}
