package engine

import "testing"

func TestSelectConfigPrefersSampleRateMatch(t *testing.T) {
	candidates := []ConfigRange{
		{Format: FormatF32, Channels: 2, MinSampleHz: 44100, MaxSampleHz: 44100},
		{Format: FormatF32, Channels: 2, MinSampleHz: 48000, MaxSampleHz: 48000},
	}
	cfg, ok := SelectConfig(candidates, Preference{SampleRate: 48000, Channels: 2})
	if !ok {
		t.Fatal("expected a match")
	}
	if cfg.SampleRate != 48000 {
		t.Fatalf("expected 48000, got %d", cfg.SampleRate)
	}
}

func TestSelectConfigNoPreferenceFavorsFloat(t *testing.T) {
	candidates := []ConfigRange{
		{Format: FormatI16, Channels: 2, MinSampleHz: 44100, MaxSampleHz: 48000},
		{Format: FormatF32, Channels: 2, MinSampleHz: 44100, MaxSampleHz: 48000},
	}
	cfg, ok := SelectConfig(candidates, Preference{})
	if !ok {
		t.Fatal("expected a match")
	}
	if cfg.Format != FormatF32 {
		t.Fatalf("expected float preferred with no explicit preference, got %s", cfg.Format)
	}
}

func TestSelectConfigPreferredFormatWins(t *testing.T) {
	candidates := []ConfigRange{
		{Format: FormatF32, Channels: 2, MinSampleHz: 44100, MaxSampleHz: 48000},
		{Format: FormatI16, Channels: 2, MinSampleHz: 44100, MaxSampleHz: 48000},
	}
	cfg, ok := SelectConfig(candidates, Preference{HasFormat: true, SampleFormat: FormatI16, Channels: 2})
	if !ok {
		t.Fatal("expected a match")
	}
	if cfg.Format != FormatI16 {
		t.Fatalf("expected preferred format i16, got %s", cfg.Format)
	}
}

func TestSelectConfigEmptyCandidates(t *testing.T) {
	_, ok := SelectConfig(nil, Preference{})
	if ok {
		t.Fatal("expected no match for empty candidate list")
	}
}

func TestRegistryEmptyHasNoEntries(t *testing.T) {
	r := newRegistry()
	if r.len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.len())
	}
	if _, ok := r.get(1); ok {
		t.Fatal("expected no entry for unknown id")
	}
}

func TestGreaterLexLexicographicOrdering(t *testing.T) {
	if !greaterLex([4]int{1, 0, 0, 0}, [4]int{0, 100, 100, 100}) {
		t.Fatal("first element should dominate regardless of later elements")
	}
	if greaterLex([4]int{1, 1, 1, 1}, [4]int{1, 1, 1, 1}) {
		t.Fatal("equal scores should not compare greater")
	}
}

func TestBackendErrorUnwrap(t *testing.T) {
	inner := &NotFoundError{Kind: NotFoundBackend, Name: "wasapi"}
	err := &BackendError{Backend: "wasapi", Op: "enumerate", Err: inner}
	if err.Unwrap() != inner {
		t.Fatal("expected Unwrap to return the wrapped error")
	}
}
