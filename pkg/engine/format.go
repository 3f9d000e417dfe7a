package engine

// Preference expresses the caller's desired stream configuration;
// zero-valued fields mean "no preference" for that axis.
type Preference struct {
	SampleRate   uint32
	BufferSize   uint32
	SampleFormat SampleFormat
	HasFormat    bool
	Channels     int
}

// defaultFormatRanking (no preferred format given) favors float, since
// it is the plugin chain's native sample type and needs no conversion.
var defaultFormatRanking = []SampleFormat{
	FormatF32, FormatI32, FormatU32, FormatI16, FormatU16, FormatI8, FormatU8,
}

// preferredFormatRanking (a preferred format was given) favors I32 as
// the fallback after an exact match, since many drivers report I32 as
// their native wire format even when the caller asked for something
// else.
var preferredFormatRanking = []SampleFormat{
	FormatI32, FormatF32, FormatU32, FormatI16, FormatU16, FormatI8, FormatU8,
}

func formatRankScore(ranking []SampleFormat, f SampleFormat) int {
	for i, r := range ranking {
		if r == f {
			return len(ranking) - i
		}
	}
	return 0
}

// SelectConfig implements the §4.G.1 format-selection algorithm: pick
// the candidate maximizing (sample-rate match, buffer-size match,
// format-priority score, channel match) in that lexicographic order,
// ties broken by input order. Returns false if candidates is empty.
func SelectConfig(candidates []ConfigRange, pref Preference) (StreamConfig, bool) {
	if len(candidates) == 0 {
		return StreamConfig{}, false
	}

	ranking := defaultFormatRanking
	if pref.HasFormat {
		ranking = preferredFormatRanking
	}

	best := -1
	var bestScore [4]int

	for i, c := range candidates {
		var s [4]int

		if pref.SampleRate != 0 && pref.SampleRate >= c.MinSampleHz && pref.SampleRate <= c.MaxSampleHz {
			s[0] = 1
		}
		if c.bufferSizeMatches(pref.BufferSize) {
			s[1] = 1
		}

		formatScore := formatRankScore(ranking, c.Format)
		if pref.HasFormat && c.Format == pref.SampleFormat {
			formatScore += 100
		}
		s[2] = formatScore

		if pref.Channels != 0 && c.Channels == pref.Channels {
			s[3] = 1
		}

		if best == -1 || greaterLex(s, bestScore) {
			best = i
			bestScore = s
		}
	}

	chosen := candidates[best]
	rate := chosen.MaxSampleHz
	if pref.SampleRate != 0 && pref.SampleRate >= chosen.MinSampleHz && pref.SampleRate <= chosen.MaxSampleHz {
		rate = pref.SampleRate
	}

	bufferSize := pref.BufferSize
	if bufferSize == 0 {
		bufferSize = 512
	}

	return StreamConfig{
		Format:     chosen.Format,
		Channels:   chosen.Channels,
		SampleRate: rate,
		BufferSize: bufferSize,
	}, true
}

func greaterLex(a, b [4]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
