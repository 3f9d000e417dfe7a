// Package audioanalysis provides buffer-level sanity checks for comparing
// a plugin's processed output against its input (peak/RMS/DC drift,
// clipping, NaN propagation, sample-for-sample diff). No other package in
// this module imports it.
package audioanalysis

import (
	"fmt"
	"math"
)

// Analyzer inspects float32 audio buffers for common defects.
type Analyzer struct {
	ClippingThreshold float32
	DCThreshold       float32
	SilenceThreshold  float32
}

// NewAnalyzer returns an Analyzer with conservative default thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		ClippingThreshold: 0.99,
		DCThreshold:       0.01,
		SilenceThreshold:  0.0001,
	}
}

// Result holds the outcome of Analyze.
type Result struct {
	Peak           float32
	RMS            float32
	DC             float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	HasNaN         bool
	NaNCount       int
	ZeroCrossings  int
}

// Analyze performs a single pass over buffer, computing peak, RMS, DC
// offset, clipping, silence, and NaN counts.
func (a *Analyzer) Analyze(buffer []float32) Result {
	var result Result
	if len(buffer) == 0 {
		return result
	}

	var sum, sumSquares float64
	var lastSample float32

	for i, sample := range buffer {
		if math.IsNaN(float64(sample)) {
			result.HasNaN = true
			result.NaNCount++
			continue
		}

		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= a.ClippingThreshold {
			result.Clipping = true
			result.ClippedSamples++
		}

		sum += float64(sample)
		sumSquares += float64(sample * sample)

		if i > 0 && ((lastSample < 0 && sample >= 0) || (lastSample >= 0 && sample < 0)) {
			result.ZeroCrossings++
		}
		lastSample = sample
	}

	result.RMS = float32(math.Sqrt(sumSquares / float64(len(buffer))))
	result.DC = float32(sum / float64(len(buffer)))
	result.Silent = result.RMS < a.SilenceThreshold

	return result
}

// CheckBuffer runs Analyze and returns a list of human-readable issues,
// or nil if the buffer is clean.
func (a *Analyzer) CheckBuffer(buffer []float32, name string) []string {
	var issues []string
	result := a.Analyze(buffer)

	if result.HasNaN {
		issues = append(issues, fmt.Sprintf("%s: contains %d NaN values", name, result.NaNCount))
	}
	if result.Clipping {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, result.ClippedSamples))
	}
	if math.Abs(float64(result.DC)) > float64(a.DCThreshold) {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, result.DC))
	}
	if result.Peak > 1.0 {
		issues = append(issues, fmt.Sprintf("%s: peak exceeds 1.0 (%.3f)", name, result.Peak))
	}

	return issues
}

// CompareBuffers reports the largest and average absolute difference
// between two equal-length buffers, used to assert passthrough fidelity.
func CompareBuffers(a, b []float32, tolerance float32) string {
	if len(a) != len(b) {
		return fmt.Sprintf("buffer length mismatch: %d vs %d", len(a), len(b))
	}

	var maxDiff float32
	var maxDiffIndex int
	var totalDiff float64
	var diffCount int

	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			diffCount++
			totalDiff += float64(diff)
			if diff > maxDiff {
				maxDiff = diff
				maxDiffIndex = i
			}
		}
	}

	if diffCount == 0 {
		return "buffers are identical within tolerance"
	}

	avgDiff := totalDiff / float64(diffCount)
	return fmt.Sprintf("buffer differences:\n"+
		"  samples different: %d / %d (%.1f%%)\n"+
		"  max difference: %.6f at sample %d\n"+
		"  average difference: %.6f\n"+
		"  tolerance: %.6f",
		diffCount, len(a), float64(diffCount)/float64(len(a))*100,
		maxDiff, maxDiffIndex, avgDiff, tolerance)
}
