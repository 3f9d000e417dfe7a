package audioanalysis

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzer(t *testing.T) {
	t.Run("BasicAnalysis", func(t *testing.T) {
		analyzer := NewAnalyzer()

		buffer := make([]float32, 1000)
		for i := range buffer {
			buffer[i] = 0.5 * float32(math.Sin(2*math.Pi*440*float64(i)/48000))
		}

		result := analyzer.Analyze(buffer)

		if result.Peak < 0.49 || result.Peak > 0.51 {
			t.Errorf("peak incorrect: %f", result.Peak)
		}

		expectedRMS := 0.5 / math.Sqrt(2)
		if math.Abs(float64(result.RMS)-expectedRMS) > 0.01 {
			t.Errorf("RMS incorrect: %f, expected ~%f", result.RMS, expectedRMS)
		}

		if result.ZeroCrossings == 0 {
			t.Error("no zero crossings detected")
		}
		if result.Silent {
			t.Error("should not be silent")
		}
	})

	t.Run("Clipping", func(t *testing.T) {
		analyzer := NewAnalyzer()

		buffer := []float32{0.5, 0.99, 1.0, -0.99, -1.0, 0.5}
		result := analyzer.Analyze(buffer)

		if !result.Clipping {
			t.Error("should detect clipping")
		}
		if result.ClippedSamples != 4 {
			t.Errorf("wrong clipped sample count: %d", result.ClippedSamples)
		}
	})

	t.Run("DCOffset", func(t *testing.T) {
		analyzer := NewAnalyzer()

		buffer := make([]float32, 100)
		for i := range buffer {
			buffer[i] = 0.3
		}

		result := analyzer.Analyze(buffer)
		if math.Abs(float64(result.DC)-0.3) > 0.001 {
			t.Errorf("DC offset incorrect: %f", result.DC)
		}
	})

	t.Run("Silence", func(t *testing.T) {
		analyzer := NewAnalyzer()

		buffer := make([]float32, 100)
		result := analyzer.Analyze(buffer)

		if !result.Silent {
			t.Error("should detect silence")
		}
		if result.Peak != 0 {
			t.Error("peak should be 0")
		}
	})

	t.Run("NaN", func(t *testing.T) {
		analyzer := NewAnalyzer()

		buffer := []float32{1.0, float32(math.NaN()), 0.5, float32(math.NaN())}
		result := analyzer.Analyze(buffer)

		if !result.HasNaN {
			t.Error("should detect NaN")
		}
		if result.NaNCount != 2 {
			t.Errorf("wrong NaN count: %d", result.NaNCount)
		}
	})
}

func TestCompareBuffers(t *testing.T) {
	t.Run("IdenticalBuffers", func(t *testing.T) {
		a := []float32{1.0, 2.0, 3.0}
		b := []float32{1.0, 2.0, 3.0}

		result := CompareBuffers(a, b, 0.001)
		if !strings.Contains(result, "identical") {
			t.Error("should be identical")
		}
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		a := []float32{1.0, 2.0}
		b := []float32{1.0, 2.0, 3.0}

		result := CompareBuffers(a, b, 0.001)
		if !strings.Contains(result, "length mismatch") {
			t.Error("should detect length mismatch")
		}
	})

	t.Run("Differences", func(t *testing.T) {
		a := []float32{1.0, 2.0, 3.0}
		b := []float32{1.0, 2.1, 3.0}

		result := CompareBuffers(a, b, 0.05)
		if !strings.Contains(result, "1 / 3") {
			t.Error("should report 1 difference")
		}
		if !strings.Contains(result, "0.100000") {
			t.Error("should report difference magnitude")
		}
	})
}

func TestCheckBuffer(t *testing.T) {
	analyzer := NewAnalyzer()

	t.Run("NoIssues", func(t *testing.T) {
		buffer := []float32{0.1, 0.2, -0.1, -0.2}
		issues := analyzer.CheckBuffer(buffer, "test")

		if len(issues) != 0 {
			t.Errorf("should have no issues, got: %v", issues)
		}
	})

	t.Run("MultipleIssues", func(t *testing.T) {
		buffer := []float32{
			float32(math.NaN()),
			1.5,
			0.3, 0.3, 0.3,
		}

		issues := analyzer.CheckBuffer(buffer, "test")

		hasNaN, hasPeak, hasDC := false, false, false
		for _, issue := range issues {
			if strings.Contains(issue, "NaN") {
				hasNaN = true
			}
			if strings.Contains(issue, "peak exceeds") {
				hasPeak = true
			}
			if strings.Contains(issue, "DC offset") {
				hasDC = true
			}
		}

		if !hasNaN || !hasPeak || !hasDC {
			t.Errorf("missing expected issues: %v", issues)
		}
	})
}

func BenchmarkAnalyzer(b *testing.B) {
	analyzer := NewAnalyzer()
	buffer := make([]float32, 512)
	for i := range buffer {
		buffer[i] = float32(math.Sin(2 * math.Pi * float64(i) / 100))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = analyzer.Analyze(buffer)
	}
}
