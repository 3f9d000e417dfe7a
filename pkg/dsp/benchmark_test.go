package dsp

import (
	"math"
	"testing"
)

var benchmarkSizes = []int{64, 128, 256, 512, 1024, 2048}

func BenchmarkBufferOperations(b *testing.B) {
	for _, size := range benchmarkSizes {
		buffer := make([]float32, size)
		src := make([]float32, size)
		for i := range src {
			src[i] = float32(math.Sin(float64(i) * 0.1))
		}

		b.Run("Clear", func(b *testing.B) {
			b.SetBytes(int64(size * 4))
			for i := 0; i < b.N; i++ {
				Clear(buffer)
			}
		})

		b.Run("Copy", func(b *testing.B) {
			b.SetBytes(int64(size * 4))
			for i := 0; i < b.N; i++ {
				Copy(buffer, src)
			}
		})

		b.Run("Scale", func(b *testing.B) {
			b.SetBytes(int64(size * 4))
			copy(buffer, src)
			for i := 0; i < b.N; i++ {
				Scale(buffer, 0.5)
			}
		})

		b.Run("AddScaled", func(b *testing.B) {
			b.SetBytes(int64(size * 4))
			for i := 0; i < b.N; i++ {
				AddScaled(buffer, src, 0.5)
			}
		})
	}
}

// BenchmarkAllocationCheck verifies this package's buffer ops allocate
// nothing.
func BenchmarkAllocationCheck(b *testing.B) {
	buffer := make([]float32, 512)
	src := make([]float32, 512)

	benchmarks := []struct {
		name string
		fn   func()
	}{
		{"BufferCopy", func() { Copy(buffer, src) }},
		{"BufferClear", func() { Clear(buffer) }},
		{"BufferScale", func() { Scale(buffer, 0.5) }},
		{"AddScaled", func() { AddScaled(buffer, src, 0.5) }},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name+"_Allocs", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				bm.fn()
			}
		})
	}
}
