package resample

import (
	"math"
	"testing"
)

func TestBuildSincTableSymmetric(t *testing.T) {
	q := DefaultQuality()
	table := buildSincTable(q)
	if len(table) != q.Taps*q.Oversampling+1 {
		t.Fatalf("table length = %d, want %d", len(table), q.Taps*q.Oversampling+1)
	}
	// The table's center point (zero tap offset) should be the peak,
	// since sinc(0)=1 and the window is 1 at its center.
	center := len(table) / 2
	for i, v := range table {
		if v > table[center]+1e-9 {
			t.Fatalf("table[%d]=%v exceeds center table[%d]=%v", i, v, center, table[center])
		}
	}
}

func TestUnityRatioOutputWithinInputLength(t *testing.T) {
	c := New(1.0, 1, 1024, DefaultQuality())
	in := make([]float32, 1024)
	for i := range in {
		in[i] = float32(math.Sin(float64(i) * 0.1))
	}
	out := make([]float32, 1024)
	n := c.Process([][]float32{in}, [][]float32{out})
	if n == 0 {
		t.Fatal("Process produced zero frames")
	}
	if n > 1024 {
		t.Fatalf("Process produced %d frames, want <= 1024", n)
	}
}

func TestUpsampleProducesMoreFrames(t *testing.T) {
	c := New(2.0, 1, 512, DefaultQuality())
	in := make([]float32, 512)
	out := make([]float32, 1200)
	n := c.Process([][]float32{in}, [][]float32{out})
	if n <= len(in) {
		t.Fatalf("Process produced %d frames for upsample, want more than %d", n, len(in))
	}
}

func TestResetClearsCarryPosition(t *testing.T) {
	c := New(1.5, 2, 256, DefaultQuality())
	in0 := make([][]float32, 2)
	out0 := make([][]float32, 2)
	for ch := range in0 {
		in0[ch] = make([]float32, 256)
		out0[ch] = make([]float32, 400)
	}
	c.Process(in0, out0)

	var nonzero bool
	for _, p := range c.channelPos {
		if p != 0 {
			nonzero = true
		}
	}
	if !nonzero {
		t.Skip("converter happened to land on an exact frame boundary")
	}

	c.Reset()
	for i, p := range c.channelPos {
		if p != 0 {
			t.Fatalf("channelPos[%d] = %v after Reset, want 0", i, p)
		}
	}
}

func TestProcessDoesNotPanicOnShortInput(t *testing.T) {
	c := New(1.0, 1, 4, DefaultQuality())
	in := []float32{0.1, 0.2, 0.3, 0.4}
	out := make([]float32, 4)
	// inputLen shorter than halfTaps: the filter can't center on any
	// sample, so it should simply produce zero frames, not panic.
	c.Process([][]float32{in}, [][]float32{out})
}
