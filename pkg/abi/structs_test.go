package abi

import (
	"testing"
	"unsafe"
)

func TestProcessDataBindWiresChannelsAndSampleCount(t *testing.T) {
	pd := NewReusableProcessData(2, 1)

	in0 := []float32{1, 2, 3}
	in1 := []float32{4, 5, 6}
	out0 := []float32{0, 0, 0}

	pd.Bind(ProcessModeRealtime, 3, [][]float32{in0, in1}, [][]float32{out0})

	if pd.raw.numSamples != 3 {
		t.Fatalf("numSamples = %d, want 3", pd.raw.numSamples)
	}
	if pd.raw.numInputs != 1 || pd.raw.inputs == nil {
		t.Fatalf("expected one bound input bus, got numInputs=%d inputs=%v", pd.raw.numInputs, pd.raw.inputs)
	}
	if pd.raw.numOutputs != 1 || pd.raw.outputs == nil {
		t.Fatalf("expected one bound output bus, got numOutputs=%d outputs=%v", pd.raw.numOutputs, pd.raw.outputs)
	}
	if pd.cInputBus.numChannels != 2 {
		t.Fatalf("cInputBus.numChannels = %d, want 2", pd.cInputBus.numChannels)
	}
	if pd.cOutputBus.numChannels != 1 {
		t.Fatalf("cOutputBus.numChannels = %d, want 1", pd.cOutputBus.numChannels)
	}
}

// TestProcessDataBindReusesBackingArrays is the regression test for the
// real-time allocation contract: a ProcessData built once via
// NewReusableProcessData must never reallocate its pointer arrays
// across repeated Bind calls, however many times the caller rebinds it
// to a new block's buffers.
func TestProcessDataBindReusesBackingArrays(t *testing.T) {
	pd := NewReusableProcessData(2, 2)
	inPtrsAddr := unsafe.Pointer(&pd.inPtrs[0])
	outPtrsAddr := unsafe.Pointer(&pd.outPtrs[0])

	a := []float32{1, 2}
	b := []float32{3, 4}
	pd.Bind(ProcessModeRealtime, 2, [][]float32{a, a}, [][]float32{b, b})

	c := []float32{5, 6, 7}
	pd.Bind(ProcessModeRealtime, 3, [][]float32{c, c}, [][]float32{c, c})

	if unsafe.Pointer(&pd.inPtrs[0]) != inPtrsAddr {
		t.Fatal("inPtrs backing array reallocated across Bind calls")
	}
	if unsafe.Pointer(&pd.outPtrs[0]) != outPtrsAddr {
		t.Fatal("outPtrs backing array reallocated across Bind calls")
	}
	if pd.raw.numSamples != 3 {
		t.Fatalf("numSamples = %d, want 3 after second Bind", pd.raw.numSamples)
	}
}

func TestProcessDataBindEmptyBusReportsZeroChannels(t *testing.T) {
	pd := NewReusableProcessData(0, 1)
	out0 := []float32{1}
	pd.Bind(ProcessModeRealtime, 1, nil, [][]float32{out0})

	if pd.raw.numInputs != 0 || pd.raw.inputs != nil {
		t.Fatalf("expected no input bus, got numInputs=%d inputs=%v", pd.raw.numInputs, pd.raw.inputs)
	}
	if pd.raw.numOutputs != 1 {
		t.Fatalf("numOutputs = %d, want 1", pd.raw.numOutputs)
	}
}

func TestNewProcessDataBindsImmediately(t *testing.T) {
	in0 := []float32{1, 2}
	out0 := []float32{0, 0}
	pd := NewProcessData(ProcessModeRealtime, 0, 2, [][]float32{in0}, [][]float32{out0})

	if pd.raw.numSamples != 2 {
		t.Fatalf("numSamples = %d, want 2", pd.raw.numSamples)
	}
	if pd.cInputBus.numChannels != 1 || pd.cOutputBus.numChannels != 1 {
		t.Fatalf("expected one channel per bus, got in=%d out=%d", pd.cInputBus.numChannels, pd.cOutputBus.numChannels)
	}
}
