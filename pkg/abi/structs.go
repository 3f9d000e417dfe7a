package abi

/*
#include <stdint.h>

// Minimal, self-contained mirrors of the Steinberg_Vst_* C structs this
// host crosses the ABI boundary with. Kept inline rather than pulled from
// a vendored SDK header: the layout is small, stable across SDK versions,
// and this keeps pkg/abi buildable without a bundled third-party header
// tree.

struct vsthost_speaker_arrangement { uint64_t bits; };

struct vsthost_audio_bus_buffers {
	int32_t  numChannels;
	uint64_t silenceFlags;
	float**  channelBuffers32;
};

struct vsthost_process_context {
	uint8_t opaque[200];
};

struct vsthost_process_data {
	int32_t processMode;
	int32_t symbolicSampleSize;
	int32_t numSamples;
	int32_t numInputs;
	int32_t numOutputs;
	struct vsthost_audio_bus_buffers* inputs;
	struct vsthost_audio_bus_buffers* outputs;
	void*   inputParameterChanges;
	void*   outputParameterChanges;
	void*   inputEvents;
	void*   outputEvents;
	struct vsthost_process_context* processContext;
};
*/
import "C"

import "unsafe"

// AudioBusBuffers is the Go-side view of one input or output bus's
// channel pointers for a single process call.
type AudioBusBuffers struct {
	NumChannels int32
	// Buffers holds one []float32 slice per channel, each re-sliced over
	// the plugin-owned (or host-owned, for input) backing memory. Slices
	// must not be retained past the process call: the backing pointers
	// are only valid for the duration of Process.
	Buffers [][]float32
}

// ProcessContext carries transport/tempo state a plugin may read during
// Process. ProcessData.Bind leaves the process-context pointer nil, so
// plugins are given no transport state.
type ProcessContext struct {
	raw C.struct_vsthost_process_context
}

// ProcessSetup is passed to IAudioProcessor.SetupProcessing before the
// stream starts.
type ProcessSetup struct {
	ProcessMode        ProcessMode
	SymbolicSampleSize SymbolicSampleSize
	MaxSamplesPerBlock int32
	SampleRate         float64
}

// ProcessData is the single argument to IAudioProcessor.Process, carrying
// input/output buffers for one block. Its parameter-change and
// process-context pointers are left nil: no parameter automation or
// transport context reaches the plugin.
//
// inPtrs/outPtrs are sized once, at construction, to the bus channel
// counts the caller commits to; Bind rewrites their contents and the
// fixed cInputBus/cOutputBus structs in place on every call, so a
// ProcessData built via NewReusableProcessData can be rebound to a new
// block's buffers on a real-time thread without allocating.
type ProcessData struct {
	raw        C.struct_vsthost_process_data
	cInputBus  C.struct_vsthost_audio_bus_buffers
	cOutputBus C.struct_vsthost_audio_bus_buffers
	inPtrs     []*C.float
	outPtrs    []*C.float
}

// ParameterInfo describes one automatable parameter, as returned by
// IEditController.GetParameterInfo.
type ParameterInfo struct {
	ID           uint32
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64
	UnitID       int32
	Flags        int32
}

// BusInfo describes one audio or event bus, as returned by
// IComponent.GetBusInfo.
type BusInfo struct {
	MediaType    MediaType
	Direction    BusDirection
	ChannelCount int32
	Name         string
	BusType      BusType
	Flags        uint32
}

// ClassInfo describes one plugin class a factory can instantiate.
type ClassInfo struct {
	CID         GUID
	Cardinality int32
	Category    string
	Name        string
}

// ParameterValueQueue is a single parameter's automation events for one
// process block — a host-side, fixed 6-slot list sized for typical
// per-block automation density (one value change per host control
// message tends to dominate; more than 6 in a single block is rare and
// simply drops the overflow rather than allocating).
type ParameterValueQueue struct {
	ParamID uint32
	Points  [6]ParameterPoint
	Count   int
}

// ParameterPoint is one (sample offset, normalized value) automation
// event within a block.
type ParameterPoint struct {
	SampleOffset int32
	Value        float64
}

// ParameterChanges collects the automation queues active for one block.
type ParameterChanges struct {
	Queues []ParameterValueQueue
}

// QueueFor returns the queue for paramID, creating it if absent.
func (pc *ParameterChanges) QueueFor(paramID uint32) *ParameterValueQueue {
	for i := range pc.Queues {
		if pc.Queues[i].ParamID == paramID {
			return &pc.Queues[i]
		}
	}
	pc.Queues = append(pc.Queues, ParameterValueQueue{ParamID: paramID})
	return &pc.Queues[len(pc.Queues)-1]
}

// Add appends a point to the queue, dropping it silently once the queue
// is at capacity.
func (q *ParameterValueQueue) Add(sampleOffset int32, value float64) {
	if q.Count >= len(q.Points) {
		return
	}
	q.Points[q.Count] = ParameterPoint{SampleOffset: sampleOffset, Value: value}
	q.Count++
}

// NewProcessData builds a ProcessData for one block, wiring planar
// channel slices directly into the C-visible bus buffers without
// copying: the channel pointers cross the ABI boundary exactly as the
// planar buffer stored them, satisfying the host's pointer-stability
// invariant across the call. It allocates, so callers on a real-time
// thread should use NewReusableProcessData once up front and Bind per
// block instead.
func NewProcessData(mode ProcessMode, sampleRate float64, numSamples int32, inputs, outputs [][]float32) *ProcessData {
	pd := NewReusableProcessData(len(inputs), len(outputs))
	pd.Bind(mode, numSamples, inputs, outputs)
	return pd
}

// NewReusableProcessData preallocates a ProcessData sized for fixed
// input/output channel counts. The caller rebinds it to each block's
// buffers via Bind; no further allocation happens after this call
// returns, so it is safe to call Bind from a real-time audio callback.
func NewReusableProcessData(inputChannels, outputChannels int) *ProcessData {
	return &ProcessData{
		inPtrs:  make([]*C.float, inputChannels),
		outPtrs: make([]*C.float, outputChannels),
	}
}

// Bind rewrites pd in place for one block: the process mode, sample
// count, and every channel pointer in inputs/outputs. inputs and
// outputs must not have more channels than pd was constructed for;
// extra channels are silently ignored rather than allocating to fit
// them.
func (pd *ProcessData) Bind(mode ProcessMode, numSamples int32, inputs, outputs [][]float32) {
	pd.raw.processMode = C.int32_t(mode)
	pd.raw.symbolicSampleSize = C.int32_t(SampleSize32)
	pd.raw.numSamples = C.int32_t(numSamples)

	if bindBus(&pd.cInputBus, inputs, pd.inPtrs) {
		pd.raw.numInputs = 1
		pd.raw.inputs = &pd.cInputBus
	} else {
		pd.raw.numInputs = 0
		pd.raw.inputs = nil
	}
	if bindBus(&pd.cOutputBus, outputs, pd.outPtrs) {
		pd.raw.numOutputs = 1
		pd.raw.outputs = &pd.cOutputBus
	} else {
		pd.raw.numOutputs = 0
		pd.raw.outputs = nil
	}
}

// bindBus rewrites bus's channel pointer array from channels, using the
// preallocated ptrs backing array (sized at ProcessData construction)
// instead of allocating one. It reports whether the bus has any
// channels at all.
func bindBus(bus *C.struct_vsthost_audio_bus_buffers, channels [][]float32, ptrs []*C.float) bool {
	n := len(channels)
	if n > len(ptrs) {
		n = len(ptrs)
	}
	for i := 0; i < n; i++ {
		if len(channels[i]) == 0 {
			ptrs[i] = nil
			continue
		}
		ptrs[i] = (*C.float)(unsafe.Pointer(&channels[i][0]))
	}
	bus.numChannels = C.int32_t(n)
	if n == 0 {
		bus.channelBuffers32 = nil
		return false
	}
	bus.channelBuffers32 = &ptrs[0]
	return true
}

// Raw returns the C-visible pointer to pass to AudioProcessor.Process.
func (pd *ProcessData) Raw() unsafe.Pointer {
	return unsafe.Pointer(&pd.raw)
}
