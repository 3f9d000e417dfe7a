package abi

/*
#include <stdint.h>

typedef int32_t (*vsthost_setBusArrangements_fn2)(void* self, uint64_t* inputs, int32_t numIns, uint64_t* outputs, int32_t numOuts);
typedef int32_t (*vsthost_canProcessSampleSize_fn)(void* self, int32_t symbolicSampleSize);
typedef int32_t (*vsthost_setupProcessing_fn)(void* self, void* setup);
typedef int32_t (*vsthost_setProcessing_fn)(void* self, uint8_t state);
typedef int32_t (*vsthost_process_fn)(void* self, void* data);

struct vsthost_audioprocessor_vtbl {
	void* queryInterface;
	void* addRef;
	void* release;
	vsthost_setBusArrangements_fn2 setBusArrangements;
	void* getBusArrangement;
	vsthost_canProcessSampleSize_fn canProcessSampleSize;
	void* getLatencySamples;
	vsthost_setupProcessing_fn setupProcessing;
	vsthost_setProcessing_fn setProcessing;
	vsthost_process_fn process;
	void* getTailSamples;
};

struct vsthost_audioprocessor { struct vsthost_audioprocessor_vtbl* lpVtbl; };

struct vsthost_process_setup_c {
	int32_t processMode;
	int32_t symbolicSampleSize;
	int32_t maxSamplesPerBlock;
	double  sampleRate;
};

static inline int32_t vsthost_processor_setup(void* self, struct vsthost_process_setup_c* setup) {
	struct vsthost_audioprocessor* p = (struct vsthost_audioprocessor*)self;
	return p->lpVtbl->setupProcessing(self, setup);
}

static inline int32_t vsthost_processor_set_processing(void* self, uint8_t state) {
	struct vsthost_audioprocessor* p = (struct vsthost_audioprocessor*)self;
	return p->lpVtbl->setProcessing(self, state);
}

static inline int32_t vsthost_processor_process(void* self, void* data) {
	struct vsthost_audioprocessor* p = (struct vsthost_audioprocessor*)self;
	return p->lpVtbl->process(self, data);
}

static inline int32_t vsthost_processor_can_process_sample_size(void* self, int32_t size) {
	struct vsthost_audioprocessor* p = (struct vsthost_audioprocessor*)self;
	return p->lpVtbl->canProcessSampleSize(self, size);
}
*/
import "C"
import "unsafe"

// AudioProcessor wraps a loaded plugin's IAudioProcessor, the interface
// that actually runs samples through the plugin's algorithm.
type AudioProcessor struct {
	Unknown
}

// WrapAudioProcessor adapts a raw IAudioProcessor pointer, typically
// obtained via Component.Unknown.QueryInterface(IIDAudioProcessor).
func WrapAudioProcessor(u Unknown) AudioProcessor {
	return AudioProcessor{Unknown: u}
}

// CanProcessSampleSize reports whether the plugin supports the given
// sample width. This host only ever negotiates SampleSize32.
func (p AudioProcessor) CanProcessSampleSize(size SymbolicSampleSize) ResultCode {
	if !p.Valid() {
		return resultNotInit
	}
	return ResultCode(C.vsthost_processor_can_process_sample_size(p.ptr, C.int32_t(size)))
}

// SetupProcessing configures the processor for a fixed sample rate and
// maximum block size. host.Context.Activate calls it first, before the
// component's SetActive(true) and the first SetProcessing(true).
func (p AudioProcessor) SetupProcessing(setup ProcessSetup) ResultCode {
	if !p.Valid() {
		return resultNotInit
	}
	c := C.struct_vsthost_process_setup_c{
		processMode:        C.int32_t(setup.ProcessMode),
		symbolicSampleSize: C.int32_t(setup.SymbolicSampleSize),
		maxSamplesPerBlock: C.int32_t(setup.MaxSamplesPerBlock),
		sampleRate:         C.double(setup.SampleRate),
	}
	return ResultCode(C.vsthost_processor_setup(p.ptr, &c))
}

// SetProcessing marks the start or end of a contiguous run of Process
// calls. host.Context.Activate calls this with true when a plugin is
// loaded, and Deactivate with false when it is unloaded; stream start and
// stop do not call it.
func (p AudioProcessor) SetProcessing(state bool) ResultCode {
	if !p.Valid() {
		return resultNotInit
	}
	return ResultCode(C.vsthost_processor_set_processing(p.ptr, cbool(state)))
}

// Process runs one audio block through the plugin. data must point at a
// populated C.struct_vsthost_process_data; see ProcessData.
func (p AudioProcessor) Process(data unsafe.Pointer) ResultCode {
	if !p.Valid() {
		return resultNotInit
	}
	return ResultCode(C.vsthost_processor_process(p.ptr, data))
}
