package abi

/*
#include <stdint.h>

typedef int32_t (*vsthost_initialize_fn)(void* self, void* context);
typedef int32_t (*vsthost_getControllerClassId_fn)(void* self, uint8_t iid[16]);
typedef int32_t (*vsthost_setBusArrangements_fn)(void* self, uint64_t* inputs, int32_t numIns, uint64_t* outputs, int32_t numOuts);
typedef int32_t (*vsthost_activateBus_fn)(void* self, int32_t mediaType, int32_t dir, int32_t index, uint8_t state);
typedef int32_t (*vsthost_setActive_fn)(void* self, uint8_t state);

struct vsthost_component_vtbl {
	void* queryInterface;
	void* addRef;
	void* release;
	vsthost_initialize_fn initialize;
	void* terminate;
	vsthost_getControllerClassId_fn getControllerClassId;
	void* setIoMode;
	void* getBusCount;
	void* getBusInfo;
	void* getRoutingInfo;
	vsthost_activateBus_fn activateBus;
	vsthost_setActive_fn setActive;
	void* setState;
	void* getState;
};

struct vsthost_audioprocessor_vtbl_prefix {
	void* queryInterface;
	void* addRef;
	void* release;
	vsthost_setBusArrangements_fn setBusArrangements;
};

struct vsthost_component { struct vsthost_component_vtbl* lpVtbl; };
struct vsthost_audioprocessor_prefix { struct vsthost_audioprocessor_vtbl_prefix* lpVtbl; };

static inline int32_t vsthost_component_initialize(void* self, void* context) {
	struct vsthost_component* c = (struct vsthost_component*)self;
	return c->lpVtbl->initialize(self, context);
}

static inline int32_t vsthost_component_get_controller_class_id(void* self, uint8_t iid[16]) {
	struct vsthost_component* c = (struct vsthost_component*)self;
	return c->lpVtbl->getControllerClassId(self, iid);
}

static inline int32_t vsthost_component_activate_bus(void* self, int32_t mediaType, int32_t dir, int32_t index, uint8_t state) {
	struct vsthost_component* c = (struct vsthost_component*)self;
	return c->lpVtbl->activateBus(self, mediaType, dir, index, state);
}

static inline int32_t vsthost_component_set_active(void* self, uint8_t state) {
	struct vsthost_component* c = (struct vsthost_component*)self;
	return c->lpVtbl->setActive(self, state);
}
*/
import "C"
import "unsafe"

// Component wraps a loaded plugin's IComponent, the lifecycle and
// bus-configuration interface every VST3 class must implement.
type Component struct {
	Unknown
}

// WrapComponent adapts a raw IComponent pointer, typically obtained via
// Factory.CreateInstance(cid, IIDComponent).
func WrapComponent(u Unknown) Component {
	return Component{Unknown: u}
}

// Initialize hands the component its host context object (see
// HostApplication), the first call in the Load state.
func (c Component) Initialize(hostContext unsafe.Pointer) ResultCode {
	if !c.Valid() {
		return resultNotInit
	}
	return ResultCode(C.vsthost_component_initialize(c.ptr, hostContext))
}

// GetControllerClassID returns the GUID of the edit controller class
// associated with this component, used to open an out-of-process editor.
func (c Component) GetControllerClassID() (GUID, ResultCode) {
	var iid GUID
	if !c.Valid() {
		return iid, resultNotInit
	}
	rc := C.vsthost_component_get_controller_class_id(c.ptr, (*C.uint8_t)(unsafe.Pointer(&iid[0])))
	return iid, ResultCode(rc)
}

// ActivateBus enables or disables one input or output bus before
// SetActive(true) is called.
func (c Component) ActivateBus(mediaType MediaType, dir BusDirection, index int32, state bool) ResultCode {
	if !c.Valid() {
		return resultNotInit
	}
	return ResultCode(C.vsthost_component_activate_bus(c.ptr, C.int32_t(mediaType), C.int32_t(dir), C.int32_t(index), cbool(state)))
}

// SetActive transitions the component between Activated and Deactivated.
// It must not be called while the audio processor is processing.
func (c Component) SetActive(state bool) ResultCode {
	if !c.Valid() {
		return resultNotInit
	}
	return ResultCode(C.vsthost_component_set_active(c.ptr, cbool(state)))
}

func cbool(b bool) C.uint8_t {
	if b {
		return 1
	}
	return 0
}
