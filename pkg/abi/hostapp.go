package abi

/*
#include <stdint.h>
#include <string.h>

typedef int32_t (*vsthost_queryInterface_fn2)(void* self, const uint8_t iid[16], void** obj);
typedef uint32_t (*vsthost_addRef_fn2)(void* self);
typedef uint32_t (*vsthost_release_fn2)(void* self);
typedef int32_t (*vsthost_getName_fn)(void* self, uint16_t* name);

struct vsthost_hostapp_vtbl {
	vsthost_queryInterface_fn2 queryInterface;
	vsthost_addRef_fn2 addRef;
	vsthost_release_fn2 release;
	vsthost_getName_fn getName;
};

struct vsthost_hostapp_obj {
	struct vsthost_hostapp_vtbl* lpVtbl;
};

// goHostQueryInterface, goHostAddRef, goHostRelease, and goHostGetName
// are implemented in Go below and exported via cgo; the static vtable
// wires a single process-wide IHostApplication object to them. Every
// loaded plugin is handed the same object in Component.Initialize.
extern int32_t goHostQueryInterface(void* self, uint8_t* iid, void** obj);
extern uint32_t goHostAddRef(void* self);
extern uint32_t goHostRelease(void* self);
extern int32_t goHostGetName(void* self, uint16_t* name);

static struct vsthost_hostapp_vtbl vsthost_hostapp_vtbl_instance = {
	(vsthost_queryInterface_fn2)goHostQueryInterface,
	(vsthost_addRef_fn2)goHostAddRef,
	(vsthost_release_fn2)goHostRelease,
	(vsthost_getName_fn)goHostGetName,
};

static struct vsthost_hostapp_obj vsthost_hostapp_singleton = {
	&vsthost_hostapp_vtbl_instance,
};

static inline void* vsthost_hostapp_as_funknown(void) {
	return (void*)&vsthost_hostapp_singleton;
}
*/
import "C"
import "unsafe"

// hostAppName is the string IHostApplication::getName reports to a plugin
// that asks; goHostGetName writes it out as UTF-16 code units.
const hostAppName = "vsthost"

//export goHostQueryInterface
func goHostQueryInterface(self unsafe.Pointer, iid *byte, obj *unsafe.Pointer) int32 {
	// The host object only ever claims to be FUnknown/IHostApplication
	// itself; it never hands out any other interface.
	if iid == nil || obj == nil {
		return int32(resultInvalidArg)
	}
	id := *(*GUID)(unsafe.Pointer(iid))
	if id != IIDFUnknown && id != IIDHostApplication {
		*obj = nil
		return int32(resultNoInterface)
	}
	*obj = self
	return int32(ResultOK)
}

//export goHostAddRef
func goHostAddRef(self unsafe.Pointer) uint32 {
	// Process-lifetime singleton: refcounting is a no-op.
	return 1
}

//export goHostRelease
func goHostRelease(self unsafe.Pointer) uint32 {
	return 1
}

//export goHostGetName
func goHostGetName(self unsafe.Pointer, name *uint16) int32 {
	if name == nil {
		return int32(resultInvalidArg)
	}
	// 128 UTF-16 code units, the fixed size Steinberg_String128 uses.
	out := unsafe.Slice(name, 128)
	i := 0
	for _, r := range hostAppName {
		if i >= 127 {
			break
		}
		out[i] = uint16(r)
		i++
	}
	out[i] = 0
	return int32(ResultOK)
}

// HostApplication is the Go-side IHostApplication COM object this host
// passes to Component.Initialize, letting a loaded plugin query basic
// host identity. It is process-wide: there is exactly one audio engine
// per process, so a single static object is sufficient.
type HostApplication struct{}

// Pointer returns the FUnknown-compatible pointer to hand to
// Component.Initialize.
func (HostApplication) Pointer() unsafe.Pointer {
	return C.vsthost_hostapp_as_funknown()
}
