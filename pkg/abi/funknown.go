package abi

/*
#include <stdint.h>

// Every Steinberg COM interface begins its vtable with these three
// methods (FUnknown), so one generic caller works for QueryInterface,
// AddRef, and Release regardless of which concrete interface a pointer
// was obtained as.
typedef int32_t (*vsthost_queryInterface_fn)(void* self, const uint8_t iid[16], void** obj);
typedef uint32_t (*vsthost_addRef_fn)(void* self);
typedef uint32_t (*vsthost_release_fn)(void* self);

struct vsthost_funknown_vtbl {
	vsthost_queryInterface_fn queryInterface;
	vsthost_addRef_fn         addRef;
	vsthost_release_fn        release;
};

struct vsthost_funknown {
	struct vsthost_funknown_vtbl* lpVtbl;
};

static inline int32_t vsthost_query_interface(void* self, const uint8_t iid[16], void** obj) {
	struct vsthost_funknown* u = (struct vsthost_funknown*)self;
	return u->lpVtbl->queryInterface(self, iid, obj);
}

static inline uint32_t vsthost_add_ref(void* self) {
	struct vsthost_funknown* u = (struct vsthost_funknown*)self;
	return u->lpVtbl->addRef(self);
}

static inline uint32_t vsthost_release(void* self) {
	struct vsthost_funknown* u = (struct vsthost_funknown*)self;
	return u->lpVtbl->release(self);
}
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// ResultCode mirrors Steinberg's tresult: zero is success, negative
// values are the documented failure codes.
type ResultCode int32

const (
	ResultOK ResultCode = 0

	resultFalse       ResultCode = 1
	resultInvalidArg  ResultCode = -2
	resultNotImpl     ResultCode = -3
	resultInternalErr ResultCode = -4
	resultNotInit     ResultCode = -5
	resultNoInterface ResultCode = -6
)

// Ok reports whether the result code indicates success.
func (r ResultCode) Ok() bool { return r == ResultOK }

func (r ResultCode) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case resultFalse:
		return "false"
	case resultInvalidArg:
		return "invalid-argument"
	case resultNotImpl:
		return "not-implemented"
	case resultInternalErr:
		return "internal-error"
	case resultNotInit:
		return "not-initialized"
	case resultNoInterface:
		return "no-interface"
	default:
		return fmt.Sprintf("tresult(%d)", int32(r))
	}
}

// Unknown wraps any COM-object pointer crossed from the plugin side,
// giving Go code a reference-counted handle with QueryInterface support.
// Every ABI wrapper in this package (Factory, Component, AudioProcessor,
// ...) embeds one.
type Unknown struct {
	ptr unsafe.Pointer
}

// WrapUnknown takes ownership of a raw COM pointer the loader or a
// QueryInterface call handed back. It does not add a reference: callers
// follow the COM convention that the pointer already carries one.
func WrapUnknown(ptr unsafe.Pointer) Unknown {
	return Unknown{ptr: ptr}
}

// Pointer returns the raw COM pointer, for passing to a more specific
// wrapper's constructor after a successful QueryInterface.
func (u Unknown) Pointer() unsafe.Pointer { return u.ptr }

// Valid reports whether the wrapper holds a non-nil pointer.
func (u Unknown) Valid() bool { return u.ptr != nil }

// QueryInterface asks the plugin object for another interface by IID,
// returning a new Unknown wrapping the result on success.
func (u Unknown) QueryInterface(iid GUID) (Unknown, ResultCode) {
	if u.ptr == nil {
		return Unknown{}, resultNotInit
	}
	var out unsafe.Pointer
	rc := C.vsthost_query_interface(u.ptr, (*C.uint8_t)(unsafe.Pointer(&iid[0])), (*unsafe.Pointer)(unsafe.Pointer(&out)))
	return Unknown{ptr: out}, ResultCode(rc)
}

// AddRef increments the object's reference count.
func (u Unknown) AddRef() uint32 {
	if u.ptr == nil {
		return 0
	}
	return uint32(C.vsthost_add_ref(u.ptr))
}

// Release decrements the object's reference count. The caller must not
// use the wrapper again once the count reaches zero.
func (u Unknown) Release() uint32 {
	if u.ptr == nil {
		return 0
	}
	return uint32(C.vsthost_release(u.ptr))
}
