package abi

/*
#include <stdint.h>

struct vsthost_pclassinfo2 {
	uint8_t  cid[16];
	int32_t  cardinality;
	char     category[32];
	char     name[64];
	uint32_t classFlags;
	char     subCategories[128];
	char     vendor[64];
	char     version[64];
	char     sdkVersion[64];
};

typedef int32_t (*vsthost_countClasses_fn)(void* self);
typedef int32_t (*vsthost_getClassInfo2_fn)(void* self, int32_t index, struct vsthost_pclassinfo2* info);
typedef int32_t (*vsthost_createInstance_fn)(void* self, const char* cid, const char* iid, void** obj);

struct vsthost_factory_vtbl {
	void* queryInterface;
	void* addRef;
	void* release;
	void* getFactoryInfo;
	vsthost_countClasses_fn   countClasses;
	void* getClassInfo;
	vsthost_createInstance_fn createInstance;
	void* getClassInfo2;
};

struct vsthost_factory { struct vsthost_factory_vtbl* lpVtbl; };

static inline int32_t vsthost_factory_count_classes(void* self) {
	struct vsthost_factory* f = (struct vsthost_factory*)self;
	return f->lpVtbl->countClasses(self);
}

static inline int32_t vsthost_factory_create_instance(void* self, const uint8_t cid[16], const uint8_t iid[16], void** obj) {
	struct vsthost_factory* f = (struct vsthost_factory*)self;
	return f->lpVtbl->createInstance(self, (const char*)cid, (const char*)iid, obj);
}

static inline int32_t vsthost_factory_get_class_info2(void* self, int32_t index, struct vsthost_pclassinfo2* info) {
	struct vsthost_factory* f = (struct vsthost_factory*)self;
	vsthost_getClassInfo2_fn fn = (vsthost_getClassInfo2_fn)f->lpVtbl->getClassInfo2;
	return fn(self, index, info);
}
*/
import "C"
import (
	"strings"
	"unsafe"
)

// Factory wraps a loaded module's IPluginFactory, the single entry
// point a host uses to enumerate and instantiate the components a
// module exports.
type Factory struct {
	Unknown
}

// WrapFactory adapts a raw IPluginFactory pointer obtained from the
// module loader's GetPluginFactory export.
func WrapFactory(ptr unsafe.Pointer) Factory {
	return Factory{Unknown: WrapUnknown(ptr)}
}

// CountClasses returns the number of classes (plugin components) the
// factory can create.
func (f Factory) CountClasses() int32 {
	if !f.Valid() {
		return 0
	}
	return int32(C.vsthost_factory_count_classes(f.ptr))
}

// CreateInstance asks the factory to create an instance of the class
// identified by cid, requesting the iid interface on it.
func (f Factory) CreateInstance(cid, iid GUID) (Unknown, ResultCode) {
	if !f.Valid() {
		return Unknown{}, resultNotInit
	}
	var out unsafe.Pointer
	rc := C.vsthost_factory_create_instance(
		f.ptr,
		(*C.uint8_t)(unsafe.Pointer(&cid[0])),
		(*C.uint8_t)(unsafe.Pointer(&iid[0])),
		(*unsafe.Pointer)(unsafe.Pointer(&out)),
	)
	return Unknown{ptr: out}, ResultCode(rc)
}

// GetClassInfo returns the class metadata for the class at index,
// requiring the factory to support IPluginFactory2's richer
// getClassInfo2. Of the returned record, ClassInfo keeps only the class
// ID, cardinality, category, and name.
func (f Factory) GetClassInfo(index int32) (ClassInfo, ResultCode) {
	if !f.Valid() {
		return ClassInfo{}, resultNotInit
	}
	var raw C.struct_vsthost_pclassinfo2
	rc := C.vsthost_factory_get_class_info2(f.ptr, C.int32_t(index), &raw)
	if ResultCode(rc) != ResultOK {
		return ClassInfo{}, ResultCode(rc)
	}
	var cid GUID
	for i := 0; i < 16; i++ {
		cid[i] = byte(raw.cid[i])
	}
	return ClassInfo{
		CID:         cid,
		Cardinality: int32(raw.cardinality),
		Category:    cStringToGo(cBytes(raw.category[:])),
		Name:        cStringToGo(cBytes(raw.name[:])),
	}, ResultOK
}

func cBytes(cs []C.char) []byte {
	b := make([]byte, len(cs))
	for i, c := range cs {
		b[i] = byte(c)
	}
	return b
}

// cStringToGo trims a fixed-size, NUL-padded C char array to a Go string.
func cStringToGo(b []byte) string {
	if i := indexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(string(b), "\x00")
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
