//go:build linux || darwin

package loader

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

typedef int32_t (*vsthost_bool_entry_fn)(void*);
typedef int32_t (*vsthost_voidstar_entry_fn)(void);
typedef void* (*vsthost_get_factory_fn)(void);

static inline int32_t vsthost_call_init_dll(void* fn) {
	vsthost_voidstar_entry_fn f = (vsthost_voidstar_entry_fn)fn;
	return f();
}

static inline void vsthost_call_exit_dll(void* fn) {
	vsthost_voidstar_entry_fn f = (vsthost_voidstar_entry_fn)fn;
	f();
}

static inline void* vsthost_call_get_factory(void* fn) {
	vsthost_get_factory_fn f = (vsthost_get_factory_fn)fn;
	return f();
}
*/
import "C"
import (
	"os"
	"path/filepath"
	"runtime"
	"unsafe"
)

// resolveBinaryPath accepts either a bare shared object (linux) or a
// .vst3 bundle directory (macOS) and returns the concrete file dlopen
// should open.
func resolveBinaryPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	if runtime.GOOS != "darwin" {
		return "", &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	return filepath.Join(path, "Contents", "MacOS", name), nil
}

// darwin .vst3 bundles are directories with a Contents/MacOS/<name> Mach-O
// inside; linux ships a bare .so. Both resolve the same three symbols
// once dlopen has a handle, so the rest of this file is platform-generic.

// Open loads path via dlopen, calls its InitDll entry point if present
// (optional on every platform), and resolves GetPluginFactory.
func Open(path string) (*Module, error) {
	cPath, err := resolveBinaryPath(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: KindOpenFailed, Err: err}
	}

	cStr := C.CString(cPath)
	defer C.free(unsafe.Pointer(cStr))

	handle := C.dlopen(cStr, C.RTLD_NOW|C.RTLD_LOCAL)
	if handle == nil {
		return nil, &LoadError{Path: path, Kind: KindOpenFailed, Err: dlError()}
	}

	if initSym := dlsym(handle, "InitDll"); initSym != nil {
		if rc := C.vsthost_call_init_dll(initSym); rc == 0 {
			C.dlclose(handle)
			return nil, &LoadError{Path: path, Kind: KindInitFailed}
		}
	}

	factorySym := dlsym(handle, "GetPluginFactory")
	if factorySym == nil {
		C.dlclose(handle)
		return nil, &LoadError{Path: path, Kind: KindFactoryMissing}
	}

	factory := C.vsthost_call_get_factory(factorySym)
	if factory == nil {
		C.dlclose(handle)
		return nil, &LoadError{Path: path, Kind: KindFactoryMissing}
	}

	return &Module{
		path:    path,
		handle:  unsafe.Pointer(handle),
		factory: factory,
	}, nil
}

// Close invokes ExitDll if present, then closes the OS handle. The
// caller must have released every component the factory created first.
func (m *Module) Close() error {
	if m.handle == nil {
		return nil
	}
	if exitSym := dlsym(m.handle, "ExitDll"); exitSym != nil {
		C.vsthost_call_exit_dll(exitSym)
	}
	C.dlclose(m.handle)
	m.handle = nil
	m.factory = nil
	return nil
}

func dlsym(handle unsafe.Pointer, name string) unsafe.Pointer {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return C.dlsym(handle, cName)
}

func dlError() error {
	if msg := C.dlerror(); msg != nil {
		return errString(C.GoString(msg))
	}
	return errString("unknown dlopen failure")
}

type errString string

func (e errString) Error() string { return string(e) }
