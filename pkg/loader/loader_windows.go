//go:build windows

package loader

import (
	"syscall"
	"unsafe"
)

// Open loads path (a .dll or .vst3 that is itself a PE DLL on Windows)
// via LoadLibrary, calls InitDll if present, and resolves
// GetPluginFactory.
func Open(path string) (*Module, error) {
	dll, err := syscall.LoadDLL(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: KindOpenFailed, Err: err}
	}

	if initProc, err := dll.FindProc("InitDll"); err == nil {
		rc, _, _ := initProc.Call()
		if rc == 0 {
			dll.Release()
			return nil, &LoadError{Path: path, Kind: KindInitFailed}
		}
	}

	factoryProc, err := dll.FindProc("GetPluginFactory")
	if err != nil {
		dll.Release()
		return nil, &LoadError{Path: path, Kind: KindFactoryMissing, Err: err}
	}

	factory, _, _ := factoryProc.Call()
	if factory == 0 {
		dll.Release()
		return nil, &LoadError{Path: path, Kind: KindFactoryMissing}
	}

	return &Module{
		path:    path,
		handle:  unsafe.Pointer(dll),
		factory: unsafe.Pointer(factory),
	}, nil
}

// Close invokes ExitDll if present, then releases the module handle.
func (m *Module) Close() error {
	if m.handle == nil {
		return nil
	}
	dll := (*syscall.DLL)(m.handle)
	if exitProc, err := dll.FindProc("ExitDll"); err == nil {
		exitProc.Call()
	}
	err := dll.Release()
	m.handle = nil
	m.factory = nil
	return err
}
