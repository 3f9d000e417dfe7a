package abi

/*
#include <stdint.h>
#include <stdlib.h>

typedef void* (*vsthost_createView_fn)(void* self, const char* name);

struct vsthost_editcontroller_vtbl_tail {
	void* setComponentState;
	void* setState;
	void* getState;
	void* getParameterCount;
	void* getParameterInfo;
	void* getParamStringByValue;
	void* getParamValueByString;
	void* normalizedParamToPlain;
	void* plainParamToNormalized;
	void* getParamNormalized;
	void* setParamNormalized;
	void* setComponentHandler;
	vsthost_createView_fn createView;
};

// IEditController's vtable is FUnknown(3) + IPluginBase(2: initialize,
// terminate) + 13 of its own methods; createView is the last.
struct vsthost_editcontroller_vtbl {
	void* queryInterface;
	void* addRef;
	void* release;
	void* initialize;
	void* terminate;
	struct vsthost_editcontroller_vtbl_tail tail;
};

struct vsthost_editcontroller { struct vsthost_editcontroller_vtbl* lpVtbl; };

static inline void* vsthost_editcontroller_create_view(void* self, const char* name) {
	struct vsthost_editcontroller* e = (struct vsthost_editcontroller*)self;
	return e->lpVtbl->tail.createView(self, name);
}
*/
import "C"
import "unsafe"

// EditController wraps a loaded plugin's IEditController, used only to
// obtain an IPlugView for OpenEditor. The host reads and writes no plugin
// parameters, through this interface or otherwise.
type EditController struct {
	Unknown
}

// WrapEditController adapts a raw IEditController pointer, obtained via
// Factory.CreateInstance(controllerClassID, IIDEditController).
func WrapEditController(u Unknown) EditController {
	return EditController{Unknown: u}
}

// CreateView requests a platform view of the given type ("editor" is the
// only standard type). Returns nil if the plugin has no GUI.
func (e EditController) CreateView(viewType string) unsafe.Pointer {
	if !e.Valid() {
		return nil
	}
	cName := C.CString(viewType)
	defer C.free(unsafe.Pointer(cName))
	return C.vsthost_editcontroller_create_view(e.ptr, cName)
}
