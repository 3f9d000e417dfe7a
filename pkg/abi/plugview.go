package abi

/*
#include <stdint.h>
#include <stdlib.h>

struct vsthost_rect { int32_t left, top, right, bottom; };

typedef int32_t (*vsthost_isPlatformTypeSupported_fn)(void* self, const char* type);
typedef int32_t (*vsthost_attached_fn)(void* self, void* parent, const char* type);
typedef int32_t (*vsthost_removed_fn)(void* self);
typedef int32_t (*vsthost_checkSizeConstraint_fn)(void* self, struct vsthost_rect* rect);
typedef int32_t (*vsthost_getSize_fn)(void* self, struct vsthost_rect* size);

struct vsthost_plugview_vtbl {
	void* queryInterface;
	void* addRef;
	void* release;
	vsthost_isPlatformTypeSupported_fn isPlatformTypeSupported;
	vsthost_attached_fn attached;
	vsthost_removed_fn removed;
	void* onWheel;
	void* onKeyDown;
	void* onKeyUp;
	vsthost_getSize_fn getSize;
	void* onSize;
	void* onFocus;
	void* setFrame;
	void* canResize;
	vsthost_checkSizeConstraint_fn checkSizeConstraint;
};

struct vsthost_plugview { struct vsthost_plugview_vtbl* lpVtbl; };

static inline int32_t vsthost_plugview_attached(void* self, void* parent, const char* type) {
	struct vsthost_plugview* v = (struct vsthost_plugview*)self;
	return v->lpVtbl->attached(self, parent, type);
}

static inline int32_t vsthost_plugview_removed(void* self) {
	struct vsthost_plugview* v = (struct vsthost_plugview*)self;
	return v->lpVtbl->removed(self);
}

static inline int32_t vsthost_plugview_get_size(void* self, struct vsthost_rect* size) {
	struct vsthost_plugview* v = (struct vsthost_plugview*)self;
	return v->lpVtbl->getSize(self, size);
}

static inline int32_t vsthost_plugview_check_size_constraint(void* self, struct vsthost_rect* rect) {
	struct vsthost_plugview* v = (struct vsthost_plugview*)self;
	return v->lpVtbl->checkSizeConstraint(self, rect);
}
*/
import "C"
import "unsafe"

// Rect is a platform view's bounding box in native pixels.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// PlugView wraps a loaded plugin's IPlugView, the GUI surface returned
// by EditController.CreateView and embedded into a host-owned parent
// window during OpenEditor.
type PlugView struct {
	Unknown
}

// WrapPlugView adapts the raw pointer returned by EditController.CreateView.
func WrapPlugView(ptr unsafe.Pointer) PlugView {
	return PlugView{Unknown: WrapUnknown(ptr)}
}

// Attached embeds the view into a native parent window handle.
// platformType is one of the standard platform-type strings ("HWND" on
// Windows, "NSView" on macOS, "X11EmbedWindowID" on Linux).
func (v PlugView) Attached(parent unsafe.Pointer, platformType string) ResultCode {
	if !v.Valid() {
		return resultNotInit
	}
	cType := C.CString(platformType)
	defer C.free(unsafe.Pointer(cType))
	return ResultCode(C.vsthost_plugview_attached(v.ptr, parent, cType))
}

// Removed detaches the view from its parent window, called before
// Deactivate tears down the editor.
func (v PlugView) Removed() ResultCode {
	if !v.Valid() {
		return resultNotInit
	}
	return ResultCode(C.vsthost_plugview_removed(v.ptr))
}

// GetSize returns the view's current bounds.
func (v PlugView) GetSize() (Rect, ResultCode) {
	if !v.Valid() {
		return Rect{}, resultNotInit
	}
	var r C.struct_vsthost_rect
	rc := C.vsthost_plugview_get_size(v.ptr, &r)
	return Rect{
		Left: int32(r.left), Top: int32(r.top),
		Right: int32(r.right), Bottom: int32(r.bottom),
	}, ResultCode(rc)
}

// CheckSizeConstraint lets the plugin adjust a proposed resize to its
// nearest supported size; rect is updated in place.
func (v PlugView) CheckSizeConstraint(rect *Rect) ResultCode {
	if !v.Valid() {
		return resultNotInit
	}
	r := C.struct_vsthost_rect{
		left: C.int32_t(rect.Left), top: C.int32_t(rect.Top),
		right: C.int32_t(rect.Right), bottom: C.int32_t(rect.Bottom),
	}
	rc := C.vsthost_plugview_check_size_constraint(v.ptr, &r)
	*rect = Rect{Left: int32(r.left), Top: int32(r.top), Right: int32(r.right), Bottom: int32(r.bottom)}
	return ResultCode(rc)
}
