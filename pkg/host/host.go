// Package host drives a single loaded plugin instance through its full
// lifecycle: load, activate, process, optionally open an editor,
// deactivate, and release — the state machine pkg/engine's plugin
// registry is built from.
package host

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/nullrend/vsthost/internal/applog"
	"github.com/nullrend/vsthost/pkg/abi"
	"github.com/nullrend/vsthost/pkg/loader"
)

var log = applog.For("host")

// effectCategory is the IPluginFactory class category this host accepts;
// anything else (instruments, MIDI-only classes) is skipped during Load.
const effectCategory = "Audio Module Class"

// State is PluginHostContext's observable lifecycle stage.
type State int

const (
	StateLoaded State = iota
	StateActivated
	StateProcessing
	StateProcessingEditorOpen
	StateDeactivated
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateActivated:
		return "activated"
	case StateProcessing:
		return "processing"
	case StateProcessingEditorOpen:
		return "processing+editor-open"
	case StateDeactivated:
		return "deactivated"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// ErrorKind distinguishes PluginError causes per the external interface
// error taxonomy.
type ErrorKind int

const (
	ErrLoadFailed ErrorKind = iota
	ErrInterfaceMissing
	ErrActivationFailed
	ErrEditorFailed
)

// PluginError is the typed error this package returns for every
// lifecycle failure; Kind lets callers distinguish cases with errors.As.
type PluginError struct {
	Kind  ErrorKind
	Step  string
	IID   abi.GUID
	Cause error
}

func (e *PluginError) Error() string {
	switch e.Kind {
	case ErrInterfaceMissing:
		return fmt.Sprintf("host: plugin does not expose interface %s", e.IID)
	case ErrActivationFailed:
		return fmt.Sprintf("host: activation step %q failed: %v", e.Step, e.Cause)
	case ErrEditorFailed:
		return fmt.Sprintf("host: editor failed: %v", e.Cause)
	default:
		return fmt.Sprintf("host: load failed: %v", e.Cause)
	}
}

func (e *PluginError) Unwrap() error { return e.Cause }

// PluginId is a process-wide, monotonically increasing identifier
// assigned at Load and stable for the plugin's lifetime.
type PluginId uint64

var nextPluginID atomic.Uint64

func allocatePluginID() PluginId {
	return PluginId(nextPluginID.Add(1))
}

// ResizeCallback is the resize hook OpenEditor stores for an open editor.
// The host hands the view no IPlugFrame, so nothing in this package
// invokes it when the view asks to resize itself.
type ResizeCallback func(abi.Rect)

// Context is one loaded plugin instance: PluginHostContext from the
// data model.
type Context struct {
	id          PluginId
	displayName string
	module      *loader.Module
	factory     abi.Factory
	component   abi.Component
	processor   abi.AudioProcessor
	controller  abi.EditController
	hasProc     bool
	hasCtrl     bool
	view        abi.PlugView
	hasView     bool
	state       State
	onResize    ResizeCallback
}

// ID returns the plugin's stable identifier.
func (c *Context) ID() PluginId { return c.id }

// DisplayName returns the class name captured at Load.
func (c *Context) DisplayName() string { return c.displayName }

// State returns the current lifecycle stage.
func (c *Context) State() State { return c.state }

// Load opens path, selects the first effect class its factory exports,
// creates and initializes the component, queries for its audio
// processor (required) and edit controller (optional), and activates the
// main input and output audio buses. It does not call setBusArrangements,
// so each bus keeps the plugin's default speaker arrangement. The
// returned Context is in StateLoaded; callers
// must call Activate before Process.
func Load(path string) (*Context, error) {
	mod, err := loader.Open(path)
	if err != nil {
		return nil, &PluginError{Kind: ErrLoadFailed, Cause: err}
	}

	factory := abi.WrapFactory(mod.Factory())
	count := factory.CountClasses()

	var chosen abi.ClassInfo
	found := false
	for i := int32(0); i < count; i++ {
		info, rc := factory.GetClassInfo(i)
		if !rc.Ok() {
			continue
		}
		if info.Category == effectCategory {
			chosen = info
			found = true
			break
		}
	}
	if !found {
		mod.Close()
		return nil, &PluginError{Kind: ErrLoadFailed, Cause: fmt.Errorf("no %q class in factory", effectCategory)}
	}

	componentUnknown, rc := factory.CreateInstance(chosen.CID, abi.IIDComponent)
	if !rc.Ok() || !componentUnknown.Valid() {
		mod.Close()
		return nil, &PluginError{Kind: ErrLoadFailed, Cause: fmt.Errorf("CreateInstance(component): %s", rc)}
	}
	component := abi.WrapComponent(componentUnknown)

	hostApp := abi.HostApplication{}
	if rc := component.Initialize(hostApp.Pointer()); !rc.Ok() {
		component.Release()
		mod.Close()
		return nil, &PluginError{Kind: ErrActivationFailed, Step: "component.initialize", Cause: fmt.Errorf("%s", rc)}
	}

	procUnknown, rc := component.QueryInterface(abi.IIDAudioProcessor)
	if !rc.Ok() || !procUnknown.Valid() {
		component.Release()
		mod.Close()
		return nil, &PluginError{Kind: ErrInterfaceMissing, IID: abi.IIDAudioProcessor, Cause: fmt.Errorf("%s", rc)}
	}
	processor := abi.WrapAudioProcessor(procUnknown)

	var (
		controller abi.EditController
		hasCtrl    bool
	)
	if ctrlUnknown, rc := component.QueryInterface(abi.IIDEditController); rc.Ok() && ctrlUnknown.Valid() {
		controller = abi.WrapEditController(ctrlUnknown)
		hasCtrl = true
	} else {
		log.Debug("no edit controller exposed", "plugin", chosen.Name)
	}

	if rc := component.ActivateBus(abi.MediaTypeAudio, abi.BusDirectionInput, 0, true); !rc.Ok() {
		log.Warn("activate input bus failed", "plugin", chosen.Name, "result", rc.String())
	}
	if rc := component.ActivateBus(abi.MediaTypeAudio, abi.BusDirectionOutput, 0, true); !rc.Ok() {
		log.Warn("activate output bus failed", "plugin", chosen.Name, "result", rc.String())
	}

	ctx := &Context{
		id:          allocatePluginID(),
		displayName: chosen.Name,
		module:      mod,
		factory:     factory,
		component:   component,
		processor:   processor,
		controller:  controller,
		hasProc:     true,
		hasCtrl:     hasCtrl,
		state:       StateLoaded,
	}
	log.Info("plugin loaded", "id", ctx.id, "name", ctx.displayName, "path", path)
	return ctx, nil
}

// Activate configures and starts processing: SetupProcessing, then
// SetActive(true) on the component, then SetProcessing(true) on the
// processor, in that order.
func (c *Context) Activate(sampleRate float64, maxBlockSize int32) error {
	setup := abi.ProcessSetup{
		ProcessMode:        abi.ProcessModeRealtime,
		SymbolicSampleSize: abi.SampleSize32,
		MaxSamplesPerBlock: maxBlockSize,
		SampleRate:         sampleRate,
	}
	if rc := c.processor.SetupProcessing(setup); !rc.Ok() {
		return &PluginError{Kind: ErrActivationFailed, Step: "setup_processing", Cause: fmt.Errorf("%s", rc)}
	}
	if rc := c.component.SetActive(true); !rc.Ok() {
		return &PluginError{Kind: ErrActivationFailed, Step: "set_active", Cause: fmt.Errorf("%s", rc)}
	}
	if rc := c.processor.SetProcessing(true); !rc.Ok() {
		return &PluginError{Kind: ErrActivationFailed, Step: "set_processing", Cause: fmt.Errorf("%s", rc)}
	}
	c.state = StateProcessing
	return nil
}

// Process runs one audio block through the plugin's Process entry
// point. It performs no allocation and must be safe to call from the
// real-time audio callback.
func (c *Context) Process(data *abi.ProcessData) abi.ResultCode {
	return c.processor.Process(data.Raw())
}

// OpenEditor creates and attaches the plugin's editor view into
// windowHandle, returning its preferred size. It is valid to call while
// Process is actively running from another thread.
func (c *Context) OpenEditor(windowHandle unsafe.Pointer, platformTag string, onResize ResizeCallback) (abi.Rect, error) {
	if !c.hasCtrl {
		return abi.Rect{}, &PluginError{Kind: ErrEditorFailed, Cause: fmt.Errorf("plugin exposes no edit controller")}
	}
	viewPtr := c.controller.CreateView("editor")
	if viewPtr == nil {
		return abi.Rect{}, &PluginError{Kind: ErrEditorFailed, Cause: fmt.Errorf("create_view returned nil")}
	}
	view := abi.WrapPlugView(viewPtr)

	if rc := view.Attached(windowHandle, platformTag); !rc.Ok() {
		view.Release()
		return abi.Rect{}, &PluginError{Kind: ErrEditorFailed, Cause: fmt.Errorf("attached: %s", rc)}
	}

	rect, rc := view.GetSize()
	if !rc.Ok() {
		rect = abi.Rect{}
	}
	view.CheckSizeConstraint(&rect)

	c.view = view
	c.hasView = true
	c.onResize = onResize
	if c.state == StateProcessing {
		c.state = StateProcessingEditorOpen
	}
	return rect, nil
}

// CloseEditor detaches and releases the editor view, returning the
// context to plain Processing state.
func (c *Context) CloseEditor() {
	if !c.hasView {
		return
	}
	c.view.Removed()
	c.view.Release()
	c.hasView = false
	c.onResize = nil
	if c.state == StateProcessingEditorOpen {
		c.state = StateProcessing
	}
}

// Deactivate stops processing and deactivation in the order the ABI
// requires: SetProcessing(false), then SetActive(false). It does not
// release interface pointers; call Release for that.
func (c *Context) Deactivate() {
	if c.hasView {
		c.CloseEditor()
	}
	c.processor.SetProcessing(false)
	c.component.SetActive(false)
	c.state = StateDeactivated
}

// Release drops every interface reference in reverse query order
// (controller, processor, component), then closes the Module last so
// the shared library's code pages stay mapped while any destructor
// logic in the plugin's Release/Terminate runs.
func (c *Context) Release() {
	if c.hasCtrl {
		c.controller.Release()
	}
	c.processor.Release()
	c.component.Release()
	if c.module != nil {
		if err := c.module.Close(); err != nil {
			log.Warn("module close failed", "id", c.id, "err", err)
		}
	}
	c.state = StateReleased
	log.Info("plugin released", "id", c.id, "name", c.displayName)
}
