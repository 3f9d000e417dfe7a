// Package engine implements the top-level audio engine state machine:
// backend/device enumeration (cached), current selection, stream
// start/stop via malgo, the plugin registry, and the per-block
// processing closure that chains plugins between a capture and a
// playback callback.
package engine

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"

	"github.com/nullrend/vsthost/internal/applog"
	"github.com/nullrend/vsthost/pkg/abi"
	"github.com/nullrend/vsthost/pkg/host"
)

var log = applog.For("engine")

// Engine is the process-wide AudioEngineState: current backend, device
// selection, active streams, and the loaded-plugin registry.
type Engine struct {
	mu sync.Mutex

	malgoCtx *malgo.AllocatedContext

	backends       []Backend // enumerated once per malgo context, refreshed on selectBackend
	currentBackend string

	inputDevice  *Device
	outputDevice *Device
	inputConfig  StreamConfig
	outputConfig StreamConfig

	captureDevice  *malgo.Device
	playbackDevice *malgo.Device

	registry *registry

	// audio holds every piece of state the capture/playback callbacks
	// touch: ring channels, resampler, scratch buffers, and the
	// reusable ProcessData pool. Run() builds it once and swaps it in
	// with a single atomic store; LoadPlugin grows the ProcessData pool
	// the same way. The callbacks load it once per block and never
	// take mu, so the audio thread never contends with (or blocks
	// behind) control-plane calls like pauseStreams.
	audio atomic.Pointer[runState]

	ringDrops atomic.Uint64 // frames dropped because a ring was full
	underruns atomic.Uint64 // frames filled with silence on ring underrun

	running bool
}

// RingDrops returns the cumulative count of frames dropped because a
// per-channel ring buffer was full when the capture callback tried to
// push into it.
func (e *Engine) RingDrops() uint64 { return e.ringDrops.Load() }

// Underruns returns the cumulative count of frames the playback
// callback filled with silence because a ring buffer ran dry.
func (e *Engine) Underruns() uint64 { return e.underruns.Load() }

// New constructs an Engine bound to a single malgo context for the
// current platform's native backend (see platformBackend), which is the
// only backend the engine enumerates.
func New() (*Engine, error) {
	ctx, err := malgo.InitContext([]malgo.Backend{platformBackend()}, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, &BackendError{Op: "init_context", Err: err}
	}
	e := &Engine{
		malgoCtx: ctx,
		registry: newRegistry(),
	}
	if err := e.refreshBackends(); err != nil {
		ctx.Uninit()
		return nil, err
	}
	return e, nil
}

// refreshBackends re-enumerates devices for the platform's native
// backend and caches the result; called at construction and again from
// SelectBackend.
func (e *Engine) refreshBackends() error {
	backendID := platformBackend()

	captureInfos, err := e.malgoCtx.Devices(malgo.Capture)
	if err != nil {
		return &BackendError{Backend: backendID.String(), Op: "enumerate_capture", Err: err}
	}
	playbackInfos, err := e.malgoCtx.Devices(malgo.Playback)
	if err != nil {
		return &BackendError{Backend: backendID.String(), Op: "enumerate_playback", Err: err}
	}

	b := Backend{
		Name:      backendID.String(),
		Exclusive: isExclusiveBackend(backendID),
	}
	for _, info := range captureInfos {
		b.Inputs = append(b.Inputs, Device{ID: info.ID.String(), Name: info.Name(), IsInput: true, Ranges: defaultRanges()})
	}
	for _, info := range playbackInfos {
		b.Outputs = append(b.Outputs, Device{ID: info.ID.String(), Name: info.Name(), IsInput: false, Ranges: defaultRanges()})
	}

	e.mu.Lock()
	e.backends = []Backend{b}
	e.currentBackend = b.Name
	e.mu.Unlock()
	return nil
}

// defaultRanges approximates the stream-config ranges malgo's device
// enumeration exposes on most backends: wide sample-rate support, F32
// and I16 formats, stereo or mono, unconstrained buffer size.
func defaultRanges() []ConfigRange {
	return []ConfigRange{
		{Format: FormatF32, Channels: 2, MinSampleHz: 8000, MaxSampleHz: 192000},
		{Format: FormatI16, Channels: 2, MinSampleHz: 8000, MaxSampleHz: 192000},
		{Format: FormatF32, Channels: 1, MinSampleHz: 8000, MaxSampleHz: 192000},
	}
}

func platformBackend() malgo.Backend {
	switch runtime.GOOS {
	case "linux":
		return malgo.BackendAlsa
	case "windows":
		return malgo.BackendWasapi
	case "darwin":
		return malgo.BackendCoreaudio
	default:
		return malgo.BackendNull
	}
}

// isExclusiveBackend reports whether the given backend requires capture
// and playback to share one device (§4.G.2); WASAPI's shared-mode
// default stream is the common real-world case this host accounts for.
func isExclusiveBackend(b malgo.Backend) bool {
	return b == malgo.BackendWasapi
}

// AvailableBackends returns the cached backend list.
func (e *Engine) AvailableBackends() []Backend {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Backend, len(e.backends))
	copy(out, e.backends)
	return out
}

func (e *Engine) currentBackendLocked() (Backend, bool) {
	for _, b := range e.backends {
		if b.Name == e.currentBackend {
			return b, true
		}
	}
	return Backend{}, false
}

// AvailableInputDevices lists the current backend's capture devices.
func (e *Engine) AvailableInputDevices() ([]Device, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.currentBackendLocked()
	if !ok {
		return nil, &BackendError{Backend: e.currentBackend, Op: "available_input_devices", Err: fmt.Errorf("no current backend")}
	}
	return b.Inputs, nil
}

// AvailableOutputDevices lists the current backend's playback devices.
func (e *Engine) AvailableOutputDevices() ([]Device, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.currentBackendLocked()
	if !ok {
		return nil, &BackendError{Backend: e.currentBackend, Op: "available_output_devices", Err: fmt.Errorf("no current backend")}
	}
	return b.Outputs, nil
}

// SelectBackend pauses any running streams and switches the active
// backend, resetting device selection to unset. It does not auto-resume
// streaming; the caller must call Run again.
func (e *Engine) SelectBackend(name string) error {
	e.pauseStreams()

	e.mu.Lock()
	found := false
	for _, b := range e.backends {
		if b.Name == name {
			found = true
			break
		}
	}
	if found {
		e.currentBackend = name
		e.inputDevice = nil
		e.outputDevice = nil
	}
	e.mu.Unlock()

	if !found {
		return &NotFoundError{Kind: NotFoundBackend, Name: name}
	}
	return e.refreshBackends()
}

// SelectInput pauses any running streams, resolves name against the
// current backend's inputs, picks the best stream config, and enforces
// exclusivity by mirroring the selection onto the output side when the
// backend requires it.
func (e *Engine) SelectInput(name string, pref Preference) error {
	e.pauseStreams()

	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.currentBackendLocked()
	if !ok {
		return &NotFoundError{Kind: NotFoundInput, Name: name}
	}
	dev := findDevice(b.Inputs, name)
	if dev == nil {
		return &NotFoundError{Kind: NotFoundInput, Name: name}
	}
	cfg, ok := SelectConfig(dev.Ranges, pref)
	if !ok {
		return &FormatUnsupportedError{Device: name}
	}
	e.inputDevice = dev
	e.inputConfig = cfg

	if b.Exclusive {
		e.outputDevice = dev
		e.outputConfig = cfg
	}
	return nil
}

// SelectOutput is SelectInput's dual.
func (e *Engine) SelectOutput(name string, pref Preference) error {
	e.pauseStreams()

	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.currentBackendLocked()
	if !ok {
		return &NotFoundError{Kind: NotFoundOutput, Name: name}
	}
	dev := findDevice(b.Outputs, name)
	if dev == nil {
		return &NotFoundError{Kind: NotFoundOutput, Name: name}
	}
	cfg, ok := SelectConfig(dev.Ranges, pref)
	if !ok {
		return &FormatUnsupportedError{Device: name}
	}
	e.outputDevice = dev
	e.outputConfig = cfg

	if b.Exclusive {
		e.inputDevice = dev
		e.inputConfig = cfg
	}
	return nil
}

func findDevice(devices []Device, name string) *Device {
	for i := range devices {
		if devices[i].Name == name {
			return &devices[i]
		}
	}
	return nil
}

// SetSampleRate pauses any running streams and updates both configs'
// sample rate; it does not resume.
func (e *Engine) SetSampleRate(hz uint32) {
	e.pauseStreams()
	e.mu.Lock()
	e.inputConfig.SampleRate = hz
	e.outputConfig.SampleRate = hz
	e.mu.Unlock()
}

// SetBufferSize pauses any running streams and updates both configs'
// buffer size.
func (e *Engine) SetBufferSize(n uint32) {
	e.pauseStreams()
	e.mu.Lock()
	e.inputConfig.BufferSize = n
	e.outputConfig.BufferSize = n
	e.mu.Unlock()
}

// pauseStreams stops any active capture/playback streams without
// releasing device selection, so a subsequent Run rebuilds from the
// current configuration.
func (e *Engine) pauseStreams() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.captureDevice != nil {
		e.captureDevice.Stop()
		e.captureDevice.Uninit()
		e.captureDevice = nil
	}
	if e.playbackDevice != nil {
		e.playbackDevice.Stop()
		e.playbackDevice.Uninit()
		e.playbackDevice = nil
	}
	e.audio.Store(nil)
	e.running = false
}

// LoadPlugin loads path, activates it at the engine's current sample
// rate and buffer size, inserts it at the end of the chain, and returns
// its new PluginId.
func (e *Engine) LoadPlugin(path string) (host.PluginId, error) {
	ctx, err := host.Load(path)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	rate := float64(e.outputConfig.SampleRate)
	block := int32(e.outputConfig.BufferSize)
	e.mu.Unlock()
	if rate == 0 {
		rate = 48000
	}
	if block == 0 {
		block = 512
	}

	if err := ctx.Activate(rate, block); err != nil {
		ctx.Release()
		return 0, err
	}

	// Grow the reusable ProcessData pool before the new plugin becomes
	// visible in the chain, so a capture callback racing this call
	// against a running stream can never observe a chain longer than
	// the pool backing it.
	e.ensureProcDataCapacity(e.registry.len() + 1)
	e.registry.add(ctx)
	log.Info("plugin loaded into chain", "id", ctx.ID(), "name", ctx.DisplayName())
	return ctx.ID(), nil
}

// ensureProcDataCapacity grows the running audio state's ProcessData
// pool to at least n entries, if a stream is currently running. It
// allocates, so it must only ever be called from the control thread.
func (e *Engine) ensureProcDataCapacity(n int) {
	rs := e.audio.Load()
	if rs == nil || len(rs.procData) >= n {
		return
	}
	grown := make([]*abi.ProcessData, len(rs.procData), n)
	copy(grown, rs.procData)
	for len(grown) < n {
		grown = append(grown, abi.NewReusableProcessData(rs.channels, rs.channels))
	}
	next := *rs
	next.procData = grown
	e.audio.Store(&next)
}

// UnloadPlugin removes the plugin from the registry and fully tears it
// down: Deactivate then Release.
func (e *Engine) UnloadPlugin(id host.PluginId) error {
	ctx, ok := e.registry.remove(id)
	if !ok {
		return &PluginNotFoundError{ID: uint64(id)}
	}
	ctx.Deactivate()
	ctx.Release()
	return nil
}

// Plugin returns the loaded plugin's context, for OpenEditor and
// similar operations the caller drives directly.
func (e *Engine) Plugin(id host.PluginId) (*host.Context, bool) {
	return e.registry.get(id)
}

// LoadedPlugins returns the chain's plugin IDs in insertion order.
func (e *Engine) LoadedPlugins() []host.PluginId {
	chain := e.registry.chain()
	ids := make([]host.PluginId, len(chain))
	for i, c := range chain {
		ids[i] = c.ID()
	}
	return ids
}

// Close tears down every loaded plugin, stops any running streams, and
// releases the malgo context. The Engine must not be used afterward.
func (e *Engine) Close() {
	e.pauseStreams()
	for _, ctx := range e.registry.chain() {
		ctx.Deactivate()
		ctx.Release()
	}
	if e.malgoCtx != nil {
		e.malgoCtx.Uninit()
		e.malgoCtx = nil
	}
}
