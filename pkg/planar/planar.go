// Package planar implements the fixed-capacity, channel-major audio
// buffer the engine and host hand across the plugin ABI: one contiguous
// []float32 per channel, plus a stable array of pointers to each
// channel's first sample for the C side, and a bounds-checked Go slice
// view for native code.
package planar

import "unsafe"

// MaxBlockSize is a compile-time cap on frames per block; the engine's
// Run rejects any requested buffer size above it.
const MaxBlockSize = 2048

// Buffer holds Channels() channels of up to Capacity() frames each, laid
// out as one contiguous []float32 per channel. The channel-pointer array
// returned by ChannelPointers is computed once at construction and never
// changes for the buffer's lifetime — that stability is what lets the
// ABI hand-off to a loaded plugin be safe: the plugin may cache the
// pointer array across repeated Process calls.
type Buffer struct {
	data     [][]float32      // one backing slice per channel, each len == capacity
	ptrs     []*float32       // stable pointer to data[c][0], one per channel
	view     [][]float32      // reused by Planar(); only the inner re-slice bounds change
	ptrView  []unsafe.Pointer // reused by ChannelPointers(); contents never change
	capacity int
	frames   int // current logical length <= capacity
}

// New allocates a Buffer for the given channel count and maximum frame
// capacity per channel.
func New(channels, capacity int) *Buffer {
	if capacity > MaxBlockSize {
		capacity = MaxBlockSize
	}
	b := &Buffer{
		data:     make([][]float32, channels),
		ptrs:     make([]*float32, channels),
		view:     make([][]float32, channels),
		ptrView:  make([]unsafe.Pointer, channels),
		capacity: capacity,
	}
	for ch := range b.data {
		b.data[ch] = make([]float32, capacity)
		if capacity > 0 {
			b.ptrs[ch] = &b.data[ch][0]
		}
		b.ptrView[ch] = unsafe.Pointer(b.ptrs[ch])
	}
	return b
}

// Channels returns the number of channels.
func (b *Buffer) Channels() int { return len(b.data) }

// Capacity returns the maximum number of frames per channel.
func (b *Buffer) Capacity() int { return b.capacity }

// Frames returns the current logical length, set by SetFrames.
func (b *Buffer) Frames() int { return b.frames }

// SetFrames updates the logical length used by Planar's returned
// slices; it must not exceed Capacity.
func (b *Buffer) SetFrames(n int) {
	if n > b.capacity {
		n = b.capacity
	}
	if n < 0 {
		n = 0
	}
	b.frames = n
}

// Planar returns one bounds-checked []float32 slice per channel, each
// re-sliced to the current Frames() length. Safe for native Go code
// (resampler input/output, capture/playback writes); the slices alias
// the same memory ChannelPointers exposes to C. The returned outer slice
// is reused across calls — valid until the next call on the same
// Buffer, never retained past a single process block.
func (b *Buffer) Planar() [][]float32 {
	for ch := range b.data {
		b.view[ch] = b.data[ch][:b.frames]
	}
	return b.view
}

// Channel returns the single channel ch's slice, re-sliced to Frames().
func (b *Buffer) Channel(ch int) []float32 {
	return b.data[ch][:b.frames]
}

// ChannelPointers returns the buffer's stable array of per-channel first
// sample pointers, as unsafe.Pointer values ready to pack into a
// C float** for an ABI call. Both the returned slice and its contents
// never change across the buffer's lifetime, only the data they point
// at.
func (b *Buffer) ChannelPointers() []unsafe.Pointer {
	return b.ptrView
}

// Clear zeroes every channel's data up to Capacity (not just Frames),
// so a shrunk-then-regrown buffer never exposes stale samples.
func (b *Buffer) Clear() {
	for ch := range b.data {
		for i := range b.data[ch] {
			b.data[ch][i] = 0
		}
	}
}

// CopyFromInterleaved de-interleaves src (frame-major, channels() wide)
// into the buffer's planar channels and sets Frames accordingly.
func (b *Buffer) CopyFromInterleaved(src []float32, channels int) {
	frames := len(src) / channels
	if frames > b.capacity {
		frames = b.capacity
	}
	b.SetFrames(frames)
	for ch := 0; ch < channels && ch < len(b.data); ch++ {
		dst := b.data[ch]
		for i := 0; i < frames; i++ {
			dst[i] = src[i*channels+ch]
		}
	}
}

// CopyToInterleaved interleaves the buffer's current Frames() of planar
// data into dst (frame-major, channels() wide), returning the number of
// frames written.
func (b *Buffer) CopyToInterleaved(dst []float32, channels int) int {
	frames := b.frames
	if frames*channels > len(dst) {
		frames = len(dst) / channels
	}
	for ch := 0; ch < channels && ch < len(b.data); ch++ {
		src := b.data[ch]
		for i := 0; i < frames; i++ {
			dst[i*channels+ch] = src[i]
		}
	}
	return frames
}
