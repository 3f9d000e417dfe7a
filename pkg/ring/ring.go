// Package ring implements a single-producer/single-consumer lock-free
// ring buffer of float32 samples, used to cross the capture and
// playback audio callback threads without blocking either side.
package ring

import "sync/atomic"

// PushResult reports the outcome of a Channel.TryPush call.
type PushResult int

const (
	Pushed PushResult = iota
	Full
)

// Channel is a fixed-capacity SPSC ring of float32 samples. Exactly one
// goroutine may call TryPush, and exactly one (possibly different) may
// call TryPop; calling either from more than one goroutine concurrently
// is a race.
//
// writeIdx and readIdx are only ever written by their respective side
// and read by the other, so each is a single atomic word: the writer
// publishes with a Store (release) after filling the slot, the reader
// observes with a Load (acquire) before consuming it. This keeps the
// payload write happens-before the index advance that makes it visible.
type Channel struct {
	buf      []float32
	capacity uint64
	writeIdx atomic.Uint64
	readIdx  atomic.Uint64
}

// NewChannel allocates a ring able to hold capacity samples. Per the
// host's sizing rule, callers should request at least
// 2 × buffer_size × channel_count to absorb one block's worth of
// scheduling jitter between the capture and playback threads.
func NewChannel(capacity int) *Channel {
	if capacity <= 0 {
		capacity = 1
	}
	return &Channel{
		buf:      make([]float32, capacity),
		capacity: uint64(capacity),
	}
}

// Capacity returns the number of samples the channel can hold.
func (c *Channel) Capacity() int { return int(c.capacity) }

// Len returns the number of samples currently queued. It is a snapshot:
// by the time the caller acts on it, the true count may have moved.
func (c *Channel) Len() int {
	w := c.writeIdx.Load()
	r := c.readIdx.Load()
	return int(w - r)
}

// TryPush writes one sample without blocking, returning Full if the
// ring has no free slot.
func (c *Channel) TryPush(sample float32) PushResult {
	w := c.writeIdx.Load()
	r := c.readIdx.Load()
	if w-r >= c.capacity {
		return Full
	}
	c.buf[w%c.capacity] = sample
	c.writeIdx.Store(w + 1)
	return Pushed
}

// TryPop reads one sample without blocking, returning ok=false if the
// ring is empty.
func (c *Channel) TryPop() (sample float32, ok bool) {
	r := c.readIdx.Load()
	w := c.writeIdx.Load()
	if r >= w {
		return 0, false
	}
	sample = c.buf[r%c.capacity]
	c.readIdx.Store(r + 1)
	return sample, true
}

// TryPushBlock pushes as many samples from block as fit, returning the
// number actually written. Used by a capture callback delivering an
// entire interleaved or planar chunk at once.
func (c *Channel) TryPushBlock(block []float32) int {
	n := 0
	for _, s := range block {
		if c.TryPush(s) == Full {
			break
		}
		n++
	}
	return n
}

// TryPopBlock fills dst with as many samples as are available, returning
// the number actually read; the remainder of dst is left untouched, so
// callers needing a zero-filled underrun should pre-clear it.
func (c *Channel) TryPopBlock(dst []float32) int {
	n := 0
	for i := range dst {
		s, ok := c.TryPop()
		if !ok {
			break
		}
		dst[i] = s
		n++
	}
	return n
}
