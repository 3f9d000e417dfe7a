package engine

import (
	"sync"

	"github.com/nullrend/vsthost/pkg/host"
)

// registry is the engine's process-wide plugin chain: one
// *host.Context per loaded plugin, in insertion order. Reads happen on
// the audio thread every block; writes (load/unload) happen on the
// control thread, so it's guarded by an RWMutex rather than being
// lock-free like pkg/ring.
type registry struct {
	mu      sync.RWMutex
	order   []host.PluginId
	plugins map[host.PluginId]*host.Context
}

func newRegistry() *registry {
	return &registry{plugins: make(map[host.PluginId]*host.Context)}
}

func (r *registry) add(ctx *host.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[ctx.ID()] = ctx
	r.order = append(r.order, ctx.ID())
}

func (r *registry) remove(id host.PluginId) (*host.Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx, ok := r.plugins[id]
	if !ok {
		return nil, false
	}
	delete(r.plugins, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return ctx, true
}

func (r *registry) get(id host.PluginId) (*host.Context, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, ok := r.plugins[id]
	return ctx, ok
}

// chain returns the current plugin chain in insertion order, a
// snapshot safe to iterate without holding the lock for the whole
// processing callback.
func (r *registry) chain() []*host.Context {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*host.Context, len(r.order))
	for i, id := range r.order {
		out[i] = r.plugins[id]
	}
	return out
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
