// File: pool/router.go
// Author: momentics <momentics@gmail.com>
//
// Pool-backed allocator: one lazily created pool per requested capacity.

package pool

import (
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/core/buffer"
)

// PoolFactory builds the pool that will serve buffers of one capacity.
type PoolFactory[B api.Poolable] func(capacity int) (api.Pool[B], error)

// Router is an api.Allocator that borrows from a per-capacity pool.
type Router[B api.Poolable] struct {
	mu      sync.RWMutex
	pools   map[int]api.Pool[B] // key: buffer capacity
	factory PoolFactory[B]
	closed  bool
}

// NewRouter creates a router with no pools; factory is called once for
// each distinct capacity.
func NewRouter[B api.Poolable](factory PoolFactory[B]) (*Router[B], error) {
	if factory == nil {
		return nil, api.InvalidArgument("pool factory is nil")
	}
	return &Router[B]{
		pools:   make(map[int]api.Pool[B]),
		factory: factory,
	}, nil
}

// BackedFactory returns a factory that creates allocator-backed pools of
// initSize buffers each.
func BackedFactory[B api.Poolable](a api.Allocator[B], initSize int) PoolFactory[B] {
	return func(capacity int) (api.Pool[B], error) {
		p, err := FromAllocator(a, capacity, initSize)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Pool obtains or creates the pool for capacity.
func (r *Router[B]) Pool(capacity int) (api.Pool[B], error) {
	r.mu.RLock()
	p, ok := r.pools[capacity]
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return nil, api.InvalidState("router closed").WithContext("capacity", capacity)
	}
	if ok {
		return p, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, api.InvalidState("router closed").WithContext("capacity", capacity)
	}
	if p, ok := r.pools[capacity]; ok {
		return p, nil
	}
	p, err := r.factory(capacity)
	if err != nil {
		return nil, err
	}
	if p == nil || p.BufferCapacity() != capacity {
		return nil, api.InvalidState("pool factory returned a pool of the wrong capacity").
			WithContext("capacity", capacity)
	}
	r.pools[capacity] = p
	log.Debug().Int("capacity", capacity).Msg("[Router] pool created")
	return p, nil
}

// Alloc borrows a buffer of exactly capacity bytes.
func (r *Router[B]) Alloc(capacity int) (B, error) {
	if capacity <= 0 {
		var zero B
		return zero, api.InvalidArgument("capacity must be positive").WithContext("capacity", capacity)
	}
	p, err := r.Pool(capacity)
	if err != nil {
		var zero B
		return zero, err
	}
	return p.Borrow()
}

// Release returns b to the pool that serves its capacity. After Close the
// closed pool still takes it back and hands it to its allocator.
func (r *Router[B]) Release(b B) error {
	var zero B
	if b == zero {
		return api.InvalidArgument("buffer is nil")
	}
	r.mu.RLock()
	p, ok := r.pools[b.Capacity()]
	r.mu.RUnlock()
	if !ok {
		return api.InvalidArgument("not allocated by this allocator").WithContext("capacity", b.Capacity())
	}
	return p.Return(b)
}

// Pools lists the capacities served, ascending.
func (r *Router[B]) Pools() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.pools))
}

// Stats returns per-capacity pool stats.
func (r *Router[B]) Stats() map[int]api.PoolStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int]api.PoolStats, len(r.pools))
	for c, p := range r.pools {
		out[c] = p.Stats()
	}
	return out
}

// Close closes every pool. Later Alloc calls fail, but the pools stay
// registered so buffers still borrowed can be released. Calling Close twice
// is a no-op.
func (r *Router[B]) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	var errs []error
	for _, c := range slices.Sorted(maps.Keys(r.pools)) {
		errs = append(errs, r.pools[c].Close())
	}
	log.Debug().Int("pools", len(r.pools)).Msg("[Router] closed")
	return errors.Join(errs...)
}

var _ api.Allocator[*buffer.HeapBuffer] = (*Router[*buffer.HeapBuffer])(nil)
