// File: facade/runtime.go
// Unified facade over allocators, pools and auto buffers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime builds the allocator stack described by a control.Config: a heap
// allocator, a direct allocator with optional quarantine and, when pooling is
// enabled, a per-capacity pool router in front of each. Auto buffers created
// through the Runtime draw from that stack, and PublishStats copies every
// counter into the metrics registry.

package facade

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/momentics/bytebuf/alloc"
	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/autobuf"
	"github.com/momentics/bytebuf/control"
	"github.com/momentics/bytebuf/core/buffer"
	"github.com/momentics/bytebuf/pool"
)

// Runtime is the main facade type.
type Runtime struct {
	config *control.Config
	policy autobuf.Policy

	heap   api.Allocator[*buffer.HeapBuffer]   // router when pooled
	direct api.Allocator[*buffer.DirectBuffer] // router when pooled

	directAlloc  *alloc.Direct
	heapRouter   *pool.Router[*buffer.HeapBuffer]
	directRouter *pool.Router[*buffer.DirectBuffer]

	metrics *control.MetricsRegistry
	inspect *control.Inspector

	mu     sync.Mutex // protects closed
	closed bool
}

// New constructs a Runtime from cfg; nil means control.DefaultConfig().
func New(cfg *control.Config) (*Runtime, error) {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runtime config: %w", err)
	}
	policy, err := cfg.Growth.Policy()
	if err != nil {
		return nil, err
	}

	r := &Runtime{
		config:      cfg,
		policy:      policy,
		directAlloc: alloc.NewDirect(alloc.WithQuarantine(cfg.Quarantine)),
		metrics:     control.NewMetricsRegistry(),
		inspect:     control.NewInspector(),
	}
	heap := alloc.DefaultHeap()
	r.heap = heap
	r.direct = r.directAlloc

	if cfg.Pooled {
		prewarm := make(map[int]int, len(cfg.Prewarm))
		for _, p := range cfg.Prewarm {
			prewarm[p.Capacity] += p.Count
		}
		if r.heapRouter, err = pool.NewRouter(prewarmFactory[*buffer.HeapBuffer](heap, prewarm)); err != nil {
			return nil, err
		}
		if r.directRouter, err = pool.NewRouter(prewarmFactory[*buffer.DirectBuffer](r.directAlloc, prewarm)); err != nil {
			return nil, err
		}
		r.heap = r.heapRouter
		r.direct = r.directRouter

		for _, capacity := range sortedKeys(prewarm) {
			if err := r.warm(capacity); err != nil {
				return nil, errors.Join(err, r.Close())
			}
		}
	}

	control.RegisterHostFacts(r.inspect)
	_ = r.inspect.Register("alloc.direct", func() any { return r.directAlloc.Stats() })
	if cfg.Pooled {
		_ = r.inspect.Register("pool.heap", func() any { return r.heapRouter.Stats() })
		_ = r.inspect.Register("pool.direct", func() any { return r.directRouter.Stats() })
	}

	log.Debug().
		Str("allocator", cfg.Allocator).
		Bool("pooled", cfg.Pooled).
		Int("quarantine", cfg.Quarantine).
		Str("policy", policy.String()).
		Msg("[Runtime] initialized")
	return r, nil
}

// prewarmFactory creates allocator-backed pools, pre-populated for the
// capacities listed in counts.
func prewarmFactory[B api.Poolable](a api.Allocator[B], counts map[int]int) pool.PoolFactory[B] {
	return func(capacity int) (api.Pool[B], error) {
		return pool.BackedFactory(a, counts[capacity])(capacity)
	}
}

// warm creates the pool for capacity on the configured allocator kind.
func (r *Runtime) warm(capacity int) error {
	var err error
	if r.config.Allocator == control.AllocatorDirect {
		_, err = r.directRouter.Pool(capacity)
	} else {
		_, err = r.heapRouter.Pool(capacity)
	}
	return err
}

func (r *Runtime) live() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return api.InvalidState("runtime closed")
	}
	return nil
}

// Config returns the configuration the runtime was built from.
func (r *Runtime) Config() *control.Config { return r.config }

// Policy returns the configured growth policy.
func (r *Runtime) Policy() autobuf.Policy { return r.policy }

// HeapAllocator returns the heap allocation path, pooled if configured.
func (r *Runtime) HeapAllocator() api.Allocator[*buffer.HeapBuffer] { return r.heap }

// DirectAllocator returns the direct allocation path, pooled if configured.
func (r *Runtime) DirectAllocator() api.Allocator[*buffer.DirectBuffer] { return r.direct }

// NewHeapBuffer creates an auto buffer on the heap path.
func (r *Runtime) NewHeapBuffer() (*autobuf.Buffer[*buffer.HeapBuffer], error) {
	if err := r.live(); err != nil {
		return nil, err
	}
	return autobuf.New(r.heap, r.config.Growth.InitCapacity, r.policy)
}

// NewDirectBuffer creates an auto buffer on the direct path.
func (r *Runtime) NewDirectBuffer() (*autobuf.Buffer[*buffer.DirectBuffer], error) {
	if err := r.live(); err != nil {
		return nil, err
	}
	return autobuf.New(r.direct, r.config.Growth.InitCapacity, r.policy)
}

// Metrics returns the registry PublishStats writes to.
func (r *Runtime) Metrics() *control.MetricsRegistry { return r.metrics }

// Inspector returns the state reporters used for debug dumps.
func (r *Runtime) Inspector() *control.Inspector { return r.inspect }

// PublishStats copies allocator and pool counters into the metrics registry.
func (r *Runtime) PublishStats() {
	ds := r.directAlloc.Stats()
	values := map[string]any{
		"alloc.direct.allocs":      ds.Allocs,
		"alloc.direct.releases":    ds.Releases,
		"alloc.direct.live_bytes":  ds.LiveBytes,
		"alloc.direct.quarantined": ds.Quarantined,
	}
	if r.config.Pooled {
		publishPools(values, "heap", r.heapRouter.Stats())
		publishPools(values, "direct", r.directRouter.Stats())
	}
	r.metrics.SetAll(values)
}

func publishPools(values map[string]any, kind string, stats map[int]api.PoolStats) {
	for capacity, st := range stats {
		prefix := fmt.Sprintf("pool.%s.%d.", kind, capacity)
		values[prefix+"available"] = st.Available
		values[prefix+"in_use"] = st.InUse
		values[prefix+"borrows"] = st.Borrows
		values[prefix+"returns"] = st.Returns
		values[prefix+"dropped"] = st.Dropped
		values[prefix+"allocs"] = st.Allocs
	}
}

// Close closes the pools and unmaps quarantined direct memory. Buffers
// still held by callers stay usable; closing them afterwards hands their
// memory straight back to the allocator. Calling Close twice is a
// no-op.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	var errs []error
	if r.heapRouter != nil {
		errs = append(errs, r.heapRouter.Close())
	}
	if r.directRouter != nil {
		errs = append(errs, r.directRouter.Close())
	}
	errs = append(errs, r.directAlloc.Close())
	log.Debug().Msg("[Runtime] closed")
	return errors.Join(errs...)
}
