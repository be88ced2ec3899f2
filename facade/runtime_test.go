package facade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/control"
	"github.com/momentics/bytebuf/facade"
)

func TestRuntime_DefaultLifecycle(t *testing.T) {
	r, err := facade.New(nil)
	require.NoError(t, err)

	b, err := r.NewHeapBuffer()
	require.NoError(t, err)
	require.Equal(t, 64, b.Capacity())
	require.NoError(t, b.PutBytes(make([]byte, 65)))
	require.Equal(t, 128, b.Capacity())
	require.NoError(t, b.Close())

	r.PublishStats()
	snap := r.Metrics().GetSnapshot()
	assert.Equal(t, int64(1), snap["pool.heap.64.borrows"])
	assert.Equal(t, 1, snap["pool.heap.64.available"])
	assert.Equal(t, 1, snap["pool.heap.128.available"])
	assert.Equal(t, int64(0), snap["alloc.direct.allocs"])
	assert.False(t, r.Metrics().UpdatedAt().IsZero())

	state := r.Inspector().Snapshot()
	require.Contains(t, state, "alloc.direct")
	require.Contains(t, state, "pool.heap")
	require.Contains(t, state, "runtime.page_size")

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	_, err = r.NewHeapBuffer()
	require.ErrorIs(t, err, api.ErrInvalidState)
	_, err = r.RunWorkload(1, 1)
	require.ErrorIs(t, err, api.ErrInvalidState)
}

func TestRuntime_PooledHeapWorkloadRecycles(t *testing.T) {
	cfg := control.DefaultConfig()
	r, err := facade.New(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	rep, err := r.RunWorkload(3, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Iterations)
	assert.Equal(t, int64(300), rep.BytesWritten)
	assert.Equal(t, 3, rep.Grows)
	assert.Equal(t, 128, rep.FinalCapacity)

	snap := r.Metrics().GetSnapshot()
	assert.Equal(t, int64(3), snap["pool.heap.64.borrows"])
	assert.Equal(t, int64(1), snap["pool.heap.64.allocs"], "later iterations reuse the pooled buffer")
	assert.Equal(t, int64(1), snap["pool.heap.128.allocs"])
	assert.Equal(t, int64(0), snap["pool.heap.128.in_use"])
	assert.Equal(t, 3, snap["workload.grows"])
}

func TestRuntime_DirectWorkloadWithQuarantine(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Allocator = control.AllocatorDirect
	cfg.Pooled = false
	cfg.Quarantine = 2
	cfg.Growth = control.GrowthConfig{Kind: "ap", InitCapacity: 4, Difference: 4}

	r, err := facade.New(cfg)
	require.NoError(t, err)

	rep, err := r.RunWorkload(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 8, rep.FinalCapacity)
	assert.Equal(t, 3, rep.Grows)

	snap := r.Metrics().GetSnapshot()
	assert.Equal(t, int64(6), snap["alloc.direct.allocs"])
	assert.Equal(t, int64(6), snap["alloc.direct.releases"])
	assert.Equal(t, int64(0), snap["alloc.direct.live_bytes"])
	assert.Equal(t, 2, snap["alloc.direct.quarantined"])
	assert.NotContains(t, snap, "pool.direct.4.borrows")

	require.NoError(t, r.Close())
	r.PublishStats()
	assert.Equal(t, 0, r.Metrics().GetSnapshot()["alloc.direct.quarantined"])
}

func TestRuntime_Prewarm(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Prewarm = []control.PrewarmEntry{{Capacity: 64, Count: 4}, {Capacity: 256, Count: 1}}
	r, err := facade.New(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	r.PublishStats()
	snap := r.Metrics().GetSnapshot()
	assert.Equal(t, 4, snap["pool.heap.64.available"])
	assert.Equal(t, 1, snap["pool.heap.256.available"])
	assert.NotContains(t, snap, "pool.direct.64.available", "only the configured kind is warmed")

	b, err := r.NewHeapBuffer()
	require.NoError(t, err)
	require.NoError(t, b.Close())
	r.PublishStats()
	assert.Equal(t, int64(4), r.Metrics().GetSnapshot()["pool.heap.64.allocs"])
}

func TestRuntime_RejectsInvalidConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Allocator = "gpu"
	_, err := facade.New(cfg)
	require.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestRuntime_BufferClosedAfterRuntimeFreesDirectMemory(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Allocator = control.AllocatorDirect
	r, err := facade.New(cfg)
	require.NoError(t, err)

	b, err := r.NewDirectBuffer()
	require.NoError(t, err)
	require.NoError(t, b.PutInt64(42))

	require.NoError(t, r.Close())
	r.PublishStats()
	assert.Equal(t, int64(64), r.Metrics().GetSnapshot()["alloc.direct.live_bytes"])

	require.NoError(t, b.Close())
	r.PublishStats()
	snap := r.Metrics().GetSnapshot()
	assert.Equal(t, int64(0), snap["alloc.direct.live_bytes"])
	assert.Equal(t, int64(1), snap["alloc.direct.releases"])

	_, err = r.DirectAllocator().Alloc(64)
	require.ErrorIs(t, err, api.ErrInvalidState)
}

func TestRuntime_PublishesDroppedPoolReturns(t *testing.T) {
	r, err := facade.New(control.DefaultConfig())
	require.NoError(t, err)
	defer r.Close()

	b, err := r.HeapAllocator().Alloc(64)
	require.NoError(t, err)
	require.NoError(t, b.Free())
	require.ErrorIs(t, r.HeapAllocator().Release(b), api.ErrInvalidArgument)

	r.PublishStats()
	inUse, ok := r.Metrics().Counter("pool.heap.64.in_use")
	require.True(t, ok)
	assert.Equal(t, int64(0), inUse)
	dropped, ok := r.Metrics().Counter("pool.heap.64.dropped")
	require.True(t, ok)
	assert.Equal(t, int64(1), dropped)
}
