// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Allocator and pool contracts, parameterized over the concrete buffer kind
// so that handing a buffer to the wrong allocator does not compile.

package api

// Allocator produces fixed buffers and reclaims the ones it produced.
type Allocator[B Poolable] interface {
	// Alloc returns a buffer whose capacity is at least capacity; pool-backed
	// allocators return exactly capacity. capacity must be positive.
	Alloc(capacity int) (B, error)

	// Release retires a buffer produced by this allocator. The buffer must
	// not be used afterwards.
	Release(b B) error
}

// Pool is a free list of equal-capacity fixed buffers.
type Pool[B Poolable] interface {
	// BufferCapacity returns the capacity of every buffer in this pool.
	BufferCapacity() int

	// Borrow hands out a clean buffer.
	Borrow() (B, error)

	// Return gives a borrowed buffer back. The buffer is cleared before it
	// is stored.
	Return(b B) error

	// Available returns the number of buffers currently held by the pool.
	Available() int

	// Stats exposes accounting counters for observability.
	Stats() PoolStats

	// Close disposes of pooled buffers. Borrowed buffers stay with the caller.
	Close() error
}

// PoolStats aggregates buffer borrow/return stats.
type PoolStats struct {
	BufferCapacity int
	Available      int
	InUse          int64
	Borrows        int64
	Returns        int64
	Dropped        int64 // borrowed buffers released before they came back
	Allocs         int64 // buffers obtained from a backing allocator
}

// AllocatorStats aggregates allocation counters of stateful allocators.
type AllocatorStats struct {
	Allocs      int64
	Releases    int64
	LiveBytes   int64
	Quarantined int
}
