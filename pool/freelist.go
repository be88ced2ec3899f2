// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LIFO free list shared by List and Backed.

package pool

import (
	"sync/atomic"

	"github.com/momentics/bytebuf/api"
)

// freeList holds idle buffers and the set of buffers currently lent out.
type freeList[B api.Poolable] struct {
	capacity int
	free     []B
	lent     map[B]struct{}
	closed   bool
	discard  func(B) error // disposes of buffers returned after close

	borrows atomic.Int64
	returns atomic.Int64
	allocs  atomic.Int64
	dropped atomic.Int64 // lent buffers that came back released
	avail   atomic.Int64
}

func newFreeList[B api.Poolable](capacity, hint int) *freeList[B] {
	return &freeList[B]{
		capacity: capacity,
		free:     make([]B, 0, hint),
		lent:     make(map[B]struct{}, hint),
	}
}

func (f *freeList[B]) push(b B) {
	f.free = append(f.free, b)
	f.avail.Store(int64(len(f.free)))
}

// pop removes the most recently pushed buffer.
func (f *freeList[B]) pop() (B, bool) {
	n := len(f.free)
	if n == 0 {
		var zero B
		return zero, false
	}
	b := f.free[n-1]
	var zero B
	f.free[n-1] = zero
	f.free = f.free[:n-1]
	f.avail.Store(int64(n - 1))
	return b, true
}

// lend records b as borrowed.
func (f *freeList[B]) lend(b B) {
	f.lent[b] = struct{}{}
	f.borrows.Add(1)
}

// accept validates a returned buffer, clears it and puts it back.
func (f *freeList[B]) accept(b B) error {
	var zero B
	if b == zero {
		return api.InvalidArgument("returned buffer is nil")
	}
	if b.Capacity() != f.capacity {
		return api.InvalidArgument("buffer capacity does not match pool").
			WithContext("capacity", b.Capacity()).
			WithContext("poolCapacity", f.capacity)
	}
	if _, ok := f.lent[b]; !ok {
		return api.InvalidArgument("buffer was not borrowed from this pool")
	}
	if b.Released() {
		delete(f.lent, b)
		f.dropped.Add(1)
		return api.InvalidArgument("returned buffer was released")
	}
	delete(f.lent, b)
	f.returns.Add(1)
	b.Clear()
	if f.closed {
		if f.discard != nil {
			return f.discard(b)
		}
		return nil
	}
	f.push(b)
	return nil
}

// drain empties the free list and returns what it held.
func (f *freeList[B]) drain() []B {
	out := f.free
	f.free = nil
	f.avail.Store(0)
	return out
}

func (f *freeList[B]) stats() api.PoolStats {
	borrows := f.borrows.Load()
	returns := f.returns.Load()
	dropped := f.dropped.Load()
	return api.PoolStats{
		BufferCapacity: f.capacity,
		Available:      int(f.avail.Load()),
		InUse:          borrows - returns - dropped,
		Borrows:        borrows,
		Returns:        returns,
		Dropped:        dropped,
		Allocs:         f.allocs.Load(),
	}
}
