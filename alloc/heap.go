// File: alloc/heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package alloc

import (
	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/core/buffer"
)

// Heap allocates buffers on the Go heap. It is stateless and safe for
// concurrent use.
type Heap struct{}

// NewHeap returns a heap allocator.
func NewHeap() *Heap { return &Heap{} }

// Alloc returns a cleared buffer of exactly capacity bytes.
func (h *Heap) Alloc(capacity int) (*buffer.HeapBuffer, error) {
	if capacity <= 0 {
		return nil, api.InvalidArgument("capacity must be positive").WithContext("capacity", capacity)
	}
	return buffer.NewHeap(capacity)
}

// Release retires b. The memory itself is reclaimed by the garbage
// collector once b is unreferenced. Releasing twice is an error.
func (h *Heap) Release(b *buffer.HeapBuffer) error {
	if b == nil {
		return api.InvalidArgument("buffer is nil")
	}
	return b.Free()
}

var _ api.Allocator[*buffer.HeapBuffer] = (*Heap)(nil)
