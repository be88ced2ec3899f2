// File: core/buffer/fixed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity cursor over one memory region.

package buffer

import (
	"encoding/binary"
	"fmt"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/internal/bounds"
)

// Fixed is a cursor (position, limit, mark) over a memory region of
// immutable capacity.
type Fixed[M Memory] struct {
	mem      M
	data     []byte // nil once released
	capacity int
	pos      int
	lim      int
	mark     int
	order    binary.ByteOrder
	released bool
}

// HeapBuffer is a Fixed buffer on the Go heap.
type HeapBuffer = Fixed[*HeapMemory]

// DirectBuffer is a Fixed buffer over explicitly freed memory.
type DirectBuffer = Fixed[*DirectMemory]

// New wraps mem in a cleared cursor: position 0, limit capacity, no mark.
func New[M Memory](mem M) *Fixed[M] {
	data := mem.Bytes()
	return &Fixed[M]{
		mem:      mem,
		data:     data,
		capacity: len(data),
		lim:      len(data),
		mark:     -1,
		order:    binary.BigEndian,
	}
}

// NewHeap allocates a heap-backed buffer of the given capacity.
func NewHeap(capacity int) (*HeapBuffer, error) {
	mem, err := NewHeapMemory(capacity)
	if err != nil {
		return nil, err
	}
	return New(mem), nil
}

// NewDirect allocates a buffer over direct memory of the given capacity.
// The caller owns the memory and must Free the buffer.
func NewDirect(capacity int) (*DirectBuffer, error) {
	mem, err := NewDirectMemory(capacity)
	if err != nil {
		return nil, err
	}
	return New(mem), nil
}

// Memory returns the backing region.
func (b *Fixed[M]) Memory() M { return b.mem }

// Released reports whether the buffer was detached from its memory.
func (b *Fixed[M]) Released() bool { return b.released }

// Detach marks the buffer released and hands its region to the caller
// without freeing it. Allocators use it to quarantine or recycle memory.
// Detaching twice is an invalid-argument error.
func (b *Fixed[M]) Detach() (M, error) {
	if b.released {
		var zero M
		return zero, api.InvalidArgument("buffer already released")
	}
	b.released = true
	b.data = nil
	b.pos, b.lim, b.mark = 0, 0, -1
	return b.mem, nil
}

// Free detaches the buffer and frees its region. It is meant to be called
// by the allocator that produced the buffer.
func (b *Fixed[M]) Free() error {
	mem, err := b.Detach()
	if err != nil {
		return err
	}
	return mem.Free()
}

func (b *Fixed[M]) Capacity() int { return b.capacity }

func (b *Fixed[M]) Position() int { return b.pos }

func (b *Fixed[M]) SetPosition(n int) error {
	if n < 0 || n > b.lim {
		return api.InvalidArgument("position out of range").
			WithContext("position", n).
			WithContext("limit", b.lim)
	}
	b.pos = n
	if b.mark > n {
		b.mark = -1
	}
	return nil
}

func (b *Fixed[M]) Limit() int { return b.lim }

// SetLimit moves the limit. A position above the new limit is pulled down
// to it; a mark above it is discarded.
func (b *Fixed[M]) SetLimit(n int) error {
	if n < 0 || n > b.capacity {
		return api.InvalidArgument("limit out of range").
			WithContext("limit", n).
			WithContext("capacity", b.capacity)
	}
	b.lim = n
	if b.pos > n {
		b.pos = n
	}
	if b.mark > n {
		b.mark = -1
	}
	return nil
}

func (b *Fixed[M]) Mark() { b.mark = b.pos }

func (b *Fixed[M]) MarkValue() int { return b.mark }

func (b *Fixed[M]) Reset() error {
	if b.mark < 0 {
		return api.InvalidState("reset without mark")
	}
	b.pos = b.mark
	return nil
}

func (b *Fixed[M]) Clear() {
	b.pos = 0
	b.lim = b.capacity
	b.mark = -1
}

func (b *Fixed[M]) Flip() {
	b.lim = b.pos
	b.pos = 0
	b.mark = -1
}

func (b *Fixed[M]) Rewind() {
	b.pos = 0
	b.mark = -1
}

func (b *Fixed[M]) Remaining() int { return b.lim - b.pos }

func (b *Fixed[M]) HasRemaining() bool { return b.pos < b.lim }

func (b *Fixed[M]) Bytes() []byte {
	if b.data == nil {
		return nil
	}
	return b.data[b.pos:b.lim]
}

func (b *Fixed[M]) Order() binary.ByteOrder { return b.order }

// SetOrder selects the byte order for multi-byte accessors; nil restores big-endian.
func (b *Fixed[M]) SetOrder(order binary.ByteOrder) {
	if order == nil {
		order = binary.BigEndian
	}
	b.order = order
}

func (b *Fixed[M]) String() string {
	return fmt.Sprintf("Fixed[pos=%d lim=%d cap=%d mark=%d]", b.pos, b.lim, b.capacity, b.mark)
}

func errReleased() error {
	return api.InvalidState("buffer used after release")
}

// next reserves n bytes at the position and advances past them.
func (b *Fixed[M]) next(n int) ([]byte, error) {
	if b.released {
		return nil, errReleased()
	}
	if !bounds.Fits(b.lim, b.pos, n) {
		return nil, api.Overflow("access past limit").
			WithContext("position", b.pos).
			WithContext("limit", b.lim).
			WithContext("width", n)
	}
	p := b.data[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

// at returns n bytes at an absolute index without touching the cursor.
func (b *Fixed[M]) at(index, n int) ([]byte, error) {
	if b.released {
		return nil, errReleased()
	}
	if !bounds.Fits(b.capacity, index, n) {
		return nil, api.InvalidArgument("index out of range").
			WithContext("index", index).
			WithContext("capacity", b.capacity).
			WithContext("width", n)
	}
	return b.data[index : index+n], nil
}

// PutBuffer copies src's remaining bytes at the position and advances both
// cursors. Nothing moves when the destination has too little room.
func (b *Fixed[M]) PutBuffer(src api.Buffer) error {
	if src == nil {
		return api.InvalidArgument("source buffer is nil")
	}
	if s, ok := src.(*Fixed[M]); ok && s == b {
		return api.InvalidArgument("source buffer is the destination")
	}
	if fb, ok := src.(api.FixedBuffer); ok && fb.Released() {
		return api.InvalidState("source buffer used after release")
	}
	if err := b.PutBytes(src.Bytes()); err != nil {
		return err
	}
	return src.SetPosition(src.Limit())
}

func (b *Fixed[M]) PutBytes(p []byte) error {
	dst, err := b.next(len(p))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

func (b *Fixed[M]) GetBytes(p []byte) error {
	src, err := b.next(len(p))
	if err != nil {
		return err
	}
	copy(p, src)
	return nil
}

var _ api.FixedBuffer = (*Fixed[*HeapMemory])(nil)
var _ api.FixedBuffer = (*Fixed[*DirectMemory])(nil)
