// File: autobuf/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package autobuf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/core/buffer"
	"github.com/momentics/bytebuf/internal/bounds"
)

// Buffer is a growable buffer backed by fixed buffers from one allocator.
// It is not safe for concurrent use.
type Buffer[B api.Poolable] struct {
	alloc   api.Allocator[B]
	buf     B
	policy  Policy
	canGrow bool
	grows   int
	closed  bool
}

// New allocates the first backing buffer of initCapacity bytes from a.
func New[B api.Poolable](a api.Allocator[B], initCapacity int, policy Policy) (*Buffer[B], error) {
	if a == nil {
		return nil, api.InvalidArgument("allocator is nil")
	}
	if err := policy.Validate(initCapacity); err != nil {
		return nil, err
	}
	buf, err := a.Alloc(initCapacity)
	if err != nil {
		return nil, err
	}
	return &Buffer[B]{
		alloc:   a,
		buf:     buf,
		policy:  policy,
		canGrow: true,
	}, nil
}

// NewPow2 creates a Buffer that doubles on growth.
func NewPow2[B api.Poolable](a api.Allocator[B], initCapacity int) (*Buffer[B], error) {
	return New(a, initCapacity, Pow2())
}

// NewArithmetic creates a Buffer that grows by diff bytes at a time.
func NewArithmetic[B api.Poolable](a api.Allocator[B], initCapacity, diff int) (*Buffer[B], error) {
	return New(a, initCapacity, Arithmetic(diff))
}

// NewGeometric creates a Buffer that grows by ratio at a time.
func NewGeometric[B api.Poolable](a api.Allocator[B], initCapacity int, ratio float64) (*Buffer[B], error) {
	return New(a, initCapacity, Geometric(ratio))
}

// CanGrow reports whether an overflowing put will reallocate.
func (b *Buffer[B]) CanGrow() bool { return b.canGrow && !b.closed }

// Grows returns how many times the backing buffer was replaced.
func (b *Buffer[B]) Grows() int { return b.grows }

// Policy returns the growth policy.
func (b *Buffer[B]) Policy() Policy { return b.policy }

// Backing returns the current fixed buffer. It changes on every growth.
func (b *Buffer[B]) Backing() B { return b.buf }

// Close releases the backing buffer to the allocator. Every later call
// reports invalid-state or zero values.
func (b *Buffer[B]) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return b.alloc.Release(b.buf)
}

func errClosed() error {
	return api.InvalidState("auto buffer used after close")
}

// ensure makes room for n more bytes at the position, growing when allowed.
// Without growth the put itself reports the overflow.
func (b *Buffer[B]) ensure(n int) error {
	if b.closed {
		return errClosed()
	}
	expected, ok := bounds.AddOverflowSafe(b.buf.Position(), n)
	if !ok {
		return api.Overflow("write size overflows").WithContext("position", b.buf.Position()).WithContext("width", n)
	}
	if expected <= b.buf.Capacity() || !b.canGrow {
		return nil
	}
	return b.grow(expected)
}

// grow replaces the backing buffer with one of at least expected bytes,
// carrying over the written prefix, the mark, the position and the order.
func (b *Buffer[B]) grow(expected int) error {
	old := b.buf
	capacity, err := b.policy.Grow(old.Capacity(), expected)
	if err != nil {
		return err
	}
	nb, err := b.alloc.Alloc(capacity)
	if err != nil {
		return err
	}

	from, pos, mark := old.Capacity(), old.Position(), old.MarkValue()
	old.Flip()
	nb.SetOrder(old.Order())
	if err := nb.PutBytes(old.Bytes()); err != nil {
		restore(old, pos, mark)
		return errors.Join(fmt.Errorf("copy into grown buffer: %w", err), b.alloc.Release(nb))
	}
	if mark >= 0 {
		if err := nb.SetPosition(mark); err != nil {
			return err
		}
		nb.Mark()
		if err := nb.SetPosition(pos); err != nil {
			return err
		}
	}

	relErr := b.alloc.Release(old)
	b.buf = nb
	b.grows++
	log.Debug().
		Int("from", from).
		Int("to", nb.Capacity()).
		Int("position", pos).
		Str("policy", b.policy.String()).
		Msg("[AutoBuffer] grown")
	return relErr
}

// restore undoes the Flip done by grow on a buffer that stays in use.
func restore(buf api.Buffer, pos, mark int) {
	_ = buf.SetLimit(buf.Capacity())
	if mark >= 0 {
		_ = buf.SetPosition(mark)
		buf.Mark()
	}
	_ = buf.SetPosition(pos)
}

func (b *Buffer[B]) Capacity() int {
	if b.closed {
		return 0
	}
	return b.buf.Capacity()
}

func (b *Buffer[B]) Position() int {
	if b.closed {
		return 0
	}
	return b.buf.Position()
}

func (b *Buffer[B]) SetPosition(n int) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.SetPosition(n)
}

func (b *Buffer[B]) Limit() int {
	if b.closed {
		return 0
	}
	return b.buf.Limit()
}

// SetLimit moves the limit and disables growth.
func (b *Buffer[B]) SetLimit(n int) error {
	if b.closed {
		return errClosed()
	}
	if err := b.buf.SetLimit(n); err != nil {
		return err
	}
	b.canGrow = false
	return nil
}

func (b *Buffer[B]) Mark() {
	if !b.closed {
		b.buf.Mark()
	}
}

func (b *Buffer[B]) MarkValue() int {
	if b.closed {
		return -1
	}
	return b.buf.MarkValue()
}

func (b *Buffer[B]) Reset() error {
	if b.closed {
		return errClosed()
	}
	return b.buf.Reset()
}

// Clear resets the cursor and enables growth.
func (b *Buffer[B]) Clear() {
	if b.closed {
		return
	}
	b.buf.Clear()
	b.canGrow = true
}

// Flip prepares for reading and disables growth.
func (b *Buffer[B]) Flip() {
	if b.closed {
		return
	}
	b.buf.Flip()
	b.canGrow = false
}

func (b *Buffer[B]) Rewind() {
	if !b.closed {
		b.buf.Rewind()
	}
}

func (b *Buffer[B]) Remaining() int {
	if b.closed {
		return 0
	}
	return b.buf.Remaining()
}

func (b *Buffer[B]) HasRemaining() bool { return b.Remaining() > 0 }

func (b *Buffer[B]) Bytes() []byte {
	if b.closed {
		return nil
	}
	return b.buf.Bytes()
}

func (b *Buffer[B]) Order() binary.ByteOrder { return b.buf.Order() }

// SetOrder applies to the current and every future backing buffer.
func (b *Buffer[B]) SetOrder(order binary.ByteOrder) {
	if !b.closed {
		b.buf.SetOrder(order)
	}
}

// PutBuffer copies src's remaining bytes, growing first if needed.
func (b *Buffer[B]) PutBuffer(src api.Buffer) error {
	if src == nil {
		return api.InvalidArgument("source buffer is nil")
	}
	if s, ok := src.(*Buffer[B]); ok && s == b {
		return api.InvalidArgument("source buffer is the destination")
	}
	if err := b.ensure(src.Remaining()); err != nil {
		return err
	}
	return b.buf.PutBuffer(src)
}

// PutBytes copies p, growing first if needed.
func (b *Buffer[B]) PutBytes(p []byte) error {
	if err := b.ensure(len(p)); err != nil {
		return err
	}
	return b.buf.PutBytes(p)
}

func (b *Buffer[B]) GetBytes(p []byte) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.GetBytes(p)
}

func (b *Buffer[B]) String() string {
	return fmt.Sprintf("AutoBuffer[pos=%d lim=%d cap=%d mark=%d grow=%t]",
		b.Position(), b.Limit(), b.Capacity(), b.MarkValue(), b.CanGrow())
}

var (
	_ api.Growable = (*Buffer[*buffer.HeapBuffer])(nil)
	_ api.Growable = (*Buffer[*buffer.DirectBuffer])(nil)
)
