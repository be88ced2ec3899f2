// File: pool/backed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/core/buffer"
)

// Backed is a pool that allocates from an api.Allocator whenever it runs
// out of idle buffers.
type Backed[B api.Poolable] struct {
	fl    *freeList[B]
	alloc api.Allocator[B]
}

// FromAllocator creates a pool of bufferCapacity-byte buffers drawn from a,
// pre-populated with initSize of them.
func FromAllocator[B api.Poolable](a api.Allocator[B], bufferCapacity, initSize int) (*Backed[B], error) {
	if a == nil {
		return nil, api.InvalidArgument("allocator is nil")
	}
	if bufferCapacity <= 0 {
		return nil, api.InvalidArgument("buffer capacity must be positive").WithContext("capacity", bufferCapacity)
	}
	if initSize < 0 {
		return nil, api.InvalidArgument("initial size must not be negative").WithContext("initSize", initSize)
	}
	p := &Backed[B]{
		fl:    newFreeList[B](bufferCapacity, initSize),
		alloc: a,
	}
	p.fl.discard = a.Release
	for i := 0; i < initSize; i++ {
		b, err := p.allocate()
		if err != nil {
			return nil, errors.Join(err, p.Close())
		}
		p.fl.push(b)
	}
	log.Debug().Int("capacity", bufferCapacity).Int("initSize", initSize).Msg("[Pool] allocator-backed pool created")
	return p, nil
}

// allocate obtains one buffer of exactly the pool capacity.
func (p *Backed[B]) allocate() (B, error) {
	b, err := p.alloc.Alloc(p.fl.capacity)
	if err != nil {
		var zero B
		return zero, err
	}
	if b.Capacity() != p.fl.capacity {
		got := b.Capacity()
		var zero B
		return zero, errors.Join(
			api.InvalidState("allocator returned wrong capacity").
				WithContext("capacity", got).
				WithContext("poolCapacity", p.fl.capacity),
			p.alloc.Release(b),
		)
	}
	p.fl.allocs.Add(1)
	return b, nil
}

func (p *Backed[B]) BufferCapacity() int { return p.fl.capacity }

// Borrow pops an idle buffer or allocates a fresh one.
func (p *Backed[B]) Borrow() (B, error) {
	if p.fl.closed {
		var zero B
		return zero, api.InvalidState("pool closed")
	}
	b, ok := p.fl.pop()
	if !ok {
		var err error
		if b, err = p.allocate(); err != nil {
			return b, err
		}
	}
	p.fl.lend(b)
	return b, nil
}

// Return clears b and keeps it for the next Borrow. After Close the buffer
// goes straight back to the allocator.
func (p *Backed[B]) Return(b B) error { return p.fl.accept(b) }

func (p *Backed[B]) Available() int { return len(p.fl.free) }

func (p *Backed[B]) Stats() api.PoolStats { return p.fl.stats() }

// Close releases every idle buffer to the allocator. Borrowed buffers are
// released when they come back.
func (p *Backed[B]) Close() error {
	if p.fl.closed {
		return nil
	}
	p.fl.closed = true
	idle := p.fl.drain()
	var errs []error
	for _, b := range idle {
		errs = append(errs, p.alloc.Release(b))
	}
	log.Debug().Int("capacity", p.fl.capacity).Int("released", len(idle)).Msg("[Pool] allocator-backed pool closed")
	return errors.Join(errs...)
}

var (
	_ api.Pool[*buffer.HeapBuffer]   = (*Backed[*buffer.HeapBuffer])(nil)
	_ api.Pool[*buffer.DirectBuffer] = (*Backed[*buffer.DirectBuffer])(nil)
)
