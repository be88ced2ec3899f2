// File: pool/list.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"github.com/rs/zerolog/log"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/core/buffer"
)

// List is a non-growing pool over a fixed set of buffers.
type List[B api.Poolable] struct {
	fl *freeList[B]
}

// Wrap builds a List from buffers, which must be non-empty, non-nil,
// distinct and all of the same capacity. The last buffer is borrowed first.
func Wrap[B api.Poolable](buffers ...B) (*List[B], error) {
	if len(buffers) == 0 {
		return nil, api.InvalidArgument("no buffers to wrap")
	}
	var zero B
	if buffers[0] == zero {
		return nil, api.InvalidArgument("buffer is nil").WithContext("index", 0)
	}
	fl := newFreeList[B](buffers[0].Capacity(), len(buffers))
	seen := make(map[B]struct{}, len(buffers))
	for i, b := range buffers {
		if b == zero {
			return nil, api.InvalidArgument("buffer is nil").WithContext("index", i)
		}
		if b.Capacity() != fl.capacity {
			return nil, api.InvalidArgument("buffers differ in capacity").
				WithContext("index", i).
				WithContext("capacity", b.Capacity()).
				WithContext("expected", fl.capacity)
		}
		if _, dup := seen[b]; dup {
			return nil, api.InvalidArgument("buffer wrapped twice").WithContext("index", i)
		}
		seen[b] = struct{}{}
		b.Clear()
		fl.push(b)
	}
	log.Debug().Int("capacity", fl.capacity).Int("buffers", len(buffers)).Msg("[Pool] wrapped fixed list")
	return &List[B]{fl: fl}, nil
}

func (l *List[B]) BufferCapacity() int { return l.fl.capacity }

// Borrow pops the most recently returned buffer. An empty list is an
// invalid-state error; List never allocates.
func (l *List[B]) Borrow() (B, error) {
	if l.fl.closed {
		var zero B
		return zero, api.InvalidState("pool closed")
	}
	b, ok := l.fl.pop()
	if !ok {
		return b, api.InvalidState("pool exhausted").WithContext("capacity", l.fl.capacity)
	}
	l.fl.lend(b)
	return b, nil
}

// Return clears b and makes it available again.
func (l *List[B]) Return(b B) error { return l.fl.accept(b) }

func (l *List[B]) Available() int { return len(l.fl.free) }

func (l *List[B]) Stats() api.PoolStats { return l.fl.stats() }

// Close drops the pooled buffers. They are owned by whoever wrapped them.
func (l *List[B]) Close() error {
	l.fl.closed = true
	l.fl.drain()
	return nil
}

var _ api.Pool[*buffer.HeapBuffer] = (*List[*buffer.HeapBuffer])(nil)
