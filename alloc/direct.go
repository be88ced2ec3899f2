// File: alloc/direct.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Allocator over direct (off-heap) memory with optional release quarantine.

package alloc

import (
	"errors"
	"sync"

	"github.com/eapache/queue"
	"github.com/rs/zerolog/log"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/core/buffer"
)

// Direct allocates buffers over anonymous memory mappings. Release unmaps
// the region. Direct is safe for concurrent use; the buffers it returns are not.
type Direct struct {
	mu             sync.Mutex
	quarantine     *queue.Queue // of *buffer.DirectMemory, oldest first
	quarantineSize int

	allocs    int64
	releases  int64
	liveBytes int64
}

// DirectOption configures a Direct allocator.
type DirectOption func(*Direct)

// WithQuarantine keeps the last n released regions mapped but inaccessible
// before unmapping them, so a stale slice faults instead of silently
// aliasing a fresh mapping at the same address. n <= 0 disables it.
func WithQuarantine(n int) DirectOption {
	return func(d *Direct) {
		if n > 0 {
			d.quarantineSize = n
		}
	}
}

// NewDirect creates a direct allocator.
func NewDirect(opts ...DirectOption) *Direct {
	d := &Direct{quarantine: queue.New()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Alloc maps a cleared buffer of exactly capacity bytes.
func (d *Direct) Alloc(capacity int) (*buffer.DirectBuffer, error) {
	if capacity <= 0 {
		return nil, api.InvalidArgument("capacity must be positive").WithContext("capacity", capacity)
	}
	b, err := buffer.NewDirect(capacity)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.allocs++
	d.liveBytes += int64(capacity)
	d.mu.Unlock()
	return b, nil
}

// Release frees the memory behind b, or moves it to the quarantine when
// one is configured. Releasing twice is an error.
func (d *Direct) Release(b *buffer.DirectBuffer) error {
	if b == nil {
		return api.InvalidArgument("buffer is nil")
	}
	mem, err := b.Detach()
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.releases++
	d.liveBytes -= int64(b.Capacity())

	if d.quarantineSize == 0 {
		return mem.Free()
	}
	if err := mem.Protect(); err != nil {
		log.Warn().Err(err).Int("capacity", b.Capacity()).Msg("[DirectAllocator] protect failed, freeing immediately")
		return mem.Free()
	}
	d.quarantine.Add(mem)

	var errs []error
	for d.quarantine.Length() > d.quarantineSize {
		errs = append(errs, d.evictLocked())
	}
	return errors.Join(errs...)
}

// evictLocked unmaps the oldest quarantined region.
func (d *Direct) evictLocked() error {
	mem := d.quarantine.Remove().(*buffer.DirectMemory)
	log.Debug().Int("size", len(mem.Bytes())).Msg("[DirectAllocator] quarantine eviction")
	return mem.Free()
}

// Close unmaps every quarantined region. Buffers still owned by callers are
// unaffected and must still be released.
func (d *Direct) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var errs []error
	for d.quarantine.Length() > 0 {
		errs = append(errs, d.evictLocked())
	}
	return errors.Join(errs...)
}

// Stats returns allocation counters.
func (d *Direct) Stats() api.AllocatorStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return api.AllocatorStats{
		Allocs:      d.allocs,
		Releases:    d.releases,
		LiveBytes:   d.liveBytes,
		Quarantined: d.quarantine.Length(),
	}
}

var _ api.Allocator[*buffer.DirectBuffer] = (*Direct)(nil)
