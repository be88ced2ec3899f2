// File: core/buffer/memory.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"github.com/rs/zerolog/log"

	"github.com/momentics/bytebuf/api"
)

// Memory is a contiguous region backing a Fixed buffer.
type Memory interface {
	// Bytes returns the whole region; len is the buffer capacity.
	Bytes() []byte
	// Free gives the region back. Calling it twice is a no-op.
	Free() error
}

// HeapMemory is a region on the Go heap.
type HeapMemory struct {
	b []byte
}

// NewHeapMemory allocates size zeroed bytes on the Go heap.
func NewHeapMemory(size int) (*HeapMemory, error) {
	if size <= 0 {
		return nil, api.InvalidArgument("memory size must be positive").WithContext("size", size)
	}
	return &HeapMemory{b: make([]byte, size)}, nil
}

func (m *HeapMemory) Bytes() []byte { return m.b }

// Free drops the reference so the garbage collector can reclaim the slice.
func (m *HeapMemory) Free() error {
	m.b = nil
	return nil
}

// DirectMemory is a region allocated outside the Go heap. It is never
// reclaimed automatically: Free must be called exactly once per region.
// On platforms without anonymous mappings, or when mapping fails, the region
// falls back to the Go heap and Free only drops the reference.
type DirectMemory struct {
	data   []byte
	mapped bool
	handle uintptr // platform handle, 0 when unused
}

// NewDirectMemory maps size bytes of anonymous read/write memory.
// If the platform refuses the mapping the region falls back to the Go heap.
func NewDirectMemory(size int) (*DirectMemory, error) {
	if size <= 0 {
		return nil, api.InvalidArgument("memory size must be positive").WithContext("size", size)
	}
	m := &DirectMemory{}
	if err := mapRegion(m, size); err != nil {
		log.Warn().Err(err).Int("size", size).Msg("[DirectMemory] mapping failed, falling back to heap")
		m.data = make([]byte, size)
		m.mapped = false
		m.handle = 0
	}
	return m, nil
}

func (m *DirectMemory) Bytes() []byte { return m.data }

// Mapped reports whether the region lives outside the Go heap.
func (m *DirectMemory) Mapped() bool { return m.mapped }

// Free unmaps the region. Subsequent calls return nil.
func (m *DirectMemory) Free() error {
	if m.data == nil {
		return nil
	}
	var err error
	if m.mapped {
		err = unmapRegion(m)
	}
	m.data = nil
	m.mapped = false
	m.handle = 0
	return err
}

// Protect revokes all access to a mapped region, so that stale slices fault
// on use. Heap-backed regions are left untouched.
func (m *DirectMemory) Protect() error {
	if m.data == nil || !m.mapped {
		return nil
	}
	return protectRegion(m)
}

// Compile-time interface checks.
var (
	_ Memory = (*HeapMemory)(nil)
	_ Memory = (*DirectMemory)(nil)
)
