// File: alloc/defaults.go
// Author: momentics <momentics@gmail.com>
//
// Process-wide default allocators, built once on first use.

package alloc

import "sync"

var (
	defaultHeap   = sync.OnceValue(func() *Heap { return NewHeap() })
	defaultDirect = sync.OnceValue(func() *Direct { return NewDirect() })
)

// DefaultHeap returns the shared heap allocator.
func DefaultHeap() *Heap { return defaultHeap() }

// DefaultDirect returns the shared direct allocator. It has no quarantine.
func DefaultDirect() *Direct { return defaultDirect() }
