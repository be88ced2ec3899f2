// Package alloc provides the terminal allocators for fixed buffers.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Heap hands out buffers on the Go heap; releasing one only retires it.
// Direct hands out buffers over anonymous mappings that live outside the Go
// heap; releasing one unmaps it, and a buffer that is never released leaks.
//
// Each allocator is typed over the buffer kind it produces, so a heap buffer
// cannot be released to a direct allocator:
//
//	a := alloc.DefaultDirect()
//	b, err := a.Alloc(4096)
//	if err != nil {
//	    return err
//	}
//	defer a.Release(b)
//
// DefaultHeap and DefaultDirect return process-wide instances that are built
// exactly once, on first use, even under concurrent first access.
package alloc
