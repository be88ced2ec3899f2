// Package buffer implements fixed-capacity cursor buffers.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Fixed buffer is a position/limit/mark cursor over one memory region. The
// region is either HeapMemory (a Go slice, reclaimed by the garbage
// collector) or DirectMemory (an anonymous mapping outside the Go heap that
// must be freed explicitly). The memory kind is a type parameter, so
// HeapBuffer and DirectBuffer are distinct types and an allocator for one
// cannot be handed the other.
//
// Multi-byte values are encoded big-endian unless SetOrder says otherwise.
//
// Buffers are not safe for concurrent use.
package buffer
