// Package api
// Author: momentics
//
// Cursor-addressed byte buffers and the allocators and pools that manage them.
//
// A buffer keeps position, limit, mark and capacity with
// 0 <= mark <= position <= limit <= capacity at every observable point.
// Buffers, auto buffers and pools are owned by one goroutine at a time;
// none of them lock.

package api

import "encoding/binary"

// Buffer is the cursor contract shared by fixed and growable buffers.
type Buffer interface {
	// Position returns the offset of the next relative read or write.
	Position() int
	// SetPosition moves the cursor; n must lie in [0, Limit()].
	// A mark greater than n is discarded.
	SetPosition(n int) error

	// Limit returns the current read/write ceiling.
	Limit() int
	// SetLimit moves the ceiling; n must lie in [0, Capacity()].
	// A position above n is pulled down to n and a mark above n is discarded.
	SetLimit(n int) error

	// Capacity returns the number of addressable bytes.
	Capacity() int

	// Mark saves the current position.
	Mark()
	// MarkValue returns the saved position, -1 if none.
	MarkValue() int
	// Reset moves the position back to the mark.
	Reset() error

	// Clear prepares the buffer to be filled: position 0, limit capacity, no mark.
	Clear()
	// Flip prepares the buffer to be drained: limit position, position 0, no mark.
	Flip()
	// Rewind moves the position to 0 and discards the mark; limit unchanged.
	Rewind()

	Remaining() int
	HasRemaining() bool

	// Bytes returns a view of [Position(), Limit()) without moving the cursor.
	// The view aliases buffer memory and is invalid once the buffer is
	// released or reallocated.
	Bytes() []byte

	// Order returns the byte order used by multi-byte accessors.
	Order() binary.ByteOrder
	SetOrder(order binary.ByteOrder)

	// PutBuffer copies src's remaining bytes at the position and advances both cursors.
	PutBuffer(src Buffer) error
	// PutBytes copies p at the position and advances it.
	PutBytes(p []byte) error
	// GetBytes fills p from the position and advances it.
	GetBytes(p []byte) error

	GetByte() (byte, error)
	GetByteAt(index int) (byte, error)
	PutByte(v byte) error
	PutByteAt(index int, v byte) error

	GetUint16() (uint16, error)
	GetUint16At(index int) (uint16, error)
	PutUint16(v uint16) error
	PutUint16At(index int, v uint16) error

	GetInt16() (int16, error)
	GetInt16At(index int) (int16, error)
	PutInt16(v int16) error
	PutInt16At(index int, v int16) error

	GetInt32() (int32, error)
	GetInt32At(index int) (int32, error)
	PutInt32(v int32) error
	PutInt32At(index int, v int32) error

	GetInt64() (int64, error)
	GetInt64At(index int) (int64, error)
	PutInt64(v int64) error
	PutInt64At(index int, v int64) error

	GetFloat32() (float32, error)
	GetFloat32At(index int) (float32, error)
	PutFloat32(v float32) error
	PutFloat32At(index int, v float32) error

	GetFloat64() (float64, error)
	GetFloat64At(index int) (float64, error)
	PutFloat64(v float64) error
	PutFloat64At(index int, v float64) error
}

// FixedBuffer is a Buffer whose capacity never changes. It is produced and
// retired by exactly one Allocator.
type FixedBuffer interface {
	Buffer

	// Released reports whether the owning allocator has retired the buffer.
	Released() bool
}

// Growable is a Buffer that reallocates on overflowing relative puts.
type Growable interface {
	Buffer

	// CanGrow is false after SetLimit or Flip and true again after Clear.
	CanGrow() bool
}

// Poolable constrains pool and allocator type parameters to comparable
// fixed buffers, so pools can track buffer identity.
type Poolable interface {
	comparable
	FixedBuffer
}
