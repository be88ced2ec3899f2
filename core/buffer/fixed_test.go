package buffer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/bytebuf/api"
)

func requireCursor(t *testing.T, b api.Buffer) {
	t.Helper()
	require.GreaterOrEqual(t, b.Position(), 0)
	require.LessOrEqual(t, b.Position(), b.Limit())
	require.LessOrEqual(t, b.Limit(), b.Capacity())
	if m := b.MarkValue(); m >= 0 {
		require.LessOrEqual(t, m, b.Position())
	}
}

func newHeap(t *testing.T, capacity int) *HeapBuffer {
	t.Helper()
	b, err := NewHeap(capacity)
	require.NoError(t, err)
	return b
}

func TestNewHeap_InitialState(t *testing.T) {
	for _, c := range []int{1, 7, 16, 4096} {
		b := newHeap(t, c)
		require.Equal(t, c, b.Capacity())
		require.Equal(t, 0, b.Position())
		require.Equal(t, c, b.Limit())
		require.Equal(t, -1, b.MarkValue())
		require.Equal(t, binary.BigEndian, b.Order())
		requireCursor(t, b)
	}
}

func TestNewHeap_RejectsNonPositive(t *testing.T) {
	for _, c := range []int{0, -1} {
		_, err := NewHeap(c)
		require.ErrorIs(t, err, api.ErrInvalidArgument)
		_, err = NewDirect(c)
		require.ErrorIs(t, err, api.ErrInvalidArgument)
	}
}

func TestFixed_RoundTripAllWidths(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		b := newHeap(t, 64)
		b.SetOrder(order)

		require.NoError(t, b.PutByte(0xAB))
		require.NoError(t, b.PutUint16(0xBEEF))
		require.NoError(t, b.PutInt16(math.MinInt16))
		require.NoError(t, b.PutInt32(-123456789))
		require.NoError(t, b.PutInt64(math.MaxInt64))
		require.NoError(t, b.PutFloat32(3.25))
		require.NoError(t, b.PutFloat64(-2.5e100))
		require.Equal(t, 1+2+2+4+8+4+8, b.Position())
		requireCursor(t, b)

		b.Flip()
		v8, err := b.GetByte()
		require.NoError(t, err)
		assert.Equal(t, byte(0xAB), v8)
		vu16, err := b.GetUint16()
		require.NoError(t, err)
		assert.Equal(t, uint16(0xBEEF), vu16)
		v16, err := b.GetInt16()
		require.NoError(t, err)
		assert.Equal(t, int16(math.MinInt16), v16)
		v32, err := b.GetInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(-123456789), v32)
		v64, err := b.GetInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), v64)
		f32, err := b.GetFloat32()
		require.NoError(t, err)
		assert.Equal(t, float32(3.25), f32)
		f64, err := b.GetFloat64()
		require.NoError(t, err)
		assert.Equal(t, -2.5e100, f64)
		require.False(t, b.HasRemaining())
	}
}

func TestFixed_AbsoluteAccessDoesNotMoveCursor(t *testing.T) {
	b := newHeap(t, 32)
	require.NoError(t, b.SetPosition(3))

	require.NoError(t, b.PutByteAt(0, 7))
	require.NoError(t, b.PutUint16At(1, 0x0102))
	require.NoError(t, b.PutInt16At(3, -2))
	require.NoError(t, b.PutInt32At(5, 42))
	require.NoError(t, b.PutInt64At(9, -42))
	require.NoError(t, b.PutFloat32At(17, 1.5))
	require.NoError(t, b.PutFloat64At(21, 0.125))
	require.Equal(t, 3, b.Position())

	v8, err := b.GetByteAt(0)
	require.NoError(t, err)
	assert.Equal(t, byte(7), v8)
	vu16, err := b.GetUint16At(1)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), vu16)
	v16, err := b.GetInt16At(3)
	require.NoError(t, err)
	assert.Equal(t, int16(-2), v16)
	v32, err := b.GetInt32At(5)
	require.NoError(t, err)
	assert.Equal(t, int32(42), v32)
	v64, err := b.GetInt64At(9)
	require.NoError(t, err)
	assert.Equal(t, int64(-42), v64)
	f32, err := b.GetFloat32At(17)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32)
	f64, err := b.GetFloat64At(21)
	require.NoError(t, err)
	assert.Equal(t, 0.125, f64)
	require.Equal(t, 3, b.Position())
}

func TestFixed_BigEndianLayout(t *testing.T) {
	b := newHeap(t, 4)
	require.NoError(t, b.PutInt32(0x01020304))
	for i, want := range []byte{1, 2, 3, 4} {
		got, err := b.GetByteAt(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFixed_AbsoluteIndexChecks(t *testing.T) {
	b := newHeap(t, 8)
	require.NoError(t, b.SetLimit(2))

	// Absolute access is bounded by capacity, not limit.
	require.NoError(t, b.PutInt32At(4, 1))

	for _, idx := range []int{-1, 5, 8, math.MaxInt} {
		err := b.PutInt32At(idx, 1)
		require.ErrorIs(t, err, api.ErrInvalidArgument, "index %d", idx)
		_, err = b.GetInt32At(idx)
		require.ErrorIs(t, err, api.ErrInvalidArgument, "index %d", idx)
	}
	_, err := b.GetByteAt(8)
	require.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestFixed_RelativeOverflow(t *testing.T) {
	b := newHeap(t, 4)
	require.NoError(t, b.PutInt16(1))
	err := b.PutInt32(2)
	require.ErrorIs(t, err, api.ErrOverflow)
	require.Equal(t, 2, b.Position(), "failed put must not move the cursor")

	require.NoError(t, b.SetLimit(3))
	require.ErrorIs(t, b.PutInt16(1), api.ErrOverflow)
	require.NoError(t, b.PutByte(1))
	require.ErrorIs(t, b.PutByte(1), api.ErrOverflow)

	b.Flip()
	_, err = b.GetInt64()
	require.ErrorIs(t, err, api.ErrOverflow)
	require.Equal(t, 0, b.Position())
}

func TestFixed_PositionAndLimit(t *testing.T) {
	b := newHeap(t, 10)

	require.ErrorIs(t, b.SetPosition(-1), api.ErrInvalidArgument)
	require.ErrorIs(t, b.SetPosition(11), api.ErrInvalidArgument)
	require.ErrorIs(t, b.SetLimit(-1), api.ErrInvalidArgument)
	require.ErrorIs(t, b.SetLimit(11), api.ErrInvalidArgument)

	require.NoError(t, b.SetPosition(8))
	b.Mark()
	require.NoError(t, b.SetLimit(5))
	require.Equal(t, 5, b.Position(), "position is pulled down to the new limit")
	require.Equal(t, -1, b.MarkValue(), "mark above the new limit is discarded")
	requireCursor(t, b)

	require.ErrorIs(t, b.SetPosition(6), api.ErrInvalidArgument)
	require.Equal(t, 5, b.Remaining()+b.Position())
}

func TestFixed_MarkReset(t *testing.T) {
	b := newHeap(t, 8)
	require.ErrorIs(t, b.Reset(), api.ErrInvalidState)

	require.NoError(t, b.SetPosition(3))
	b.Mark()
	require.Equal(t, 3, b.MarkValue())
	require.NoError(t, b.SetPosition(6))
	require.NoError(t, b.Reset())
	require.Equal(t, 3, b.Position())

	require.NoError(t, b.SetPosition(2))
	require.Equal(t, -1, b.MarkValue(), "moving below the mark discards it")
}

func TestFixed_ClearFlipRewind(t *testing.T) {
	b := newHeap(t, 8)
	require.NoError(t, b.PutInt32(9))
	b.Mark()

	b.Flip()
	require.Equal(t, 0, b.Position())
	require.Equal(t, 4, b.Limit())
	require.Equal(t, -1, b.MarkValue())
	require.Equal(t, 4, b.Remaining())

	_, err := b.GetInt16()
	require.NoError(t, err)
	b.Mark()
	b.Rewind()
	require.Equal(t, 0, b.Position())
	require.Equal(t, 4, b.Limit())
	require.Equal(t, -1, b.MarkValue())

	b.Clear()
	require.Equal(t, 0, b.Position())
	require.Equal(t, 8, b.Limit())
	require.Equal(t, -1, b.MarkValue())
	require.True(t, b.HasRemaining())
}

func TestFixed_PutBuffer(t *testing.T) {
	src := newHeap(t, 8)
	require.NoError(t, src.PutBytes([]byte{1, 2, 3, 4, 5}))
	src.Flip()
	require.NoError(t, src.SetPosition(1))

	dst := newHeap(t, 8)
	require.NoError(t, dst.PutByte(9))
	require.NoError(t, dst.PutBuffer(src))
	require.Equal(t, 5, dst.Position())
	require.Equal(t, src.Limit(), src.Position())

	got := make([]byte, 5)
	dst.Flip()
	require.NoError(t, dst.GetBytes(got))
	require.Equal(t, []byte{9, 2, 3, 4, 5}, got)
}

func TestFixed_PutBufferOverflowLeavesBothCursors(t *testing.T) {
	src := newHeap(t, 8)
	require.NoError(t, src.PutBytes([]byte{1, 2, 3, 4, 5, 6}))
	src.Flip()

	dst := newHeap(t, 4)
	require.ErrorIs(t, dst.PutBuffer(src), api.ErrOverflow)
	require.Equal(t, 0, dst.Position())
	require.Equal(t, 0, src.Position())

	require.ErrorIs(t, dst.PutBuffer(nil), api.ErrInvalidArgument)
	require.ErrorIs(t, dst.PutBuffer(dst), api.ErrInvalidArgument)
}

func TestFixed_PutBufferAcrossKinds(t *testing.T) {
	src, err := NewDirect(4)
	require.NoError(t, err)
	defer func() { require.NoError(t, src.Free()) }()
	require.NoError(t, src.PutInt32(77))
	src.Flip()

	dst := newHeap(t, 4)
	require.NoError(t, dst.PutBuffer(src))
	v, err := dst.GetInt32At(0)
	require.NoError(t, err)
	require.Equal(t, int32(77), v)
}

func TestFixed_PutBufferFromReleasedSource(t *testing.T) {
	src := newHeap(t, 8)
	require.NoError(t, src.PutInt32(1))
	src.Flip()
	require.NoError(t, src.Free())

	dst := newHeap(t, 8)
	require.ErrorIs(t, dst.PutBuffer(src), api.ErrInvalidState)
	require.Equal(t, 0, dst.Position())

	direct, err := NewDirect(8)
	require.NoError(t, err)
	require.NoError(t, direct.Free())
	require.ErrorIs(t, dst.PutBuffer(direct), api.ErrInvalidState)
}

func TestFixed_UseAfterFree(t *testing.T) {
	b := newHeap(t, 8)
	require.NoError(t, b.Free())
	require.True(t, b.Released())
	require.Equal(t, 8, b.Capacity(), "capacity survives release")
	require.Nil(t, b.Bytes())

	err := b.PutByte(1)
	require.ErrorIs(t, err, api.ErrInvalidState)
	_, err = b.GetInt32At(0)
	require.ErrorIs(t, err, api.ErrInvalidState)

	err = b.Free()
	require.ErrorIs(t, err, api.ErrInvalidArgument)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, api.ErrCodeInvalidArgument, apiErr.Code)
}

func TestDirectMemory_FreeIsIdempotent(t *testing.T) {
	mem, err := NewDirectMemory(4096)
	require.NoError(t, err)
	require.Len(t, mem.Bytes(), 4096)

	b := New(mem)
	require.NoError(t, b.PutInt64(1))
	require.NoError(t, b.Free())
	require.Nil(t, mem.Bytes())
	require.NoError(t, mem.Free())
	require.NoError(t, mem.Protect())
}

func TestDirectMemory_ProtectThenFree(t *testing.T) {
	mem, err := NewDirectMemory(128)
	require.NoError(t, err)
	b := New(mem)
	_, err = b.Detach()
	require.NoError(t, err)
	require.NoError(t, mem.Protect())
	require.NoError(t, mem.Free())
}
