// File: autobuf/codec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Primitive accessors. Relative puts grow the backing buffer when allowed;
// absolute access is bounded by the current capacity and never grows.

package autobuf

func (b *Buffer[B]) GetByte() (byte, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetByte()
}

func (b *Buffer[B]) GetByteAt(index int) (byte, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetByteAt(index)
}

func (b *Buffer[B]) PutByte(v byte) error {
	if err := b.ensure(1); err != nil {
		return err
	}
	return b.buf.PutByte(v)
}

func (b *Buffer[B]) PutByteAt(index int, v byte) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.PutByteAt(index, v)
}

func (b *Buffer[B]) GetUint16() (uint16, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetUint16()
}

func (b *Buffer[B]) GetUint16At(index int) (uint16, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetUint16At(index)
}

func (b *Buffer[B]) PutUint16(v uint16) error {
	if err := b.ensure(2); err != nil {
		return err
	}
	return b.buf.PutUint16(v)
}

func (b *Buffer[B]) PutUint16At(index int, v uint16) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.PutUint16At(index, v)
}

func (b *Buffer[B]) GetInt16() (int16, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetInt16()
}

func (b *Buffer[B]) GetInt16At(index int) (int16, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetInt16At(index)
}

func (b *Buffer[B]) PutInt16(v int16) error {
	if err := b.ensure(2); err != nil {
		return err
	}
	return b.buf.PutInt16(v)
}

func (b *Buffer[B]) PutInt16At(index int, v int16) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.PutInt16At(index, v)
}

func (b *Buffer[B]) GetInt32() (int32, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetInt32()
}

func (b *Buffer[B]) GetInt32At(index int) (int32, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetInt32At(index)
}

func (b *Buffer[B]) PutInt32(v int32) error {
	if err := b.ensure(4); err != nil {
		return err
	}
	return b.buf.PutInt32(v)
}

func (b *Buffer[B]) PutInt32At(index int, v int32) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.PutInt32At(index, v)
}

func (b *Buffer[B]) GetInt64() (int64, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetInt64()
}

func (b *Buffer[B]) GetInt64At(index int) (int64, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetInt64At(index)
}

func (b *Buffer[B]) PutInt64(v int64) error {
	if err := b.ensure(8); err != nil {
		return err
	}
	return b.buf.PutInt64(v)
}

func (b *Buffer[B]) PutInt64At(index int, v int64) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.PutInt64At(index, v)
}

func (b *Buffer[B]) GetFloat32() (float32, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetFloat32()
}

func (b *Buffer[B]) GetFloat32At(index int) (float32, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetFloat32At(index)
}

func (b *Buffer[B]) PutFloat32(v float32) error {
	if err := b.ensure(4); err != nil {
		return err
	}
	return b.buf.PutFloat32(v)
}

func (b *Buffer[B]) PutFloat32At(index int, v float32) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.PutFloat32At(index, v)
}

func (b *Buffer[B]) GetFloat64() (float64, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetFloat64()
}

func (b *Buffer[B]) GetFloat64At(index int) (float64, error) {
	if b.closed {
		return 0, errClosed()
	}
	return b.buf.GetFloat64At(index)
}

func (b *Buffer[B]) PutFloat64(v float64) error {
	if err := b.ensure(8); err != nil {
		return err
	}
	return b.buf.PutFloat64(v)
}

func (b *Buffer[B]) PutFloat64At(index int, v float64) error {
	if b.closed {
		return errClosed()
	}
	return b.buf.PutFloat64At(index, v)
}
