// File: core/buffer/codec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Relative and absolute primitive accessors. Relative accessors move the
// position by the value width; absolute ones never move it.

package buffer

import "math"

func (b *Fixed[M]) GetByte() (byte, error) {
	p, err := b.next(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (b *Fixed[M]) GetByteAt(index int) (byte, error) {
	p, err := b.at(index, 1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (b *Fixed[M]) PutByte(v byte) error {
	p, err := b.next(1)
	if err != nil {
		return err
	}
	p[0] = v
	return nil
}

func (b *Fixed[M]) PutByteAt(index int, v byte) error {
	p, err := b.at(index, 1)
	if err != nil {
		return err
	}
	p[0] = v
	return nil
}

func (b *Fixed[M]) GetUint16() (uint16, error) {
	p, err := b.next(2)
	if err != nil {
		return 0, err
	}
	return b.order.Uint16(p), nil
}

func (b *Fixed[M]) GetUint16At(index int) (uint16, error) {
	p, err := b.at(index, 2)
	if err != nil {
		return 0, err
	}
	return b.order.Uint16(p), nil
}

func (b *Fixed[M]) PutUint16(v uint16) error {
	p, err := b.next(2)
	if err != nil {
		return err
	}
	b.order.PutUint16(p, v)
	return nil
}

func (b *Fixed[M]) PutUint16At(index int, v uint16) error {
	p, err := b.at(index, 2)
	if err != nil {
		return err
	}
	b.order.PutUint16(p, v)
	return nil
}

func (b *Fixed[M]) GetInt16() (int16, error) {
	p, err := b.next(2)
	if err != nil {
		return 0, err
	}
	return int16(b.order.Uint16(p)), nil
}

func (b *Fixed[M]) GetInt16At(index int) (int16, error) {
	p, err := b.at(index, 2)
	if err != nil {
		return 0, err
	}
	return int16(b.order.Uint16(p)), nil
}

func (b *Fixed[M]) PutInt16(v int16) error {
	p, err := b.next(2)
	if err != nil {
		return err
	}
	b.order.PutUint16(p, uint16(v))
	return nil
}

func (b *Fixed[M]) PutInt16At(index int, v int16) error {
	p, err := b.at(index, 2)
	if err != nil {
		return err
	}
	b.order.PutUint16(p, uint16(v))
	return nil
}

func (b *Fixed[M]) GetInt32() (int32, error) {
	p, err := b.next(4)
	if err != nil {
		return 0, err
	}
	return int32(b.order.Uint32(p)), nil
}

func (b *Fixed[M]) GetInt32At(index int) (int32, error) {
	p, err := b.at(index, 4)
	if err != nil {
		return 0, err
	}
	return int32(b.order.Uint32(p)), nil
}

func (b *Fixed[M]) PutInt32(v int32) error {
	p, err := b.next(4)
	if err != nil {
		return err
	}
	b.order.PutUint32(p, uint32(v))
	return nil
}

func (b *Fixed[M]) PutInt32At(index int, v int32) error {
	p, err := b.at(index, 4)
	if err != nil {
		return err
	}
	b.order.PutUint32(p, uint32(v))
	return nil
}

func (b *Fixed[M]) GetInt64() (int64, error) {
	p, err := b.next(8)
	if err != nil {
		return 0, err
	}
	return int64(b.order.Uint64(p)), nil
}

func (b *Fixed[M]) GetInt64At(index int) (int64, error) {
	p, err := b.at(index, 8)
	if err != nil {
		return 0, err
	}
	return int64(b.order.Uint64(p)), nil
}

func (b *Fixed[M]) PutInt64(v int64) error {
	p, err := b.next(8)
	if err != nil {
		return err
	}
	b.order.PutUint64(p, uint64(v))
	return nil
}

func (b *Fixed[M]) PutInt64At(index int, v int64) error {
	p, err := b.at(index, 8)
	if err != nil {
		return err
	}
	b.order.PutUint64(p, uint64(v))
	return nil
}

func (b *Fixed[M]) GetFloat32() (float32, error) {
	p, err := b.next(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(b.order.Uint32(p)), nil
}

func (b *Fixed[M]) GetFloat32At(index int) (float32, error) {
	p, err := b.at(index, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(b.order.Uint32(p)), nil
}

func (b *Fixed[M]) PutFloat32(v float32) error {
	p, err := b.next(4)
	if err != nil {
		return err
	}
	b.order.PutUint32(p, math.Float32bits(v))
	return nil
}

func (b *Fixed[M]) PutFloat32At(index int, v float32) error {
	p, err := b.at(index, 4)
	if err != nil {
		return err
	}
	b.order.PutUint32(p, math.Float32bits(v))
	return nil
}

func (b *Fixed[M]) GetFloat64() (float64, error) {
	p, err := b.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(b.order.Uint64(p)), nil
}

func (b *Fixed[M]) GetFloat64At(index int) (float64, error) {
	p, err := b.at(index, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(b.order.Uint64(p)), nil
}

func (b *Fixed[M]) PutFloat64(v float64) error {
	p, err := b.next(8)
	if err != nil {
		return err
	}
	b.order.PutUint64(p, math.Float64bits(v))
	return nil
}

func (b *Fixed[M]) PutFloat64At(index int, v float64) error {
	p, err := b.at(index, 8)
	if err != nil {
		return err
	}
	b.order.PutUint64(p, math.Float64bits(v))
	return nil
}
