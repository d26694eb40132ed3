package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/forgekit/forge/errs"
)

// encoder accumulates a canonical little-endian, length-prefixed encoding of
// one entity. Every *_codec.go file in this package builds its wire form
// with one of these instead of hand-rolling offsets per field, since the
// entities here have far more fields than the archive envelope in section/.
type encoder struct {
	buf []byte
}

func newEncoder() *encoder {
	return &encoder{}
}

func (e *encoder) u8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *encoder) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) i32(v int32) {
	e.u32(uint32(v))
}

func (e *encoder) f32(v float32) {
	e.u32(math.Float32bits(v))
}

func (e *encoder) f64(v float64) {
	e.u64(math.Float64bits(v))
}

func (e *encoder) bytes(b []byte) {
	e.u32(uint32(len(b)))
	e.buf = append(e.buf, b...)
}

func (e *encoder) str(s string) {
	e.bytes([]byte(s))
}

func (e *encoder) f32s(v []float32) {
	e.u32(uint32(len(v)))
	for _, f := range v {
		e.f32(f)
	}
}

func (e *encoder) f64s(v []float64) {
	e.u32(uint32(len(v)))
	for _, f := range v {
		e.f64(f)
	}
}

func (e *encoder) u32s(v []uint32) {
	e.u32(uint32(len(v)))
	for _, n := range v {
		e.u32(n)
	}
}

func (e *encoder) u16s(v []uint16) {
	e.u32(uint32(len(v)))
	for _, n := range v {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], n)
		e.buf = append(e.buf, b[:]...)
	}
}

func (e *encoder) Bytes() []byte {
	return e.buf
}

// decoder walks a byte slice produced by encoder, enforcing bounds on every
// read and reporting violations as errs.ErrCorrupt.
type decoder struct {
	buf []byte
	pos int
}

func newDecoder(b []byte) *decoder {
	return &decoder{buf: b}
}

func (d *decoder) need(n int) error {
	if d.pos+n > len(d.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrCorrupt, n, d.pos, len(d.buf))
	}

	return nil
}

func (d *decoder) u8() (uint8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.buf[d.pos]
	d.pos++

	return v, nil
}

func (d *decoder) u32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos : d.pos+4])
	d.pos += 4

	return v, nil
}

func (d *decoder) u64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.buf[d.pos : d.pos+8])
	d.pos += 8

	return v, nil
}

func (d *decoder) i32() (int32, error) {
	v, err := d.u32()

	return int32(v), err
}

func (d *decoder) f32() (float32, error) {
	v, err := d.u32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

func (d *decoder) f64() (float64, error) {
	v, err := d.u64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

func (d *decoder) bytes() ([]byte, error) {
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	if err := d.need(int(n)); err != nil {
		return nil, err
	}
	out := append([]byte(nil), d.buf[d.pos:d.pos+int(n)]...)
	d.pos += int(n)

	return out, nil
}

func (d *decoder) str() (string, error) {
	b, err := d.bytes()

	return string(b), err
}

func (d *decoder) f32s() ([]float32, error) {
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i], err = d.f32()
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (d *decoder) f64s() ([]float64, error) {
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i], err = d.f64()
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (d *decoder) u32s() ([]uint32, error) {
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i], err = d.u32()
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (d *decoder) u16s() ([]uint16, error) {
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	if err := d.need(int(n) * 2); err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(d.buf[d.pos : d.pos+2])
		d.pos += 2
	}

	return out, nil
}

func (d *decoder) done() bool {
	return d.pos >= len(d.buf)
}
