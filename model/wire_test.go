package model

import (
	"testing"

	"github.com/forgekit/forge/errs"
	"github.com/stretchr/testify/require"
)

func TestEncoderDecoder_Scalars(t *testing.T) {
	e := newEncoder()
	e.u8(7)
	e.u32(1234)
	e.u64(567890)
	e.i32(-42)
	e.f32(3.5)
	e.f64(-2.25)
	e.str("hello")

	d := newDecoder(e.Bytes())

	u8, err := d.u8()
	require.NoError(t, err)
	require.Equal(t, uint8(7), u8)

	u32, err := d.u32()
	require.NoError(t, err)
	require.Equal(t, uint32(1234), u32)

	u64, err := d.u64()
	require.NoError(t, err)
	require.Equal(t, uint64(567890), u64)

	i32, err := d.i32()
	require.NoError(t, err)
	require.Equal(t, int32(-42), i32)

	f32, err := d.f32()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f32)

	f64, err := d.f64()
	require.NoError(t, err)
	require.Equal(t, float64(-2.25), f64)

	s, err := d.str()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
	require.True(t, d.done())
}

func TestEncoderDecoder_Slices(t *testing.T) {
	e := newEncoder()
	e.f32s([]float32{1, 2, 3})
	e.u32s([]uint32{10, 20})
	e.u16s([]uint16{1, 2, 3, 4})

	d := newDecoder(e.Bytes())

	f32s, err := d.f32s()
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3}, f32s)

	u32s, err := d.u32s()
	require.NoError(t, err)
	require.Equal(t, []uint32{10, 20}, u32s)

	u16s, err := d.u16s()
	require.NoError(t, err)
	require.Equal(t, []uint16{1, 2, 3, 4}, u16s)
}

func TestDecoder_TruncatedInput(t *testing.T) {
	d := newDecoder([]byte{1, 2})
	_, err := d.u64()
	require.ErrorIs(t, err, errs.ErrCorrupt)
}
