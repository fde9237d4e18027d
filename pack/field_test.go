package pack

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-bitpack/utils/bits"
	"github.com/rony4d/go-bitpack/utils/buffer"
)

func newBuf(t *testing.T, n int) *buffer.Buffer {
	t.Helper()
	b, err := buffer.New(n)
	require.NoError(t, err)
	return b
}

func TestField_Endianness(t *testing.T) {
	require := require.New(t)

	le := MustField(NewUint(2, LittleEndian))
	be := MustField(NewUint(2, BigEndian))

	buf := newBuf(t, 2)
	require.NoError(le.Encode(buf, 0, 0x0102))
	require.Equal([]byte{0x02, 0x01}, buf.Bytes())
	v, err := le.Decode(buf, 0)
	require.NoError(err)
	require.Equal(uint64(0x0102), v)

	require.NoError(be.Encode(buf, 0, 0x0102))
	require.Equal([]byte{0x01, 0x02}, buf.Bytes())
	v, err = be.Decode(buf, 0)
	require.NoError(err)
	require.Equal(uint64(0x0102), v)

	// same bytes, other order
	v, _ = le.Decode(buf, 0)
	require.Equal(uint64(0x0201), v)
}

func TestField_SignExtension(t *testing.T) {
	buf := buffer.FromBytes([]byte{0xFF, 0xFE, 0x80})

	for _, tc := range []struct {
		field  Field
		pos    int
		expect interface{}
	}{
		{MustField(NewInt(2, BigEndian)), 0, int64(-2)},
		{MustField(NewUint(2, BigEndian)), 0, uint64(0xFFFE)},
		{MustField(NewInt(2, LittleEndian)), 0, int64(-257)},
		{MustField(NewInt(1, BigEndian)), 2, int64(-128)},
		{MustField(NewUint(1, BigEndian)), 2, uint64(0x80)},
		{MustField(NewInt(3, BigEndian)), 0, int64(0xFFFE80) - 1<<24},
		{MustField(NewSignedBits(3, 5)), 1, int64(-2)},
		{MustField(NewBits(3, 5)), 1, uint64(6)},
		{MustField(NewSignedBits(9, 7)), 1, int64(128)},
		{MustField(NewSignedBits(9, 6)), 1, int64(-192)},
	} {
		t.Run(tc.field.String(), func(t *testing.T) {
			v, err := tc.field.Decode(buf, tc.pos)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, v)
		})
	}
}

func TestField_RoundTripBits(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, width := range []int{1, 7, 8, 9, 63, 64} {
		for _, ofs := range []int{0, 7} {
			u := MustField(NewBits(width, ofs))
			s := MustField(NewSignedBits(width, ofs))
			t.Run(fmt.Sprintf("%s,%s", u, s), func(t *testing.T) {
				buf := newBuf(t, u.Span()+1)

				if width == 1 {
					for _, b := range []bool{true, false} {
						require.NoError(t, u.Encode(buf, 1, b))
						v, err := u.Decode(buf, 1)
						require.NoError(t, err)
						assert.Equal(t, b, v)
					}
				} else {
					for _, want := range []uint64{0, bits.Mask(width), r.Uint64() & bits.Mask(width)} {
						require.NoError(t, u.Encode(buf, 1, want))
						v, err := u.Decode(buf, 1)
						require.NoError(t, err)
						assert.Equal(t, want, v)
					}
				}

				lim := int64(-1) << uint(width-1)
				for _, want := range []int64{0, -1, lim, ^lim} {
					require.NoError(t, s.Encode(buf, 1, want))
					v, err := s.Decode(buf, 1)
					require.NoError(t, err)
					assert.Equal(t, want, v)
				}
				b0, _ := buf.ByteAt(0)
				assert.Equal(t, byte(0), b0, "byte before the field must not change")
			})
		}
	}
}

func TestField_RoundTripInts(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	for n := 1; n <= 8; n++ {
		for _, order := range []ByteOrder{BigEndian, LittleEndian} {
			si := MustField(NewInt(n, order))
			ui := MustField(NewUint(n, order))
			t.Run(si.String(), func(t *testing.T) {
				buf := newBuf(t, n)
				for i := 0; i < 20; i++ {
					u := r.Uint64() & bits.Mask(n*8)
					require.NoError(t, ui.Encode(buf, 0, u))
					v, err := ui.Decode(buf, 0)
					require.NoError(t, err)
					assert.Equal(t, u, v)

					s := bits.SignExtend(u, n*8)
					require.NoError(t, si.Encode(buf, 0, s))
					v, err = si.Decode(buf, 0)
					require.NoError(t, err)
					assert.Equal(t, s, v)
				}
			})
		}
	}
}

func TestField_Float(t *testing.T) {
	require := require.New(t)
	buf := newBuf(t, 8)

	f4 := MustField(NewFloat(4, BigEndian))
	require.NoError(f4.Encode(buf, 0, float32(1.5)))
	require.Equal([]byte{0x3F, 0xC0, 0, 0}, buf.Bytes()[:4])
	v, err := f4.Decode(buf, 0)
	require.NoError(err)
	require.Equal(1.5, v)

	f8 := MustField(NewFloat(8, LittleEndian))
	require.NoError(f8.Encode(buf, 0, math.Pi))
	v, err = f8.Decode(buf, 0)
	require.NoError(err)
	require.Equal(math.Pi, v)
	require.Equal(byte(0x40), buf.Bytes()[7])

	require.NoError(f8.Encode(buf, 0, 3))
	v, _ = f8.Decode(buf, 0)
	require.Equal(3.0, v)

	require.True(errors.Is(f8.Encode(buf, 0, "x"), ErrValueType))
}

func TestField_Raw(t *testing.T) {
	require := require.New(t)

	raw := MustField(NewRaw(4))
	buf := buffer.FromBytes([]byte{9, 9, 9, 9, 9})

	require.NoError(raw.Encode(buf, 1, "ab"))
	require.Equal([]byte{9, 'a', 'b', 0, 0}, buf.Bytes())

	v, err := raw.Decode(buf, 1)
	require.NoError(err)
	require.Equal([]byte{'a', 'b', 0, 0}, v)

	// decoded bytes are an owned copy
	v.([]byte)[0] = 'z'
	c, _ := buf.ByteAt(1)
	require.Equal(byte('a'), c)

	require.True(errors.Is(raw.Encode(buf, 0, "abcde"), ErrValueRange))
	require.True(errors.Is(raw.Encode(buf, 2, "abcd"), ErrRange))
	require.NoError(raw.Encode(buf, 0, buffer.FromString("wxyz")))
	b, err := raw.DecodeBytes(buf, 0)
	require.NoError(err)
	require.Equal("wxyz", string(b))
}

func TestField_FastPaths(t *testing.T) {
	// the nibble and single-bit fast paths must match the general codec
	for ofs := 0; ofs < 8; ofs++ {
		flag := MustField(NewBool(ofs))
		buf := buffer.FromBytes([]byte{0x00})
		require.NoError(t, flag.Encode(buf, 0, true))
		raw, _ := bits.Read(buf, 0, 1, ofs)
		assert.EqualValues(t, 1, raw)
		assert.Equal(t, byte(0x80>>uint(ofs)), buf.Bytes()[0])

		require.NoError(t, flag.Encode(buf, 0, 0))
		assert.Equal(t, byte(0), buf.Bytes()[0])
	}

	for _, ofs := range []int{0, 4} {
		nib := MustField(NewBits(4, ofs))
		buf := buffer.FromBytes([]byte{0xFF})
		require.NoError(t, nib.Encode(buf, 0, 0xA))
		raw, _ := bits.Read(buf, 0, 4, ofs)
		assert.EqualValues(t, 0xA, raw)
		v, _ := nib.Decode(buf, 0)
		assert.Equal(t, uint64(0xA), v)
		assert.True(t, errors.Is(nib.Encode(buf, 0, 16), ErrValueRange))
	}
	buf := buffer.FromBytes([]byte{0xFF})
	_ = MustField(NewBits(4, 0)).Encode(buf, 0, 0xA)
	assert.Equal(t, byte(0xAF), buf.Bytes()[0])
}

func TestField_Scenario(t *testing.T) {
	buf := newBuf(t, 4)
	f := MustField(NewBits(3, 5))

	require.NoError(t, f.Encode(buf, 0, 0b101))
	assert.Equal(t, []byte{0x05, 0x00, 0x00, 0x00}, buf.Bytes())

	v, err := f.DecodeUint(buf, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)
}

func TestField_ValueErrors(t *testing.T) {
	buf := newBuf(t, 9)

	for _, tc := range []struct {
		field Field
		value interface{}
		err   error
	}{
		{MustField(NewUint(1, BigEndian)), 256, ErrValueRange},
		{MustField(NewUint(1, BigEndian)), -1, ErrValueRange},
		{MustField(NewUint(2, BigEndian)), uint64(1 << 16), ErrValueRange},
		{MustField(NewInt(1, BigEndian)), 128, ErrValueRange},
		{MustField(NewInt(1, BigEndian)), -129, ErrValueRange},
		{MustField(NewInt(8, BigEndian)), uint64(math.MaxUint64), ErrValueRange},
		{MustField(NewBits(3, 0)), 8, ErrValueRange},
		{MustField(NewBool(0)), 2, ErrValueRange},
		{MustField(NewSignedBits(3, 0)), 4, ErrValueRange},
		{MustField(NewSignedBits(3, 0)), -5, ErrValueRange},
		{MustField(NewUint(1, BigEndian)), "1", ErrValueType},
		{MustField(NewInt(4, BigEndian)), 1.5, ErrValueType},
		{MustField(NewRaw(2)), 12, ErrValueType},
		{MustField(NewUint(2, BigEndian)).withOffset(0), struct{}{}, ErrValueType},
	} {
		t.Run(fmt.Sprintf("%s=%v", tc.field, tc.value), func(t *testing.T) {
			err := tc.field.Encode(buf, 0, tc.value)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
		})
	}
	assert.Equal(t, make([]byte, 9), buf.Bytes(), "failed encodes must not write")

	// boundaries that do fit
	require.NoError(t, MustField(NewInt(1, BigEndian)).Encode(buf, 0, -128))
	require.NoError(t, MustField(NewInt(1, BigEndian)).Encode(buf, 0, 127))
	require.NoError(t, MustField(NewUint(8, BigEndian)).Encode(buf, 0, uint64(math.MaxUint64)))
	require.NoError(t, MustField(NewInt(8, BigEndian)).Encode(buf, 0, int64(math.MinInt64)))
}

func TestField_RangeErrors(t *testing.T) {
	buf := newBuf(t, 2)
	for _, f := range []Field{
		MustField(NewUint(4, BigEndian)),
		MustField(NewUint(1, BigEndian)),
		MustField(NewBits(9, 0)),
		MustField(NewBits(4, 4)),
		MustField(NewBool(3)),
		MustField(NewRaw(3)),
		MustField(NewFloat(4, BigEndian)),
	} {
		for _, pos := range []int{-1, 2} {
			_, err := f.Decode(buf, pos)
			assert.Truef(t, errors.Is(err, ErrRange), "%s at %d: got %v", f, pos, err)
		}
	}
	_, err := MustField(NewUint(2, BigEndian)).Decode(buf, 1)
	assert.True(t, errors.Is(err, ErrRange))
	_, err = MustField(NewBits(9, 0)).Decode(buf, 1)
	assert.True(t, errors.Is(err, ErrRange))
	_, err = MustField(NewBits(2, 7)).Decode(buf, 1)
	assert.True(t, errors.Is(err, ErrRange))
}

func TestNewField_Validation(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   func() (Field, error)
		err  error
	}{
		{"int 0", func() (Field, error) { return NewInt(0, BigEndian) }, ErrWidth},
		{"int 9", func() (Field, error) { return NewUint(9, BigEndian) }, ErrWidth},
		{"float 2", func() (Field, error) { return NewFloat(2, BigEndian) }, ErrWidth},
		{"raw 0", func() (Field, error) { return NewRaw(0) }, ErrWidth},
		{"bits 0", func() (Field, error) { return NewBits(0, 0) }, ErrWidth},
		{"bits 65", func() (Field, error) { return NewSignedBits(65, 0) }, ErrWidth},
		{"bits ofs 8", func() (Field, error) { return NewBits(1, 8) }, ErrOffset},
		{"bool ofs -1", func() (Field, error) { return NewBool(-1) }, ErrOffset},
		{"kind", func() (Field, error) { return NewField(Kind(42), 1, 0, BigEndian) }, ErrUnknownKind},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fn()
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
		})
	}

	assert.Panics(t, func() { MustField(NewRaw(0)) })
}

func TestField_UnknownKind(t *testing.T) {
	buf := newBuf(t, 1)
	var zero Field
	_, err := zero.Decode(buf, 0)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.True(t, errors.Is(zero.Encode(buf, 0, 1), ErrUnknownKind))
}

func TestField_Describe(t *testing.T) {
	for _, tc := range []struct {
		field         Field
		name          string
		size, bitSize int
	}{
		{MustField(NewInt(2, LittleEndian)), "Int2L", 2, 16},
		{MustField(NewUint(4, BigEndian)), "UInt4B", 4, 32},
		{MustField(NewBits(3, 5)), "Bit3:5", 3, 3},
		{MustField(NewSignedBits(7, 0)), "SBit7:0", 7, 7},
		{MustField(NewRaw(5)), "Raw5", 5, 40},
		{MustField(NewFloat(8, BigEndian)), "Float8B", 8, 64},
	} {
		assert.Equal(t, tc.name, tc.field.String())
		assert.Equal(t, tc.size, tc.field.Size())
		assert.Equal(t, tc.bitSize, tc.field.BitSize())
	}

	f := MustField(NewBits(3, 5))
	assert.Equal(t, Bit, f.Kind())
	assert.Equal(t, 3, f.Width())
	assert.Equal(t, 5, f.BitOffset())
	assert.Equal(t, BigEndian, f.ByteOrder())
	assert.Equal(t, 1, f.Span())
	assert.Equal(t, 2, MustField(NewBits(4, 5)).Span())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestField_TypedDecoders(t *testing.T) {
	require := require.New(t)
	buf := buffer.FromBytes([]byte{0x80, 0xFF})

	b, err := MustField(NewBool(0)).DecodeBool(buf, 0)
	require.NoError(err)
	require.True(b)

	_, err = MustField(NewUint(1, BigEndian)).DecodeBool(buf, 0)
	require.True(errors.Is(err, ErrValueType))

	i, err := MustField(NewInt(1, BigEndian)).DecodeInt(buf, 1)
	require.NoError(err)
	require.EqualValues(-1, i)

	u, err := MustField(NewUint(2, BigEndian)).DecodeUint(buf, 0)
	require.NoError(err)
	require.EqualValues(0x80FF, u)

	_, err = MustField(NewInt(1, BigEndian)).DecodeUint(buf, 1)
	require.True(errors.Is(err, ErrValueRange))
}
