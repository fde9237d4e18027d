package pack

import (
	"fmt"
	"math"

	"github.com/rony4d/go-bitpack/utils/bits"
	"github.com/rony4d/go-bitpack/utils/buffer"
)

// Decode reads the field at byte pos of buf.
//
// The dynamic type of the result depends on the kind: int64 for SignedInt
// and SignedBit, uint64 for UnsignedInt and Bit, bool for 1-bit Bit fields,
// []byte (an owned copy) for Raw and float64 for Float.
func (f Field) Decode(buf *buffer.Buffer, pos int) (interface{}, error) {
	switch f.kind {
	case SignedInt, UnsignedInt:
		raw, err := f.readInt(buf, pos)
		if err != nil {
			return nil, err
		}
		if f.kind == SignedInt {
			return bits.SignExtend(raw, f.width*8), nil
		}
		return raw, nil
	case Float:
		raw, err := f.readInt(buf, pos)
		if err != nil {
			return nil, err
		}
		if f.width == 4 {
			return float64(math.Float32frombits(uint32(raw))), nil
		}
		return math.Float64frombits(raw), nil
	case Bit:
		if f.width == 1 {
			c, err := buf.ByteAt(pos)
			if err != nil {
				return nil, err
			}
			return (c>>uint(7-f.ofs))&1 == 1, nil
		}
		if f.width == 4 && (f.ofs == 0 || f.ofs == 4) {
			c, err := buf.ByteAt(pos)
			if err != nil {
				return nil, err
			}
			if f.ofs == 0 {
				return uint64(c >> 4), nil
			}
			return uint64(c & 0x0F), nil
		}
		return bits.Read(buf, pos, f.width, f.ofs)
	case SignedBit:
		raw, err := bits.Read(buf, pos, f.width, f.ofs)
		if err != nil {
			return nil, err
		}
		return bits.SignExtend(raw, f.width), nil
	case Raw:
		return buf.Read(pos, f.width)
	default:
		// only reachable through a zero Field{}
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(f.kind))
	}
}

// Encode writes v into the field at byte pos of buf. Nothing is written if
// the value does not fit or the field crosses the end of the region.
func (f Field) Encode(buf *buffer.Buffer, pos int, v interface{}) error {
	switch f.kind {
	case SignedInt:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		raw, err := bits.Truncate(n, f.width*8)
		if err != nil {
			return err
		}
		return f.writeInt(buf, pos, raw)
	case UnsignedInt:
		n, err := toUint64(v)
		if err != nil {
			return err
		}
		if f.width < 8 && n>>uint(f.width*8) != 0 {
			return fmt.Errorf("%w: %d does not fit in %d bytes", ErrValueRange, n, f.width)
		}
		return f.writeInt(buf, pos, n)
	case Float:
		x, err := toFloat64(v)
		if err != nil {
			return err
		}
		if f.width == 4 {
			return f.writeInt(buf, pos, uint64(math.Float32bits(float32(x))))
		}
		return f.writeInt(buf, pos, math.Float64bits(x))
	case Bit:
		n, err := toUint64(v)
		if err != nil {
			return err
		}
		if f.width == 1 {
			return f.writeFlag(buf, pos, n)
		}
		if f.width == 4 && (f.ofs == 0 || f.ofs == 4) {
			return f.writeNibble(buf, pos, n)
		}
		return bits.Write(buf, pos, f.width, f.ofs, n)
	case SignedBit:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		raw, err := bits.Truncate(n, f.width)
		if err != nil {
			return err
		}
		return bits.Write(buf, pos, f.width, f.ofs, raw)
	case Raw:
		data, err := toBytes(v)
		if err != nil {
			return err
		}
		if len(data) > f.width {
			return fmt.Errorf("%w: %d bytes do not fit in %d", ErrValueRange, len(data), f.width)
		}
		if err := buf.Check(pos, f.width); err != nil {
			return err
		}
		// shorter values are zero padded
		out := make([]byte, f.width)
		copy(out, data)
		return buf.Write(pos, out)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(f.kind))
	}
}

// readInt reads width bytes as one unsigned integer, honouring byte order.
func (f Field) readInt(buf *buffer.Buffer, pos int) (uint64, error) {
	if f.width == 1 {
		c, err := buf.ByteAt(pos)
		return uint64(c), err
	}
	b, err := buf.Read(pos, f.width)
	if err != nil {
		return 0, err
	}
	if f.order == LittleEndian {
		bits.Reverse(b)
	}
	return bits.ReadBytes(b, f.width*8, 0), nil
}

// writeInt stores raw as width bytes, honouring byte order.
func (f Field) writeInt(buf *buffer.Buffer, pos int, raw uint64) error {
	if f.width == 1 {
		return buf.SetByteAt(pos, byte(raw))
	}
	b := make([]byte, f.width)
	bits.WriteBytes(b, f.width*8, 0, raw)
	if f.order == LittleEndian {
		bits.Reverse(b)
	}
	return buf.Write(pos, b)
}

func (f Field) writeFlag(buf *buffer.Buffer, pos int, n uint64) error {
	if n > 1 {
		return fmt.Errorf("%w: %d does not fit in 1 bit", ErrValueRange, n)
	}
	c, err := buf.ByteAt(pos)
	if err != nil {
		return err
	}
	m := byte(1) << uint(7-f.ofs)
	if n == 1 {
		c |= m
	} else {
		c &^= m
	}
	return buf.SetByteAt(pos, c)
}

func (f Field) writeNibble(buf *buffer.Buffer, pos int, n uint64) error {
	if n > 0x0F {
		return fmt.Errorf("%w: %d does not fit in 4 bits", ErrValueRange, n)
	}
	c, err := buf.ByteAt(pos)
	if err != nil {
		return err
	}
	if f.ofs == 0 {
		c = c&0x0F | byte(n)<<4
	} else {
		c = c&0xF0 | byte(n)
	}
	return buf.SetByteAt(pos, c)
}

// DecodeInt decodes the field and converts the result to int64.
func (f Field) DecodeInt(buf *buffer.Buffer, pos int) (int64, error) {
	v, err := f.Decode(buf, pos)
	if err != nil {
		return 0, err
	}
	return toInt64(v)
}

// DecodeUint decodes the field and converts the result to uint64.
func (f Field) DecodeUint(buf *buffer.Buffer, pos int) (uint64, error) {
	v, err := f.Decode(buf, pos)
	if err != nil {
		return 0, err
	}
	return toUint64(v)
}

// DecodeBool decodes a 1-bit field.
func (f Field) DecodeBool(buf *buffer.Buffer, pos int) (bool, error) {
	v, err := f.Decode(buf, pos)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s does not decode to bool", ErrValueType, f)
	}
	return b, nil
}

// DecodeBytes decodes a Raw field.
func (f Field) DecodeBytes(buf *buffer.Buffer, pos int) ([]byte, error) {
	v, err := f.Decode(buf, pos)
	if err != nil {
		return nil, err
	}
	return toBytes(v)
}
