package pack

import (
	"fmt"

	"github.com/rony4d/go-bitpack/utils/bits"
)

// Kind selects how a field's bytes are interpreted.
type Kind uint8

const (
	// SignedInt is a two's-complement integer of 1..8 bytes.
	SignedInt Kind = iota + 1
	// UnsignedInt is an unsigned integer of 1..8 bytes.
	UnsignedInt
	// Bit is an unsigned field of 1..64 bits. A 1-bit field decodes to bool.
	Bit
	// SignedBit is a two's-complement field of 1..64 bits.
	SignedBit
	// Raw is an opaque run of bytes.
	Raw
	// Float is an IEEE-754 number of 4 or 8 bytes.
	Float
)

func (k Kind) String() string {
	switch k {
	case SignedInt:
		return "Int"
	case UnsignedInt:
		return "UInt"
	case Bit:
		return "Bit"
	case SignedBit:
		return "SBit"
	case Raw:
		return "Raw"
	case Float:
		return "Float"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// bitSized reports whether the field width counts bits rather than bytes.
func (k Kind) bitSized() bool {
	return k == Bit || k == SignedBit
}

// ByteOrder is the order of bytes for multi-byte integer and float fields.
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "L"
	}
	return "B"
}

// Field describes the binary shape of one value. Fields are small immutable
// values and compare with ==.
type Field struct {
	kind  Kind
	width int // bytes, or bits for Bit and SignedBit
	ofs   int // bit offset inside the first byte, bit kinds only
	order ByteOrder
}

// NewField validates a shape and returns the matching descriptor.
func NewField(kind Kind, width, ofs int, order ByteOrder) (Field, error) {
	switch kind {
	case SignedInt, UnsignedInt:
		if width < 1 || width > 8 {
			return Field{}, fmt.Errorf("%w: %s takes 1..8 bytes, got %d", ErrWidth, kind, width)
		}
		ofs = 0
	case Float:
		if width != 4 && width != 8 {
			return Field{}, fmt.Errorf("%w: %s takes 4 or 8 bytes, got %d", ErrWidth, kind, width)
		}
		ofs = 0
	case Raw:
		if width < 1 {
			return Field{}, fmt.Errorf("%w: %s needs at least one byte, got %d", ErrWidth, kind, width)
		}
		ofs, order = 0, BigEndian
	case Bit, SignedBit:
		if err := bits.Validate(width, ofs); err != nil {
			return Field{}, err
		}
		order = BigEndian
	default:
		return Field{}, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(kind))
	}
	return Field{kind: kind, width: width, ofs: ofs, order: order}, nil
}

// NewInt returns a signed integer field of n bytes.
func NewInt(n int, order ByteOrder) (Field, error) {
	return NewField(SignedInt, n, 0, order)
}

// NewUint returns an unsigned integer field of n bytes.
func NewUint(n int, order ByteOrder) (Field, error) {
	return NewField(UnsignedInt, n, 0, order)
}

// NewFloat returns a float field of 4 or 8 bytes.
func NewFloat(n int, order ByteOrder) (Field, error) {
	return NewField(Float, n, 0, order)
}

// NewRaw returns a field of n opaque bytes.
func NewRaw(n int) (Field, error) {
	return NewField(Raw, n, 0, BigEndian)
}

// NewBits returns an unsigned bit field of width bits starting at bit ofs.
func NewBits(width, ofs int) (Field, error) {
	return NewField(Bit, width, ofs, BigEndian)
}

// NewSignedBits returns a signed bit field of width bits starting at bit ofs.
func NewSignedBits(width, ofs int) (Field, error) {
	return NewField(SignedBit, width, ofs, BigEndian)
}

// NewBool returns a single-bit field at bit ofs.
func NewBool(ofs int) (Field, error) {
	return NewField(Bit, 1, ofs, BigEndian)
}

// MustField panics if err is not nil. It is meant for package-level layouts.
func MustField(f Field, err error) Field {
	if err != nil {
		panic(err)
	}
	return f
}

func (f Field) Kind() Kind           { return f.kind }
func (f Field) Width() int           { return f.width }
func (f Field) BitOffset() int       { return f.ofs }
func (f Field) ByteOrder() ByteOrder { return f.order }

// Size returns the width in the field's natural unit: bits for Bit and
// SignedBit, bytes for everything else.
func (f Field) Size() int {
	return f.width
}

// BitSize returns the number of bits the field occupies.
func (f Field) BitSize() int {
	if f.kind.bitSized() {
		return f.width
	}
	return f.width * 8
}

// Span returns the number of bytes the field touches when decoded on its own.
func (f Field) Span() int {
	if f.kind.bitSized() {
		return bits.Span(f.width, f.ofs)
	}
	return f.width
}

// withOffset returns a copy of a bit field moved to bit ofs.
func (f Field) withOffset(ofs int) Field {
	f.ofs = ofs
	return f
}

// String renders a short name such as Int2L, UInt4B, Bit3:5 or Raw16.
func (f Field) String() string {
	switch f.kind {
	case SignedInt, UnsignedInt, Float:
		return fmt.Sprintf("%s%d%s", f.kind, f.width, f.order)
	case Bit, SignedBit:
		return fmt.Sprintf("%s%d:%d", f.kind, f.width, f.ofs)
	case Raw:
		return fmt.Sprintf("%s%d", f.kind, f.width)
	default:
		return f.kind.String()
	}
}
