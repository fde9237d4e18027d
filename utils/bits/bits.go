package bits

// This package reads and writes unsigned integers of 1..64 bits at an
// arbitrary bit position inside a byte region.
//
// Bits are numbered MSB-first: offset 0 is the most significant bit of the
// byte at pos, offset 7 the least significant one. A field may span up to
// nine bytes (64 bits starting at offset 7). The underlying bytes are always
// treated as a big-endian bit sequence; little-endian fields are handled by
// the caller with Reverse before or after the bit math.

import (
	"errors"
	"fmt"

	"github.com/rony4d/go-bitpack/utils/buffer"
)

const (
	// MaxWidth is the widest field the codec handles.
	MaxWidth = 64
	allOnes  = ^uint64(0)
)

// Errors for malformed field shapes and oversized values.
var (
	ErrWidth      = errors.New("bits: width must be within 1..64")
	ErrOffset     = errors.New("bits: bit offset must be within 0..7")
	ErrValueRange = errors.New("bits: value out of range")
)

// Span returns the number of bytes touched by a width-bit field starting at
// bit offset ofs.
func Span(width, ofs int) int {
	return ((width + ofs - 1) / 8) + 1
}

// Validate checks a field shape without touching any memory.
func Validate(width, ofs int) error {
	if width < 1 || width > MaxWidth {
		return fmt.Errorf("%w: got %d", ErrWidth, width)
	}
	if ofs < 0 || ofs > 7 {
		return fmt.Errorf("%w: got %d", ErrOffset, ofs)
	}
	return nil
}

func check(buf *buffer.Buffer, pos, width, ofs int) error {
	if err := Validate(width, ofs); err != nil {
		return err
	}
	return buf.Check(pos, Span(width, ofs))
}

// Read extracts a width-bit unsigned value at byte pos, bit offset ofs.
func Read(buf *buffer.Buffer, pos, width, ofs int) (uint64, error) {
	if err := check(buf, pos, width, ofs); err != nil {
		return 0, err
	}
	return ReadBytes(buf.Bytes()[pos:], width, ofs), nil
}

// Write stores the low width bits of v at byte pos, bit offset ofs. Bits
// outside the field are preserved. v must fit in width bits.
func Write(buf *buffer.Buffer, pos, width, ofs int, v uint64) error {
	if err := check(buf, pos, width, ofs); err != nil {
		return err
	}
	if width < MaxWidth && v>>uint(width) != 0 {
		return fmt.Errorf("%w: %d does not fit in %d bits", ErrValueRange, v, width)
	}
	WriteBytes(buf.Bytes()[pos:], width, ofs, v)
	return nil
}

// ReadBytes is the unchecked form of Read over a plain slice. The caller
// guarantees a valid shape and at least Span(width, ofs) bytes in b.
func ReadBytes(b []byte, width, ofs int) uint64 {
	if width == 8 && ofs == 0 {
		return uint64(b[0])
	}
	span := Span(width, ofs)
	if span > 8 {
		// 9-byte window: the head byte contributes its low 8-ofs bits, the
		// following 8 bytes hold the remaining rest bits left aligned.
		rest := width + ofs - 8
		head := uint64(b[0]) & uint64(0xFF>>uint(ofs))
		return head<<uint(rest) | ReadBytes(b[1:], rest, 0)
	}
	var raw uint64
	for i := 0; i < span; i++ {
		raw = raw<<8 | uint64(b[i])
	}
	raw <<= uint(64 - span*8 + ofs)
	return raw >> uint(64-width)
}

// WriteBytes is the unchecked form of Write over a plain slice.
func WriteBytes(b []byte, width, ofs int, v uint64) {
	if width == 8 && ofs == 0 {
		b[0] = byte(v)
		return
	}
	span := Span(width, ofs)
	if span > 8 {
		rest := width + ofs - 8
		keep := byte(0xFF) << uint(8-ofs)
		b[0] = b[0]&keep | byte(v>>uint(rest))
		WriteBytes(b[1:], rest, 0, v&(allOnes>>uint(64-rest)))
		return
	}
	abit := span * 8
	var existing uint64
	for i := 0; i < span; i++ {
		existing = existing<<8 | uint64(b[i])
	}
	mask := (allOnes << uint(64-width)) >> uint(64-abit+ofs)
	raw := (v<<uint(abit-ofs-width))&mask | existing&^mask
	for i := span - 1; i >= 0; i-- {
		b[i] = byte(raw)
		raw >>= 8
	}
}

// Mask returns the lowest width bits set.
func Mask(width int) uint64 {
	if width >= MaxWidth {
		return allOnes
	}
	return (uint64(1) << uint(width)) - 1
}

// SignExtend interprets the low width bits of v as a two's-complement number.
func SignExtend(v uint64, width int) int64 {
	if width >= MaxWidth {
		return int64(v)
	}
	v &= Mask(width)
	msk := uint64(1) << uint(width-1)
	return int64((v ^ msk) - msk)
}

// Truncate returns the two's-complement bit pattern of v in width bits.
// It fails if v is outside [-2^(width-1), 2^(width-1)).
func Truncate(v int64, width int) (uint64, error) {
	if width < MaxWidth {
		lim := int64(1) << uint(width-1)
		if v < -lim || v >= lim {
			return 0, fmt.Errorf("%w: %d does not fit in %d signed bits", ErrValueRange, v, width)
		}
	}
	return uint64(v) & Mask(width), nil
}

// Reverse reverses b in place and returns it.
func Reverse(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
