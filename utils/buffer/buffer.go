package buffer

// buffer.go provides the bounded byte region every codec in this module works on.
//
// A Buffer is either an owned block of bytes or a segment: a window into
// another Buffer that shares its backing storage. Writes through a segment are
// visible in the parent and vice versa. Segments hold a reference to the
// parent's slice, so the parent's memory stays alive for as long as any
// segment does.
//
// Positions handed to Read/Write/ByteAt are 0-based. Segment start positions
// are 1-based, matching the way protocol documents number octets.

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrRange is returned when an access would touch bytes outside the region.
var ErrRange = errors.New("buffer: out of range")

// Buffer is a fixed-size byte region. Its length never changes after creation.
type Buffer struct {
	data []byte

	// parent is nil for owned buffers.
	parent *Buffer
	// offset is the 0-based position of data[0] inside parent.
	offset int
}

// New allocates a zero-filled region of size bytes.
func New(size int) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrRange, size)
	}
	return &Buffer{data: make([]byte, size)}, nil
}

// FromBytes creates an owned region holding a copy of b.
func FromBytes(b []byte) *Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffer{data: data}
}

// FromString creates an owned region holding the bytes of s.
func FromString(s string) *Buffer {
	return &Buffer{data: []byte(s)}
}

// Segment returns a view of length bytes starting at the 1-based position start.
//
// The segment shares storage with b. It fails with ErrRange if start < 1 or
// if start+length-1 lies past the end of b. A zero-length segment at
// Len()+1 is allowed.
func (b *Buffer) Segment(start, length int) (*Buffer, error) {
	if start < 1 || length < 0 || start+length-1 > len(b.data) {
		return nil, fmt.Errorf("%w: segment start %d length %d of %d bytes", ErrRange, start, length, len(b.data))
	}
	from := start - 1
	to := from + length
	return &Buffer{
		// cap is clamped so an append on Bytes() can never spill into the parent
		data:   b.data[from:to:to],
		parent: b,
		offset: from,
	}, nil
}

// SegmentFrom returns a view from the 1-based position start to the end of b.
func (b *Buffer) SegmentFrom(start int) (*Buffer, error) {
	return b.Segment(start, len(b.data)-start+1)
}

// Parent returns the region a segment was cut from, or nil for owned buffers.
func (b *Buffer) Parent() *Buffer {
	return b.parent
}

// Offset returns the 0-based position of the segment inside its parent.
func (b *Buffer) Offset() int {
	return b.offset
}

// Len returns the region length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the live backing slice. Mutating it mutates the region.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Check reports whether n bytes starting at pos lie inside the region.
func (b *Buffer) Check(pos, n int) error {
	if pos < 0 || n < 0 || pos+n > len(b.data) {
		return fmt.Errorf("%w: %d bytes at %d of %d", ErrRange, n, pos, len(b.data))
	}
	return nil
}

// Read returns a copy of n bytes starting at pos.
func (b *Buffer) Read(pos, n int) ([]byte, error) {
	if err := b.Check(pos, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.data[pos:pos+n])
	return out, nil
}

// Write copies data into the region at pos.
func (b *Buffer) Write(pos int, data []byte) error {
	if err := b.Check(pos, len(data)); err != nil {
		return err
	}
	copy(b.data[pos:], data)
	return nil
}

// ByteAt returns the byte at pos.
func (b *Buffer) ByteAt(pos int) (byte, error) {
	if err := b.Check(pos, 1); err != nil {
		return 0, err
	}
	return b.data[pos], nil
}

// SetByteAt overwrites the byte at pos.
func (b *Buffer) SetByteAt(pos int, v byte) error {
	if err := b.Check(pos, 1); err != nil {
		return err
	}
	b.data[pos] = v
	return nil
}

// Clear zero-fills the region. A segment clears only its own window.
func (b *Buffer) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Equal reports whether both regions have the same length and content.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(b.data, other.data)
}

// Concat returns a new owned region holding b followed by other.
func (b *Buffer) Concat(other *Buffer) *Buffer {
	data := make([]byte, 0, len(b.data)+len(other.data))
	data = append(data, b.data...)
	data = append(data, other.data...)
	return &Buffer{data: data}
}

// Clone returns an owned copy of the region, detached from any parent.
func (b *Buffer) Clone() *Buffer {
	return FromBytes(b.data)
}

const hexDigits = "0123456789ABCDEF"

// HexString renders every byte as two uppercase hex digits, space separated.
func (b *Buffer) HexString() string {
	if len(b.data) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b.data)*3 - 1)
	for i, c := range b.data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0x0F])
	}
	return sb.String()
}

// BinString renders every byte as eight binary digits, MSB first, space separated.
func (b *Buffer) BinString() string {
	if len(b.data) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b.data)*9 - 1)
	for i, c := range b.data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for bit := 7; bit >= 0; bit-- {
			sb.WriteByte('0' + (c>>uint(bit))&1)
		}
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	kind := "Buffer"
	if b.parent != nil {
		kind = "Segment"
	}
	return fmt.Sprintf("%s[%d]{%s}", kind, len(b.data), b.HexString())
}
