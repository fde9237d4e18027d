package pack

import (
	"fmt"
	"strings"

	"github.com/rony4d/go-bitpack/utils/buffer"
)

// slot is a field pinned to a bit position relative to the record start.
type slot struct {
	field Field
	bit   int
}

// layout places fields one after another on a running bit cursor. Bit
// fields pack contiguously from the cursor; every other kind first moves
// the cursor up to the next byte boundary.
type layout struct {
	slots  []slot
	cursor int
}

func (l *layout) add(f Field) {
	if f.kind.bitSized() {
		f = f.withOffset(l.cursor % 8)
	} else {
		l.cursor = (l.cursor + 7) &^ 7
	}
	l.slots = append(l.slots, slot{field: f, bit: l.cursor})
	l.cursor += f.BitSize()
}

// Format is a compiled, immutable sequence of fields. It is safe for
// concurrent use as long as the regions it works on are not shared.
type Format struct {
	source string
	slots  []slot
	bits   int
}

// Compile parses a format string into a Format.
//
// Recognised options:
//
//	< >      little / big endian for the following integers and floats
//	b B      signed / unsigned 1 byte
//	h H      signed / unsigned 2 bytes
//	l L j J  signed / unsigned 8 bytes
//	T        unsigned 8 bytes
//	i I      signed / unsigned integer, optional size 1..8 bytes, default 4
//	f d n    float of 4, 8 and 8 bytes
//	c        raw bytes, optional size, default 1
//	r R      signed / unsigned bit field, optional size 1..64, default 1
//	v        boolean bit, optional 1..8 picks the bit inside the current byte
//
// Whitespace is ignored. Any other character fails the whole compile.
func Compile(format string) (*Format, error) {
	var (
		l     layout
		order = BigEndian
	)
	for i := 0; i < len(format); {
		c := format[i]
		at := i
		i++
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '<':
			order = LittleEndian
			continue
		case '>':
			order = BigEndian
			continue
		case 'v':
			n, next, ok := number(format, i)
			i = next
			if ok {
				if n < 1 || n > 8 {
					return nil, fmt.Errorf("%w: size (%d) of %q at %d out of limits [1,8]", ErrInvalidFormat, n, c, at)
				}
				target := l.cursor&^7 + n - 1
				if target < l.cursor {
					return nil, fmt.Errorf("%w: bit %d of %q at %d is behind the cursor", ErrInvalidFormat, n, c, at)
				}
				l.cursor = target
			}
			f, _ := NewBool(0)
			l.add(f)
			continue
		}

		cd, ok := codes[c]
		if !ok {
			return nil, fmt.Errorf("%w: %q at %d", ErrInvalidFormat, c, at)
		}
		width := cd.width
		if cd.max > 0 {
			n, next, ok := number(format, i)
			i = next
			if ok {
				if n < 1 || n > cd.max {
					return nil, fmt.Errorf("%w: size (%d) of %q at %d out of limits [1,%d]", ErrInvalidFormat, n, c, at, cd.max)
				}
				width = n
			}
		}
		f, err := NewField(cd.kind, width, 0, order)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at %d: %v", ErrInvalidFormat, c, at, err)
		}
		l.add(f)
	}
	return &Format{source: format, slots: l.slots, bits: l.cursor}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(format string) *Format {
	f, err := Compile(format)
	if err != nil {
		panic(err)
	}
	return f
}

// number reads a decimal number starting at s[i]. Values beyond maxRaw are
// clamped to maxRaw+1 so they fail the limit check instead of overflowing.
func number(s string, i int) (n, next int, ok bool) {
	for next = i; next < len(s) && s[next] >= '0' && s[next] <= '9'; next++ {
		if n <= maxRaw {
			n = n*10 + int(s[next]-'0')
		}
	}
	if n > maxRaw {
		n = maxRaw + 1
	}
	return n, next, next > i
}

// Array lays out n copies of f back to back.
func Array(f Field, n int) (*Format, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: array of %d elements", ErrValueCount, n)
	}
	if f.kind == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(f.kind))
	}
	var l layout
	for i := 0; i < n; i++ {
		l.add(f)
	}
	return &Format{source: fmt.Sprintf("%s[%d]", f, n), slots: l.slots, bits: l.cursor}, nil
}

// Source returns the string the format was compiled from.
func (f *Format) Source() string { return f.source }

// Len returns the number of fields.
func (f *Format) Len() int { return len(f.slots) }

// Field returns the i-th field, with its bit offset as placed in the record.
func (f *Format) Field(i int) Field { return f.slots[i].field }

// Offset returns the bit position of the i-th field from the record start.
func (f *Format) Offset(i int) int { return f.slots[i].bit }

// Fields returns a copy of all fields.
func (f *Format) Fields() []Field {
	out := make([]Field, len(f.slots))
	for i, s := range f.slots {
		out[i] = s.field
	}
	return out
}

// BitSize returns the record length in bits.
func (f *Format) BitSize() int { return f.bits }

// Size returns the record length in whole bytes.
func (f *Format) Size() int { return (f.bits + 7) / 8 }

// Equal reports whether both formats describe the same record layout.
func (f *Format) Equal(other *Format) bool {
	if other == nil || len(f.slots) != len(other.slots) || f.bits != other.bits {
		return false
	}
	for i := range f.slots {
		if f.slots[i] != other.slots[i] {
			return false
		}
	}
	return true
}

// String lists the placed fields, e.g. "Int4B Bit3:0 Bit5:3".
func (f *Format) String() string {
	names := make([]string, len(f.slots))
	for i, s := range f.slots {
		names[i] = s.field.String()
	}
	return strings.Join(names, " ")
}

// Decode reads one record starting at byte pos.
func (f *Format) Decode(buf *buffer.Buffer, pos int) ([]interface{}, error) {
	if err := buf.Check(pos, f.Size()); err != nil {
		return nil, err
	}
	out := make([]interface{}, len(f.slots))
	for i, s := range f.slots {
		v, err := s.field.Decode(buf, pos+s.bit/8)
		if err != nil {
			return nil, withField(err, i, "")
		}
		out[i] = v
	}
	return out, nil
}

// Encode writes one record starting at byte pos. The record is assembled
// on a scratch copy, so a failing value leaves buf untouched. Bits not
// covered by any field keep their previous content.
func (f *Format) Encode(buf *buffer.Buffer, pos int, values ...interface{}) error {
	if len(values) != len(f.slots) {
		return fmt.Errorf("%w: format has %d fields, got %d values", ErrValueCount, len(f.slots), len(values))
	}
	window, err := buf.Read(pos, f.Size())
	if err != nil {
		return err
	}
	scratch := buffer.FromBytes(window)
	if err := f.encodeInto(scratch, values); err != nil {
		return err
	}
	return buf.Write(pos, scratch.Bytes())
}

func (f *Format) encodeInto(scratch *buffer.Buffer, values []interface{}) error {
	for i, s := range f.slots {
		if err := s.field.Encode(scratch, s.bit/8, values[i]); err != nil {
			return withField(err, i, "")
		}
	}
	return nil
}

// Marshal encodes values into a freshly allocated record.
func (f *Format) Marshal(values ...interface{}) ([]byte, error) {
	if len(values) != len(f.slots) {
		return nil, fmt.Errorf("%w: format has %d fields, got %d values", ErrValueCount, len(f.slots), len(values))
	}
	scratch, _ := buffer.New(f.Size())
	if err := f.encodeInto(scratch, values); err != nil {
		return nil, err
	}
	return scratch.Bytes(), nil
}

// Unmarshal decodes one record from the start of b.
func (f *Format) Unmarshal(b []byte) ([]interface{}, error) {
	return f.Decode(buffer.FromBytes(b), 0)
}

// Next decodes the record at the reader's position and advances past it.
func (f *Format) Next(r *buffer.Reader) ([]interface{}, error) {
	seg, err := r.Read(f.Size())
	if err != nil {
		return nil, err
	}
	return f.Decode(seg, 0)
}
