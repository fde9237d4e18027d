package bits

import "github.com/rony4d/go-bitpack/utils/buffer"

type (
	// Reader consumes consecutive bit fields from a region, MSB-first.
	// It tracks the absolute bit position of the next unread bit.
	Reader struct {
		buf *buffer.Buffer
		bit int
	}

	// Writer stores consecutive bit fields into a region, MSB-first,
	// preserving any bits it does not cover.
	Writer struct {
		buf *buffer.Buffer
		bit int
	}
)

// NewReader creates a bit reader positioned at byte pos of buf.
func NewReader(buf *buffer.Buffer, pos int) *Reader {
	return &Reader{buf: buf, bit: pos * 8}
}

// NewWriter creates a bit writer positioned at byte pos of buf.
func NewWriter(buf *buffer.Buffer, pos int) *Writer {
	return &Writer{buf: buf, bit: pos * 8}
}

// Read extracts the next width bits and advances the cursor.
// The cursor does not move on error.
func (r *Reader) Read(width int) (uint64, error) {
	v, err := Read(r.buf, r.bit/8, width, r.bit%8)
	if err != nil {
		return 0, err
	}
	r.bit += width
	return v, nil
}

// View returns the next width bits without advancing the cursor.
func (r *Reader) View(width int) (uint64, error) {
	return Read(r.buf, r.bit/8, width, r.bit%8)
}

// Skip advances the cursor by n bits.
func (r *Reader) Skip(n int) error {
	return skip(r.buf, &r.bit, n)
}

// Align moves the cursor up to the next byte boundary.
func (r *Reader) Align() {
	r.bit = align(r.bit)
}

// Position returns the byte index and bit offset of the cursor.
func (r *Reader) Position() (pos, ofs int) {
	return r.bit / 8, r.bit % 8
}

// NonReadBits returns how many bits remain after the cursor.
func (r *Reader) NonReadBits() int {
	return r.buf.Len()*8 - r.bit
}

// NonReadBytes returns how many bytes are at least partly unread.
func (r *Reader) NonReadBytes() int {
	return r.buf.Len() - r.bit/8
}

// Write stores the low width bits of v at the cursor and advances it.
func (w *Writer) Write(width int, v uint64) error {
	if err := Write(w.buf, w.bit/8, width, w.bit%8, v); err != nil {
		return err
	}
	w.bit += width
	return nil
}

// Skip advances the cursor by n bits, leaving them untouched.
func (w *Writer) Skip(n int) error {
	return skip(w.buf, &w.bit, n)
}

// Align moves the cursor up to the next byte boundary.
func (w *Writer) Align() {
	w.bit = align(w.bit)
}

// Position returns the byte index and bit offset of the cursor.
func (w *Writer) Position() (pos, ofs int) {
	return w.bit / 8, w.bit % 8
}

func align(bit int) int {
	return (bit + 7) &^ 7
}

func skip(buf *buffer.Buffer, bit *int, n int) error {
	if n < 0 || n > buf.Len()*8-*bit {
		return buffer.ErrRange
	}
	*bit += n
	return nil
}
