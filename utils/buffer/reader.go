package buffer

import "io"

// Reader walks a region front to back. Unlike indexing the region directly it
// tracks its own cursor, which suits decoding back-to-back records.
//
// Reader is not safe for concurrent use.
type Reader struct {
	buf    *Buffer
	offset int
}

// Writer accumulates bytes and hands them out as a new region.
type Writer struct {
	buf []byte
}

// NewReader creates a Reader positioned at the start of b.
func NewReader(b *Buffer) *Reader {
	return &Reader{buf: b}
}

// NewWriter creates a Writer appending to bb.
// Usually called with `make([]byte, 0, capacity)`.
func NewWriter(bb []byte) *Writer {
	return &Writer{buf: bb}
}

// WriteByte appends a single byte. It never fails.
func (w *Writer) WriteByte(v byte) error {
	w.buf = append(w.buf, v)
	return nil
}

// Write appends p. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Buffer returns the accumulated bytes as an owned region.
func (w *Writer) Buffer() *Buffer {
	return FromBytes(w.buf)
}

// Read consumes n bytes and returns them as a segment of the underlying
// region, so writes through the result land in the source.
func (r *Reader) Read(n int) (*Buffer, error) {
	seg, err := r.buf.Segment(r.offset+1, n)
	if err != nil {
		return nil, err
	}
	r.offset += n
	return seg, nil
}

// ReadByte consumes a single byte. It returns io.EOF at the end of the region.
func (r *Reader) ReadByte() (byte, error) {
	if r.Empty() {
		return 0, io.EOF
	}
	c := r.buf.data[r.offset]
	r.offset++
	return c, nil
}

// Position returns the number of bytes consumed.
func (r *Reader) Position() int {
	return r.offset
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf.data) - r.offset
}

// Empty reports whether every byte has been consumed.
func (r *Reader) Empty() bool {
	return r.offset == len(r.buf.data)
}
