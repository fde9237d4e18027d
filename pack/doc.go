// Package pack describes binary records field by field and converts between
// Go values and their packed representation inside a buffer.Buffer.
//
// # Fields
//
// A Field is an immutable descriptor: a Kind, a width, a bit offset for bit
// fields and a byte order for multi-byte numbers. Integers are 1..8 bytes,
// bit fields 1..64 bits. Bit numbering inside a byte is MSB-first.
//
//	f, _ := pack.NewUint(2, pack.LittleEndian)
//	_ = f.Encode(buf, 0, 0x0102) // buf bytes: 02 01
//
// # Formats
//
// Compile turns a format string into a Format, an ordered list of fields
// pinned to bit positions:
//
//	f, _ := pack.Compile("<I2 R3 R5 c4")
//	values, _ := f.Decode(buf, 0) // uint64, uint64, uint64, []byte
//
// Consecutive bit fields share bytes; integer, float and raw fields always
// start on a byte boundary.
//
// # Structs and arrays
//
// Array repeats a field, NewStruct names fields. Both follow the same layout
// rules as Compile.
package pack
