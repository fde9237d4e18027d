package pack

import "sort"

// code is one entry of the format letter table.
type code struct {
	kind  Kind
	width int // default width when no digits follow
	max   int // upper limit for an explicit width, 0 if digits are not accepted
}

// maxRaw bounds explicit raw sizes so a typo cannot request gigabytes.
const maxRaw = 1 << 24

// codes maps format letters to descriptor shapes. `l`, `j` and `T` follow the
// LP64 data model.
var codes = map[byte]code{
	'b': {SignedInt, 1, 0},
	'B': {UnsignedInt, 1, 0},
	'h': {SignedInt, 2, 0},
	'H': {UnsignedInt, 2, 0},
	'l': {SignedInt, 8, 0},
	'L': {UnsignedInt, 8, 0},
	'j': {SignedInt, 8, 0},
	'J': {UnsignedInt, 8, 0},
	'T': {UnsignedInt, 8, 0},
	'i': {SignedInt, 4, 8},
	'I': {UnsignedInt, 4, 8},
	'f': {Float, 4, 0},
	'd': {Float, 8, 0},
	'n': {Float, 8, 0},
	'c': {Raw, 1, maxRaw},
	'r': {SignedBit, 1, 64},
	'R': {Bit, 1, 64},
}

// aliases maps descriptor names to format fragments.
var aliases = map[string]string{
	"Byte":       "B",
	"SignedByte": "b",
	"Short":      "h",
	"UShort":     "H",
	"Int":        "i",
	"UInt":       "I",
	"Long":       "l",
	"ULong":      "L",
	"Float":      "f",
	"Double":     "d",
	"Bool":       "R1",
	"Nibble":     "R4",
	"Bit1":       "R1",
	"Bit2":       "R2",
	"Bit3":       "R3",
	"Bit4":       "R4",
	"Bit5":       "R5",
	"Bit6":       "R6",
	"Bit7":       "R7",
	"Bit8":       "R8",
}

// Lookup resolves a descriptor name such as "Short" or "Bit3". Byte order
// applies to multi-byte integers and floats. Bit fields start at offset 0.
func Lookup(name string, order ByteOrder) (Field, bool) {
	frag, ok := aliases[name]
	if !ok {
		return Field{}, false
	}
	c := codes[frag[0]]
	width := c.width
	if len(frag) > 1 {
		width = int(frag[1] - '0')
	}
	f, err := NewField(c.kind, width, 0, order)
	if err != nil {
		return Field{}, false
	}
	return f, true
}

// Aliases returns the known descriptor names in sorted order.
func Aliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
