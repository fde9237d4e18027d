package crc

// Generator polynomials, in the bit order their tables are built with.
// poly16, polyCCITTKermit and poly32 are the reflected forms of 0x8005,
// 0x1021 and 0x04C11DB7.
const (
	poly8           = 0xD5
	poly16          = 0xA001
	polyCCITT       = 0x1021
	polyCCITTKermit = 0x8408
	poly32          = 0xEDB88320
)

// engine is the per-width table and accumulator. Exactly one implementation
// is chosen when a CRC is created and it never changes afterwards.
type engine interface {
	update(p []byte)
	value() uint32
	reset()
	size() int
}

// table8 processes bytes MSB-first and complements the result.
type table8 struct {
	t   [256]uint8
	acc uint8
}

func newTable8(poly uint8) *table8 {
	e := &table8{}
	for i := 0; i < 256; i++ {
		c := uint8(i)
		for j := 0; j < 8; j++ {
			if c&0x80 != 0 {
				c = c<<1 ^ poly
			} else {
				c <<= 1
			}
		}
		e.t[i] = c
	}
	return e
}

func (e *table8) update(p []byte) {
	acc := e.acc
	for _, b := range p {
		acc = e.t[acc^b]
	}
	e.acc = acc
}

func (e *table8) value() uint32 { return uint32(e.acc ^ 0xFF) }
func (e *table8) reset()        { e.acc = 0 }
func (e *table8) size() int     { return 1 }

// table16 covers both 16-bit table shapes: reflected (LSB-first, right
// shifting) and MSB-first (left shifting). The two are not interchangeable.
type table16 struct {
	t        [256]uint16
	acc      uint16
	msbFirst bool
}

func newReflected16(poly uint16) *table16 {
	e := &table16{}
	for i := 0; i < 256; i++ {
		c := uint16(i)
		for j := 0; j < 8; j++ {
			if c&1 != 0 {
				c = c>>1 ^ poly
			} else {
				c >>= 1
			}
		}
		e.t[i] = c
	}
	return e
}

func newMSBFirst16(poly uint16) *table16 {
	e := &table16{msbFirst: true}
	for i := 0; i < 256; i++ {
		c := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if c&0x8000 != 0 {
				c = c<<1 ^ poly
			} else {
				c <<= 1
			}
		}
		e.t[i] = c
	}
	return e
}

func (e *table16) update(p []byte) {
	acc := e.acc
	if e.msbFirst {
		for _, b := range p {
			acc = acc<<8 ^ e.t[byte(acc>>8)^b]
		}
	} else {
		for _, b := range p {
			acc = acc>>8 ^ e.t[byte(acc)^b]
		}
	}
	e.acc = acc
}

func (e *table16) value() uint32 { return uint32(e.acc) }
func (e *table16) reset()        { e.acc = 0 }
func (e *table16) size() int     { return 2 }

// table32 is the reflected 32-bit engine with all-ones init and final complement.
type table32 struct {
	t   [256]uint32
	acc uint32
}

func newTable32(poly uint32) *table32 {
	e := &table32{acc: ^uint32(0)}
	for i := 0; i < 256; i++ {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 != 0 {
				c = c>>1 ^ poly
			} else {
				c >>= 1
			}
		}
		e.t[i] = c
	}
	return e
}

func (e *table32) update(p []byte) {
	acc := e.acc
	for _, b := range p {
		acc = acc>>8 ^ e.t[byte(acc)^b]
	}
	e.acc = acc
}

func (e *table32) value() uint32 { return ^e.acc }
func (e *table32) reset()        { e.acc = ^uint32(0) }
func (e *table32) size() int     { return 4 }
