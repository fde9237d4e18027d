// Package crc implements table-driven CRC-8, CRC-16, CRC-16/CCITT,
// CRC-16/CCITT-Kermit and CRC-32 checksums with streaming accumulation.
//
// Results are returned as host integers. The ByteSwapped option swaps the
// bytes of every result of 16 or 32 bits, for protocols that store the
// checksum little-endian but compare it as a big-endian number.
package crc

import (
	"errors"
	"fmt"
	"hash"
	mbits "math/bits"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"

	"github.com/rony4d/go-bitpack/utils/buffer"
)

// Algorithm selects the CRC variant.
type Algorithm uint8

const (
	// CRC8 uses polynomial 0xD5 with a final XOR of 0xFF.
	CRC8 Algorithm = iota + 1
	// CRC16 is CRC-16/ARC: reflected 0x8005, init 0.
	CRC16
	// CCITT is CRC-16/XMODEM: polynomial 0x1021 MSB-first, init 0.
	CCITT
	// CCITTKermit is CRC-16/KERMIT: reflected 0x1021, init 0.
	CCITTKermit
	// CRC32 is the IEEE 802.3 checksum.
	CRC32
)

// ErrUnknownAlgorithm is returned for algorithm values or names outside the list above.
var ErrUnknownAlgorithm = errors.New("crc: unknown algorithm")

var names = map[Algorithm]string{
	CRC8:        "crc8",
	CRC16:       "crc16",
	CCITT:       "ccitt",
	CCITTKermit: "ccitt-kermit",
	CRC32:       "crc32",
}

func (a Algorithm) String() string {
	if n, ok := names[a]; ok {
		return n
	}
	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

// ParseAlgorithm resolves names such as "crc32" or "CCITT-Kermit".
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range names {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{CRC8, CRC16, CCITT, CCITTKermit, CRC32}
}

// CRC is a running checksum. Each call to Calc, Update or Write extends it
// until Reset. A CRC is not safe for concurrent use.
type CRC struct {
	alg     Algorithm
	eng     engine
	swapped bool
}

// Option configures a CRC at construction.
type Option func(*CRC)

// ByteSwapped reverses the bytes of 16 and 32 bit results.
func ByteSwapped() Option {
	return func(c *CRC) {
		c.swapped = true
	}
}

// New builds the lookup table for alg.
func New(alg Algorithm, opts ...Option) (*CRC, error) {
	var eng engine
	switch alg {
	case CRC8:
		eng = newTable8(poly8)
	case CRC16:
		eng = newReflected16(poly16)
	case CCITT:
		eng = newMSBFirst16(polyCCITT)
	case CCITTKermit:
		eng = newReflected16(polyCCITTKermit)
	case CRC32:
		eng = newTable32(poly32)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(alg))
	}
	c := &CRC{alg: alg, eng: eng}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Algorithm returns the variant this CRC computes.
func (c *CRC) Algorithm() Algorithm { return c.alg }

// Calc folds length bytes of buf starting at 0-based pos into the checksum
// and returns the result so far.
func (c *CRC) Calc(buf *buffer.Buffer, pos, length int) (uint32, error) {
	if err := buf.Check(pos, length); err != nil {
		return 0, err
	}
	c.eng.update(buf.Bytes()[pos : pos+length])
	return c.Sum32(), nil
}

// Update folds p into the checksum and returns the result so far.
func (c *CRC) Update(p []byte) uint32 {
	c.eng.update(p)
	return c.Sum32()
}

// Sum32 returns the checksum of everything written since the last Reset.
func (c *CRC) Sum32() uint32 {
	v := c.eng.value()
	if !c.swapped {
		return v
	}
	switch c.eng.size() {
	case 2:
		return uint32(mbits.ReverseBytes16(uint16(v)))
	case 4:
		return mbits.ReverseBytes32(v)
	default:
		return v
	}
}

// Reset restores the initial accumulator.
func (c *CRC) Reset() { c.eng.reset() }

// Write implements io.Writer. It never fails.
func (c *CRC) Write(p []byte) (int, error) {
	c.eng.update(p)
	return len(p), nil
}

// Sum appends the big-endian bytes of Sum32, Size bytes long, to b.
func (c *CRC) Sum(b []byte) []byte {
	out := bigendian.Uint32ToBytes(c.Sum32())
	return append(b, out[4-c.Size():]...)
}

// Size returns the checksum width in bytes.
func (c *CRC) Size() int { return c.eng.size() }

// BlockSize implements hash.Hash.
func (c *CRC) BlockSize() int { return 1 }

var _ hash.Hash32 = (*CRC)(nil)
