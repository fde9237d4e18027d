// Package rc4 implements the RC4 stream cipher over byte slices and buffer
// regions.
//
// RC4 is broken as a cipher. It is provided for talking to legacy protocols
// and must not be used to protect new data.
package rc4

import (
	"crypto/cipher"
	"errors"

	"github.com/rony4d/go-bitpack/utils/buffer"
)

// ErrEmptyKey is returned when a cipher is keyed with zero bytes.
var ErrEmptyKey = errors.New("rc4: empty key")

// Cipher is one RC4 keystream. Encrypting and decrypting are the same
// operation; independent messages need a fresh Init. A Cipher is not safe
// for concurrent use.
type Cipher struct {
	s    [256]byte
	i, j uint8
}

// New creates a cipher keyed with key.
func New(key []byte) (*Cipher, error) {
	c := &Cipher{}
	if err := c.Init(key); err != nil {
		return nil, err
	}
	return c, nil
}

// Init runs the key schedule, replacing the permutation and rewinding the
// keystream. Keys longer than 256 bytes are accepted; only the first 256
// bytes influence the schedule.
func (c *Cipher) Init(key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	for i := range c.s {
		c.s[i] = byte(i)
	}
	var j uint8
	for i := 0; i < 256; i++ {
		j += c.s[i] + key[i%len(key)]
		c.s[i], c.s[j] = c.s[j], c.s[i]
	}
	c.i, c.j = 0, 0
	return nil
}

// XORKeyStream implements cipher.Stream. dst and src may overlap entirely.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("rc4: output smaller than input")
	}
	i, j := c.i, c.j
	for k, v := range src {
		i++
		j += c.s[i]
		c.s[i], c.s[j] = c.s[j], c.s[i]
		dst[k] = v ^ c.s[c.s[i]+c.s[j]]
	}
	c.i, c.j = i, j
}

// Crypt returns in XORed with the next len(in) keystream bytes.
func (c *Cipher) Crypt(in []byte) []byte {
	out := make([]byte, len(in))
	c.XORKeyStream(out, in)
	return out
}

// CryptBuffer transforms n bytes of buf at pos in place.
func (c *Cipher) CryptBuffer(buf *buffer.Buffer, pos, n int) error {
	if err := buf.Check(pos, n); err != nil {
		return err
	}
	p := buf.Bytes()[pos : pos+n]
	c.XORKeyStream(p, p)
	return nil
}

var _ cipher.Stream = (*Cipher)(nil)
