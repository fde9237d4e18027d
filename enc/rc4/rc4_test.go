package rc4

import (
	stdrc4 "crypto/rc4"
	"encoding/hex"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-bitpack/utils/buffer"
)

func TestKnownVectors(t *testing.T) {
	for _, tc := range []struct {
		key, plain, cipher string
	}{
		{"Key", "Plaintext", "BBF316E8D940AF0AD3"},
		{"Wiki", "pedia", "1021BF0420"},
		{"Secret", "Attack at dawn", "45A01F645FC35B383552544B9BF5"},
	} {
		t.Run(tc.key, func(t *testing.T) {
			c, err := New([]byte(tc.key))
			require.NoError(t, err)
			out := c.Crypt([]byte(tc.plain))
			assert.Equal(t, tc.cipher, strings.ToUpper(hex.EncodeToString(out)))

			// a re-keyed state recovers the plaintext
			require.NoError(t, c.Init([]byte(tc.key)))
			assert.Equal(t, tc.plain, string(c.Crypt(out)))
		})
	}
}

func TestKeystreamContinues(t *testing.T) {
	a, _ := New([]byte("Key"))
	b, _ := New([]byte("Key"))

	whole := a.Crypt([]byte("Plaintext"))
	first := b.Crypt([]byte("Plain"))
	rest := b.Crypt([]byte("text"))
	assert.Equal(t, whole, append(first, rest...))
}

func TestMatchesStdlib(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 20; i++ {
		key := make([]byte, 1+r.Intn(300))
		r.Read(key)
		if len(key) > 256 {
			key = key[:256]
		}
		data := make([]byte, r.Intn(1000))
		r.Read(data)

		ours, err := New(key)
		require.NoError(t, err)
		ref, err := stdrc4.NewCipher(key)
		require.NoError(t, err)

		want := make([]byte, len(data))
		ref.XORKeyStream(want, data)
		assert.Equal(t, want, ours.Crypt(data))
	}
}

func TestLongKey(t *testing.T) {
	key := make([]byte, 300)
	for i := range key {
		key[i] = byte(i)
	}
	long, err := New(key)
	require.NoError(t, err)
	short, _ := New(key[:256])
	assert.Equal(t, short.Crypt(make([]byte, 32)), long.Crypt(make([]byte, 32)))
}

func TestEmptyKey(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, ErrEmptyKey))

	c, _ := New([]byte("k"))
	assert.True(t, errors.Is(c.Init([]byte{}), ErrEmptyKey))
}

func TestCryptBuffer(t *testing.T) {
	require := require.New(t)

	buf := buffer.FromString("xxPlaintextxx")
	c, _ := New([]byte("Key"))
	require.NoError(c.CryptBuffer(buf, 2, 9))
	require.Equal("78 78 BB F3 16 E8 D9 40 AF 0A D3 78 78", buf.HexString())

	require.True(errors.Is(c.CryptBuffer(buf, 5, 9), buffer.ErrRange))

	require.NoError(c.Init([]byte("Key")))
	seg, _ := buf.Segment(3, 9)
	require.NoError(c.CryptBuffer(seg, 0, seg.Len()))
	require.Equal("xxPlaintextxx", string(buf.Bytes()))

	require.Panics(func() { c.XORKeyStream(make([]byte, 1), make([]byte, 2)) })
}
