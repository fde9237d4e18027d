package crc

import (
	"errors"
	"hash/crc32"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-bitpack/utils/buffer"
)

var check = []byte("123456789")

func TestKnownVectors(t *testing.T) {
	for _, tc := range []struct {
		alg     Algorithm
		want    uint32
		swapped uint32
		sum     []byte
	}{
		{CRC8, 0x43, 0x43, []byte{0x43}},
		{CRC16, 0xBB3D, 0x3DBB, []byte{0xBB, 0x3D}},
		{CCITT, 0x31C3, 0xC331, []byte{0x31, 0xC3}},
		{CCITTKermit, 0x2189, 0x8921, []byte{0x21, 0x89}},
		{CRC32, 0xCBF43926, 0x2639F4CB, []byte{0xCB, 0xF4, 0x39, 0x26}},
	} {
		t.Run(tc.alg.String(), func(t *testing.T) {
			c, err := New(tc.alg)
			require.NoError(t, err)
			got, err := c.Calc(buffer.FromBytes(check), 0, len(check))
			require.NoError(t, err)
			assert.Equalf(t, tc.want, got, "got %#x", got)
			assert.Equal(t, tc.sum, c.Sum(nil))
			assert.Equal(t, len(tc.sum), c.Size())
			assert.Equal(t, tc.alg, c.Algorithm())

			s, err := New(tc.alg, ByteSwapped())
			require.NoError(t, err)
			assert.Equalf(t, tc.swapped, s.Update(check), "swapped")
		})
	}
}

func TestStreaming(t *testing.T) {
	buf := buffer.FromBytes(check)
	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			whole, _ := New(alg)
			want := whole.Update(check)

			parts, _ := New(alg)
			_, err := parts.Calc(buf, 0, 4)
			require.NoError(t, err)
			got, err := parts.Calc(buf, 4, 5)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			// Reset reproduces a fresh state
			parts.Reset()
			got, _ = parts.Calc(buf, 0, len(check))
			assert.Equal(t, want, got)

			// without Reset the checksum keeps extending
			again, _ := parts.Calc(buf, 0, len(check))
			assert.NotEqual(t, want, again)

			fresh, _ := New(alg)
			n, err := fresh.Write(check)
			require.NoError(t, err)
			require.Equal(t, len(check), n)
			assert.Equal(t, want, fresh.Sum32())
		})
	}
}

func TestCRC32_MatchesStdlib(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	c, _ := New(CRC32)
	for i := 0; i < 100; i++ {
		data := make([]byte, r.Intn(300))
		r.Read(data)
		c.Reset()
		assert.Equal(t, crc32.ChecksumIEEE(data), c.Update(data))
	}
}

func TestCalc_Range(t *testing.T) {
	c, _ := New(CRC16)
	buf := buffer.FromBytes(check)

	_, err := c.Calc(buf, 5, 5)
	assert.True(t, errors.Is(err, buffer.ErrRange))
	_, err = c.Calc(buf, -1, 2)
	assert.True(t, errors.Is(err, buffer.ErrRange))

	// the failed calls must not have touched the accumulator
	assert.Equal(t, uint32(0), c.Sum32())

	seg, _ := buf.Segment(5, 5)
	got, err := c.Calc(seg, 0, seg.Len())
	require.NoError(t, err)
	other, _ := New(CRC16)
	assert.Equal(t, other.Update([]byte("56789")), got)
}

func TestAlgorithmNames(t *testing.T) {
	for _, alg := range Algorithms() {
		parsed, err := ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, parsed)
	}
	a, err := ParseAlgorithm(" CCITT-Kermit ")
	require.NoError(t, err)
	assert.Equal(t, CCITTKermit, a)

	_, err = ParseAlgorithm("md5")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	_, err = New(Algorithm(0))
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	assert.Equal(t, "Algorithm(9)", Algorithm(9).String())
}

func BenchmarkCRC(b *testing.B) {
	data := make([]byte, 4096)
	for _, alg := range Algorithms() {
		b.Run(alg.String(), func(b *testing.B) {
			c, _ := New(alg)
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.Update(data)
			}
		})
	}
}
