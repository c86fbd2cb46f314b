package lzstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitReaderMSBFirst(t *testing.T) {
	r := NewBitReader([]uint16{0xA000})

	var bits []uint16
	for i := 0; i < 4; i++ {
		b, err := r.ReadBit()
		require.NoError(t, err)
		bits = append(bits, b)
	}
	assert.Equal(t, []uint16{1, 0, 1, 0}, bits)
}

func TestBitReaderReadBitsLSBFirst(t *testing.T) {
	// 1100 0000 ...: the first bit read lands in bit 0
	r := NewBitReader([]uint16{0xC000})
	v, err := r.ReadBits(3)
	require.NoError(t, err)
	assert.Equal(t, 0b011, v)

	r = NewBitReader([]uint16{0x2000})
	v, err = r.ReadBits(3)
	require.NoError(t, err)
	assert.Equal(t, 0b100, v)
}

func TestBitReaderCrossesUnits(t *testing.T) {
	r := NewBitReader([]uint16{0x0001, 0x8000})

	v, err := r.ReadBits(15)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = r.ReadBits(2)
	require.NoError(t, err)
	assert.Equal(t, 0b11, v)
}

func TestBitReaderTruncated(t *testing.T) {
	r := NewBitReader([]uint16{0xFFFF})

	v, err := r.ReadBits(16)
	require.NoError(t, err)
	assert.Equal(t, 0xFFFF, v)
	assert.True(t, r.Exhausted())

	_, err = r.ReadBit()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestBitReaderEmpty(t *testing.T) {
	r := NewBitReader(nil)
	assert.True(t, r.Exhausted())

	_, err := r.ReadBits(1)
	assert.ErrorIs(t, err, ErrTruncated)
}
