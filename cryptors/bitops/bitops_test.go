package bitops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitNumbering(t *testing.T) {
	// Bit 1 of a 64-bit field is the MSB of byte 0.
	assert.Equal(t, uint64(0x8000000000000000), SetBit(0, 64, 1))
	assert.Equal(t, uint64(1), SetBit(0, 64, 64))
	// Bit 1 of a 28-bit field is bit 27 of the integer.
	assert.Equal(t, uint64(1<<27), SetBit(0, 28, 1))
	assert.True(t, GetBit(0x0123456789ABCDEF, 64, 8))
	assert.False(t, GetBit(0x0123456789ABCDEF, 64, 1))
}

func TestSetClrGet(t *testing.T) {
	var v uint64
	for bit := uint(1); bit <= 48; bit += 3 {
		v = SetBit(v, 48, bit)
		assert.True(t, GetBit(v, 48, bit))
		v = ClrBit(v, 48, bit)
		assert.False(t, GetBit(v, 48, bit))
	}
	assert.Zero(t, v)
}

func TestMask(t *testing.T) {
	assert.Equal(t, uint64(0xFFFFFFF), Mask(28))
	assert.Equal(t, uint64(0xFFFFFFFFFFFF), Mask(48))
	assert.Equal(t, ^uint64(0), Mask(64))
}
