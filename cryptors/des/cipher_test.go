package des

import (
	"crypto/cipher"
	"testing"

	"github.com/friendsofgo/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCipher(t *testing.T) {
	c, err := NewCipher([]byte{0x13, 0x34, 0x57, 0x79, 0x9B, 0xBC, 0xDF, 0xF1})
	require.NoError(t, err)
	assert.Equal(t, uint64(0x133457799BBCDFF1), c.Key())
	assert.Equal(t, BlockSize, c.BlockSize())

	for _, n := range []int{0, 7, 9, 16} {
		_, err = NewCipher(make([]byte, n))
		assert.True(t, errors.Is(err, ErrKeySize), "%d byte key: %v", n, err)
	}
}

func TestCipherBlock(t *testing.T) {
	var b cipher.Block = New(0x133457799BBCDFF1)
	src := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	dst := make([]byte, 8)

	b.Encrypt(dst, src)
	assert.Equal(t, []byte{0x85, 0xE8, 0x13, 0x54, 0x0F, 0x0A, 0xB4, 0x05}, dst)

	b.Decrypt(dst, dst)
	assert.Equal(t, src, dst)

	assert.Panics(t, func() { b.Encrypt(dst, src[:7]) })
	assert.Panics(t, func() { b.Decrypt(dst[:7], src) })
}

func TestCipherCrypter(t *testing.T) {
	c := New(0x0E329232EA6D0D73)
	var blk [BlockSize]byte
	PutBlock(&blk, 0x8787878787878787)

	c.Apply_F(&blk)
	assert.Equal(t, uint64(0), Block(&blk))
	c.Apply_G(&blk)
	assert.Equal(t, uint64(0x8787878787878787), Block(&blk))
}

func TestBlocksFromBytes(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF, 0xFE, 0xDC, 0xBA, 0x98, 0x76, 0x54, 0x32, 0x10}
	blocks, err := BlocksFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0x0123456789ABCDEF, 0xFEDCBA9876543210}, blocks)
	assert.Equal(t, data, BytesFromBlocks(blocks))

	blocks, err = BlocksFromBytes(nil)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	_, err = BlocksFromBytes(data[:15])
	assert.True(t, errors.Is(err, ErrBlockLength), "got %v", err)
}
