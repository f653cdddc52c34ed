package des

import (
	"crypto/cipher"
	"encoding/binary"

	"github.com/bgallie/des/cryptors"
	"github.com/friendsofgo/errors"
)

var ErrKeySize = errors.New("des: key must be 8 bytes")

// Cipher is a DES instance bound to one secret key.  Every block it
// transforms gets a freshly generated key schedule.
type Cipher struct {
	key uint64
}

var (
	_ cryptors.Crypter = (*Cipher)(nil)
	_ cipher.Block     = (*Cipher)(nil)
)

func New(key uint64) *Cipher {
	return &Cipher{key: key}
}

// NewCipher creates a Cipher from an 8 byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, errors.Wrapf(ErrKeySize, "got %d bytes", len(key))
	}

	return New(binary.BigEndian.Uint64(key)), nil
}

func (c *Cipher) Key() uint64 {
	return c.key
}

// Apply_F enciphers blk in place.
func (c *Cipher) Apply_F(blk *[cryptors.CypherBlockBytes]byte) *[cryptors.CypherBlockBytes]byte {
	PutBlock(blk, Encipher(Block(blk), c.key))
	return blk
}

// Apply_G deciphers blk in place.
func (c *Cipher) Apply_G(blk *[cryptors.CypherBlockBytes]byte) *[cryptors.CypherBlockBytes]byte {
	PutBlock(blk, Decipher(Block(blk), c.key))
	return blk
}

func (c *Cipher) BlockSize() int {
	return BlockSize
}

func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("des: input not full block")
	}
	if len(dst) < BlockSize {
		panic("des: output not full block")
	}

	binary.BigEndian.PutUint64(dst, Encipher(binary.BigEndian.Uint64(src), c.key))
}

func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("des: input not full block")
	}
	if len(dst) < BlockSize {
		panic("des: output not full block")
	}

	binary.BigEndian.PutUint64(dst, Decipher(binary.BigEndian.Uint64(src), c.key))
}
