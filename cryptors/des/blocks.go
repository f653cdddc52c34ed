package des

import (
	"encoding/binary"

	"github.com/friendsofgo/errors"
)

var ErrBlockLength = errors.New("des: data is not a whole number of blocks")

// Block returns the 64 bit block held in b, byte 0 being the most
// significant.
func Block(b *[BlockSize]byte) uint64 {
	return binary.BigEndian.Uint64(b[:])
}

// PutBlock stores blk in b, most significant byte first.
func PutBlock(b *[BlockSize]byte, blk uint64) {
	binary.BigEndian.PutUint64(b[:], blk)
}

// BlocksFromBytes splits data into 64 bit blocks.
func BlocksFromBytes(data []byte) ([]uint64, error) {
	if len(data)%BlockSize != 0 {
		return nil, errors.Wrapf(ErrBlockLength, "%d bytes", len(data))
	}

	blocks := make([]uint64, 0, len(data)/BlockSize)
	for i := 0; i < len(data); i += BlockSize {
		blocks = append(blocks, binary.BigEndian.Uint64(data[i:]))
	}

	return blocks, nil
}

// BytesFromBlocks is the inverse of BlocksFromBytes.
func BytesFromBlocks(blocks []uint64) []byte {
	data := make([]byte, len(blocks)*BlockSize)
	for i, blk := range blocks {
		binary.BigEndian.PutUint64(data[i*BlockSize:], blk)
	}

	return data
}
