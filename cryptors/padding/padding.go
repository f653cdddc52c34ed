// Package padding implements the PKCS#5 style padding used to frame a byte
// stream into whole cipher blocks.
package padding

import "github.com/friendsofgo/errors"

var ErrInvalidPadding = errors.New("padding: invalid padding")

// Pad appends N bytes of value N to data, where N = blockSize - len(data) %
// blockSize.  Data that already fills its last block gains a whole block of
// padding, so Unpad can always remove it.
func Pad(data []byte, blockSize int) []byte {
	if blockSize <= 0 || blockSize > 255 {
		panic("padding: block size out of range")
	}

	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+n)
	copy(padded, data)
	for i := 0; i < n; i++ {
		padded = append(padded, byte(n))
	}

	return padded
}

// Unpad removes the padding added by Pad.  The trailing N bytes must all hold
// N, with 1 <= N <= blockSize.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.Wrapf(ErrInvalidPadding, "length %d is not a positive multiple of %d", len(data), blockSize)
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errors.Wrapf(ErrInvalidPadding, "pad length %d", n)
	}

	for _, v := range data[len(data)-n:] {
		if int(v) != n {
			return nil, errors.Wrapf(ErrInvalidPadding, "pad byte %d, want %d", v, n)
		}
	}

	return data[:len(data)-n], nil
}
