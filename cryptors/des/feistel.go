// Package des implements the Data Encryption Standard block cipher: the
// key schedule, the round function and the 16 round Feistel network over
// 64 bit blocks held in a uint64.
package des

// direction selects the order in which the round keys are used.
type direction int

const (
	forward direction = iota
	reverse
)

// feistel is the DES round function f(R, K).
func feistel(rhs uint32, key uint64) uint32 {
	er := expansion.Apply_F(uint64(rhs)) ^ key

	// Chunk i of E(R) ^ K feeds S-box i, and S1 lands in the top nibble.
	var sOut uint32
	for i := 0; i < 8; i++ {
		chunk := (er >> (42 - 6*i)) & sBitMask
		row := (chunk>>4)&0b10 | chunk&0b1
		col := (chunk >> 1) & 0xf
		sOut |= uint32(sBoxes[i][row][col]) << (28 - 4*i)
	}

	return uint32(pPermutation.Apply_F(uint64(sOut)))
}

// transform runs block through the 16 round Feistel network.  Enciphering
// and deciphering differ only in the order the round keys are used.
func transform(block uint64, keys *[Rounds]uint64, dir direction) uint64 {
	block = initialPermutation.Apply_F(block)
	lhs, rhs := uint32(block>>32), uint32(block)

	for i := 0; i < Rounds; i++ {
		k := keys[i]
		if dir == reverse {
			k = keys[Rounds-1-i]
		}

		lhs, rhs = rhs, lhs^feistel(rhs, k)
	}

	// The halves are not swapped after the last round.
	return finalPermutation.Apply_F(uint64(rhs)<<32 | uint64(lhs))
}

// Encipher enciphers the 64 bit plainBlock with the 64 bit secret key.
func Encipher(plainBlock, secret uint64) uint64 {
	keys := RoundKeys(secret)
	return transform(plainBlock, &keys, forward)
}

// Decipher deciphers the 64 bit cipherBlock with the 64 bit secret key.
func Decipher(cipherBlock, secret uint64) uint64 {
	keys := RoundKeys(secret)
	return transform(cipherBlock, &keys, reverse)
}
