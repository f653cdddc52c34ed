// bitops project bitops.go
package bitops

// Bits in a field are numbered the way the DES standard numbers them: bit 1
// is the most significant bit of a width-bit field held in the low bits of a
// uint64, bit width is the least significant bit.

func SetBit(v uint64, width, bit uint) uint64 {
	return v | (1 << (width - bit))
}

func ClrBit(v uint64, width, bit uint) uint64 {
	return v &^ (1 << (width - bit))
}

func GetBit(v uint64, width, bit uint) bool {
	return (v>>(width-bit))&1 != 0
}

// Mask returns a value with the low width bits set.
func Mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (1 << width) - 1
}
