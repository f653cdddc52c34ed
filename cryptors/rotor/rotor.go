// rotor
package rotor

import (
	"fmt"

	"github.com/bgallie/des/cryptors/bitops"
)

// Rotor is a bit register of a fixed size that is stepped by rotating it to
// the left.  Bits rotated out of the top of the register re-enter at the
// bottom.  The DES key schedule keeps its C and D halves in two 28 bit rotors.
type Rotor struct {
	size    uint
	current uint64
}

func New(size uint, value uint64) *Rotor {
	var r Rotor
	r.Update(size, value)
	return &r
}

func (r *Rotor) Update(size uint, value uint64) {
	if size == 0 || size > 64 {
		panic(fmt.Sprintf("rotor: invalid rotor size %d", size))
	}

	r.size = size
	r.current = value & bitops.Mask(size)
}

// Step rotates the rotor left by n bits.
func (r *Rotor) Step(n uint) {
	r.current = RotateLeft(r.current, r.size, n)
}

func (r *Rotor) Value() uint64 {
	return r.current
}

func (r *Rotor) Size() uint {
	return r.size
}

// RotateLeft rotates the low size bits of v left by n bits.  Bits of v above
// size are discarded.
func RotateLeft(v uint64, size, n uint) uint64 {
	mask := bitops.Mask(size)
	v &= mask
	n %= size
	if n == 0 {
		return v
	}

	return ((v << n) | (v >> (size - n))) & mask
}

func (r *Rotor) String() string {
	return fmt.Sprintf("rotor.New(%d, 0b%0*b)", r.size, int(r.size), r.current)
}
