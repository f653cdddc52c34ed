// permutator project permutator.go
package permutator

import (
	"bytes"
	"fmt"

	"github.com/bgallie/des/cryptors/bitops"
)

// Permutator is a fixed bit permutation (or selection) table.  Entry i of the
// table holds the 1-indexed position of the input bit that becomes output bit
// i+1.  A table may be shorter than its input (a selection, such as PC-1 or
// PC-2) or longer (an expansion, such as E).
type Permutator struct {
	width uint   // Width in bits of the input field.
	table []byte // 1-indexed source bit positions, one per output bit.
}

// New creates a permutator for a width-bit input.
func New(width uint, table []byte) *Permutator {
	var p Permutator
	p.Update(width, table)
	return &p
}

// Update the permutator with a new width and table.
func (p *Permutator) Update(width uint, table []byte) {
	for _, v := range table {
		if v == 0 || uint(v) > width {
			panic(fmt.Sprintf("permutator: source bit %d out of range for a %d bit input", v, width))
		}
	}

	p.width = width
	p.table = table
}

// Width returns the width in bits of the input field.
func (p *Permutator) Width() uint {
	return p.width
}

// OutputWidth returns the width in bits of the permuted field.
func (p *Permutator) OutputWidth() uint {
	return uint(len(p.table))
}

// Apply_F permutes blk according to the table.
func (p *Permutator) Apply_F(blk uint64) uint64 {
	return Permute(blk, p.width, p.table)
}

// Apply_G undoes Apply_F.  It is only meaningful for a bijective table, one
// where every input bit appears exactly once.
func (p *Permutator) Apply_G(blk uint64) uint64 {
	var res uint64
	outWidth := uint(len(p.table))

	for i, v := range p.table {
		if bitops.GetBit(blk, outWidth, uint(i+1)) {
			res = bitops.SetBit(res, p.width, uint(v))
		}
	}

	return res
}

// Permute returns the len(table) bit value whose bit i+1 is bit table[i] of
// the width bit value in.
func Permute(in uint64, width uint, table []byte) uint64 {
	var res uint64
	outWidth := uint(len(table))

	for i, v := range table {
		if bitops.GetBit(in, width, uint(v)) {
			res = bitops.SetBit(res, outWidth, uint(i+1))
		}
	}

	return res
}

func (p *Permutator) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("permutator.New(%d, []byte{\n", p.width))

	for i := 0; i < len(p.table); i += 8 {
		end := i + 8
		if end > len(p.table) {
			end = len(p.table)
		}

		output.WriteString("\t")
		for _, k := range p.table[i:end] {
			output.WriteString(fmt.Sprintf("%d, ", k))
		}
		output.WriteString("\n")
	}

	output.WriteString("})")
	return output.String()
}
