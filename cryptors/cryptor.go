// cyptor
package cryptors

import (
	"io"

	"github.com/bgallie/des/cryptors/padding"
	"github.com/friendsofgo/errors"
)

const (
	BitsPerByte      = 8
	CypherBlockSize  = 64
	CypherBlockBytes = CypherBlockSize / BitsPerByte
)

var ErrTruncated = errors.New("cryptors: ciphertext is not a whole number of blocks")

// CypherBlock is the data processed by the crypters.  It consists of the
// length in bytes to process and the data to process.  A block with a length
// of zero or less shuts down the machine it is sent to.
type CypherBlock struct {
	Length      int8
	CypherBlock [CypherBlockBytes]byte
}

type Crypter interface {
	Apply_F(*[CypherBlockBytes]byte) *[CypherBlockBytes]byte
	Apply_G(*[CypherBlockBytes]byte) *[CypherBlockBytes]byte
}

// Counter is a Crypter that leaves the block alone and counts the blocks
// passing through it.
type Counter struct {
	count uint64
}

func (cntr *Counter) Count() uint64 {
	return cntr.count
}

func (cntr *Counter) Apply_F(blk *[CypherBlockBytes]byte) *[CypherBlockBytes]byte {
	cntr.count++
	return blk
}

func (cntr *Counter) Apply_G(blk *[CypherBlockBytes]byte) *[CypherBlockBytes]byte {
	cntr.count++
	return blk
}

func Encrypt(ecm Crypter, blk *[CypherBlockBytes]byte) *[CypherBlockBytes]byte {
	return ecm.Apply_F(blk)
}

func Decrypt(ecm Crypter, blk *[CypherBlockBytes]byte) *[CypherBlockBytes]byte {
	return ecm.Apply_G(blk)
}

func EncryptMachine(ecm Crypter, left chan CypherBlock) chan CypherBlock {
	right := make(chan CypherBlock)
	go func(ecm Crypter, left chan CypherBlock, right chan CypherBlock) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			ecm.Apply_F(&inp.CypherBlock)
			right <- inp
		}
	}(ecm, left, right)

	return right
}

func DecryptMachine(ecm Crypter, left chan CypherBlock) chan CypherBlock {
	right := make(chan CypherBlock)
	go func(ecm Crypter, left chan CypherBlock, right chan CypherBlock) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			ecm.Apply_G(&inp.CypherBlock)
			right <- inp
		}
	}(ecm, left, right)

	return right
}

func CreateEncryptMachine(ecms ...Crypter) (left chan CypherBlock, right chan CypherBlock) {
	if ecms != nil {
		idx := 0
		left = make(chan CypherBlock)
		right = EncryptMachine(ecms[idx], left)

		for idx++; idx < len(ecms); idx++ {
			right = EncryptMachine(ecms[idx], right)
		}

	} else {
		panic("you must give at least one encryption device!")
	}

	return
}

func CreateDecryptMachine(ecms ...Crypter) (left chan CypherBlock, right chan CypherBlock) {
	if ecms != nil {
		idx := len(ecms) - 1
		left = make(chan CypherBlock)
		right = DecryptMachine(ecms[idx], left)

		for idx--; idx >= 0; idx-- {
			right = DecryptMachine(ecms[idx], right)
		}
	} else {
		panic("you must give at least one decryption device!")
	}

	return
}

// apply pushes one full block through the machine and returns the result.
func apply(left chan CypherBlock, right chan CypherBlock, data []byte) [CypherBlockBytes]byte {
	blk := *new(CypherBlock)
	blk.Length = CypherBlockBytes
	_ = copy(blk.CypherBlock[:], data[:CypherBlockBytes])
	left <- blk
	blk = <-right
	return blk.CypherBlock
}

// shutdown the machine by processing a CypherBlock with zero value length
// field.
func shutdown(left chan CypherBlock, right chan CypherBlock) {
	var blk CypherBlock
	left <- blk
	<-right
}

// EncryptHelper reads the plaintext from rdr, pads it to a whole number of
// blocks and runs it through the encryption machine.  The ciphertext can be
// read using the returned PipeReader.  The machine is shut down once the
// plaintext is exhausted.
func EncryptHelper(rdr io.Reader, left chan CypherBlock, right chan CypherBlock) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()

	go func() {
		defer shutdown(left, right)
		plainText := make([]byte, 0)
		b := make([]byte, 2048)

		for {
			cnt, err := rdr.Read(b)
			plainText = append(plainText, b[:cnt]...)

			for len(plainText) >= CypherBlockBytes {
				blk := apply(left, right, plainText)
				if _, err1 := rWrtr.Write(blk[:]); err1 != nil {
					rWrtr.CloseWithError(err1)
					return
				}
				plainText = plainText[CypherBlockBytes:]
			}

			if err == io.EOF {
				break
			}
			if err != nil {
				rWrtr.CloseWithError(err)
				return
			}
		}

		// What is left is less than a block, so padding yields exactly one.
		blk := apply(left, right, padding.Pad(plainText, CypherBlockBytes))
		if _, err := rWrtr.Write(blk[:]); err != nil {
			rWrtr.CloseWithError(err)
			return
		}
		rWrtr.Close()
	}()

	return rRdr
}

// DecryptHelper reads the ciphertext from rdr and runs it through the
// decryption machine.  The last block is held back until the ciphertext is
// exhausted so its padding can be removed.  The plaintext can be read using
// the returned PipeReader, which reports ErrTruncated or
// padding.ErrInvalidPadding for malformed ciphertext.
func DecryptHelper(rdr io.Reader, left chan CypherBlock, right chan CypherBlock) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()

	go func() {
		defer shutdown(left, right)
		var held []byte
		encText := make([]byte, 0)
		b := make([]byte, 1024)

		for {
			cnt, err := rdr.Read(b)
			encText = append(encText, b[:cnt]...)

			for len(encText) >= CypherBlockBytes {
				if held != nil {
					if _, err1 := rWrtr.Write(held); err1 != nil {
						rWrtr.CloseWithError(err1)
						return
					}
				}
				blk := apply(left, right, encText)
				held = blk[:]
				encText = encText[CypherBlockBytes:]
			}

			if err == io.EOF {
				break
			}
			if err != nil {
				rWrtr.CloseWithError(err)
				return
			}
		}

		if len(encText) != 0 {
			rWrtr.CloseWithError(errors.Wrapf(ErrTruncated, "%d trailing bytes", len(encText)))
			return
		}
		if held == nil {
			rWrtr.CloseWithError(errors.Wrap(ErrTruncated, "no ciphertext"))
			return
		}

		plainText, err := padding.Unpad(held, CypherBlockBytes)
		if err != nil {
			rWrtr.CloseWithError(err)
			return
		}
		if _, err = rWrtr.Write(plainText); err != nil {
			rWrtr.CloseWithError(err)
			return
		}
		rWrtr.Close()
	}()

	return rRdr
}
