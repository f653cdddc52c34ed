/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/bgallie/des/cryptors"
	"github.com/bgallie/des/cryptors/des"
	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
)

var (
	errBadHeader = errors.New("not a DES encrypted file")
	errApiLevel  = errors.New("API level mismatch")
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [flags]",
	Short: "Decrypt a DES encrypted file.",
	Long:  `Decrypt a file encrypted by the encrypt command.  The encoding and compression are read from the file.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt()
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}

func decrypt() {
	key, err := initKey()
	cobra.CheckErr(err)
	fin := getInputFile()
	defer fin.Close()

	hdr, aRdr, err := readHeader(bufio.NewReader(fin))
	cobra.CheckErr(err)
	logger.Debug().Int("apiLevel", hdr.apiLevel).Str("fileName", hdr.fileName).
		Str("armor", hdr.armor).Str("compression", hdr.compression).Msg("read header")

	// Without an explicit output file, strip the suffix from the input file
	// name or fall back on the name recorded when the file was encrypted.
	defaultName := ""
	if strings.HasSuffix(inputFileName, desFileSuffix) {
		defaultName = strings.TrimSuffix(inputFileName, desFileSuffix)
	} else if inputFileName != "-" && len(hdr.fileName) > 0 {
		defaultName = hdr.fileName
	}
	fout := getOutputFile(defaultName)
	defer fout.Close()

	cnt, err := decryptStream(aRdr, fout, des.New(key), hdr)
	checkError(err)
	logger.Info().Uint64("blocks", cnt).Msg("decrypted")
}

// readHeader reads the header of an encrypted file and returns it together
// with a reader for the binary ciphertext that follows.
func readHeader(bRdr *bufio.Reader) (header, io.Reader, error) {
	var hdr header
	b, err := bRdr.Peek(5)
	if err != nil {
		return hdr, nil, errors.Wrap(errBadHeader, "file too short")
	}

	if string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		if blck.Type != pemType {
			pRdr.Close()
			return hdr, nil, errors.Wrapf(errBadHeader, "PEM type %q", blck.Type)
		}
		hdr.armor = armorPem
		fal, exists := blck.Headers["ApiLevel"]
		if !exists {
			fal = "-1"
		}
		hdr.apiLevel, _ = strconv.Atoi(fal)
		hdr.fileName = baseName(blck.Headers["FileName"])
		hdr.compression = compressNone
		if cmpr, ok := blck.Headers["Compression"]; ok {
			hdr.compression = cmpr
		}
		if err = hdr.check(); err != nil {
			pRdr.Close()
			return hdr, nil, err
		}
		return hdr, pRdr, nil
	}

	line, err := bRdr.ReadString('\n')
	if err != nil {
		return hdr, nil, errors.Wrap(errBadHeader, "missing header line")
	}
	fields := strings.Split(strings.TrimSuffix(line, "\n"), "|")
	if len(fields) != 5 || fields[0] != "+DES" {
		return hdr, nil, errors.Wrapf(errBadHeader, "header %q", strings.TrimSpace(line))
	}
	if hdr.apiLevel, err = strconv.Atoi(fields[1]); err != nil {
		hdr.apiLevel = -1
	}
	hdr.fileName = baseName(fields[2])
	hdr.armor = fields[3]
	hdr.compression = fields[4]
	if err = hdr.check(); err != nil {
		return hdr, nil, err
	}

	switch hdr.armor {
	case armorASCII85:
		return hdr, ascii85.FromASCII85(lines.CombineLines(bRdr)), nil
	case armorBinary:
		return hdr, bRdr, nil
	}
	return hdr, nil, errors.Wrapf(errBadHeader, "unknown encoding %q", hdr.armor)
}

func (hdr header) check() error {
	if hdr.apiLevel != desApiLevel {
		return errors.Wrapf(errApiLevel, "file API level %d, des API level %d", hdr.apiLevel, desApiLevel)
	}
	return checkCompression(hdr.compression)
}

// decryptStream decrypts the binary ciphertext read from aRdr to fout using
// c.  It returns the number of blocks decrypted.
func decryptStream(aRdr io.Reader, fout io.Writer, c cryptors.Crypter, hdr header) (uint64, error) {
	if err := checkCompression(hdr.compression); err != nil {
		return 0, err
	}

	var cntr cryptors.Counter
	leftMost, rightMost := cryptors.CreateDecryptMachine(c, &cntr)
	decRdr := cryptors.DecryptHelper(aRdr, leftMost, rightMost)
	flateRdr, err := decompressor(hdr.compression, decRdr)
	if err != nil {
		decRdr.CloseWithError(err)
		return 0, err
	}

	_, err = io.Copy(fout, flateRdr)
	return cntr.Count(), err
}
