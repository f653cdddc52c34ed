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
	"fmt"
	"io"
	"strconv"

	"github.com/bgallie/des/cryptors"
	"github.com/bgallie/des/cryptors/des"
	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	armorBinary  = "b"
	armorASCII85 = "a"
	armorPem     = "p"

	pemType = "DES Encrypted Message"
)

var (
	useASCII85 bool
	usePem     bool
)

// header describes how an encrypted file was written.
type header struct {
	apiLevel    int
	fileName    string
	armor       string
	compression string
}

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [flags]",
	Short: "Encrypt plaintext using DES",
	Long: `Encrypt plaintext using DES.  The plaintext is padded to a whole number of
64 bit blocks and each block is enciphered independently.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt()
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	encryptCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	encryptCmd.Flags().StringP("compress", "c", compressNone, "compress the plaintext before encryption: none, flate or zstd")
	encryptCmd.Flags().Lookup("compress").NoOptDefVal = compressFlate
	cobra.CheckErr(viper.BindPFlag("compression", encryptCmd.Flags().Lookup("compress")))
	viper.SetDefault("armor", "binary")
}

// armorFromFlags picks the output encoding.  The -a and -p flags take
// precedence over the 'armor' config entry.
func armorFromFlags() string {
	switch {
	case usePem:
		return armorPem
	case useASCII85:
		return armorASCII85
	}

	switch viper.GetString("armor") {
	case "pem":
		return armorPem
	case "ascii85":
		return armorASCII85
	}
	return armorBinary
}

func encrypt() {
	key, err := initKey()
	cobra.CheckErr(err)
	hdr := header{
		apiLevel:    desApiLevel,
		fileName:    baseName(inputFileName),
		armor:       armorFromFlags(),
		compression: viper.GetString("compression"),
	}
	cobra.CheckErr(checkCompression(hdr.compression))

	fin := getInputFile()
	defer fin.Close()
	defaultName := ""
	if hdr.fileName != "" {
		defaultName = inputFileName + desFileSuffix
	}
	fout := getOutputFile(defaultName)
	defer fout.Close()

	cnt, err := encryptStream(fin, fout, des.New(key), hdr)
	checkError(err)
	logger.Info().Uint64("blocks", cnt).Str("armor", hdr.armor).Str("compression", hdr.compression).Msg("encrypted")
}

// headerLine renders hdr for binary and ASCII85 output.
func (hdr header) headerLine() string {
	return fmt.Sprintf("+DES|%d|%s|%s|%s\n", hdr.apiLevel, hdr.fileName, hdr.armor, hdr.compression)
}

// encryptStream encrypts fin to fout using c, writing hdr in the form
// selected by hdr.armor.  It returns the number of blocks encrypted.
func encryptStream(fin io.Reader, fout io.Writer, c cryptors.Crypter, hdr header) (uint64, error) {
	if err := checkCompression(hdr.compression); err != nil {
		return 0, err
	}
	cmpRdr, err := compressor(hdr.compression, fin)
	if err != nil {
		return 0, err
	}

	var cntr cryptors.Counter
	leftMost, rightMost := cryptors.CreateEncryptMachine(c, &cntr)
	encIn := cryptors.EncryptHelper(cmpRdr, leftMost, rightMost)
	logger.Debug().Int("apiLevel", hdr.apiLevel).Str("fileName", hdr.fileName).Msg("writing header")

	switch hdr.armor {
	case armorPem:
		var blck pem.Block
		blck.Type = pemType
		blck.Headers = make(map[string]string)
		blck.Headers["ApiLevel"] = strconv.Itoa(hdr.apiLevel)
		if len(hdr.fileName) > 0 {
			blck.Headers["FileName"] = hdr.fileName
		}
		blck.Headers["Compression"] = hdr.compression
		_, err = io.Copy(fout, pem.ToPem(encIn, blck))
	case armorASCII85:
		if _, err = io.WriteString(fout, hdr.headerLine()); err != nil {
			encIn.CloseWithError(err)
			return 0, err
		}
		_, err = io.Copy(fout, lines.SplitToLines(ascii85.ToASCII85(encIn)))
	default:
		if _, err = io.WriteString(fout, hdr.headerLine()); err != nil {
			encIn.CloseWithError(err)
			return 0, err
		}
		_, err = io.Copy(fout, encIn)
	}

	return cntr.Count(), err
}
