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
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/bgallie/des/cryptors/des"
	"github.com/bgallie/des/cryptors/padding"
	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
)

var useText bool

// encipherCmd represents the encipher command
var encipherCmd = &cobra.Command{
	Use:   "encipher [flags] DATA...",
	Short: "Encipher 64 bit blocks",
	Long: `Encipher DATA, given as hex digits making up whole 64 bit blocks, and print
the ciphertext one block per line.  With --text, DATA is a string that is
padded to a whole number of blocks first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transformBlocks(cmd.OutOrStdout(), args, true)
	},
}

// decipherCmd represents the decipher command
var decipherCmd = &cobra.Command{
	Use:   "decipher [flags] DATA...",
	Short: "Decipher 64 bit blocks",
	Long: `Decipher DATA, given as hex digits making up whole 64 bit blocks, and print
the plaintext one block per line.  With --text, the padding is removed and
the plaintext is printed as a string.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transformBlocks(cmd.OutOrStdout(), args, false)
	},
}

func init() {
	rootCmd.AddCommand(encipherCmd)
	rootCmd.AddCommand(decipherCmd)
	encipherCmd.Flags().BoolVarP(&useText, "text", "t", false, "DATA is text to pad and encipher")
	decipherCmd.Flags().BoolVarP(&useText, "text", "t", false, "print the unpadded plaintext as text")
}

// transformBlocks enciphers or deciphers every block of DATA and prints the
// result.
func transformBlocks(w io.Writer, args []string, encipher bool) error {
	key, err := initKey()
	if err != nil {
		return err
	}
	fn := des.Decipher
	if encipher {
		fn = des.Encipher
	}

	var data []byte
	if useText && encipher {
		data = padding.Pad([]byte(strings.Join(args, " ")), des.BlockSize)
	} else {
		data, err = hex.DecodeString(strings.Join(strings.Fields(strings.Join(args, "")), ""))
		if err != nil {
			return errors.Wrap(err, "DATA is not hex")
		}
	}

	blocks, err := des.BlocksFromBytes(data)
	if err != nil {
		return err
	}
	for i, blk := range blocks {
		blocks[i] = fn(blk, key)
		logger.Debug().Int("block", i).Str("in", fmt.Sprintf("%016X", blk)).Str("out", fmt.Sprintf("%016X", blocks[i])).Msg("transformed")
	}

	if useText && !encipher {
		plainText, err := padding.Unpad(des.BytesFromBlocks(blocks), des.BlockSize)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(plainText))
		return err
	}

	for _, blk := range blocks {
		if _, err = fmt.Fprintf(w, "%016X\n", blk); err != nil {
			return err
		}
	}
	return nil
}
