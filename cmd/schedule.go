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

	"github.com/bgallie/des/cryptors/des"
	"github.com/spf13/cobra"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the round keys generated from the key",
	Long:  `Print the C0 and D0 halves selected by PC-1 and the 16 round keys generated from the key.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := initKey()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		c, d := des.PermutedChoice1(key)
		fmt.Fprintf(w, "C0  %07X\nD0  %07X\n", c, d)
		ks := des.NewKeySchedule(key)
		for k, ok := ks.Next(); ok; k, ok = ks.Next() {
			fmt.Fprintf(w, "K%-2d %012X\n", ks.Round(), k)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
