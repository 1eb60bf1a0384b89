/*
Copyright © 2020 Mars Galactic <EMAIL ADDRESS>

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
	"time"

	"github.com/spf13/cobra"
	"github.com/xoviat/jlckicad/lib"
)

var (
	historyLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent lookups.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := lib.NewDefaultLibrary(config)
		if err != nil {
			return fmt.Errorf("failed to open or create default library: %w", err)
		}
		defer library.Close()

		entries, err := library.History(historyLimit)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", entry.Time.Local().Format(time.DateTime), entry.Code)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries, 0 for all")
}
