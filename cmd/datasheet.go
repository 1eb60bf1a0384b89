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

	"github.com/spf13/cobra"
	"github.com/xoviat/jlckicad/lib"
)

var (
	datasheetDir string
)

// datasheetCmd represents the datasheet command
var datasheetCmd = &cobra.Command{
	Use:   "datasheet [part-or-url]",
	Short: "Download the datasheet of a part.",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := lib.NewDefaultLibrary(config)
		if err != nil {
			return fmt.Errorf("failed to open or create default library: %w", err)
		}
		defer library.Close()

		client := lib.NewJLC(config)
		term := lastTerm(library, args)
		part, err := lookupAndSave(cmd.Context(), client, library, term)
		if err != nil {
			return printFailure(cmd.ErrOrStderr(), term, err)
		}

		dir := config.ResolvedDatasheetDir()
		if datasheetDir != "" {
			dir = datasheetDir
		}

		dst, err := client.DownloadDatasheet(cmd.Context(), part, dir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "datasheet saved to %s\n", dst)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasheetCmd)

	datasheetCmd.Flags().StringVarP(&datasheetDir, "dir", "d", "", "directory to save the datasheet in")
}
