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
	format string
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup [part-or-url...]",
	Short: "Look up parts by LCSC number or part URL.",
	Long: `Look up one or more parts and show their parameters.

	Each argument is an LCSC part number (C11702), a JLCPCB part URL or an LCSC
	product URL. Without arguments the part of the previous run is looked up.
	`,
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := lib.NewDefaultLibrary(config)
		if err != nil {
			return fmt.Errorf("failed to open or create default library: %w", err)
		}
		defer library.Close()

		terms := args
		if len(terms) == 0 {
			terms = []string{lastTerm(library, args)}
		}

		client := lib.NewJLC(config)
		parts := []*lib.Part{}
		failed := 0
		for _, term := range terms {
			part, err := lookupAndSave(cmd.Context(), client, library, term)
			if err != nil {
				printFailure(cmd.ErrOrStderr(), term, err)
				failed++
				continue
			}

			parts = append(parts, part)
		}

		if err := writeParts(cmd.OutOrStdout(), parts, format); err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d lookups failed", failed, len(terms))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
}
