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
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xoviat/jlckicad/lib"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Look up every part of a BOM.",
	Long: `Look up every LCSC part number or part URL found in a BOM and store the
results in the local library.

		- A spreadsheet, in the xlsx format (first sheet is read).
		- A csv file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		if !lib.Exists(src) {
			return fmt.Errorf("failed to stat file: %s", src)
		}

		codes, err := lib.ReadPartColumn(src)
		if err != nil {
			return err
		}

		library, err := lib.NewDefaultLibrary(config)
		if err != nil {
			return fmt.Errorf("failed to open or create default library: %w", err)
		}
		defer library.Close()

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "looking up %d parts from %s\n", len(codes), src)

		failed, err := importParts(cmd.Context(), w, cmd.ErrOrStderr(), lib.NewJLC(config), library, codes)
		if err != nil {
			return err
		}

		if failed > 0 {
			color.New(color.FgYellow).Fprintf(w, "%d of %d parts could not be looked up\n", failed, len(codes))
		}

		return nil
	},
}

// importParts looks up and stores codes, returning how many lookups failed.
// The lookups stop when storing a part fails.
func importParts(ctx context.Context, w, errW io.Writer, client *lib.JLC, library *lib.Library, codes []string) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	failed := 0
	for result := range client.LookupAll(ctx, codes) {
		if result.Err != nil {
			printFailure(errW, result.Code, result.Err)
			failed++
			continue
		}

		if err := library.Save(result.Part); err != nil {
			return failed, err
		}

		brand, _ := result.Part.Get("Brand")
		fmt.Fprintf(w, "imported %s %s\n", result.Code, brand)
	}

	return failed, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
