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
	"strings"

	"github.com/spf13/cobra"
	"github.com/xoviat/jlckicad/lib"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export looked-up parts.",
	Long:  `Export every part in the local library in the xlsx format.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst := args[0]
		if !strings.HasSuffix(dst, ".xlsx") {
			return fmt.Errorf("export file name must be an xlsx file")
		}

		library, err := lib.NewDefaultLibrary(config)
		if err != nil {
			return fmt.Errorf("failed to open or create default library: %w", err)
		}
		defer library.Close()

		parts, err := library.Parts()
		if err != nil {
			return err
		}

		if err := lib.WriteSheet(dst, parts); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "exported %d parts to %s\n", len(parts), dst)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
