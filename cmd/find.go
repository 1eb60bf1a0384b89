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

var (
	findLimit int
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <text>",
	Short: "Search parts that were looked up before.",
	Long: `Search the local library of looked-up parts by brand, model,
category, description or any parameter value.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := lib.NewDefaultLibrary(config)
		if err != nil {
			return fmt.Errorf("failed to open or create default library: %w", err)
		}
		defer library.Close()

		parts, err := library.Find(strings.Join(args, " "), findLimit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(parts) == 0 {
			fmt.Fprintln(w, "no matching parts")
			return nil
		}

		for _, part := range parts {
			brand, _ := part.Get("Brand")
			model, _ := part.Get("Model")
			description, _ := part.Get("Description")
			fmt.Fprintf(w, "%s\t%s %s\t%s\n", part.Code(), brand, model, description)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().IntVarP(&findLimit, "limit", "n", 10, "maximum number of results")
}
