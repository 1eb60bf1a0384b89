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

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"
	"github.com/xoviat/jlckicad/lib"
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Look up parts interactively.",
	Long: `Start an interactive prompt. Enter a part number or URL to look it up,
"add <part>" to add it to the KiCad library, and "exit" to quit.
Previously looked-up parts are offered as suggestions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := lib.NewDefaultLibrary(config)
		if err != nil {
			return fmt.Errorf("failed to open or create default library: %w", err)
		}
		defer library.Close()

		client := lib.NewJLC(config)
		opts := resolveAddOptions(cmd, library)
		w := cmd.OutOrStdout()

		suggestions := historySuggestions(library)
		completer := func(d prompt.Document) []prompt.Suggest {
			return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
		}

		for {
			line := strings.TrimSpace(prompt.Input("> ", completer, prompt.OptionTitle("jlckicad")))
			switch {
			case line == "":
				continue
			case line == "exit" || line == "quit":
				return nil
			}

			add := false
			if term, ok := strings.CutPrefix(line, "add "); ok {
				add = true
				line = strings.TrimSpace(term)
			}

			part, err := lookupAndSave(cmd.Context(), client, library, line)
			if err != nil {
				printFailure(cmd.ErrOrStderr(), line, err)
				continue
			}

			writeTable(w, part)
			if add {
				if err := addPart(cmd.Context(), w, part, opts); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed to add %s: %s\n", part.Code(), err)
				}
			}

			suggestions = historySuggestions(library)
		}
	},
}

/*
	One suggestion per stored part, newest lookup first.
*/
func historySuggestions(library *lib.Library) []prompt.Suggest {
	entries, err := library.History(0)
	if err != nil {
		return []prompt.Suggest{}
	}

	seen := map[string]bool{}
	suggestions := []prompt.Suggest{}
	for _, entry := range entries {
		if seen[entry.Code] {
			continue
		}
		seen[entry.Code] = true

		description := ""
		if part, err := library.Get(entry.Code); err == nil && part != nil {
			description, _ = part.Get("Description")
		}

		suggestions = append(suggestions, prompt.Suggest{Text: entry.Code, Description: description})
	}

	return suggestions
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().StringVarP(&exePath, "exe", "e", lib.DefaultExe, "path of the JLC2KiCadLib executable")
	shellCmd.Flags().StringVarP(&outputDir, "dir", "d", "", "output directory of the generated library")
	shellCmd.Flags().BoolVar(&datasheet, "datasheet", true, "download the datasheet when adding")
}
