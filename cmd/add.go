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
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xoviat/jlckicad/lib"
)

var (
	exePath   string
	outputDir string
	datasheet bool
	archive   string
)

type addOptions struct {
	generator *lib.Generator
	datasheet bool
	archive   string
}

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [part-or-url]",
	Short: "Add a part to the KiCad library.",
	Long: `Look up a part and run JLC2KiCadLib to generate its symbol, footprint
and 3D model.

	Example:
		- jlckicad add C11702                 : generate into the output dir
		- jlckicad add C11702 --datasheet     : also download the datasheet
		- jlckicad add C11702 -a parts.zip    : archive the library afterwards
	`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := lib.NewDefaultLibrary(config)
		if err != nil {
			return fmt.Errorf("failed to open or create default library: %w", err)
		}
		defer library.Close()

		opts := resolveAddOptions(cmd, library)

		term := lastTerm(library, args)
		part, err := lookupAndSave(cmd.Context(), lib.NewJLC(config), library, term)
		if err != nil {
			return printFailure(cmd.ErrOrStderr(), term, err)
		}

		return addPart(cmd.Context(), cmd.OutOrStdout(), part, opts)
	},
}

/*
	Flags win over the values remembered from the last run, which win over
	the configuration.
*/
func resolveAddOptions(cmd *cobra.Command, library *lib.Library) addOptions {
	generator := lib.NewGenerator(config)
	generator.Stdout = cmd.OutOrStdout()
	generator.Stderr = cmd.ErrOrStderr()

	if cmd.Flags().Changed("exe") {
		generator.ExePath = exePath
		rememberSetting(library, lib.SettingExePath, exePath)
	} else {
		generator.ExePath = library.Setting(lib.SettingExePath, config.ExePath)
	}

	if cmd.Flags().Changed("dir") {
		generator.OutputDir = outputDir
	}

	download := config.DownloadDatasheet
	if cmd.Flags().Changed("datasheet") {
		download = datasheet
		rememberSetting(library, lib.SettingDownloadDatasheet, strconv.FormatBool(datasheet))
	} else if v, err := strconv.ParseBool(library.Setting(lib.SettingDownloadDatasheet, "")); err == nil {
		download = v
	}

	return addOptions{
		generator: generator,
		datasheet: download,
		archive:   archive,
	}
}

func addPart(ctx context.Context, w io.Writer, part *lib.Part, opts addOptions) error {
	code := part.Code()
	fmt.Fprintf(w, "adding %s to %s\n", code, opts.generator.OutputDir)

	if err := opts.generator.Run(ctx, code); err != nil {
		return err
	}

	if opts.datasheet {
		if part.Meta.DatasheetURL == "" {
			color.New(color.FgYellow).Fprintf(w, "%s has no datasheet\n", code)
		} else {
			dst, err := lib.NewJLC(config).DownloadDatasheet(ctx, part, config.ResolvedDatasheetDir())
			if err != nil {
				return fmt.Errorf("failed to download datasheet: %w", err)
			}
			fmt.Fprintf(w, "datasheet saved to %s\n", dst)
		}
	}

	if opts.archive != "" {
		if err := lib.ArchiveLibrary(opts.generator.OutputDir, opts.archive); err != nil {
			return err
		}
		fmt.Fprintf(w, "library archived to %s\n", opts.archive)
	}

	color.New(color.FgGreen).Fprintf(w, "added %s\n", code)
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&exePath, "exe", "e", lib.DefaultExe, "path of the JLC2KiCadLib executable")
	addCmd.Flags().StringVarP(&outputDir, "dir", "d", "", "output directory of the generated library")
	addCmd.Flags().BoolVar(&datasheet, "datasheet", true, "download the datasheet")
	addCmd.Flags().StringVarP(&archive, "archive", "a", "", "archive the library into this file (.zip, .tar.gz)")
}
