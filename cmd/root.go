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
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xoviat/jlckicad/lib"
)

var (
	cfgFile string
	config  = lib.DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jlckicad",
	Short: "Look up JLCPCB/LCSC parts and add them to a KiCad library.",
	Long: `jlckicad looks up an electronic component by its LCSC part number or
by a JLCPCB or LCSC product URL, shows its parameters, and can run
JLC2KiCadLib to generate the KiCad symbol, footprint and 3D model.

	Example:
		- jlckicad lookup C11702
		- jlckicad lookup https://jlcpcb.com/partdetail/UniRoyal_Elec-0603WAF1002T5E/C25804
		- jlckicad add C11702 --datasheet
	`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(config); err != nil {
			return errors.Wrap(err, "read configuration")
		}

		return lib.InitLogger(config.LogLevel, config.LogDir)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := lib.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jlckicad.yaml)")
	flags.String("base-url", defaults.BaseURL, "JLCPCB component API base URL")
	flags.Duration("timeout", defaults.Timeout, "timeout of a single vendor request")
	flags.Duration("interval", defaults.Interval, "minimum time between vendor requests")
	flags.String("library-dir", defaults.LibraryDir, "directory of the local part store")
	flags.String("log-level", defaults.LogLevel, "log level (panic/fatal/error/warn/info/debug/trace)")
	flags.String("log-dir", defaults.LogDir, "directory for rotated log files")

	for _, name := range []string{"base-url", "timeout", "interval", "library-dir", "log-level", "log-dir"} {
		viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}

	setConfigDefaults(viper.GetViper(), defaults)
}

// setConfigDefaults registers the keys without a flag so that they can be
// set from the environment too.
func setConfigDefaults(v *viper.Viper, defaults *lib.Config) {
	v.SetDefault("exe_path", defaults.ExePath)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("symbol_lib", defaults.SymbolLib)
	v.SetDefault("footprint_lib", defaults.FootprintLib)
	v.SetDefault("download_datasheet", defaults.DownloadDatasheet)
	v.SetDefault("datasheet_dir", defaults.DatasheetDir)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".jlckicad" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jlckicad")
	}

	viper.SetEnvPrefix("jlckicad")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
