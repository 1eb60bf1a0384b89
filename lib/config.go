package lib

import (
	"path/filepath"
	"time"
)

const (
	DefaultBaseURL = "https://cart.jlcpcb.com/shoppingCart/smtGood"
	DefaultPart    = "C11702"
	DefaultExe     = "JLC2KiCadLib"
)

// Config holds everything the commands read from flags, the environment and
// the config file.
type Config struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Interval time.Duration `mapstructure:"interval"`

	// generator
	ExePath      string `mapstructure:"exe_path"`
	OutputDir    string `mapstructure:"output_dir"`
	SymbolLib    string `mapstructure:"symbol_lib"`
	FootprintLib string `mapstructure:"footprint_lib"`

	DownloadDatasheet bool   `mapstructure:"download_datasheet"`
	DatasheetDir      string `mapstructure:"datasheet_dir"`

	// local store of looked-up parts
	LibraryDir string `mapstructure:"library_dir"`

	LogLevel string `mapstructure:"log_level"`
	LogDir   string `mapstructure:"log_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           30 * time.Second,
		ExePath:           DefaultExe,
		OutputDir:         DefaultOutputDir(),
		DownloadDatasheet: true,
		LibraryDir:        filepath.Join(GetLocalAppData(), "jlckicad"),
		LogLevel:          "info",
	}
}

/*
	Generated libraries go next to the newest KiCad install's 3rd party
	libraries when one is found, else into the working directory.
*/
func DefaultOutputDir() string {
	if dir, err := LatestKicadDir(KicadUserDir()); err == nil {
		return filepath.Join(dir, "3rdparty", "JLC2KiCad_lib")
	}

	return "JLC2KiCad_lib"
}

// ResolvedDatasheetDir falls back to the generator output directory.
func (c *Config) ResolvedDatasheetDir() string {
	if c.DatasheetDir != "" {
		return c.DatasheetDir
	}

	return filepath.Join(c.OutputDir, "datasheets")
}
