//go:build !windows

package lib

import (
	"os"
	"path/filepath"
	"runtime"
)

func GetLocalAppData() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}

func GetDocuments() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}

// KicadUserDir is the folder holding one directory per KiCad version.
func KicadUserDir() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(GetDocuments(), "KiCad")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "kicad")
}
