//go:build windows

package lib

import (
	"path/filepath"
	"syscall"

	"github.com/lxn/win"
)

func specialFolder(csidl win.CSIDL) string {
	buf := make([]uint16, win.MAX_PATH)
	win.SHGetSpecialFolderPath(win.HWND(0), &buf[0], csidl, false)

	return syscall.UTF16ToString(buf)
}

func GetLocalAppData() string {
	return specialFolder(win.CSIDL_LOCAL_APPDATA)
}

func GetDocuments() string {
	return specialFolder(win.CSIDL_PERSONAL)
}

// KicadUserDir is the folder holding one directory per KiCad version.
func KicadUserDir() string {
	return filepath.Join(GetDocuments(), "KiCad")
}
