package lib

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"unicode"

	"github.com/mholt/archiver"
	"github.com/pkg/errors"

	vlib "github.com/mcuadros/go-version"
)

/*
	Return the newest version directory below a KiCad user folder, e.g.
	~/Documents/KiCad/8.0
*/
func LatestKicadDir(root string) (string, error) {
	versions, err := os.ReadDir(root)
	if err != nil {
		return "", err
	}

	latestVersion := ""
	for _, e := range versions {
		version := e.Name()
		if !e.IsDir() || !unicode.IsDigit(rune(version[0])) {
			continue
		}

		if latestVersion == "" || vlib.CompareSimple(latestVersion, version) == -1 {
			latestVersion = version
		}
	}

	if latestVersion == "" {
		return "", errors.Errorf("no KiCad versions found in %s", root)
	}

	return filepath.Join(root, latestVersion), nil
}

// Generator runs the external JLC2KiCadLib converter for one part.
type Generator struct {
	ExePath      string
	OutputDir    string
	SymbolLib    string
	FootprintLib string

	Stdout io.Writer
	Stderr io.Writer
}

func NewGenerator(cfg *Config) *Generator {
	return &Generator{
		ExePath:      cfg.ExePath,
		OutputDir:    cfg.OutputDir,
		SymbolLib:    cfg.SymbolLib,
		FootprintLib: cfg.FootprintLib,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

// Args builds the converter arguments. The component code is passed
// verbatim as the first positional argument.
func (g *Generator) Args(code string) []string {
	args := []string{code}
	if g.OutputDir != "" {
		args = append(args, "-dir", g.OutputDir)
	}
	if g.SymbolLib != "" {
		args = append(args, "-symbol_lib", g.SymbolLib)
	}
	if g.FootprintLib != "" {
		args = append(args, "-footprint_lib", g.FootprintLib)
	}

	return args
}

func (g *Generator) Run(ctx context.Context, code string) error {
	if code == "" {
		return errors.New("no component code to generate")
	}

	bin, err := exec.LookPath(g.ExePath)
	if err != nil {
		return errors.Wrapf(err, "find generator %s", g.ExePath)
	}

	args := g.Args(code)
	Logger().WithField("args", args).Info("running " + bin)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = g.Stdout
	cmd.Stderr = g.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s %s", filepath.Base(bin), code)
	}

	return nil
}

/*
	Archive a generated library directory. The format follows the
	extension of dst (.zip, .tar.gz, ...).
*/
func ArchiveLibrary(dir, dst string) error {
	if !Exists(dir) {
		return errors.Errorf("library directory %s does not exist", dir)
	}

	if Exists(dst) {
		if err := os.Remove(dst); err != nil {
			return errors.Wrapf(err, "replace %s", dst)
		}
	}

	return errors.Wrapf(archiver.Archive([]string{dir}, dst), "archive %s", dir)
}
