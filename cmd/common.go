package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/xoviat/jlckicad/lib"
	"gopkg.in/yaml.v3"
)

/*
	Look up a search term and remember the part: it is saved to the local
	library and the term becomes the default for the next run.
*/
func lookupAndSave(ctx context.Context, client *lib.JLC, library *lib.Library, term string) (*lib.Part, error) {
	part, err := client.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	if err := library.Save(part); err != nil {
		lib.Logger().WithError(err).Warn("failed to store part")
	}
	if err := library.SetSetting(lib.SettingPart, strings.TrimSpace(term)); err != nil {
		lib.Logger().WithError(err).Warn("failed to remember part")
	}

	return part, nil
}

func rememberSetting(library *lib.Library, key, value string) {
	if err := library.SetSetting(key, value); err != nil {
		lib.Logger().WithError(err).WithField("setting", key).Warn("failed to remember setting")
	}
}

// lastTerm returns the first argument, or the term of the previous run.
func lastTerm(library *lib.Library, args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return library.Setting(lib.SettingPart, lib.DefaultPart)
}

func writeParts(w io.Writer, parts []*lib.Part, format string) error {
	switch format {
	case "", "table":
		for _, part := range parts {
			writeTable(w, part)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(parts)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(parts)
	}

	return errors.Errorf("unknown format %q (table, json or yaml)", format)
}

func writeTable(w io.Writer, part *lib.Part) {
	code := part.Code()
	color.New(color.FgGreen).Fprintf(w, "Current Part: %s\n", code)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Parameter\tValue")
	for _, row := range part.Rows() {
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value)
	}
	tw.Flush()

	if code != "" {
		links := lib.ProductLinks(code)
		fmt.Fprintf(w, "LCSC:   %s\nJLCPCB: %s\n", links.LCSC, links.JLCPCB)
	}

	for _, image := range part.Meta.Images {
		fmt.Fprintf(w, "Image:  %s\n", image.URL)
	}

	fmt.Fprintln(w)
}

// errReported is returned by commands that already told the user what
// went wrong.
var errReported = errors.New("lookup failed")

// printFailure reports a failed lookup and returns errReported.
func printFailure(w io.Writer, term string, err error) error {
	color.New(color.FgRed).Fprintf(w, "%s: %s\n", term, lib.UserMessage(err))
	lib.Logger().WithError(err).Debug("lookup failed")

	return errReported
}

func reportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errReported) {
		return
	}

	color.New(color.FgRed).Fprintf(w, "Error: %s\n", err)
}
