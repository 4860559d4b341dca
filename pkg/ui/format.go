package ui

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/httpgraph/pkg/errors"
)

// Format selects how `httpgraph render` and the list commands print.
type Format int

const (
	// FormatAuto picks FormatTerminal on a color terminal, FormatText otherwise.
	FormatAuto Format = iota
	// FormatTerminal is the tree with styled branches, labels and options.
	FormatTerminal
	// FormatText is the tree exactly as graph.Render prints it.
	FormatText
	// FormatJSON is the graph.Snapshot of the tree as nested objects.
	FormatJSON
	// FormatYAML is the same snapshot as a YAML document.
	FormatYAML
	// FormatXML is the snapshot as <graph> with nested <node> elements.
	FormatXML
)

// formatNames holds the canonical name first, then accepted aliases.
var formatNames = map[Format][]string{
	FormatAuto:     {"auto", ""},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
	FormatJSON:     {"json"},
	FormatYAML:     {"yaml", "yml"},
	FormatXML:      {"xml"},
}

// String is the name the --format flag and output.format key accept.
func (f Format) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return "unknown"
}

// ParseFormat reads a --format value, ignoring case.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	for f, names := range formatNames {
		for _, n := range names {
			if n == s {
				return f, nil
			}
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for w. Styling needs a color terminal
// and no NO_COLOR; anything without a file descriptor gets the text tree.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
