// Package ui renders handler trees in the output formats httpgraph
// supports: terminal (styled), text (plain), JSON, YAML and XML.
package ui

import (
	"io"

	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/ui/json"
	"github.com/arthur-debert/httpgraph/pkg/ui/terminal"
	"github.com/arthur-debert/httpgraph/pkg/ui/text"
	"github.com/arthur-debert/httpgraph/pkg/ui/xml"
	"github.com/arthur-debert/httpgraph/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderTree renders the handler tree rooted at root
	RenderTree(r *graph.Registry, root any) error

	// RenderList renders a titled list of names
	RenderList(title string, items []string) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	case FormatXML:
		return xml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
