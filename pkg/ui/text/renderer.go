// Package text renders the plain tree, exactly as graph.Render draws it.
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/httpgraph/pkg/graph"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderTree writes the tree of root.
func (r *Renderer) RenderTree(reg *graph.Registry, root any) error {
	return graph.Run(reg, root, r.output)
}

// RenderList writes the title and one indented item per line.
func (r *Renderer) RenderList(title string, items []string) error {
	if _, err := fmt.Fprintln(r.output, title); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(r.output, "  "+item); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
