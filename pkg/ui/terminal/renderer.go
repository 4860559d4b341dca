// Package terminal renders the tree with lipgloss styles: branches muted,
// labels and handler names colored, options in italics.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/ui/styles"
)

// Renderer provides rich terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderTree writes the styled tree of root. Stripped of escape codes the
// output is identical to the text renderer's.
func (r *Renderer) RenderTree(reg *graph.Registry, root any) error {
	for _, l := range graph.Lines(reg, reg.Resolve(root)) {
		if _, err := fmt.Fprintln(r.output, line(l)); err != nil {
			return errors.Wrap(err, errors.ErrRender, "failed to write tree")
		}
	}
	return nil
}

func line(l graph.Line) string {
	if l.Continuation {
		return styles.Render("Branch", l.Prefix)
	}

	var name string
	switch {
	case l.Depth == 0:
		name = styles.Render("Root", l.Name)
	case l.Entry:
		name = styles.Render("Label", l.Name)
	default:
		name = handlerName(l.Name)
	}
	if l.Depth == 0 {
		return name
	}
	return styles.Render("Branch", l.Prefix+"- ") + name
}

// handlerName styles "type(options)" in two parts.
func handlerName(s string) string {
	i := strings.IndexByte(s, '(')
	if i <= 0 || !strings.HasSuffix(s, ")") {
		return styles.Render("Name", s)
	}
	return styles.Render("Name", s[:i]) + styles.Render("Options", s[i:])
}

// RenderList renders a styled title followed by the items.
func (r *Renderer) RenderList(title string, items []string) error {
	if _, err := fmt.Fprintln(r.output, styles.Render("Title", title)); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(r.output, "  "+styles.Render("Name", item)); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.Render("Error", "Error:")+" "+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Muted", msg))
	return err
}
