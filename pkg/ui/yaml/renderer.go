// Package yaml renders trees as YAML documents.
package yaml

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/httpgraph/pkg/graph"
)

// Renderer writes one YAML document per call.
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// RenderTree encodes the snapshot of root's tree.
func (r *Renderer) RenderTree(reg *graph.Registry, root any) error {
	return r.encode(graph.Snapshot(reg, root))
}

// RenderList encodes the title and items.
func (r *Renderer) RenderList(title string, items []string) error {
	return r.encode(struct {
		Title string   `yaml:"title"`
		Items []string `yaml:"items"`
	}{title, items})
}

// RenderError renders an error as YAML
func (r *Renderer) RenderError(err error) error {
	return r.encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as YAML
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
