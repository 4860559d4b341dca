// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/httpgraph/pkg/graph"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderTree encodes the snapshot of root's tree.
func (r *Renderer) RenderTree(reg *graph.Registry, root any) error {
	return r.encoder.Encode(graph.Snapshot(reg, root))
}

// RenderList encodes {"title": ..., "items": [...]}.
func (r *Renderer) RenderList(title string, items []string) error {
	if items == nil {
		items = []string{}
	}
	return r.encoder.Encode(map[string]interface{}{
		"title": title,
		"items": items,
	})
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{
		"error": err.Error(),
	})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{
		"message": msg,
	})
}
