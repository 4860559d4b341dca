// Package xml renders trees as nested XML elements:
//
//	<graph>
//	  <node name="*router.Router" type="*router.Router">
//	    <entry name="GET">...</entry>
//	  </node>
//	</graph>
package xml

import (
	"io"

	"github.com/beevik/etree"

	"github.com/arthur-debert/httpgraph/pkg/graph"
)

// Renderer writes one XML document per call.
type Renderer struct {
	output io.Writer
}

// New creates a new XML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.output)
	return err
}

func newDocument(root string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement(root)
}

// RenderTree writes the snapshot of root's tree. Labels become entry
// elements, handlers node elements with their options as children.
func (r *Renderer) RenderTree(reg *graph.Registry, root any) error {
	doc, el := newDocument("graph")
	addNode(el, graph.Snapshot(reg, root))
	return r.write(doc)
}

func addNode(parent *etree.Element, n *graph.Node) {
	var el *etree.Element
	if n.Type == "" {
		el = parent.CreateElement("entry")
		el.CreateAttr("name", n.Name)
	} else {
		el = parent.CreateElement("node")
		el.CreateAttr("name", n.Name)
		el.CreateAttr("type", n.Type)
		for _, o := range n.Options {
			el.CreateElement("option").SetText(o)
		}
	}
	for _, c := range n.Children {
		addNode(el, c)
	}
}

// RenderList writes <list title="..."><item>...</item></list>.
func (r *Renderer) RenderList(title string, items []string) error {
	doc, el := newDocument("list")
	el.CreateAttr("title", title)
	for _, item := range items {
		el.CreateElement("item").SetText(item)
	}
	return r.write(doc)
}

// RenderError renders an error as XML
func (r *Renderer) RenderError(err error) error {
	doc, el := newDocument("error")
	el.SetText(err.Error())
	return r.write(doc)
}

// RenderMessage renders a simple message as XML
func (r *Renderer) RenderMessage(msg string) error {
	doc, el := newDocument("message")
	el.SetText(msg)
	return r.write(doc)
}
