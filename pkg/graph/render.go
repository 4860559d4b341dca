package graph

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/httpgraph/pkg/errors"
)

// Run resolves h and writes its tree to w (os.Stdout when w is nil).
func Run(r *Registry, h any, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	return Render(w, r, r.Resolve(h))
}

// Render writes node and everything reachable from it:
//
//	root
//	 |- first
//	 |  - grandchild
//	 |
//	 - last
//
// Non-last siblings are drawn with "|- " and followed by a bare "|"
// continuation line; the last sibling gets "- ". Children are indented two
// spaces, plus one when their parent was a last sibling.
func Render(w io.Writer, r *Registry, node Wrapper) error {
	p := &printer{w: w, reg: r}
	p.node(node, "", true)
	if p.err != nil {
		return errors.Wrap(p.err, errors.ErrRender, "failed to write tree")
	}
	return nil
}

// Line is one rendered line split into its parts; Prefix includes the
// branch marker. Continuation lines carry only a Prefix. Entry marks labels
// of map keys, mounts and routes.
type Line struct {
	Prefix       string
	Name         string
	Depth        int
	Entry        bool
	Continuation bool
}

// String is the line as Render prints it.
func (l Line) String() string {
	if l.Continuation {
		return l.Prefix
	}
	if l.Depth == 0 {
		return l.Name
	}
	return l.Prefix + "- " + l.Name
}

// Lines returns the lines Render would print for node.
func Lines(r *Registry, node Wrapper) []Line {
	p := &printer{reg: r, collect: true}
	p.node(node, "", true)
	return p.lines
}

type printer struct {
	w       io.Writer
	reg     *Registry
	err     error
	collect bool
	lines   []Line
	depth   int
}

func (p *printer) emit(l Line) {
	if p.collect {
		p.lines = append(p.lines, l)
		return
	}
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, l.String())
}

func (p *printer) node(n Wrapper, prefix string, last bool) {
	_, entry := n.(*Entry)
	if prefix == "" && p.depth == 0 {
		p.emit(Line{Name: Name(n), Entry: entry})
		last = true
	} else {
		p.emit(Line{Prefix: prefix, Name: Name(n), Depth: p.depth, Entry: entry})
		prefix += "  "
	}
	if last {
		prefix += " "
	}

	children := n.Children()
	p.depth++
	defer func() { p.depth-- }()

	for i, c := range children {
		child := p.reg.Resolve(c)
		if i < len(children)-1 {
			sub := prefix + "|"
			p.node(child, sub, false)
			p.emit(Line{Prefix: sub, Depth: p.depth, Continuation: true})
			continue
		}
		p.node(child, prefix, true)
	}
}
