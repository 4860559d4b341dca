package graph

// Node is a serialisable copy of a rendered tree.
type Node struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
	Children []*Node  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Snapshot resolves h and copies the whole tree into Nodes.
func Snapshot(r *Registry, h any) *Node {
	return snapshot(r, r.Resolve(h))
}

func snapshot(r *Registry, w Wrapper) *Node {
	n := &Node{
		Name:    Name(w),
		Type:    DisplayType(w.Handler()),
		Options: w.Options(),
	}
	if _, ok := w.(*Entry); ok {
		n.Type = ""
	}
	for _, c := range w.Children() {
		n.Children = append(n.Children, snapshot(r, r.Resolve(c)))
	}
	return n
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
