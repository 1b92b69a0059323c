// Package parsetreetest builds synthetic parsetree.Node trees by hand, for
// tests of the core's algorithms that must not depend on a real grammar.
package parsetreetest

import "github.com/dusk-indust/codegraph/internal/parsetree"

// Node is a hand-built, mutable parsetree.Node used only in tests.
type Node struct {
	kind     string
	start    parsetree.Point
	end      parsetree.Point
	text     []byte
	named    bool
	children []*Node
	fields   map[string]*Node
	parent   *Node
}

// New creates a named leaf or interior node. Fields and children are added
// with AddChild/SetField before the tree is handed to test code; Build
// wires parent back-references over the whole tree.
func New(kind string, startLine, endLine int, text string) *Node {
	return &Node{
		kind:  kind,
		start: parsetree.Point{Row: uint32(startLine)},
		end:   parsetree.Point{Row: uint32(endLine)},
		text:  []byte(text),
		named: true,
	}
}

// Unnamed marks the node as a non-named syntax token (punctuation).
func (n *Node) Unnamed() *Node {
	n.named = false
	return n
}

// AddChild appends a child and returns the receiver for chaining.
func (n *Node) AddChild(c *Node) *Node {
	n.children = append(n.children, c)
	return n
}

// Children appends all given children.
func (n *Node) Children(cs ...*Node) *Node {
	n.children = append(n.children, cs...)
	return n
}

// SetField records a named grammar field pointing at an existing child.
// The child must already have been added via AddChild/Children.
func (n *Node) SetField(name string, child *Node) *Node {
	if n.fields == nil {
		n.fields = make(map[string]*Node)
	}
	n.fields[name] = child
	return n
}

// Build wires parent back-references over the whole tree rooted at n and
// returns n as a parsetree.Node.
func Build(n *Node) parsetree.Node {
	var link func(node, parent *Node)
	link = func(node, parent *Node) {
		node.parent = parent
		for _, c := range node.children {
			link(c, node)
		}
	}
	link(n, nil)
	return n
}

func (n *Node) Kind() string                    { return n.kind }
func (n *Node) Named() bool                     { return n.named }
func (n *Node) StartPosition() parsetree.Point  { return n.start }
func (n *Node) EndPosition() parsetree.Point    { return n.end }
func (n *Node) Text() []byte                    { return n.text }
func (n *Node) ChildCount() int                 { return len(n.children) }

func (n *Node) Child(i int) parsetree.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) NamedChildCount() int {
	count := 0
	for _, c := range n.children {
		if c.named {
			count++
		}
	}
	return count
}

func (n *Node) NamedChild(i int) parsetree.Node {
	idx := 0
	for _, c := range n.children {
		if !c.named {
			continue
		}
		if idx == i {
			return c
		}
		idx++
	}
	return nil
}

func (n *Node) ChildByFieldName(name string) parsetree.Node {
	c, ok := n.fields[name]
	if !ok {
		return nil
	}
	return c
}

func (n *Node) Parent() parsetree.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}
