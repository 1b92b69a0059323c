// Package identity implements the Node Identity Table (C2): it assigns
// stable integer NodeIDs to named parse-tree nodes, keyed by
// (start, end, kind), so the same syntactic span obtains the same id in
// every view (§3 invariant I1).
package identity

import "github.com/dusk-indust/codegraph/internal/parsetree"

// NodeID is a monotonically-assigned integer identity for a named
// parsetree.Node. The zero value is never assigned (IDs start at offset 1).
type NodeID int64

// key is the (start, end, kind) triple C2 maps to a NodeID.
type key struct {
	startRow, startCol uint32
	endRow, endCol     uint32
	kind               string
}

func keyOf(n parsetree.Node) key {
	s, e := n.StartPosition(), n.EndPosition()
	return key{s.Row, s.Column, e.Row, e.Column, n.Kind()}
}

// entry pairs an assigned NodeID with the node it was assigned to.
type entry struct {
	id   NodeID
	node parsetree.Node
}

// Table is the per-run Node Identity Table. It is built once per file by
// Build and is read-only thereafter (§3 "Lifecycle").
type Table struct {
	index   map[key]NodeID
	entries []entry
}

// offset is the first NodeID issued; its exact value is irrelevant for
// correctness (§4.2) but is kept small and fixed for reproducibility.
const offset = 1

// Build traverses root in pre-order, assigning a fresh NodeID to every
// named node. Non-named nodes (pure syntactic tokens) receive no id.
func Build(root parsetree.Node) *Table {
	t := &Table{index: make(map[key]NodeID)}
	if root == nil {
		return t
	}
	next := NodeID(offset)
	var walk func(n parsetree.Node)
	walk = func(n parsetree.Node) {
		if n == nil {
			return
		}
		if n.Named() {
			k := keyOf(n)
			if _, ok := t.index[k]; !ok {
				t.index[k] = next
				t.entries = append(t.entries, entry{id: next, node: n})
				next++
			}
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return t
}

// IDFor returns the NodeID for a node already seen by Build, keyed by its
// (start, end, kind) span, and whether it was found. Calling IDFor with a
// node object is idempotent: repeated calls for the same span return the
// same id (§4.2 contract).
func (t *Table) IDFor(n parsetree.Node) (NodeID, bool) {
	id, ok := t.index[keyOf(n)]
	return id, ok
}

// MustIDFor returns the NodeID for n, panicking if n was never assigned one
// (a ScopeError-class bug: callers must only ask about named nodes that
// were part of the tree Build walked).
func (t *Table) MustIDFor(n parsetree.Node) NodeID {
	id, ok := t.IDFor(n)
	if !ok {
		panic("identity: node has no assigned NodeID")
	}
	return id
}

// Entry is one (NodeID, Node) pair as produced by the pre-order walk, in
// assignment order.
type Entry struct {
	ID   NodeID
	Node parsetree.Node
}

// All iterates all (NodeID, node) pairs in assignment order (source order
// for named nodes, per the pre-order traversal of Build).
func (t *Table) All() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{ID: e.id, Node: e.node}
	}
	return out
}

// Len returns the number of named nodes assigned an id.
func (t *Table) Len() int { return len(t.entries) }
