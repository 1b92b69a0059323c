// Package compose implements the View Composer (C8): the union of
// AST/CFG/DFG view graphs into a single labeled multigraph sharing one
// NodeID namespace, per §4.8. Composition never introduces or deletes an
// edge, and never bridges views.
package compose

import (
	"sort"

	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/schema"
)

// labelPriority ranks which view's label/kind wins on a composed node
// (§4.8 "label resolution order is CFG > DFG > AST — the most informative
// label wins").
var labelPriority = map[schema.View]int{schema.CFG: 3, schema.DFG: 2, schema.AST: 1}

// merging is the working accumulator for one NodeID before it's flattened
// into a schema.Node; winningView tracks which view last set Kind/Label
// under the priority rule.
type merging struct {
	node        schema.Node
	winningView schema.View
}

// Build unions zero or more views into one schema.Stream. viewNodes should
// contain every ViewNode emitted by the view builders actually run; edges
// similarly. diagnostics is concatenated as-is into the trailer.
func Build(viewNodes []schema.ViewNode, edges []schema.Edge, diagnostics []schema.Diagnostic) schema.Stream {
	var order []identity.NodeID
	byID := map[identity.NodeID]*merging{}

	for _, vn := range viewNodes {
		m, ok := byID[vn.ID]
		if !ok {
			m = &merging{node: schema.Node{ID: vn.ID, ViewTags: map[schema.View]bool{}, Extra: map[string]string{}}}
			byID[vn.ID] = m
			order = append(order, vn.ID)
		}
		m.node.ViewTags[vn.View] = true

		for k, v := range vn.Extra {
			m.node.Extra[string(vn.View)+"."+k] = v
		}
		if vn.Line != 0 && m.node.Line == 0 {
			m.node.Line = vn.Line
		}
		if m.winningView == "" || labelPriority[vn.View] > labelPriority[m.winningView] {
			m.node.Kind = vn.Kind
			m.node.Label = vn.Label
			if vn.Line != 0 {
				m.node.Line = vn.Line
			}
			m.winningView = vn.View
		}
	}

	nodes := make([]schema.Node, 0, len(order))
	for _, id := range order {
		m := byID[id]
		if len(m.node.Extra) == 0 {
			m.node.Extra = nil
		}
		nodes = append(nodes, m.node)
	}

	outEdges := append([]schema.Edge(nil), edges...)
	sort.SliceStable(outEdges, func(i, j int) bool {
		if outEdges[i].Source != outEdges[j].Source {
			return outEdges[i].Source < outEdges[j].Source
		}
		return outEdges[i].Target < outEdges[j].Target
	})

	return schema.Stream{Nodes: nodes, Edges: outEdges, Diagnostics: diagnostics}
}
