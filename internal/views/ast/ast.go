// Package ast implements the AST View Builder (C5): a projection of the
// named parse tree into graph nodes and parent→child edges, with two
// optional post-processing transforms (blacklist minimize, name collapse).
package ast

import (
	"sort"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/schema"
)

// Options controls the two optional §4.5 transforms.
type Options struct {
	// Blacklist names kinds to remove from the AST, reconnecting their
	// parent and children so every surviving node keeps a path to the root.
	Blacklist catalog.Set
	// Collapse merges every leaf node sharing identical label text onto
	// the one with the lowest NodeID.
	Collapse bool
}

// pair is an ordered (parent, child) relation, used before NodeIDs are
// finalized into schema.Edge records.
type pair struct {
	parent, child identity.NodeID
}

// Build runs C5 over root, whose named nodes must already be present in
// ids (built by identity.Build over the same tree). Node and edge order is
// pre-order / first-encountered, matching the tree walk (§5 determinism).
func Build(root parsetree.Node, ids *identity.Table, opts Options) ([]schema.ViewNode, []schema.Edge) {
	var order []identity.NodeID
	kindOf := map[identity.NodeID]string{}
	labelOf := map[identity.NodeID]string{}
	lineOf := map[identity.NodeID]int{}
	var edges []pair

	var walk func(n parsetree.Node)
	walk = func(n parsetree.Node) {
		if n == nil || !n.Named() {
			return
		}
		id, ok := ids.IDFor(n)
		if !ok {
			return
		}
		if _, seen := kindOf[id]; !seen {
			order = append(order, id)
			kindOf[id] = n.Kind()
			labelOf[id] = string(n.Text())
			lineOf[id] = int(n.StartPosition().Row) + 1
		}
		for i := 0; i < n.NamedChildCount(); i++ {
			c := n.NamedChild(i)
			if c == nil {
				continue
			}
			cid, ok := ids.IDFor(c)
			if !ok {
				continue
			}
			edges = append(edges, pair{parent: id, child: cid})
			walk(c)
		}
	}
	walk(root)

	if opts.Blacklist != nil {
		order, edges = blacklistMinimize(order, kindOf, edges, opts.Blacklist)
	}
	if opts.Collapse {
		order, edges = collapseNames(order, labelOf, edges)
	}

	nodes := make([]schema.ViewNode, 0, len(order))
	for _, id := range order {
		nodes = append(nodes, schema.ViewNode{
			ID:    id,
			View:  schema.AST,
			Kind:  kindOf[id],
			Label: labelOf[id],
			Line:  lineOf[id],
		})
	}
	out := make([]schema.Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, schema.Edge{Source: e.parent, Target: e.child, View: schema.AST, Kind: "child"})
	}
	return nodes, out
}

// blacklistMinimize implements §4.5 "Blacklist minimize": remove nodes
// whose kind is blacklisted, splicing each removed node's parent directly
// to its (possibly transitively non-blacklisted) children (P9).
func blacklistMinimize(order []identity.NodeID, kindOf map[identity.NodeID]string, edges []pair, blacklist catalog.Set) ([]identity.NodeID, []pair) {
	removed := map[identity.NodeID]bool{}
	for _, id := range order {
		if blacklist.Has(kindOf[id]) {
			removed[id] = true
		}
	}
	if len(removed) == 0 {
		return order, edges
	}

	children := map[identity.NodeID][]identity.NodeID{}
	for _, e := range edges {
		children[e.parent] = append(children[e.parent], e.child)
	}

	memo := map[identity.NodeID][]identity.NodeID{}
	var expand func(id identity.NodeID) []identity.NodeID
	expand = func(id identity.NodeID) []identity.NodeID {
		if v, ok := memo[id]; ok {
			return v
		}
		var out []identity.NodeID
		for _, c := range children[id] {
			if removed[c] {
				out = append(out, expand(c)...)
			} else {
				out = append(out, c)
			}
		}
		memo[id] = out
		return out
	}

	var newOrder []identity.NodeID
	for _, id := range order {
		if !removed[id] {
			newOrder = append(newOrder, id)
		}
	}
	var newEdges []pair
	for _, id := range newOrder {
		for _, c := range expand(id) {
			newEdges = append(newEdges, pair{parent: id, child: c})
		}
	}
	return newOrder, newEdges
}

// collapseNames implements §4.5 "Name collapse": among leaf nodes (no
// outgoing edges) sharing identical label text, reroute every edge to the
// minimum-NodeID representative and drop the rest (idempotent, P8).
func collapseNames(order []identity.NodeID, labelOf map[identity.NodeID]string, edges []pair) ([]identity.NodeID, []pair) {
	outDegree := map[identity.NodeID]int{}
	for _, e := range edges {
		outDegree[e.parent]++
	}

	byLabel := map[string][]identity.NodeID{}
	for _, id := range order {
		if outDegree[id] == 0 {
			byLabel[labelOf[id]] = append(byLabel[labelOf[id]], id)
		}
	}

	representative := map[identity.NodeID]identity.NodeID{}
	for _, ids := range byLabel {
		if len(ids) < 2 {
			continue
		}
		sorted := append([]identity.NodeID(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		rep := sorted[0]
		for _, id := range ids {
			representative[id] = rep
		}
	}
	reroute := func(id identity.NodeID) identity.NodeID {
		if r, ok := representative[id]; ok {
			return r
		}
		return id
	}

	var newOrder []identity.NodeID
	for _, id := range order {
		if r, ok := representative[id]; ok && r != id {
			continue
		}
		newOrder = append(newOrder, id)
	}

	seen := map[pair]bool{}
	var newEdges []pair
	for _, e := range edges {
		p := pair{parent: reroute(e.parent), child: reroute(e.child)}
		if p.parent == p.child || seen[p] {
			continue
		}
		seen[p] = true
		newEdges = append(newEdges, p)
	}
	return newOrder, newEdges
}
