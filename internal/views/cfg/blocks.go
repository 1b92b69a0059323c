package cfg

import (
	"sort"

	"github.com/dusk-indust/codegraph/internal/identity"
)

// BasicBlocks partitions a CFG into its weakly-connected components — an
// undirected reachability grouping over the CFG's own edges, excluding call
// edges (see buildAdjacency). Each returned slice is one block's member NodeIDs, in
// ascending NodeID order; blocks themselves are ordered by their smallest
// member NodeID, for deterministic output.
func BasicBlocks(g *Graph) [][]identity.NodeID {
	adj := buildAdjacency(g)

	var order []identity.NodeID
	seen := map[identity.NodeID]bool{}
	for _, n := range g.Nodes {
		if !seen[n.ID] {
			seen[n.ID] = true
			order = append(order, n.ID)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	visited := map[identity.NodeID]bool{}
	var blocks [][]identity.NodeID
	for _, start := range order {
		if visited[start] {
			continue
		}
		component := bfsComponent(start, adj, visited)
		sort.Slice(component, func(i, j int) bool { return component[i] < component[j] })
		blocks = append(blocks, component)
	}
	return blocks
}

// buildAdjacency constructs a bidirectional adjacency set from a CFG's
// intraprocedural control edges, for an undirected-component search. Call edges
// are interprocedural (they cross into another function's entry node, or a
// cross-file/indirect stub) and are deliberately excluded — otherwise a
// single call site would merge the caller's and callee's basic blocks into
// one component, defeating the per-function partitioning comex's
// get_basic_blocks performs.
func buildAdjacency(g *Graph) map[identity.NodeID]map[identity.NodeID]bool {
	adj := map[identity.NodeID]map[identity.NodeID]bool{}
	ensure := func(id identity.NodeID) {
		if adj[id] == nil {
			adj[id] = map[identity.NodeID]bool{}
		}
	}
	for _, n := range g.Nodes {
		ensure(n.ID)
	}
	for _, e := range g.Edges {
		if e.Kind == string(Call) {
			continue
		}
		ensure(e.Source)
		ensure(e.Target)
		adj[e.Source][e.Target] = true
		adj[e.Target][e.Source] = true
	}
	return adj
}

// bfsComponent performs BFS from start over adj, marking every visited
// node in visited as it goes and returning the reachable set (including
// start).
func bfsComponent(start identity.NodeID, adj map[identity.NodeID]map[identity.NodeID]bool, visited map[identity.NodeID]bool) []identity.NodeID {
	var component []identity.NodeID
	queue := []identity.NodeID{start}
	visited[start] = true

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		component = append(component, n)
		for neighbor := range adj[n] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}
	return component
}
