// Package dfg implements the Reaching-Definitions Engine and DFG View
// Builder (C7): a worklist fixed-point over a function's CFG that computes
// per-node IN/OUT sets of variable definitions and materializes a
// statement-level data-flow graph.
package dfg

import (
	"sort"
	"strconv"

	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/schema"
)

// Options controls the two optional §4.7 DFG edge annotations.
type Options struct {
	LastDef bool
	LastUse bool
}

// Undef is the distinguished value recorded for an uninitialized
// declarator's definition (Open Question Q1: it still participates in
// KILL, per the spec's prescribed resolution).
const Undef = "<undef>"

// fact is a (variable-name, originating-CFG-node) pair: a "definition"
// when tracked by the RDA lattice, a "use" when the same machinery is run
// symmetrically for last-use annotation (§4.7).
type fact struct {
	name string
	node identity.NodeID
}

// cfgView is the minimal read-only shape of a CFG the RDA engine needs:
// per-node successors/predecessors.
type cfgView struct {
	nodes []identity.NodeID
	succ  map[identity.NodeID][]identity.NodeID
	pred  map[identity.NodeID][]identity.NodeID
}

// Edge is the minimal edge shape Build needs from a cfg.Graph.
type Edge = schema.Edge

// Graph is the DFG for one function (or the union across a file's
// functions).
type Graph struct {
	Edges []schema.Edge
	// Iterations is the total worklist-fixed-point iteration count across
	// the defs pass and, if Options.LastUse was set, the uses pass too
	// (surfaced to metrics.RDAWorklistIterations by callers).
	Iterations int
}

// Build runs the fixed-point RDA algorithm over the given CFG and the
// def/use facts the Symbol Extractor attributes to each CFG node, emitting
// DFG edges per §4.7. defsOf/usesOf map a CFG node to the variable names it
// defines/uses; lineOf supplies each node's source line for the optional
// last_def/last_use annotations.
func Build(cfgNodes []identity.NodeID, cfgEdges []Edge, defsOf, usesOf map[identity.NodeID][]string, undef map[identity.NodeID]map[string]bool, lineOf map[identity.NodeID]int, opts Options) *Graph {
	cv := buildView(cfgNodes, cfgEdges)

	defGen, defKill := transferFunctions(cv, defsOf)
	reachIn, _, defIterations := fixedPoint(cv, defGen, defKill)

	var useIn map[identity.NodeID]map[fact]bool
	useIterations := 0
	if opts.LastUse {
		useGen, useKill := transferFunctions(cv, usesOf)
		useIn, _, useIterations = fixedPoint(cv, useGen, useKill)
	}

	type key struct{ from, to identity.NodeID }
	seen := map[key]bool{}
	g := &Graph{Iterations: defIterations + useIterations}

	for _, n := range cv.nodes {
		for _, v := range usesOf[n] {
			for d := range reachIn[n] {
				if d.name != v {
					continue
				}
				k := key{from: d.node, to: n}
				if seen[k] {
					continue
				}
				seen[k] = true

				var extra map[string]string
				if opts.LastDef {
					extra = setExtra(extra, "last_def", lineOf[d.node])
				}
				if opts.LastUse {
					if line, ok := mostRecentPriorUse(useIn[n], v, n, lineOf); ok {
						extra = setExtra(extra, "last_use", line)
					}
				}
				if undef[d.node][v] {
					if extra == nil {
						extra = map[string]string{}
					}
					extra["value"] = Undef
				}
				g.Edges = append(g.Edges, schema.Edge{Source: d.node, Target: n, View: schema.DFG, Kind: "reaches", Extra: extra})
			}
		}
	}

	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Source != g.Edges[j].Source {
			return g.Edges[i].Source < g.Edges[j].Source
		}
		return g.Edges[i].Target < g.Edges[j].Target
	})
	return g
}

func setExtra(extra map[string]string, key string, line int) map[string]string {
	if extra == nil {
		extra = map[string]string{}
	}
	extra[key] = strconv.Itoa(line)
	return extra
}

// mostRecentPriorUse picks, among the reaching-uses facts for variable v at
// node n, the one with the greatest source line strictly before n's own
// line (the "most recent prior use... along the path", §4.7).
func mostRecentPriorUse(in map[fact]bool, v string, n identity.NodeID, lineOf map[identity.NodeID]int) (int, bool) {
	best := -1
	found := false
	nLine := lineOf[n]
	for f := range in {
		if f.name != v || f.node == n {
			continue
		}
		line := lineOf[f.node]
		if line >= nLine {
			continue
		}
		if line > best {
			best = line
			found = true
		}
	}
	return best, found
}

func buildView(nodes []identity.NodeID, edges []Edge) *cfgView {
	cv := &cfgView{nodes: nodes, succ: map[identity.NodeID][]identity.NodeID{}, pred: map[identity.NodeID][]identity.NodeID{}}
	for _, e := range edges {
		cv.succ[e.Source] = append(cv.succ[e.Source], e.Target)
		cv.pred[e.Target] = append(cv.pred[e.Target], e.Source)
	}
	return cv
}

// transferFunctions computes GEN[n] and the set of variable names n's own
// GEN kills (§4.7: "KILL[n] = set of all existing definitions of the same
// variable names as those in GEN[n]"). Run once over defsOf for RDA proper,
// and again over usesOf for the symmetric reaching-uses lattice.
func transferFunctions(cv *cfgView, factsOf map[identity.NodeID][]string) (gen map[identity.NodeID]map[fact]bool, killNames map[identity.NodeID]map[string]bool) {
	gen = map[identity.NodeID]map[fact]bool{}
	killNames = map[identity.NodeID]map[string]bool{}
	for _, n := range cv.nodes {
		names := factsOf[n]
		if len(names) == 0 {
			continue
		}
		gen[n] = map[fact]bool{}
		killNames[n] = map[string]bool{}
		for _, v := range names {
			gen[n][fact{name: v, node: n}] = true
			killNames[n][v] = true
		}
	}
	return
}

// fixedPoint runs the §4.7 worklist algorithm to convergence: transfer
// OUT[n] = GEN[n] ∪ (IN[n] \ KILL[n]); confluence IN[n] = ⋃ OUT[pred].
// iterations counts worklist pops, reported to codegraph_rda_worklist_iterations
// by callers.
func fixedPoint(cv *cfgView, gen map[identity.NodeID]map[fact]bool, killNames map[identity.NodeID]map[string]bool) (in, out map[identity.NodeID]map[fact]bool, iterations int) {
	in = map[identity.NodeID]map[fact]bool{}
	out = map[identity.NodeID]map[fact]bool{}
	for _, n := range cv.nodes {
		in[n] = map[fact]bool{}
		out[n] = map[fact]bool{}
	}

	worklist := append([]identity.NodeID(nil), cv.nodes...)
	inWorklist := map[identity.NodeID]bool{}
	for _, n := range worklist {
		inWorklist[n] = true
	}

	for len(worklist) > 0 {
		iterations++
		n := worklist[0]
		worklist = worklist[1:]
		inWorklist[n] = false

		newIn := map[fact]bool{}
		for _, p := range cv.pred[n] {
			for d := range out[p] {
				newIn[d] = true
			}
		}
		in[n] = newIn

		newOut := map[fact]bool{}
		kills := killNames[n]
		for d := range newIn {
			if kills != nil && kills[d.name] {
				continue
			}
			newOut[d] = true
		}
		for d := range gen[n] {
			newOut[d] = true
		}

		if !sameFactSet(out[n], newOut) {
			out[n] = newOut
			for _, s := range cv.succ[n] {
				if !inWorklist[s] {
					worklist = append(worklist, s)
					inWorklist[s] = true
				}
			}
		}
	}
	return in, out, iterations
}

func sameFactSet(a, b map[fact]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if !b[d] {
			return false
		}
	}
	return true
}
