// Package engine is the top-level orchestration of C1–C9 (§6 "external
// contract"): given source bytes and a language, it runs the parser, the
// identity table, the catalog lookup, the symbol extractor, the requested
// view builders, and the composer, returning the record stream that is the
// entirety of the core's outbound contract.
package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/compose"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/schema"
	"github.com/dusk-indust/codegraph/internal/symbols"
	"github.com/dusk-indust/codegraph/internal/views/ast"
	"github.com/dusk-indust/codegraph/internal/views/cfg"
	"github.com/dusk-indust/codegraph/internal/views/dfg"
)

// Options is the §6 "configuration object with explicitly enumerated
// recognized options". There is deliberately no file/env loader here —
// loading configuration from disk is an explicit Non-goal of the core; the
// CLI demo (cmd/codegraph) is the one place that reads a config file and
// turns it into an Options value.
type Options struct {
	// Views selects which of {AST, CFG, DFG} to build. An empty set
	// builds nothing but still runs C1–C4.
	Views map[schema.View]bool
	// ASTBlacklist names kinds to prune from the AST view (§4.5).
	ASTBlacklist catalog.Set
	// ASTCollapse enables same-name leaf collapsing on the AST view.
	ASTCollapse bool
	// DFGLastDef/DFGLastUse enable the optional DFG edge annotations
	// (§4.7).
	DFGLastDef bool
	DFGLastUse bool
	// StrictParse makes Build return a parser error as its error (§6, §7).
	// Without it, a parser error yields a stream holding one ParseError
	// diagnostic and no nodes or edges; no partial graph is built.
	StrictParse bool
}

// wantsCFG reports whether the DFG view (which requires a CFG internally
// even when CFG itself isn't requested for output, §4.8) or CFG itself was
// requested.
func (o Options) wantsCFG() bool { return o.Views[schema.CFG] || o.Views[schema.DFG] }

// ScopeError is a fatal internal-invariant violation (§7): a bug in the
// catalog or extractor, never an input-data problem.
type ScopeError struct{ Msg string }

func (e *ScopeError) Error() string { return "engine: scope invariant violated: " + e.Msg }

// RDAError is a fatal, theoretically-unreachable non-termination of the
// fixed-point engine (§7). Build never actually returns one — the
// transfer function is monotone on a finite lattice — but the type exists
// so callers can errors.As for the full §7 taxonomy.
type RDAError struct{ Msg string }

func (e *RDAError) Error() string { return "engine: rda did not converge: " + e.Msg }

// adapterFor resolves the cfg.LanguageAdapter for lang.
func adapterFor(lang parsetree.Language) (cfg.LanguageAdapter, error) {
	switch lang {
	case parsetree.Go:
		return cfg.Go(), nil
	case parsetree.Python:
		return cfg.Python(), nil
	case parsetree.TypeScript:
		return cfg.TypeScript(), nil
	case parsetree.Rust:
		return cfg.Rust(), nil
	default:
		return nil, fmt.Errorf("engine: unsupported language: %s", lang)
	}
}

// Build runs the full C1–C9 pipeline over source, producing the output
// record stream (§6). parser is the collaborator C1 depends on.
func Build(ctx context.Context, parser parsetree.Parser, source []byte, lang parsetree.Language, opts Options) (schema.Stream, error) {
	cat, ok := catalog.For(lang)
	if !ok {
		return schema.Stream{}, &ScopeError{Msg: fmt.Sprintf("no catalog registered for language %s", lang)}
	}
	adapter, err := adapterFor(lang)
	if err != nil {
		return schema.Stream{}, &ScopeError{Msg: err.Error()}
	}

	tree, perr := parser.Parse(source, lang)
	if perr != nil {
		var parseErr *parsetree.ParseError
		if !errors.As(perr, &parseErr) {
			parseErr = &parsetree.ParseError{Err: perr}
		}
		if opts.StrictParse {
			return schema.Stream{}, parseErr
		}
		return schema.Stream{Diagnostics: []schema.Diagnostic{{
			Kind: schema.DiagnosticParseError, Message: parseErr.Error(),
		}}}, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	ids := identity.Build(root)
	tables := symbols.Extract(root, ids, cat)

	var astNodes []schema.ViewNode
	var astEdges []schema.Edge
	var cfgGraph *cfg.Graph
	var dfgEdges []schema.Edge
	var rdaIterations int

	g, _ := errgroup.WithContext(ctx)

	if opts.Views[schema.AST] {
		g.Go(func() error {
			astNodes, astEdges = ast.Build(root, ids, ast.Options{Blacklist: opts.ASTBlacklist, Collapse: opts.ASTCollapse})
			return nil
		})
	}
	if opts.wantsCFG() {
		g.Go(func() error {
			cfgGraph = cfg.Build(root, ids, cat, adapter, tables)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return schema.Stream{}, err
	}

	var diagnostics []schema.Diagnostic
	var viewNodes []schema.ViewNode
	var edges []schema.Edge

	viewNodes = append(viewNodes, astNodes...)
	edges = append(edges, astEdges...)

	if cfgGraph != nil {
		diagnostics = append(diagnostics, cfgGraph.Diagnostics...)
		if opts.Views[schema.CFG] {
			viewNodes = append(viewNodes, cfgGraph.Nodes...)
			edges = append(edges, cfgGraph.Edges...)
		}
		if opts.Views[schema.DFG] {
			cfgNodeIDs := map[identity.NodeID]bool{}
			lineOf := map[identity.NodeID]int{}
			var cfgNodeOrder []identity.NodeID
			for _, n := range cfgGraph.Nodes {
				if !cfgNodeIDs[n.ID] {
					cfgNodeOrder = append(cfgNodeOrder, n.ID)
				}
				cfgNodeIDs[n.ID] = true
				lineOf[n.ID] = n.Line
			}
			defsOf, usesOf, undef := dfg.CollectDefsUses(root, ids, cfgNodeIDs, tables)
			dfgGraph := dfg.Build(cfgNodeOrder, cfgGraph.Edges, defsOf, usesOf, undef, lineOf, dfg.Options{LastDef: opts.DFGLastDef, LastUse: opts.DFGLastUse})
			dfgEdges = dfgGraph.Edges
			rdaIterations = dfgGraph.Iterations
			edges = append(edges, dfgEdges...)

			// Every CFG node touched by a DFG edge also belongs to the
			// DFG view (§4.9 "view_tags: set"); DFG contributes no nodes
			// of its own, it reuses the CFG statement granularity.
			cfgNodeByID := map[identity.NodeID]schema.ViewNode{}
			for _, n := range cfgGraph.Nodes {
				cfgNodeByID[n.ID] = n
			}
			touched := map[identity.NodeID]bool{}
			var touchedOrder []identity.NodeID
			for _, e := range dfgEdges {
				for _, id := range [2]identity.NodeID{e.Source, e.Target} {
					if !touched[id] {
						touched[id] = true
						touchedOrder = append(touchedOrder, id)
					}
				}
			}
			for _, id := range touchedOrder {
				if n, ok := cfgNodeByID[id]; ok {
					viewNodes = append(viewNodes, schema.ViewNode{ID: id, View: schema.DFG, Kind: n.Kind, Label: n.Label, Line: n.Line})
				}
			}
		}
	}

	stream := compose.Build(viewNodes, edges, diagnostics)
	stream.Stats.RDAWorklistIterations = rdaIterations
	return stream, nil
}
