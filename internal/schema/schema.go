// Package schema implements the Output Schema (C9): the language-agnostic
// record stream the core hands to downstream serializers. Nothing in this
// package touches a file format (DOT/PNG/JSON-node-link) — that is a
// collaborator's concern (§1 Out of scope).
package schema

import "github.com/dusk-indust/codegraph/internal/identity"

// View names one of the three graph views a node or edge may belong to
// (§3 "Graph").
type View string

const (
	AST View = "AST"
	CFG View = "CFG"
	DFG View = "DFG"
)

// ViewNode is the node record a single view builder (C5/C6/C7) emits,
// before composition. Each view builder only ever sets its own View.
type ViewNode struct {
	ID    identity.NodeID
	View  View
	Kind  string
	Label string
	Line  int
	Extra map[string]string
}

// Edge is an Edge record as defined in §4.9. Edges are never rewritten by
// composition (§4.8 "the composer never bridges views"), so the same type
// serves both pre- and post-compose streams.
type Edge struct {
	Source identity.NodeID
	Target identity.NodeID
	View   View
	Kind   string
	Extra  map[string]string
}

// Node is the composed node record of §4.9, after C8's per-NodeID union of
// every view's ViewNode.
type Node struct {
	ID       identity.NodeID
	ViewTags map[View]bool
	Kind     string
	Label    string
	Line     int
	Extra    map[string]string
}

// DiagnosticKind classifies a soft-error record attached to the stream
// trailer (§7 "surfaceable" errors).
type DiagnosticKind string

const (
	DiagnosticParseError DiagnosticKind = "ParseError"
	DiagnosticCFGError   DiagnosticKind = "CFGError"
)

// Diagnostic is one entry of the §7 trailer: a soft error the caller may
// choose to treat as informational or escalate.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	NodeID  identity.NodeID
	Line    int
}

// Stream is the entirety of the core's external, outbound contract (§6
// "From the core (outbound)"): an ordered node list, an ordered edge list,
// and a diagnostics trailer for soft errors encountered along the way.
type Stream struct {
	Nodes       []Node
	Edges       []Edge
	Diagnostics []Diagnostic
	Stats       Stats
}

// Stats carries internal pipeline counters useful for observability,
// reported alongside the view data rather than folded into it.
type Stats struct {
	// RDAWorklistIterations is the total number of fixed-point worklist
	// iterations the reaching-definitions (and, if requested,
	// reaching-uses) engine took to converge over the whole file. Zero
	// when the DFG view wasn't requested.
	RDAWorklistIterations int
}
