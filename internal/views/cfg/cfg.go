// Package cfg implements the CFG View Builder (C6): a structured-statement-
// to-graph translator over a language-specific LanguageAdapter front-end
// (§4.6). One CFG is built per function-like definition found in the tree;
// each gets a synthetic entry and exit node.
package cfg

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/schema"
	"github.com/dusk-indust/codegraph/internal/symbols"
)

// EdgeKind enumerates the §4.6 control-edge vocabulary.
type EdgeKind string

const (
	Seq      EdgeKind = "seq"
	True     EdgeKind = "true"
	False    EdgeKind = "false"
	Case     EdgeKind = "case"
	Default  EdgeKind = "default"
	LoopBack EdgeKind = "loop_back"
	LoopExit EdgeKind = "loop_exit"
	Call     EdgeKind = "call"
	Return   EdgeKind = "return"
	Throw    EdgeKind = "throw"
	Catch    EdgeKind = "catch"
	Goto     EdgeKind = "goto"
)

// CaseClause is one arm of a switch/match construct, as surfaced by a
// LanguageAdapter.
type CaseClause struct {
	IsDefault bool
	Value     string
	Body      parsetree.Node
}

// CatchClause is one catch/except arm of a try construct.
type CatchClause struct {
	Param string
	Body  parsetree.Node
}

// LanguageAdapter supplies the syntactic shape C6's generic algorithm
// cannot read off the catalog alone: which field holds a construct's
// condition, how a for-loop's parts are laid out, how switch cases and
// labels are shaped. One adapter per Tier-1 language (adapter_<lang>.go).
type LanguageAdapter interface {
	IsIf(kind string) bool
	IsSwitch(kind string) bool
	IsTry(kind string) bool
	IsGoto(kind string) bool
	IsLabeled(kind string) bool

	// Condition returns the boolean test expression of an if/while/
	// do-while node.
	Condition(n parsetree.Node) parsetree.Node
	// Then returns the then-branch of an if node.
	Then(n parsetree.Node) parsetree.Node
	// Else returns the else-branch of an if node, or nil.
	Else(n parsetree.Node) parsetree.Node
	// ForParts returns a for-loop's init/condition/update/body children;
	// any may be nil (e.g. a range-for has no update).
	ForParts(n parsetree.Node) (init, cond, update, body parsetree.Node)
	// IsDoWhile reports whether a loop_stmt node runs its body before
	// testing its condition.
	IsDoWhile(n parsetree.Node) bool
	// SwitchCases returns a switch/match's arms in source order.
	SwitchCases(n parsetree.Node) []CaseClause
	// GotoLabel returns the label name a goto statement targets.
	GotoLabel(n parsetree.Node) string
	// LabelOf returns a labeled_statement's label name and wrapped
	// statement.
	LabelOf(n parsetree.Node) (name string, target parsetree.Node)
	// TryParts returns a try statement's body, catch clauses in source
	// order, and optional finally body.
	TryParts(n parsetree.Node) (body parsetree.Node, catches []CatchClause, finally parsetree.Node)
	// FuncName returns the identifier node naming a function-like
	// definition, so its call sites elsewhere in the file can resolve to
	// this function's entry node (§4.6 "call site... target function's
	// entry node (if in-file)"). Returns nil for anonymous definitions
	// (func literals, lambdas, closures, arrow functions) — those have no
	// name a call expression could reference by.
	FuncName(def parsetree.Node) parsetree.Node
}

// Graph is one function's CFG, or the union of every function's CFG found
// in a file (Build returns the union across all function-like defs).
type Graph struct {
	Nodes       []schema.ViewNode
	Edges       []schema.Edge
	Diagnostics []schema.Diagnostic

	// stubs caches synthetic nodes for calls that don't resolve to an
	// in-file function entry (cross-file calls, indirect/function-pointer
	// calls) so repeated calls to the same unresolved target share one
	// stub node rather than minting a fresh one per call site.
	stubs    map[string]identity.NodeID
	nextStub int64
}

// stubBase anchors the synthetic-stub NodeID range far below synthID's
// range, so the two never collide (P6: deterministic, collision-free ids).
const stubBase = identity.NodeID(-(int64(1) << 40))

// stubNode returns the existing stub node for (kind, label), or creates
// one.
func (g *Graph) stubNode(kind, label string) identity.NodeID {
	if g.stubs == nil {
		g.stubs = map[string]identity.NodeID{}
	}
	key := kind + "\x00" + label
	if id, ok := g.stubs[key]; ok {
		return id
	}
	id := stubBase - identity.NodeID(g.nextStub)
	g.nextStub++
	g.stubs[key] = id
	g.Nodes = append(g.Nodes, schema.ViewNode{ID: id, View: schema.CFG, Kind: kind, Label: label})
	return id
}

// Error is a fatal C6 condition distinct from the per-function soft
// CFGError diagnostics (§7): reserved for builder misuse, never returned by
// Build itself today.
type Error struct{ Msg string }

func (e *Error) Error() string { return "cfg: " + e.Msg }

// pending is one not-yet-glued predecessor awaiting a successor, carrying
// the edge kind the eventual glue edge should use (§4.6 "Concatenation is
// gluing").
type pending struct {
	from identity.NodeID
	kind EdgeKind
}

// flow is what processing any statement or block returns: where incoming
// edges should attach (entry), and the predecessors waiting on whatever
// comes next (dangling).
type flow struct {
	entry    []identity.NodeID
	dangling []pending
}

// Build walks root looking for every function-like definition (per the
// catalog's FunctionLikeKinds) and builds one CFG per definition found,
// returning their union (§4.8 "DFG requires CFG internally but CFG can be
// output independently" — Build's output is exactly this independent CFG).
// tables supplies the symbol tables (C4) call-site resolution reads; it may
// be nil, in which case every call site resolves as external.
func Build(root parsetree.Node, ids *identity.Table, cat *catalog.Table, lang LanguageAdapter, tables *symbols.Tables) *Graph {
	g := &Graph{}
	if root == nil {
		return g
	}

	var defs []parsetree.Node
	var walk func(n parsetree.Node)
	walk = func(n parsetree.Node) {
		if n == nil || !n.Named() {
			return
		}
		if cat.FunctionLikeKinds.Has(n.Kind()) {
			defs = append(defs, n)
		}
		for i := 0; i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	// funcEntries maps a function-like def's name-identifier NodeID to its
	// synthetic entry node, resolved up front so forward references (a
	// call to a function defined later in the file) still resolve (§4.6
	// "call site... target function's entry node (if in-file)").
	funcEntries := map[identity.NodeID]identity.NodeID{}
	for _, def := range defs {
		defID, ok := ids.IDFor(def)
		if !ok {
			continue
		}
		nameNode := lang.FuncName(def)
		if nameNode == nil {
			continue
		}
		if nameID, ok := ids.IDFor(nameNode); ok {
			funcEntries[nameID] = synthID(defID, "entry")
		}
	}

	for _, def := range defs {
		fb := newFuncBuilder(ids, cat, lang, g, tables, funcEntries)
		fb.build(def)
	}
	return g
}

// funcBuilder holds the mutable state of building one function's CFG.
type funcBuilder struct {
	ids  *identity.Table
	cat  *catalog.Table
	lang LanguageAdapter
	g    *Graph

	tables      *symbols.Tables
	funcEntries map[identity.NodeID]identity.NodeID

	entry, exit identity.NodeID

	labels       map[string]flow
	pendingGotos []struct {
		from identity.NodeID
		line int
		name string
	}

	// breakFrames collect break sources, one frame per enclosing loop or
	// switch, to splice into the
	// enclosing construct's own returned dangling set at closure.
	breakFrames [][]pending
	// continueFrames record where a `continue` glues to: the loop
	// header, or (for a for-loop) its update node.
	continueFrames []identity.NodeID
	// catchFrames record the nearest enclosing catch entry set, for
	// `throw` routing; empty means "route to function exit".
	catchFrames [][]identity.NodeID
}

func newFuncBuilder(ids *identity.Table, cat *catalog.Table, lang LanguageAdapter, g *Graph, tables *symbols.Tables, funcEntries map[identity.NodeID]identity.NodeID) *funcBuilder {
	return &funcBuilder{ids: ids, cat: cat, lang: lang, g: g, labels: map[string]flow{}, tables: tables, funcEntries: funcEntries}
}

func (b *funcBuilder) build(def parsetree.Node) {
	defID, ok := b.ids.IDFor(def)
	if !ok {
		return
	}
	b.entry = synthID(defID, "entry")
	b.exit = synthID(defID, "exit")
	b.addNode(b.entry, "entry", "entry", int(def.StartPosition().Row)+1)
	b.addNode(b.exit, "exit", "exit", int(def.EndPosition().Row)+1)

	body := findBody(def)
	if body == nil {
		b.glue([]pending{{from: b.entry, kind: Seq}}, []identity.NodeID{b.exit})
		return
	}

	f := b.processBlock(body)
	b.glue([]pending{{from: b.entry, kind: Seq}}, f.entry)
	b.glue(f.dangling, []identity.NodeID{b.exit})

	b.resolveGotos()
}

// synthID derives a deterministic synthetic NodeID for entry/exit markers
// from the owning definition's NodeID, so distinct functions never collide
// and the id remains stable across runs (P6).
func synthID(base identity.NodeID, suffix string) identity.NodeID {
	h := int64(base) * 2
	if suffix == "exit" {
		h++
	}
	return identity.NodeID(-h - 1)
}

func findBody(def parsetree.Node) parsetree.Node {
	if b := def.ChildByFieldName("body"); b != nil {
		return b
	}
	return nil
}

func (b *funcBuilder) addNode(id identity.NodeID, kind, label string, line int) {
	b.g.Nodes = append(b.g.Nodes, schema.ViewNode{ID: id, View: schema.CFG, Kind: kind, Label: label, Line: line})
}

// addStmtNode adds a statement/construct-granularity CFG node and emits its
// call edges (§4.6 "Call site: a call edge is added from the call-site
// statement node..."). n is the real parse node the statement/construct
// spans, scanned for nested call expressions.
func (b *funcBuilder) addStmtNode(id identity.NodeID, kind, label string, line int, n parsetree.Node) {
	b.addNode(id, kind, label, line)
	b.emitCallEdges(id, n)
}

// emitCallEdges walks n's subtree for call-site identifiers (§3 "calls")
// and emits one `call` edge per distinct call site from stmtID to the
// resolved target (§4.6, plus the supplemented indirect-call handling).
func (b *funcBuilder) emitCallEdges(stmtID identity.NodeID, n parsetree.Node) {
	if b.tables == nil || n == nil {
		return
	}
	var walk func(parsetree.Node)
	walk = func(x parsetree.Node) {
		if x == nil {
			return
		}
		if x.Named() {
			if id, ok := b.ids.IDFor(x); ok && b.tables.Calls[id] {
				b.emitOneCall(stmtID, id)
			}
		}
		for i := 0; i < x.ChildCount(); i++ {
			walk(x.Child(i))
		}
	}
	walk(n)
}

// emitOneCall resolves a single call-site identifier (callID) to its
// target and emits the corresponding `call` edge:
//   - a direct intra-file call resolves (via DeclarationMap) to another
//     function-like definition's own name identifier, and the edge targets
//     that function's entry node;
//   - an indirect call (comex's function_pointer_map) resolves to a
//     variable declaration whose recorded data_type looks like a function
//     type, and the edge targets a synthetic per-name indirect-call stub;
//   - anything else (unresolved, i.e. imported/cross-file) targets a
//     synthetic per-name external-call stub (§4.6 "cross-file calls leave a
//     call edge to a stub node").
func (b *funcBuilder) emitOneCall(stmtID, callID identity.NodeID) {
	name := b.tables.Label[callID]

	declID, resolved := b.tables.DeclarationMap[callID]
	if resolved {
		if entryID, ok := b.funcEntries[declID]; ok {
			b.edge(stmtID, entryID, Call, nil)
			return
		}
		if looksLikeFunctionType(b.tables.DataType[declID]) {
			target := b.tables.Declaration[declID]
			if target == "" {
				target = name
			}
			stub := b.g.stubNode("indirect_call", target)
			b.edge(stmtID, stub, Call, map[string]string{"resolution": "indirect", "target": target})
			return
		}
	}

	stub := b.g.stubNode("external_call", name)
	b.edge(stmtID, stub, Call, map[string]string{"resolution": "external", "target": name})
}

// looksLikeFunctionType is a name-based heuristic (no type inference
// beyond recorded declared-type strings, per the Non-goals) for whether a
// recorded data_type string denotes a function/closure-typed variable.
func looksLikeFunctionType(dataType string) bool {
	if dataType == "" {
		return false
	}
	d := strings.ToLower(dataType)
	switch {
	case strings.HasPrefix(d, "func"):
		return true
	case strings.Contains(d, "=>"):
		return true
	case strings.HasPrefix(d, "fn("), strings.HasPrefix(d, "fn "):
		return true
	case strings.Contains(d, "callable"):
		return true
	}
	return false
}

func (b *funcBuilder) edge(from, to identity.NodeID, kind EdgeKind, extra map[string]string) {
	b.g.Edges = append(b.g.Edges, schema.Edge{Source: from, Target: to, View: schema.CFG, Kind: string(kind), Extra: extra})
}

func (b *funcBuilder) glue(from []pending, to []identity.NodeID) {
	for _, p := range from {
		for _, t := range to {
			b.edge(p.from, t, p.kind, nil)
		}
	}
}

// processBlock concatenates the flows of a statement sequence (§4.6
// "Concatenation is gluing").
func (b *funcBuilder) processBlock(block parsetree.Node) flow {
	var result flow
	var dangling []pending
	first := true
	for i := 0; i < block.NamedChildCount(); i++ {
		stmt := block.NamedChild(i)
		if stmt == nil || !b.cat.StatementKinds.Has(stmt.Kind()) {
			continue
		}
		f := b.processStmt(stmt)
		if first {
			result.entry = f.entry
			first = false
		} else {
			b.glue(dangling, f.entry)
		}
		dangling = f.dangling
	}
	if first {
		return flow{}
	}
	result.dangling = dangling
	return result
}

func (b *funcBuilder) processStmt(n parsetree.Node) flow {
	id, ok := b.ids.IDFor(n)
	if !ok {
		return flow{}
	}
	kind := n.Kind()

	switch {
	case b.lang.IsLabeled(kind):
		return b.processLabeled(n)
	case b.lang.IsIf(kind):
		return b.processIf(n, id)
	case b.cat.LoopStmt.Has(kind):
		return b.processLoop(n, id)
	case b.lang.IsSwitch(kind):
		return b.processSwitch(n, id)
	case b.lang.IsTry(kind):
		return b.processTry(n, id)
	case b.lang.IsGoto(kind):
		return b.processGoto(n, id)
	case b.cat.JumpStmt.Has(kind):
		return b.processJump(n, id, kind)
	default:
		b.addStmtNode(id, kind, synthLabel(n), int(n.StartPosition().Row)+1, n)
		return flow{entry: []identity.NodeID{id}, dangling: []pending{{from: id, kind: Seq}}}
	}
}

// synthLabel synthesizes the human-readable CFG node label (§4.6: "the
// label is synthesized from the syntactic text of the construct").
func synthLabel(n parsetree.Node) string {
	return string(n.Text())
}

func (b *funcBuilder) processIf(n parsetree.Node, id identity.NodeID) flow {
	b.addStmtNode(id, n.Kind(), fmt.Sprintf("if(%s)", textOf(b.lang.Condition(n))), int(n.StartPosition().Row)+1, b.lang.Condition(n))

	thenF := b.processBranch(b.lang.Then(n))
	b.edge(id, headOf(thenF, id), True, nil)

	if elseNode := b.lang.Else(n); elseNode != nil {
		elseF := b.processBranch(elseNode)
		b.edge(id, headOf(elseF, id), False, nil)
		return flow{entry: []identity.NodeID{id}, dangling: append(append([]pending{}, thenF.dangling...), elseF.dangling...)}
	}
	// No else: the false continuation is the merge point, deferred as a
	// plain seq glue to whatever statement follows (§4.6).
	dangling := append([]pending{{from: id, kind: Seq}}, thenF.dangling...)
	return flow{entry: []identity.NodeID{id}, dangling: dangling}
}

// processBranch processes an if/loop branch that may be a block or a
// single bare statement.
func (b *funcBuilder) processBranch(n parsetree.Node) flow {
	if n == nil {
		return flow{}
	}
	if n.Kind() == "block" || isBlockLike(n) {
		return b.processBlock(n)
	}
	return b.processStmt(n)
}

func isBlockLike(n parsetree.Node) bool {
	switch n.Kind() {
	case "block", "statement_block", "suite", "compound_statement":
		return true
	}
	return false
}

// headOf returns f's entry set, or the fallback node if the branch was
// empty (keeps the emitted True/False edge attached to something).
func headOf(f flow, fallback identity.NodeID) identity.NodeID {
	if len(f.entry) == 0 {
		return fallback
	}
	return f.entry[0]
}

func (b *funcBuilder) processLoop(n parsetree.Node, id identity.NodeID) flow {
	b.breakFrames = append(b.breakFrames, nil)
	defer func() { b.breakFrames = b.breakFrames[:len(b.breakFrames)-1] }()

	if init, cond, update, body := b.lang.ForParts(n); init != nil || cond != nil || update != nil {
		return b.processForLoop(n, id, init, cond, update, body)
	}
	return b.processWhileLoop(n, id)
}

func (b *funcBuilder) processWhileLoop(n parsetree.Node, id identity.NodeID) flow {
	cond := b.lang.Condition(n)
	label := fmt.Sprintf("while(%s)", textOf(cond))
	doWhile := b.lang.IsDoWhile(n)
	if doWhile {
		label = fmt.Sprintf("do-while(%s)", textOf(cond))
	}
	b.addStmtNode(id, n.Kind(), label, int(n.StartPosition().Row)+1, cond)

	b.continueFrames = append(b.continueFrames, id)
	bodyF := b.processBranch(n.ChildByFieldName("body"))
	b.continueFrames = b.continueFrames[:len(b.continueFrames)-1]

	if doWhile {
		// Body executes unconditionally first, then the condition is
		// evaluated (§4.6 "For do-while, body runs unconditionally
		// first, then condition evaluated with loop_back/exit").
		entry := bodyF.entry
		b.glue(bodyF.dangling, []identity.NodeID{id})
		dangling := append([]pending{{from: id, kind: LoopExit}}, b.breakFrames[len(b.breakFrames)-1]...)
		b.edge(id, headOf(bodyF, id), LoopBack, nil)
		return flow{entry: entry, dangling: dangling}
	}

	b.edge(id, headOf(bodyF, id), True, nil)
	for _, p := range bodyF.dangling {
		b.edge(p.from, id, LoopBack, nil)
	}
	dangling := append([]pending{{from: id, kind: LoopExit}}, b.breakFrames[len(b.breakFrames)-1]...)
	return flow{entry: []identity.NodeID{id}, dangling: dangling}
}

func (b *funcBuilder) processForLoop(n parsetree.Node, id identity.NodeID, init, cond, update, body parsetree.Node) flow {
	var initDangling []pending
	var entry []identity.NodeID
	if init != nil {
		initID, ok := b.ids.IDFor(init)
		if ok {
			b.addStmtNode(initID, init.Kind(), synthLabel(init), int(init.StartPosition().Row)+1, init)
			entry = []identity.NodeID{initID}
			initDangling = []pending{{from: initID, kind: Seq}}
		}
	}

	headerID := id
	headerLabel := fmt.Sprintf("for(%s;%s;%s)", textOf(init), textOf(cond), textOf(update))
	b.addStmtNode(headerID, n.Kind(), headerLabel, int(n.StartPosition().Row)+1, cond)
	if len(entry) == 0 {
		entry = []identity.NodeID{headerID}
	} else {
		b.glue(initDangling, []identity.NodeID{headerID})
	}

	var updateID identity.NodeID
	haveUpdate := update != nil
	if haveUpdate {
		updateID, _ = b.ids.IDFor(update)
		b.addStmtNode(updateID, update.Kind(), synthLabel(update), int(update.StartPosition().Row)+1, update)
		b.edge(updateID, headerID, LoopBack, nil)
		b.continueFrames = append(b.continueFrames, updateID)
	} else {
		b.continueFrames = append(b.continueFrames, headerID)
	}

	bodyF := b.processBranch(body)
	b.continueFrames = b.continueFrames[:len(b.continueFrames)-1]

	b.edge(headerID, headOf(bodyF, headerID), True, nil)
	if haveUpdate {
		b.glue(bodyF.dangling, []identity.NodeID{updateID})
	} else {
		for _, p := range bodyF.dangling {
			b.edge(p.from, headerID, LoopBack, nil)
		}
	}

	dangling := append([]pending{{from: headerID, kind: LoopExit}}, b.breakFrames[len(b.breakFrames)-1]...)
	return flow{entry: entry, dangling: dangling}
}

func (b *funcBuilder) processSwitch(n parsetree.Node, id identity.NodeID) flow {
	b.addStmtNode(id, n.Kind(), fmt.Sprintf("switch(%s)", textOf(b.lang.Condition(n))), int(n.StartPosition().Row)+1, b.lang.Condition(n))
	b.breakFrames = append(b.breakFrames, nil)
	defer func() { b.breakFrames = b.breakFrames[:len(b.breakFrames)-1] }()

	cases := b.lang.SwitchCases(n)
	var prevDangling []pending
	var allDangling []pending
	for _, c := range cases {
		cf := b.processBranch(c.Body)
		target := headOf(cf, id)
		if c.IsDefault {
			b.edge(id, target, Default, nil)
		} else {
			b.edge(id, target, Case, map[string]string{"case": c.Value})
		}
		// Fall-through: a non-empty dangling set from the previous case
		// glues into this one's entry (§4.6 Switch, Q2).
		if len(prevDangling) > 0 {
			b.glue(prevDangling, headOrSelf(cf, target))
		}
		prevDangling = cf.dangling
	}
	// Q2: fall-through off the last case is treated as a break — its
	// dangling set joins the switch's own exit set, not a new case.
	allDangling = append(allDangling, prevDangling...)
	allDangling = append(allDangling, b.breakFrames[len(b.breakFrames)-1]...)
	return flow{entry: []identity.NodeID{id}, dangling: allDangling}
}

func headOrSelf(f flow, fallback identity.NodeID) []identity.NodeID {
	if len(f.entry) == 0 {
		return []identity.NodeID{fallback}
	}
	return f.entry
}

func (b *funcBuilder) processTry(n parsetree.Node, id identity.NodeID) flow {
	body, catches, finally := b.lang.TryParts(n)

	var catchEntries [][]identity.NodeID
	var catchFlows []flow
	for _, c := range catches {
		cf := b.processBranch(c.Body)
		catchFlows = append(catchFlows, cf)
		catchEntries = append(catchEntries, headOrSelf(cf, id))
	}
	var allCatchEntries []identity.NodeID
	for _, ce := range catchEntries {
		allCatchEntries = append(allCatchEntries, ce...)
	}

	b.catchFrames = append(b.catchFrames, allCatchEntries)
	bodyF := b.processBranch(body)
	b.catchFrames = b.catchFrames[:len(b.catchFrames)-1]

	// The normal flow leaving the try body and each catch clause passes
	// through finally (§4.6). A return or throw inside the try does not:
	// processJump sends a return straight to the function exit and a throw
	// to the catch entries (or the exit), bypassing finally (Q3).
	dangling := append([]pending{}, bodyF.dangling...)
	for _, cf := range catchFlows {
		dangling = append(dangling, cf.dangling...)
	}
	entry := bodyF.entry
	if len(entry) == 0 {
		entry = []identity.NodeID{id}
		b.addNode(id, n.Kind(), "try", int(n.StartPosition().Row)+1)
	}

	if finally == nil {
		return flow{entry: entry, dangling: dangling}
	}
	finallyF := b.processBranch(finally)
	b.glue(dangling, headOrSelf(finallyF, id))
	return flow{entry: entry, dangling: finallyF.dangling}
}

func (b *funcBuilder) processJump(n parsetree.Node, id identity.NodeID, kind string) flow {
	b.addStmtNode(id, kind, synthLabel(n), int(n.StartPosition().Row)+1, n)

	switch classifyJump(kind) {
	case jumpBreak:
		if len(b.breakFrames) == 0 {
			b.diagCFGError(id, int(n.StartPosition().Row)+1, "break outside any enclosing loop or switch")
			return flow{entry: []identity.NodeID{id}}
		}
		top := len(b.breakFrames) - 1
		b.breakFrames[top] = append(b.breakFrames[top], pending{from: id, kind: Seq})
		return flow{entry: []identity.NodeID{id}}

	case jumpContinue:
		if len(b.continueFrames) == 0 {
			b.diagCFGError(id, int(n.StartPosition().Row)+1, "continue outside any enclosing loop")
			return flow{entry: []identity.NodeID{id}}
		}
		target := b.continueFrames[len(b.continueFrames)-1]
		b.edge(id, target, Seq, nil)
		return flow{entry: []identity.NodeID{id}}

	case jumpReturn:
		b.edge(id, b.exit, Return, nil)
		return flow{entry: []identity.NodeID{id}}

	case jumpThrow:
		if len(b.catchFrames) > 0 {
			for _, c := range b.catchFrames[len(b.catchFrames)-1] {
				b.edge(id, c, Throw, nil)
			}
		} else {
			b.edge(id, b.exit, Throw, nil)
		}
		return flow{entry: []identity.NodeID{id}}
	}
	return flow{entry: []identity.NodeID{id}, dangling: []pending{{from: id, kind: Seq}}}
}

type jumpClass int

const (
	jumpOther jumpClass = iota
	jumpBreak
	jumpContinue
	jumpReturn
	jumpThrow
)

func classifyJump(kind string) jumpClass {
	switch kind {
	case "break_statement", "break_expression":
		return jumpBreak
	case "continue_statement", "continue_expression":
		return jumpContinue
	case "return_statement", "return_expression":
		return jumpReturn
	case "throw_statement", "raise_statement":
		return jumpThrow
	}
	return jumpOther
}

func (b *funcBuilder) processGoto(n parsetree.Node, id identity.NodeID) flow {
	b.addNode(id, n.Kind(), synthLabel(n), int(n.StartPosition().Row)+1)
	name := b.lang.GotoLabel(n)
	b.pendingGotos = append(b.pendingGotos, struct {
		from identity.NodeID
		line int
		name string
	}{from: id, line: int(n.StartPosition().Row) + 1, name: name})
	return flow{entry: []identity.NodeID{id}}
}

func (b *funcBuilder) processLabeled(n parsetree.Node) flow {
	name, target := b.lang.LabelOf(n)
	f := b.processStmt(target)
	b.labels[name] = f
	return f
}

// resolveGotos emits the deferred `goto` edges once every label in the
// function has been seen (labels may appear after their goto in source).
// Unresolved labels are CFGErrors (§7, P4 exception clause).
func (b *funcBuilder) resolveGotos() {
	for _, pg := range b.pendingGotos {
		target, ok := b.labels[pg.name]
		if !ok || len(target.entry) == 0 {
			b.diagCFGError(pg.from, pg.line, fmt.Sprintf("goto to undeclared label %q", pg.name))
			continue
		}
		for _, t := range target.entry {
			b.edge(pg.from, t, Goto, nil)
		}
	}
}

// diagCFGError records a soft CFGError diagnostic attached to the
// function's entry node's extra map (§7).
func (b *funcBuilder) diagCFGError(at identity.NodeID, line int, msg string) {
	b.g.Diagnostics = append(b.g.Diagnostics, schema.Diagnostic{
		Kind: schema.DiagnosticCFGError, Message: msg, NodeID: at, Line: line,
	})
	for i := range b.g.Nodes {
		if b.g.Nodes[i].ID != b.entry {
			continue
		}
		if b.g.Nodes[i].Extra == nil {
			b.g.Nodes[i].Extra = map[string]string{}
		}
		if prev := b.g.Nodes[i].Extra["cfg_error"]; prev != "" {
			msg = prev + "; " + msg
		}
		b.g.Nodes[i].Extra["cfg_error"] = msg
		break
	}
}

func textOf(n parsetree.Node) string {
	if n == nil {
		return ""
	}
	return string(n.Text())
}
