// Package symbols implements the Symbol Extractor (C4): a single pre-order
// walk of the parse tree that populates the symbol tables of §3 — tokens,
// labels, declarations, the use→decl map, per-node scope chains, and
// recorded declared types. AST, CFG, and DFG view builders all read these
// tables read-only.
package symbols

import (
	"strings"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
)

// ScopeID is a monotonically-assigned lexical scope identifier. The stack
// starts empty; the first scope-introducing node reached (the file's root
// node in every Tier-1 catalog) is assigned scope 1.
type ScopeID int64

// Tables is the symbol-table bundle of §3, built once per file.
type Tables struct {
	// Tokens is the ordered sequence of leaf NodeIDs, in source order.
	Tokens []identity.NodeID
	// Label maps a NodeID to the text of that node (identifiers, literals).
	Label map[identity.NodeID]string
	// StartLine maps a NodeID to its source line (1-indexed).
	StartLine map[identity.NodeID]int
	// Methods is the set of NodeIDs that are method/function identifiers,
	// at both declaration and call sites.
	Methods map[identity.NodeID]bool
	// Calls is the subset of Methods that appear at a call site (I4).
	Calls map[identity.NodeID]bool
	// Declaration maps a declaration NodeID to its declared name.
	Declaration map[identity.NodeID]string
	// DeclarationMap maps a use-NodeID to the decl-NodeID it resolved to.
	DeclarationMap map[identity.NodeID]identity.NodeID
	// ScopeMap maps a NodeID to the scope stack active when it was visited,
	// outermost first.
	ScopeMap map[identity.NodeID][]ScopeID
	// DataType maps a declaration NodeID to its declared type string, when
	// syntactically available.
	DataType map[identity.NodeID]string
	// Uninitialized marks a declaration NodeID whose declarator carries no
	// initializer (Q1: an uninitialized declarator reaches its first use
	// as Undef rather than as a prior definition). Assignment-target
	// declarations are never uninitialized — the right-hand side is
	// mandatory — so this only ever holds declarator-kind entries.
	Uninitialized map[identity.NodeID]bool
}

func newTables() *Tables {
	return &Tables{
		Label:          make(map[identity.NodeID]string),
		StartLine:      make(map[identity.NodeID]int),
		Methods:        make(map[identity.NodeID]bool),
		Calls:          make(map[identity.NodeID]bool),
		Declaration:    make(map[identity.NodeID]string),
		DeclarationMap: make(map[identity.NodeID]identity.NodeID),
		ScopeMap:       make(map[identity.NodeID][]ScopeID),
		DataType:       make(map[identity.NodeID]string),
		Uninitialized:  make(map[identity.NodeID]bool),
	}
}

// declCandidate is one recorded declaration of a given name, kept in the
// order declarations are encountered during the walk.
type declCandidate struct {
	id    identity.NodeID
	scope []ScopeID
}

// extractor holds the mutable state of one pre-order walk.
type extractor struct {
	ids    *identity.Table
	cat    *catalog.Table
	tables *Tables

	scopeStack  []ScopeID
	nextScope   ScopeID
	declsByName map[string][]declCandidate
}

// Extract runs the C4 algorithm over root and returns the populated symbol
// tables. ids must have been built (via identity.Build) over the same tree.
func Extract(root parsetree.Node, ids *identity.Table, cat *catalog.Table) *Tables {
	e := &extractor{
		ids:         ids,
		cat:         cat,
		tables:      newTables(),
		declsByName: make(map[string][]declCandidate),
	}
	if root != nil {
		e.walk(root)
	}
	return e.tables
}

func (e *extractor) walk(n parsetree.Node) {
	if n == nil || !n.Named() {
		return
	}

	id, ok := e.ids.IDFor(n)
	if !ok {
		return
	}

	pushed := e.cat.ScopeIntroducing.Has(n.Kind())
	if pushed {
		e.nextScope++
		e.scopeStack = append(e.scopeStack, e.nextScope)
	}

	if isLeaf(n) && n.Kind() != "comment" {
		e.processLeaf(id, n)
	}

	for i := 0; i < n.ChildCount(); i++ {
		e.walk(n.Child(i))
	}

	if pushed {
		e.scopeStack = e.scopeStack[:len(e.scopeStack)-1]
	}
}

func isLeaf(n parsetree.Node) bool {
	return n.NamedChildCount() == 0
}

func (e *extractor) currentScope() []ScopeID {
	scope := make([]ScopeID, len(e.scopeStack))
	copy(scope, e.scopeStack)
	return scope
}

func (e *extractor) processLeaf(id identity.NodeID, n parsetree.Node) {
	text := string(n.Text())
	scope := e.currentScope()

	e.tables.Tokens = append(e.tables.Tokens, id)
	e.tables.Label[id] = text
	e.tables.StartLine[id] = int(n.StartPosition().Row) + 1
	e.tables.ScopeMap[id] = scope

	parent := n.Parent()
	if parent == nil {
		return
	}
	parentKind := parent.Kind()

	// An assignment target (`x = 1`, `x += 1`, `x := f()`, `x++`) redefines
	// x rather than using it, even though x may already be declared
	// elsewhere (§4.7 "each assignment ... introduces one [definition]").
	// Checked ahead of the switch below since it can match through a
	// one-level list wrapper (assignTarget), which the parentKind switch
	// can't express.
	if assignNode, ok := assignTarget(n, e.cat); ok {
		e.recordDeclaration(id, text, scope, assignNode, true)
		return
	}

	switch {
	case e.cat.MethodDeclarationParents.Has(parentKind) && sameNode(parent.ChildByFieldName("name"), n):
		e.tables.Methods[id] = true
		// A function/method's own name binds in its *enclosing* scope (any
		// sibling can call it), not the scope the declaration itself
		// introduces for its parameters and body. MethodDeclarationParents
		// are always ScopeIntroducing, so the innermost frame on scope is
		// this declaration's own — strip it before recording the binding.
		declScope := scope
		if e.cat.ScopeIntroducing.Has(parentKind) && len(declScope) > 0 {
			declScope = declScope[:len(declScope)-1]
		}
		e.recordDeclaration(id, text, declScope, parent, true)

	case e.cat.CallExpressionKinds.Has(parentKind) && sameNode(parent.ChildByFieldName("function"), n):
		e.tables.Methods[id] = true
		e.tables.Calls[id] = true
		e.resolveUse(id, text, scope)

	case e.cat.DeclaratorKinds.Has(parentKind):
		e.recordDeclaration(id, text, scope, parent, hasInitializer(parent))

	default:
		e.resolveUse(id, text, scope)
	}
}

// assignTarget reports whether leaf n is the (or one of the) left-hand-side
// target(s) of a catalog.AssignmentKinds node, looking through at most one
// AssignmentListKinds wrapper (Go's expression_list, Python's pattern_list)
// between n and the assignment node. It returns the assignment node itself,
// for findTypeChild.
func assignTarget(n parsetree.Node, cat *catalog.Table) (parsetree.Node, bool) {
	parent := n.Parent()
	if parent == nil {
		return nil, false
	}
	if field, ok := cat.AssignmentKinds[parent.Kind()]; ok {
		if sameNode(parent.ChildByFieldName(field), n) {
			return parent, true
		}
		return nil, false
	}
	if cat.AssignmentListKinds.Has(parent.Kind()) {
		grand := parent.Parent()
		if grand == nil {
			return nil, false
		}
		if field, ok := cat.AssignmentKinds[grand.Kind()]; ok && sameNode(grand.ChildByFieldName(field), parent) {
			return grand, true
		}
	}
	return nil, false
}

// hasInitializer reports whether a declarator carries an initial value:
// parameters always do (their "value" is supplied at the call site), other
// declarators only when a "value" field is present (Q1).
func hasInitializer(parent parsetree.Node) bool {
	if strings.Contains(parent.Kind(), "parameter") {
		return true
	}
	return parent.ChildByFieldName("value") != nil
}

// recordDeclaration handles a leaf identifier that introduces a binding
// (I3: label[d] is defined for every declaration d).
func (e *extractor) recordDeclaration(id identity.NodeID, name string, scope []ScopeID, parent parsetree.Node, initialized bool) {
	e.tables.Declaration[id] = name
	e.declsByName[name] = append(e.declsByName[name], declCandidate{id: id, scope: scope})
	if !initialized {
		e.tables.Uninitialized[id] = true
	}

	if dt := findTypeChild(parent, e.cat); dt != "" {
		e.tables.DataType[id] = dt
	}
}

// resolveUse implements §4.4 "Use-to-decl resolution": among candidates
// with a matching name whose scope is a prefix of the use's scope, the one
// with the longest matching prefix wins (I2); ties break to the greatest
// NodeID (§4.4 tie-break policy, P3).
func (e *extractor) resolveUse(useID identity.NodeID, name string, scope []ScopeID) {
	candidates := e.declsByName[name]
	if len(candidates) == 0 {
		return
	}

	var best *declCandidate
	bestLen := -1
	for i := range candidates {
		c := &candidates[i]
		if !isPrefix(c.scope, scope) {
			continue
		}
		switch {
		case len(c.scope) > bestLen:
			best, bestLen = c, len(c.scope)
		case len(c.scope) == bestLen && best != nil && c.id > best.id:
			best = c
		}
	}
	if best != nil {
		e.tables.DeclarationMap[useID] = best.id
	}
}

// isPrefix reports whether prefix is a prefix of full (I2).
func isPrefix(prefix, full []ScopeID) bool {
	if len(prefix) > len(full) {
		return false
	}
	for i, p := range prefix {
		if full[i] != p {
			return false
		}
	}
	return true
}

// findTypeChild returns the text of parent's first child whose kind is in
// the catalog's TypeChildKinds, or "" if none is present.
func findTypeChild(parent parsetree.Node, cat *catalog.Table) string {
	for i := 0; i < parent.ChildCount(); i++ {
		c := parent.Child(i)
		if c == nil {
			continue
		}
		if cat.TypeChildKinds.Has(c.Kind()) {
			return string(c.Text())
		}
	}
	return ""
}

// sameNode reports whether a and b refer to the same syntactic span. Our
// fake and tree-sitter node implementations don't guarantee pointer
// identity for repeated lookups, so identity is compared structurally.
func sameNode(a, b parsetree.Node) bool {
	if a == nil || b == nil {
		return false
	}
	sa, sb := a.StartPosition(), b.StartPosition()
	ea, eb := a.EndPosition(), b.EndPosition()
	return a.Kind() == b.Kind() && sa == sb && ea == eb
}
